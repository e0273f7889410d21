package sanitizer

import (
	"regexp"
	"strings"
)

var (
	// schemePrefix matches a URI scheme at the start of a value.
	schemePrefix = regexp.MustCompile(`^([a-z][a-z0-9+.\-]*):`)

	// cssURL matches url(...) references inside attribute values and
	// style sheets, capturing the target.
	cssURL = regexp.MustCompile(`(?i)url\s*\(\s*['"]?\s*([^'")\s]*)`)

	// cssImport matches @import rules, which always fetch a resource.
	cssImport = regexp.MustCompile(`(?i)@import\b`)

	// safeDataImage matches inline raster and vector image payloads.
	safeDataImage = regexp.MustCompile(`^data:image/(png|gif|jpe?g|webp|bmp|svg\+xml)[;,]`)
)

// isHrefAttribute reports whether name is one of the link attributes.
func isHrefAttribute(name string) bool {
	n := strings.ToLower(name)
	return n == "href" || n == "xlink:href"
}

// isSafeHref reports whether an href value uses a scheme that cannot run
// script. Relative references and fragments are safe.
func isSafeHref(value string) bool {
	v := normalizeValue(value)
	if v == "" || strings.HasPrefix(v, "#") {
		return true
	}
	m := schemePrefix.FindStringSubmatch(v)
	if m == nil {
		return true
	}
	switch m[1] {
	case "http", "https", "mailto":
		return true
	case "data":
		return safeDataImage.MatchString(v)
	default:
		return false
	}
}

// isRemoteURL reports whether an href value makes the renderer fetch a
// resource over the network.
func isRemoteURL(value string) bool {
	v := normalizeValue(value)
	if strings.HasPrefix(v, "//") || strings.HasPrefix(v, `\\`) {
		return true
	}
	m := schemePrefix.FindStringSubmatch(v)
	if m == nil {
		return false
	}
	switch m[1] {
	case "http", "https", "ftp", "ftps", "ws", "wss", "file":
		return true
	default:
		return false
	}
}

// hasRemoteReference reports whether a value references anything other
// than a local fragment or inline data, through url(...) or a quoted
// image-set() candidate.
func hasRemoteReference(value string) bool {
	return cssHasRemoteReference(cssText(value))
}

func cssHasRemoteReference(css string) bool {
	if !strings.Contains(css, "url") && !strings.Contains(css, "image-set") {
		return false
	}
	for _, m := range cssURL.FindAllStringSubmatch(css, -1) {
		if !isLocalTarget(m[1]) {
			return true
		}
	}
	for _, target := range imageSetTargets(css) {
		if !isLocalTarget(target) {
			return true
		}
	}
	return false
}

// styleFetchesRemote reports whether style sheet text pulls in an
// external resource. Any @import counts, whatever form its target takes.
func styleFetchesRemote(sheet string) bool {
	css := cssText(sheet)
	return cssImport.MatchString(css) || cssHasRemoteReference(css)
}
