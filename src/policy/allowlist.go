// Package policy builds the tag and attribute allow-lists the SVG
// sanitizer enforces. Lists are composed additively: an extension can
// widen the base policy but never drop one of its entries.
package policy

import (
	"sort"
	"strings"
)

// Allowlist is an immutable set of permitted tag and attribute names.
// Names are stored lower-cased and matched case-insensitively.
type Allowlist struct {
	tags       map[string]struct{}
	attributes map[string]struct{}
}

// ComposeTags returns the union of base and extension tag names.
func ComposeTags(base, extension []string) []string {
	return compose(base, extension)
}

// ComposeAttributes returns the union of base and extension attribute
// names.
func ComposeAttributes(base, extension []string) []string {
	return compose(base, extension)
}

// New builds an Allowlist from already composed tag and attribute lists.
func New(tags, attributes []string) *Allowlist {
	return &Allowlist{
		tags:       toSet(tags),
		attributes: toSet(attributes),
	}
}

// Default returns the base policy widened with this deployment's
// extension lists.
func Default() *Allowlist {
	return New(
		ComposeTags(BaseTags, ExtensionTags),
		ComposeAttributes(BaseAttributes, ExtensionAttributes),
	)
}

// Extend returns a new Allowlist that also permits the given tags and
// attributes. The receiver is left untouched.
func (a *Allowlist) Extend(tags, attributes []string) *Allowlist {
	return New(
		ComposeTags(a.Tags(), tags),
		ComposeAttributes(a.Attributes(), attributes),
	)
}

// AllowsTag reports whether the tag is on the allow-list.
func (a *Allowlist) AllowsTag(name string) bool {
	_, ok := a.tags[normalize(name)]
	return ok
}

// AllowsAttribute reports whether the attribute is on the allow-list.
// data-* and aria-* attributes are always permitted.
func (a *Allowlist) AllowsAttribute(name string) bool {
	n := normalize(name)
	if strings.HasPrefix(n, "data-") || strings.HasPrefix(n, "aria-") {
		return true
	}
	_, ok := a.attributes[n]
	return ok
}

// Tags returns the permitted tag names, sorted.
func (a *Allowlist) Tags() []string { return sortedKeys(a.tags) }

// Attributes returns the permitted attribute names, sorted.
func (a *Allowlist) Attributes() []string { return sortedKeys(a.attributes) }

// DeniesTag reports whether the tag is blocked regardless of any
// allow-list.
func DeniesTag(name string) bool {
	_, ok := deniedTags[normalize(name)]
	return ok
}

// DeniesAttribute reports whether the attribute is blocked regardless of
// any allow-list. Every on* event handler is denied.
func DeniesAttribute(name string) bool {
	n := normalize(name)
	if i := strings.LastIndexByte(n, ':'); i >= 0 {
		n = n[i+1:]
	}
	return strings.HasPrefix(n, "on")
}

func compose(base, extension []string) []string {
	set := make(map[string]struct{}, len(base)+len(extension))
	for _, list := range [][]string{base, extension} {
		for _, name := range list {
			if n := normalize(name); n != "" {
				set[n] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		if n := normalize(name); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
