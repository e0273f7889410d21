package policy

// BaseTags is the SVG element allow-list every deployment starts from.
var BaseTags = []string{
	"a",
	"altglyph",
	"altglyphdef",
	"altglyphitem",
	"animatecolor",
	"animatemotion",
	"animatetransform",
	"circle",
	"clippath",
	"defs",
	"desc",
	"ellipse",
	"feblend",
	"fecolormatrix",
	"fecomponenttransfer",
	"fecomposite",
	"feconvolvematrix",
	"fediffuselighting",
	"fedisplacementmap",
	"fedistantlight",
	"feflood",
	"fefunca",
	"fefuncb",
	"fefuncg",
	"fefuncr",
	"fegaussianblur",
	"femerge",
	"femergenode",
	"femorphology",
	"feoffset",
	"fepointlight",
	"fespecularlighting",
	"fespotlight",
	"fetile",
	"feturbulence",
	"filter",
	"font",
	"g",
	"glyph",
	"glyphref",
	"hkern",
	"image",
	"line",
	"lineargradient",
	"marker",
	"mask",
	"metadata",
	"mpath",
	"path",
	"pattern",
	"polygon",
	"polyline",
	"radialgradient",
	"rect",
	"stop",
	"style",
	"svg",
	"switch",
	"symbol",
	"text",
	"textpath",
	"title",
	"tref",
	"tspan",
	"use",
	"view",
	"vkern",
}

// BaseAttributes is the attribute allow-list every deployment starts
// from. Attributes apply to any allowed tag.
var BaseAttributes = []string{
	// presentation and HTML-compatible attributes
	"accept", "align", "alt", "class", "clip-path", "color", "dir",
	"display", "height", "hidden", "href", "id", "lang", "media",
	"name", "role", "style", "tabindex", "title", "type", "width",
	"xmlns",

	// SVG
	"accent-height", "accumulate", "additive", "alignment-baseline",
	"ascent", "attributename", "attributetype", "azimuth",
	"basefrequency", "baseline-shift", "begin", "bias", "by", "clip",
	"clip-rule", "clippathunits", "color-interpolation",
	"color-interpolation-filters", "color-profile", "color-rendering",
	"cx", "cy", "d", "diffuseconstant", "direction", "divisor",
	"dominant-baseline", "dur", "dx", "dy", "edgemode", "elevation",
	"end", "fill", "fill-opacity", "fill-rule", "filter",
	"filterunits", "flood-color", "flood-opacity", "font-family",
	"font-size", "font-size-adjust", "font-stretch", "font-style",
	"font-variant", "font-weight", "fx", "fy", "g1", "g2",
	"glyph-name", "glyphref", "gradienttransform", "gradientunits",
	"image-rendering", "in", "in2", "k", "k1", "k2", "k3", "k4",
	"kernelmatrix", "kernelunitlength", "kerning", "keypoints",
	"keysplines", "keytimes", "lengthadjust", "letter-spacing",
	"lighting-color", "local", "marker-end", "marker-mid",
	"marker-start", "markerheight", "markerunits", "markerwidth",
	"mask", "maskcontentunits", "maskunits", "max", "method", "min",
	"mode", "numoctaves", "offset", "opacity", "operator", "order",
	"orient", "orientation", "origin", "overflow", "paint-order",
	"path", "pathlength", "patterncontentunits", "patterntransform",
	"patternunits", "points", "preservealpha", "preserveaspectratio",
	"primitiveunits", "r", "radius", "refx", "refy", "repeatcount",
	"repeatdur", "restart", "result", "rotate", "rx", "ry", "scale",
	"seed", "shape-rendering", "specularconstant", "specularexponent",
	"spreadmethod", "startoffset", "stddeviation", "stitchtiles",
	"stop-color", "stop-opacity", "stroke", "stroke-dasharray",
	"stroke-dashoffset", "stroke-linecap", "stroke-linejoin",
	"stroke-miterlimit", "stroke-opacity", "stroke-width",
	"surfacescale", "systemlanguage", "tablevalues", "targetx",
	"targety", "text-anchor", "text-decoration", "text-rendering",
	"textlength", "transform", "u1", "u2", "unicode", "values",
	"vert-adv-y", "vert-origin-x", "vert-origin-y", "viewbox",
	"visibility", "word-spacing", "wrap", "writing-mode",
	"xchannelselector", "ychannelselector", "x", "x1", "x2", "y",
	"y1", "y2", "z", "zoomandpan",

	// XML and XLink
	"xlink:href", "xlink:title", "xml:id", "xml:space", "xmlns:xlink",
}

// deniedTags stay blocked whatever the allow-list says.
var deniedTags = map[string]struct{}{
	"script":        {},
	"iframe":        {},
	"object":        {},
	"embed":         {},
	"foreignobject": {},
	"handler":       {},
	"listener":      {},
}
