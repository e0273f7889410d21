package policy

// ExtensionTags are the extra tags this deployment allows on top of
// BaseTags.
var ExtensionTags = []string{
	"font-face",
	"missing-glyph",
	"animate",
}

// ExtensionAttributes are the extra attributes this deployment allows on
// top of BaseAttributes. Some overlap the base list; composing removes
// the duplicates.
var ExtensionAttributes = []string{
	"bbox", // Deprecated but still in use.
	"cy",
	"cx",
	"descent",
	"enable-background",
	"fill",
	"fillRule",
	"from",
	"horiz-adv-x",
	"panose-1", // Deprecated but still in use.
	"rx",
	"ry",
	"space",
	"to",
	"unicode-range", // Deprecated but still in use.
	"underline-position",
	"underline-thickness",
	"units-per-em",
	"y",
	"x",
	"vector-effect",
	"version",
}
