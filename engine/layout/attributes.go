package layout

import (
	"math"
	"strconv"
	"strings"
)

// Attribute names recognized by ParseAttributes.
const (
	AttrWidth  = "width"
	AttrHeight = "height"
	AttrX      = "x"
	AttrY      = "y"
	AttrStyle  = "style"

	// Long-form aliases. When both forms are present the short name wins.
	AttrExplicitWidth  = "explicitWidth"
	AttrExplicitHeight = "explicitHeight"
	AttrPositionX      = "positionX"
	AttrPositionY      = "positionY"
)

// Attributes is the externally supplied component configuration, keyed by attribute name.
// width/height/x/y may also be given as explicitWidth/explicitHeight/positionX/positionY.
// The "style" entry holds an inline CSS declaration list such as "width: 200px; height: 300px".
type Attributes map[string]string

// ParseAttributes selects the layout variant for a component. An explicit width and height
// attribute pair wins, then an inline style width and height pair, then the strategy's
// non-explicit variant. Position attributes only matter alongside an explicit size.
// Malformed values count as absent; parsing never fails.
//
// Parameters:
//   - attrs: the component attributes (nil is treated as empty)
//   - strategy: the fallback policy
//
// Returns:
//   - Config: the selected layout variant
func ParseAttributes(attrs Attributes, strategy Strategy) Config {
	w, okW := parseSize(attrs.lookup(AttrWidth, AttrExplicitWidth))
	h, okH := parseSize(attrs.lookup(AttrHeight, AttrExplicitHeight))
	if !okW || !okH {
		style := parseStyle(attrs[AttrStyle])
		w, okW = parseSize(style["width"])
		h, okH = parseSize(style["height"])
	}
	if !okW || !okH {
		return strategy.Config()
	}

	x, okX := parsePixels(attrs.lookup(AttrX, AttrPositionX))
	y, okY := parsePixels(attrs.lookup(AttrY, AttrPositionY))
	if !okX && !okY {
		return ExplicitSize{Width: w, Height: h}
	}

	cfg := ExplicitSizeWithPosition{Width: w, Height: h}
	if okX {
		cfg.X = &x
	}
	if okY {
		cfg.Y = &y
	}
	return cfg
}

// lookup returns the first non-blank value among names.
func (a Attributes) lookup(names ...string) string {
	for _, n := range names {
		if v := a[n]; strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// parsePixels parses a CSS pixel length ("200", "200px", " 200.5px ").
func parsePixels(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimSuffix(s, "px")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseSize(raw string) (float64, bool) {
	v, ok := parsePixels(raw)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// parseStyle splits an inline CSS declaration list into lower-cased property/value pairs.
func parseStyle(raw string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(raw, ";") {
		prop, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(prop))] = strings.TrimSpace(value)
	}
	return out
}
