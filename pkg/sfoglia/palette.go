package sfoglia

import "github.com/lucasb-eyer/go-colorful"

// ColorGroup selects one of the three widget states a palette distinguishes.
type ColorGroup int

const (
	GroupActive ColorGroup = iota
	GroupDisabled
	GroupInactive
)

const colorGroupCount = 3

func (g ColorGroup) String() string {
	switch g {
	case GroupActive:
		return "active"
	case GroupDisabled:
		return "disabled"
	case GroupInactive:
		return "inactive"
	}
	return ""
}

// ColorRole names a semantic slot within a palette color group.
type ColorRole int

const (
	RoleNone ColorRole = iota
	RoleWindow
	RoleWindowText
	RoleBase
	RoleAlternateBase
	RoleText
	RoleBrightText
	RoleButton
	RoleButtonText
	RoleLight
	RoleMidlight
	RoleMid
	RoleDark
	RoleShadow
	RoleHighlight
	RoleHighlightedText
	RoleLink
	RoleLinkVisited
	RoleToolTipBase
	RoleToolTipText
	RolePlaceholderText
)

var colorRoleNames = map[string]ColorRole{
	"Window":          RoleWindow,
	"WindowText":      RoleWindowText,
	"Base":            RoleBase,
	"AlternateBase":   RoleAlternateBase,
	"Text":            RoleText,
	"BrightText":      RoleBrightText,
	"Button":          RoleButton,
	"ButtonText":      RoleButtonText,
	"Light":           RoleLight,
	"Midlight":        RoleMidlight,
	"Mid":             RoleMid,
	"Dark":            RoleDark,
	"Shadow":          RoleShadow,
	"Highlight":       RoleHighlight,
	"HighlightedText": RoleHighlightedText,
	"Link":            RoleLink,
	"LinkVisited":     RoleLinkVisited,
	"ToolTipBase":     RoleToolTipBase,
	"ToolTipText":     RoleToolTipText,
	"PlaceholderText": RolePlaceholderText,
}

// ColorRoleFromString converts a role name from a palette spec to its enum.
// Unrecognized names map to RoleNone and are dropped by the spec parser.
func ColorRoleFromString(name string) ColorRole {
	return colorRoleNames[name]
}

// PaletteColorEntry binds one (group, role) palette slot to the theme
// variable that supplies its color.
type PaletteColorEntry struct {
	Group    ColorGroup
	Role     ColorRole
	Variable string
}

// IsValid reports whether the entry names both a variable and a real role.
func (e PaletteColorEntry) IsValid() bool {
	return e.Variable != "" && e.Role != RoleNone
}

// PaletteSpec is the declarative palette section of a style descriptor: a
// flattened, order-preserving list of color entries plus an optional base
// color variable that seeds a whole derived palette.
type PaletteSpec struct {
	BaseColorVariable string
	Entries           []PaletteColorEntry
}

// Palette holds concrete colors per (group, role) slot, ready to apply to a
// UI surface.
type Palette struct {
	colors [colorGroupCount]map[ColorRole]colorful.Color
}

// NewPalette returns an empty palette with no slots set.
func NewPalette() *Palette {
	p := &Palette{}
	for g := range p.colors {
		p.colors[g] = make(map[ColorRole]colorful.Color)
	}
	return p
}

// DefaultPalette returns the ambient palette used before any style applies:
// a neutral light-gray scheme.
func DefaultPalette() *Palette {
	gray, _ := colorful.Hex("#efefef")
	return NewPaletteFromColor(gray)
}

// NewPaletteFromColor derives a full tonal palette from a single seed color,
// mirroring the common toolkit behavior where one button color expands into
// light/mid/dark shades and contrast-picked text colors.
func NewPaletteFromColor(base colorful.Color) *Palette {
	p := NewPalette()

	_, _, lightness := base.Hsl()
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}

	text := white
	surface := shade(base, 0.10)
	if lightness > 0.5 {
		text = black
		surface = tint(base, 0.60)
	}

	for g := ColorGroup(0); g < colorGroupCount; g++ {
		p.SetColor(g, RoleWindow, base)
		p.SetColor(g, RoleWindowText, text)
		p.SetColor(g, RoleBase, surface)
		p.SetColor(g, RoleAlternateBase, base)
		p.SetColor(g, RoleText, text)
		p.SetColor(g, RoleBrightText, white)
		p.SetColor(g, RoleButton, base)
		p.SetColor(g, RoleButtonText, text)
		p.SetColor(g, RoleLight, tint(base, 0.50))
		p.SetColor(g, RoleMidlight, tint(base, 0.25))
		p.SetColor(g, RoleMid, shade(base, 0.33))
		p.SetColor(g, RoleDark, shade(base, 0.50))
		p.SetColor(g, RoleShadow, black)
		p.SetColor(g, RoleHighlight, shade(base, 0.20))
		p.SetColor(g, RoleHighlightedText, white)
		p.SetColor(g, RoleLink, colorful.Color{B: 1})
		p.SetColor(g, RoleLinkVisited, colorful.Color{R: 1, B: 1})
		p.SetColor(g, RoleToolTipBase, surface)
		p.SetColor(g, RoleToolTipText, text)
		p.SetColor(g, RolePlaceholderText, shade(text, 0.40))
	}

	// Disabled widgets lose contrast.
	p.SetColor(GroupDisabled, RoleText, shade(base, 0.33))
	p.SetColor(GroupDisabled, RoleWindowText, shade(base, 0.33))
	p.SetColor(GroupDisabled, RoleButtonText, shade(base, 0.33))

	return p
}

// SetColor assigns a slot, overwriting any prior value.
func (p *Palette) SetColor(group ColorGroup, role ColorRole, c colorful.Color) {
	if group < 0 || group >= colorGroupCount || role == RoleNone {
		return
	}
	p.colors[group][role] = c
}

// Color reads a slot. The second return value reports whether the slot has
// ever been set.
func (p *Palette) Color(group ColorGroup, role ColorRole) (colorful.Color, bool) {
	if group < 0 || group >= colorGroupCount {
		return colorful.Color{}, false
	}
	c, ok := p.colors[group][role]
	return c, ok
}

// BuildPalette maps a palette spec onto a concrete palette. The result
// starts from the ambient default palette; a resolvable base color variable
// replaces the whole palette with one derived from that seed; each entry
// then overrides its slot in list order. Entries whose variable does not
// resolve to a valid color are skipped, leaving the prior value in place.
func BuildPalette(spec PaletteSpec, resolve func(string) (colorful.Color, bool)) *Palette {
	palette := DefaultPalette()

	if spec.BaseColorVariable != "" {
		if base, ok := resolve(spec.BaseColorVariable); ok {
			palette = NewPaletteFromColor(base)
		}
	}

	for _, entry := range spec.Entries {
		if !entry.IsValid() {
			continue
		}
		if c, ok := resolve(entry.Variable); ok {
			palette.SetColor(entry.Group, entry.Role, c)
		}
	}
	return palette
}

// tint moves a color toward white by the given fraction.
func tint(c colorful.Color, amount float64) colorful.Color {
	return c.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, amount)
}

// shade moves a color toward black by the given fraction.
func shade(c colorful.Color, amount float64) colorful.Color {
	return c.BlendRgb(colorful.Color{}, amount)
}
