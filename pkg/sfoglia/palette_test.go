package sfoglia

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"
)

func mapResolver(colors map[string]string) func(string) (colorful.Color, bool) {
	return func(name string) (colorful.Color, bool) {
		value, ok := colors[name]
		if !ok {
			return colorful.Color{}, false
		}
		return ParseColor(value)
	}
}

func TestColorRoleFromString(t *testing.T) {
	t.Parallel()

	require.Equal(t, RoleWindowText, ColorRoleFromString("WindowText"))
	require.Equal(t, RoleHighlight, ColorRoleFromString("Highlight"))
	require.Equal(t, RoleNone, ColorRoleFromString("NotARole"))
	require.Equal(t, RoleNone, ColorRoleFromString(""))
}

func TestPaletteColorEntryIsValid(t *testing.T) {
	t.Parallel()

	require.True(t, PaletteColorEntry{Group: GroupActive, Role: RoleText, Variable: "x"}.IsValid())
	require.False(t, PaletteColorEntry{Group: GroupActive, Role: RoleNone, Variable: "x"}.IsValid())
	require.False(t, PaletteColorEntry{Group: GroupActive, Role: RoleText}.IsValid())
}

func TestNewPaletteFromColorContrast(t *testing.T) {
	t.Parallel()

	dark, _ := colorful.Hex("#202020")
	p := NewPaletteFromColor(dark)
	text, ok := p.Color(GroupActive, RoleText)
	require.True(t, ok)
	require.Equal(t, colorful.Color{R: 1, G: 1, B: 1}, text)

	light, _ := colorful.Hex("#f0f0f0")
	p = NewPaletteFromColor(light)
	text, ok = p.Color(GroupActive, RoleText)
	require.True(t, ok)
	require.Equal(t, colorful.Color{}, text)
}

func TestBuildPaletteBaseColorReplacesWholePalette(t *testing.T) {
	t.Parallel()

	colors := map[string]string{"primaryColor": "#306090"}
	p := BuildPalette(PaletteSpec{BaseColorVariable: "primaryColor"}, mapResolver(colors))

	window, ok := p.Color(GroupActive, RoleWindow)
	require.True(t, ok)
	base, _ := colorful.Hex("#306090")
	require.Equal(t, base.Hex(), window.Hex())
}

func TestBuildPaletteEntryOverridesBaseDerived(t *testing.T) {
	t.Parallel()

	colors := map[string]string{
		"primaryColor": "#306090",
		"textColor":    "#ff00ff",
	}
	spec := PaletteSpec{
		BaseColorVariable: "primaryColor",
		Entries: []PaletteColorEntry{
			{Group: GroupActive, Role: RoleText, Variable: "textColor"},
		},
	}
	p := BuildPalette(spec, mapResolver(colors))

	text, ok := p.Color(GroupActive, RoleText)
	require.True(t, ok)
	require.Equal(t, "#ff00ff", text.Hex())

	// Slots without overrides keep the base-derived value.
	window, _ := p.Color(GroupActive, RoleWindow)
	require.Equal(t, "#306090", window.Hex())
}

func TestBuildPaletteInvalidEntriesSkipped(t *testing.T) {
	t.Parallel()

	colors := map[string]string{"primaryColor": "#306090"}
	spec := PaletteSpec{
		BaseColorVariable: "primaryColor",
		Entries: []PaletteColorEntry{
			{Group: GroupActive, Role: RoleWindow, Variable: "unboundVariable"},
			{Group: GroupActive, Role: RoleNone, Variable: "primaryColor"},
		},
	}
	p := BuildPalette(spec, mapResolver(colors))

	// Neither entry applied: the base-derived window color survives.
	window, ok := p.Color(GroupActive, RoleWindow)
	require.True(t, ok)
	require.Equal(t, "#306090", window.Hex())
}

func TestBuildPaletteUnresolvableBaseKeepsDefault(t *testing.T) {
	t.Parallel()

	p := BuildPalette(PaletteSpec{BaseColorVariable: "missing"}, mapResolver(nil))
	def := DefaultPalette()

	got, ok := p.Color(GroupActive, RoleWindow)
	require.True(t, ok)
	want, _ := def.Color(GroupActive, RoleWindow)
	require.Equal(t, want.Hex(), got.Hex())
}
