//go:build cgo

// Package sdl2 adapts an SDL2 renderer into the engine's UISurface
// capability: generated palettes drive the renderer's draw state and style
// fonts are registered with SDL_ttf.
package sdl2

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia"
)

const defaultFontSize = 16

// Surface is an SDL2-backed UI surface. The renderer may be nil for
// headless hosts that only want font registration.
type Surface struct {
	renderer *sdl.Renderer
	fontSize int
	fonts    []*ttf.Font
	theme    Theme
}

// New creates a surface around an SDL renderer.
func New(renderer *sdl.Renderer) *Surface {
	return &Surface{renderer: renderer, fontSize: defaultFontSize}
}

// ApplyPalette maps the generated palette onto the widget theme and, when a
// renderer is attached, onto its clear color.
func (s *Surface) ApplyPalette(p *sfoglia.Palette) {
	s.theme = ThemeFromPalette(p)
	if s.renderer == nil {
		return
	}
	bg := s.theme.BackgroundColor
	_ = s.renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
}

// AddFont opens a font file through SDL_ttf and keeps it for the lifetime of
// the surface.
func (s *Surface) AddFont(path string) error {
	if !ttf.WasInit() {
		if err := ttf.Init(); err != nil {
			return err
		}
	}
	font, err := ttf.OpenFont(path, s.fontSize)
	if err != nil {
		return err
	}
	s.fonts = append(s.fonts, font)
	return nil
}

// Theme returns the widget theme produced by the last ApplyPalette call.
func (s *Surface) Theme() Theme {
	return s.theme
}

// Close releases all fonts registered through AddFont.
func (s *Surface) Close() {
	for _, font := range s.fonts {
		font.Close()
	}
	s.fonts = nil
}

// Theme is the flat color set SDL-rendered widgets consume, filled from the
// engine's palette.
type Theme struct {
	HighlightColor       sdl.Color // Selected item background
	AccentColor          sdl.Color // Emphasis fills
	TextColor            sdl.Color // Default text color
	HighlightedTextColor sdl.Color // Text on highlighted items
	HintColor            sdl.Color // Help and placeholder text
	DisabledTextColor    sdl.Color // Text on disabled controls
	BackgroundColor      sdl.Color // Screen background color
}

// ThemeFromPalette flattens the grouped palette into widget theme colors.
// Unset slots keep the zero color.
func ThemeFromPalette(p *sfoglia.Palette) Theme {
	t := Theme{}
	assign := func(dst *sdl.Color, group sfoglia.ColorGroup, role sfoglia.ColorRole) {
		if c, ok := p.Color(group, role); ok {
			*dst = toSDLColor(c)
		}
	}

	assign(&t.HighlightColor, sfoglia.GroupActive, sfoglia.RoleHighlight)
	assign(&t.AccentColor, sfoglia.GroupActive, sfoglia.RoleButton)
	assign(&t.TextColor, sfoglia.GroupActive, sfoglia.RoleText)
	assign(&t.HighlightedTextColor, sfoglia.GroupActive, sfoglia.RoleHighlightedText)
	assign(&t.HintColor, sfoglia.GroupActive, sfoglia.RolePlaceholderText)
	assign(&t.DisabledTextColor, sfoglia.GroupDisabled, sfoglia.RoleText)
	assign(&t.BackgroundColor, sfoglia.GroupActive, sfoglia.RoleWindow)
	return t
}

func toSDLColor(c colorful.Color) sdl.Color {
	r, g, b := c.RGB255()
	return sdl.Color{R: r, G: g, B: b, A: 255}
}
