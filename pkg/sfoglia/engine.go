package sfoglia

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/natefinch/atomic"
	uatomic "go.uber.org/atomic"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/internal"
)

// Location names one of the fixed subfolders of a style directory.
type Location int

const (
	ThemesLocation Location = iota
	ResourceTemplatesLocation
	FontsLocation
)

func (l Location) subdir() string {
	switch l {
	case ThemesLocation:
		return "themes"
	case ResourceTemplatesLocation:
		return "resources"
	case FontsLocation:
		return "fonts"
	}
	return ""
}

// Engine owns the style/theme lifecycle: select a style, select a theme,
// resolve the merged variable environment, recolor assets, render the
// stylesheet and publish everything to the output directory. All methods
// are synchronous and expect to be driven from a single control thread.
type Engine struct {
	stylesDir string
	outputDir string

	styles []string
	themes []string

	currentStyle string
	currentTheme string

	style *StyleDescriptor
	theme *ThemeDescriptor

	// themeVariables is the resolved environment: style variables overlaid
	// by theme colors. Rebuilt on every selection, never mutated in place by
	// the pipeline itself (SetThemeVariableValue is the explicit override
	// hook for hosts).
	themeVariables map[string]string

	stylesheet       string
	iconReplacePairs []ColorReplacePair

	errKind ErrorKind
	errMsg  string

	surface  UISurface
	registry iconRegistry

	// generation counts publishes, bumped after the replace pairs are
	// rebuilt. Renderers carry the generation they last painted with, so a
	// broadcast refreshes exactly the handles that predate the new pairs.
	generation uatomic.Int64
	publishing uatomic.Bool

	styleChanged      []func(string)
	themeChanged      []func(string)
	stylesheetChanged []func()

	log *slog.Logger
}

// New creates an engine with no style selected. A nil surface disables
// palette application and font loading.
func New(surface UISurface) *Engine {
	return &Engine{
		themeVariables: map[string]string{},
		surface:        surface,
		log:            internal.GetLogger(),
	}
}

// SetStylesDirPath points the engine at the root directory holding style
// bundles and enumerates the available style ids (one per subdirectory).
func (e *Engine) SetStylesDirPath(dir string) {
	e.stylesDir = dir
	e.styles = e.styles[:0]

	entries, err := os.ReadDir(dir)
	if err != nil {
		e.log.Debug("styles dir not readable", "dir", dir, "error", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			e.styles = append(e.styles, entry.Name())
		}
	}
	sort.Strings(e.styles)
}

// StylesDirPath returns the styles root directory.
func (e *Engine) StylesDirPath() string { return e.stylesDir }

// SetOutputDirPath sets the root directory that publish writes generated
// stylesheets and recolored assets beneath.
func (e *Engine) SetOutputDirPath(dir string) { e.outputDir = dir }

// OutputDirPath returns the output root directory.
func (e *Engine) OutputDirPath() string { return e.outputDir }

// Styles lists the available style ids.
func (e *Engine) Styles() []string { return e.styles }

// Themes lists the theme ids available for the current style.
func (e *Engine) Themes() []string { return e.themes }

// CurrentStyle returns the active style id, or "" before any selection.
func (e *Engine) CurrentStyle() string { return e.currentStyle }

// CurrentTheme returns the active theme id, or "" before any selection.
func (e *Engine) CurrentTheme() string { return e.currentTheme }

// CurrentStylePath returns the directory of the active style bundle.
func (e *Engine) CurrentStylePath() string {
	return filepath.Join(e.stylesDir, e.currentStyle)
}

// CurrentStyleOutputPath returns the directory publish writes into.
func (e *Engine) CurrentStyleOutputPath() string {
	return filepath.Join(e.outputDir, e.currentStyle)
}

// Path returns the absolute directory for one of the fixed style locations.
func (e *Engine) Path(location Location) string {
	return filepath.Join(e.CurrentStylePath(), location.subdir())
}

// Stylesheet returns the most recently rendered stylesheet text.
func (e *Engine) Stylesheet() string { return e.stylesheet }

// Error returns the kind of the last failing operation, or NoError.
func (e *Engine) Error() ErrorKind { return e.errKind }

// ErrorString describes the last failing operation.
func (e *Engine) ErrorString() string { return e.errMsg }

// OnStyleChanged registers an observer fired exactly once per successful
// style selection.
func (e *Engine) OnStyleChanged(fn func(styleID string)) {
	e.styleChanged = append(e.styleChanged, fn)
}

// OnThemeChanged registers an observer fired exactly once per successful
// theme selection.
func (e *Engine) OnThemeChanged(fn func(themeID string)) {
	e.themeChanged = append(e.themeChanged, fn)
}

// OnStylesheetChanged registers an observer fired exactly once per
// successful publish.
func (e *Engine) OnStylesheetChanged(fn func()) {
	e.stylesheetChanged = append(e.stylesheetChanged, fn)
}

// SetCurrentStyle loads the style bundle with the given id. The available
// theme list is re-enumerated from the candidate style even when descriptor
// loading then fails, but the current style id only changes on success.
func (e *Engine) SetCurrentStyle(style string) bool {
	e.clearError()

	styleDir := filepath.Join(e.stylesDir, style)
	e.enumerateThemes(styleDir)

	desc, eerr := LoadStyleDescriptor(styleDir)
	if eerr != nil {
		e.setError(eerr)
		return false
	}

	e.currentStyle = style
	e.style = desc
	e.theme = nil
	e.currentTheme = ""
	e.themeVariables = mergeVariables(desc.Variables, nil)

	e.addFonts(e.Path(FontsLocation))

	e.log.Debug("style selected", "style", style, "themes", len(e.themes))
	for _, fn := range e.styleChanged {
		fn(style)
	}
	return true
}

// SetCurrentTheme loads the named theme of the current style and rebuilds
// the resolved environment. The error state is cleared up front like every
// selection; with no style loaded the call then returns false without
// recording a new error.
func (e *Engine) SetCurrentTheme(theme string) bool {
	e.clearError()

	if e.style == nil {
		return false
	}

	path := filepath.Join(e.CurrentStylePath(), ThemesLocation.subdir(), theme+".xml")
	desc, eerr := LoadThemeDescriptor(path)
	if eerr != nil {
		e.setError(eerr)
		return false
	}

	e.theme = desc
	e.currentTheme = theme
	e.themeVariables = mergeVariables(e.style.Variables, desc.Colors)

	e.log.Debug("theme selected", "theme", theme, "dark", desc.Dark)
	for _, fn := range e.themeChanged {
		fn(theme)
	}
	return true
}

// SetDefaultTheme activates the theme the style descriptor declares as its
// default. A default_theme id that names no theme file fails like any other
// bad theme selection, with the error reported, while the style selection
// itself stands.
func (e *Engine) SetDefaultTheme() bool {
	if e.style == nil {
		return false
	}
	return e.SetCurrentTheme(e.style.DefaultTheme)
}

// UpdateStylesheet publishes the current style+theme combination: palette
// application, resource recoloring, icon registry broadcast, stylesheet
// rendering and export, then the stylesheetChanged notification. Any failing
// step aborts the publish with the most specific error recorded; files
// already written by completed steps are not rolled back.
//
// Publish is not safe against concurrent publish calls; a second call while
// one is in flight fails immediately instead of interleaving.
func (e *Engine) UpdateStylesheet() bool {
	if e.style == nil || e.theme == nil {
		return false
	}
	if !e.publishing.CompareAndSwap(false, true) {
		return false
	}
	defer e.publishing.Store(false)

	if e.surface != nil {
		e.surface.ApplyPalette(e.GenerateThemePalette())
	}

	if !e.GenerateResources() {
		return false
	}

	e.registry.notifyThemeChanged(e.generation.Inc())

	if !e.generateStylesheet() {
		return false
	}

	e.log.Debug("stylesheet published", "style", e.currentStyle, "theme", e.currentTheme)
	for _, fn := range e.stylesheetChanged {
		fn()
	}
	return true
}

// GenerateResources recolors every SVG resource template once per resource
// group, writing each group's output below its subdir in the style output
// directory, and repopulates the icon color-replace list from the "normal"
// group.
func (e *Engine) GenerateResources() bool {
	if e.style == nil {
		return false
	}

	entries, ok := e.resourceTemplates()
	if !ok {
		return false
	}

	e.iconReplacePairs = nil
	for _, group := range e.style.Resources {
		pairs := e.resolveReplacePairs(group.Rules)
		if group.Subdir == "normal" {
			e.iconReplacePairs = pairs
		}
		if !e.generateResourcesFor(group.Subdir, pairs, entries) {
			return false
		}
	}
	return true
}

// GenerateThemePalette builds the palette for the current style+theme from
// the descriptor's palette spec and the theme color variables.
func (e *Engine) GenerateThemePalette() *Palette {
	var spec PaletteSpec
	if e.style != nil {
		spec = e.style.Palette
	}
	return BuildPalette(spec, e.ThemeColor)
}

// ProcessStylesheetTemplate renders an arbitrary template string against the
// current environment. A non-empty outputFile additionally stores the result
// in the style output directory; a failed store fails the call with an
// ExportError.
func (e *Engine) ProcessStylesheetTemplate(template, outputFile string) (string, bool) {
	rendered := RenderTemplate(template, e.ThemeVariableValue)
	if outputFile != "" {
		if !e.storeStylesheet(rendered, outputFile) {
			return rendered, false
		}
	}
	return rendered, true
}

// ThemeVariableValue resolves one variable from the merged environment,
// returning "" for unbound names.
func (e *Engine) ThemeVariableValue(id string) string {
	return e.themeVariables[id]
}

// SetThemeVariableValue adds or overwrites a variable in the merged
// environment. The override lasts until the next style or theme selection
// rebuilds the environment.
func (e *Engine) SetThemeVariableValue(id, value string) {
	e.themeVariables[id] = value
}

// ThemeColorVariables returns the color variables the current theme
// contributes, or nil before a theme is selected.
func (e *Engine) ThemeColorVariables() map[string]string {
	if e.theme == nil {
		return nil
	}
	return e.theme.Colors
}

// ThemeColor resolves a theme color variable to a structured color. Unbound
// or unparsable variables report ok=false.
func (e *Engine) ThemeColor(id string) (colorful.Color, bool) {
	if e.theme == nil {
		return colorful.Color{}, false
	}
	value, exists := e.theme.Colors[id]
	if !exists {
		return colorful.Color{}, false
	}
	return ParseColor(value)
}

// IsCurrentThemeDark reports the dark flag of the active theme.
func (e *Engine) IsCurrentThemeDark() bool {
	return e.theme != nil && e.theme.Dark
}

// StyleParameters exposes the raw style config document, or nil before a
// style is selected.
func (e *Engine) StyleParameters() map[string]any {
	if e.style == nil {
		return nil
	}
	return e.style.Parameters()
}

// StyleIcon returns a themed renderer for the style's declared icon file, or
// nil when the style declares none or the file is unreadable.
func (e *Engine) StyleIcon() *IconRenderer {
	if e.style == nil || e.style.IconFile == "" {
		return nil
	}
	icon, err := e.LoadThemeAwareIcon(e.style.IconFile)
	if err != nil {
		e.log.Debug("style icon not loadable", "file", e.style.IconFile, "error", err)
		return nil
	}
	return icon
}

// LoadThemeAwareIcon issues a themed icon handle for an asset name. Relative
// names resolve against the style's resource templates first, then against
// the generated-output directory registered by the style selection. The
// handle recolors itself with the engine's current icon replace list and
// self-registers for theme-change broadcasts.
func (e *Engine) LoadThemeAwareIcon(name string) (*IconRenderer, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.Path(ResourceTemplatesLocation), name)
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(e.CurrentStyleOutputPath(), name)
		}
	}
	template, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// The renderer gets a read-only capability on the engine's replace list,
	// not a copy: refreshing after a theme switch picks up the new pairs.
	// Stamped with the last published generation, so the next publish
	// repaints it even when it was issued before the first publish.
	r := NewIconRenderer(name, template, func(content []byte) []byte {
		return ReplaceColors(content, e.iconReplacePairs)
	})
	r.generation = e.generation.Load()
	e.registry.register(r)
	return r, nil
}

// ReplaceSVGColors rewrites SVG content with the engine's current icon
// color-replace list.
func (e *Engine) ReplaceSVGColors(content []byte) []byte {
	return ReplaceColors(content, e.iconReplacePairs)
}

func (e *Engine) enumerateThemes(styleDir string) {
	matches, err := filepath.Glob(filepath.Join(styleDir, ThemesLocation.subdir(), "*.xml"))
	if err != nil || matches == nil {
		return
	}
	// A failed selection keeps whatever was enumerated: hosts still get to
	// show what is known about the attempted style.
	e.themes = e.themes[:0]
	for _, m := range matches {
		e.themes = append(e.themes, strings.TrimSuffix(filepath.Base(m), ".xml"))
	}
	sort.Strings(e.themes)
}

// resolveReplacePairs turns replace rules into literal pairs using the
// merged environment. Rules whose variable is unbound are skipped so a theme
// missing one color does not poison the whole pass.
func (e *Engine) resolveReplacePairs(rules []ReplaceRule) []ColorReplacePair {
	pairs := make([]ColorReplacePair, 0, len(rules))
	for _, rule := range rules {
		value := e.ThemeVariableValue(rule.Variable)
		if value == "" {
			e.log.Debug("replace rule skipped, variable unbound", "variable", rule.Variable)
			continue
		}
		pairs = append(pairs, ColorReplacePair{TemplateColor: rule.TemplateColor, ThemeColor: value})
	}
	return pairs
}

func (e *Engine) resourceTemplates() ([]string, bool) {
	dir := e.Path(ResourceTemplatesLocation)
	matches, err := filepath.Glob(filepath.Join(dir, "*.svg"))
	if err != nil {
		e.setError(newError(ResourceError, "listing resource templates in %s: %v", dir, err))
		return nil, false
	}
	return matches, true
}

func (e *Engine) generateResourcesFor(subdir string, pairs []ColorReplacePair, entries []string) bool {
	outputDir := filepath.Join(e.CurrentStyleOutputPath(), subdir)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		e.setError(newError(ResourceError, "creating resource output folder %s: %v", outputDir, err))
		return false
	}

	for _, entry := range entries {
		content, err := os.ReadFile(entry)
		if err != nil {
			e.setError(newError(ResourceError, "reading resource template %s: %v", filepath.Base(entry), err))
			return false
		}

		content = ReplaceColors(content, pairs)

		outputPath := filepath.Join(outputDir, filepath.Base(entry))
		if err := atomic.WriteFile(outputPath, bytes.NewReader(content)); err != nil {
			e.setError(newError(ResourceError, "writing resource %s: %v", outputPath, err))
			return false
		}
	}
	return true
}

// generateStylesheet renders the style's stylesheet template and exports it
// to the output directory. A style without a css_template key publishes no
// stylesheet, which is not an error.
func (e *Engine) generateStylesheet() bool {
	templateName := e.style.CSSTemplate
	if templateName == "" {
		return true
	}

	templatePath := filepath.Join(e.CurrentStylePath(), templateName)
	content, err := os.ReadFile(templatePath)
	if err != nil {
		e.setError(newError(TemplateError, "style folder does not contain the stylesheet template file %s", templateName))
		return false
	}

	e.stylesheet = RenderTemplate(string(content), e.ThemeVariableValue)

	outputName := strings.TrimSuffix(filepath.Base(templateName), filepath.Ext(templateName)) + ".css"
	return e.storeStylesheet(e.stylesheet, outputName)
}

func (e *Engine) storeStylesheet(stylesheet, filename string) bool {
	outputPath := e.CurrentStyleOutputPath()
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		e.setError(newError(ExportError, "creating output folder %s: %v", outputPath, err))
		return false
	}
	outputFile := filepath.Join(outputPath, filename)
	if err := atomic.WriteFile(outputFile, strings.NewReader(stylesheet)); err != nil {
		e.setError(newError(ExportError, "exporting stylesheet %s caused error: %v", filename, err))
		return false
	}
	return true
}

// addFonts walks the style's fonts folder recursively and registers every
// .ttf file with the UI surface. Best-effort on purpose: a style without
// fonts, or a host without a surface, is not an error.
func (e *Engine) addFonts(dir string) {
	if e.surface == nil {
		return
	}
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".ttf") {
			if ferr := e.surface.AddFont(path); ferr != nil {
				e.log.Debug("font not loadable", "path", path, "error", ferr)
			}
		}
		return nil
	})
}

func (e *Engine) setError(err *EngineError) {
	e.errKind = err.Kind
	e.errMsg = err.Message
	e.log.Debug("engine error", "kind", err.Kind.String(), "message", err.Message)
}

func (e *Engine) clearError() {
	e.errKind = NoError
	e.errMsg = ""
}

// mergeVariables builds the resolved environment: style variables overlaid
// by theme colors, theme winning on key collision.
func mergeVariables(styleVars, themeColors map[string]string) map[string]string {
	merged := make(map[string]string, len(styleVars)+len(themeColors))
	for k, v := range styleVars {
		merged[k] = v
	}
	for k, v := range themeColors {
		merged[k] = v
	}
	return merged
}
