package sfoglia

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// ReplaceRule binds a color literal appearing in resource templates to the
// variable whose resolved value replaces it.
type ReplaceRule struct {
	TemplateColor string
	Variable      string
}

// ResourceGroup is one output flavor of recolored assets: every SVG template
// is rewritten with the group's rules and written below Subdir in the
// style's output directory. Rule order follows the descriptor document.
type ResourceGroup struct {
	Subdir string
	Rules  []ReplaceRule
}

// StyleDescriptor is the parsed style config file. It is loaded once per
// style selection and stays immutable until the style is re-selected.
type StyleDescriptor struct {
	Name         string
	Variables    map[string]string
	IconFile     string
	DefaultTheme string
	CSSTemplate  string
	Palette      PaletteSpec
	Resources    []ResourceGroup

	params map[string]any
}

// Parameters exposes the raw style config as a generic document for host
// applications that carry extra keys the engine does not interpret.
func (d *StyleDescriptor) Parameters() map[string]any {
	return d.params
}

// LoadStyleDescriptor reads the single style config file inside styleDir.
// Zero config files and more than one are distinct StyleConfigError cases.
// Required keys are "name" and "default_theme"; "variables" values of any
// JSON type coerce to their string form.
func LoadStyleDescriptor(styleDir string) (*StyleDescriptor, *EngineError) {
	matches, err := filepath.Glob(filepath.Join(styleDir, "*.json"))
	if err != nil {
		return nil, newError(StyleConfigError, "listing style folder %s: %v", styleDir, err)
	}
	if len(matches) < 1 {
		return nil, newError(StyleConfigError, "style folder does not contain a style config file")
	}
	if len(matches) > 1 {
		return nil, newError(StyleConfigError, "style folder contains multiple style config files")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, newError(StyleConfigError, "reading style config file: %v", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, newError(StyleConfigError, "style config file %s is not valid JSON", filepath.Base(matches[0]))
	}

	doc := gjson.ParseBytes(data)
	desc := &StyleDescriptor{Variables: map[string]string{}}

	desc.Name = doc.Get("name").String()
	if desc.Name == "" {
		return nil, newError(StyleConfigError, "no key %q found in style config file", "name")
	}
	desc.DefaultTheme = doc.Get("default_theme").String()
	if desc.DefaultTheme == "" {
		return nil, newError(StyleConfigError, "no key %q found in style config file", "default_theme")
	}

	// Numbers and booleans are legal variable values; everything becomes its
	// string form.
	doc.Get("variables").ForEach(func(key, value gjson.Result) bool {
		desc.Variables[key.String()] = value.String()
		return true
	})

	desc.IconFile = doc.Get("icon").String()
	desc.CSSTemplate = doc.Get("css_template").String()
	desc.Palette = parsePaletteSpec(doc.Get("palette"))
	desc.Resources = parseResourceGroups(doc.Get("resources"))

	// Also keep the generic document view for StyleParameters.
	_ = json.Unmarshal(data, &desc.params)

	return desc, nil
}

// parsePaletteSpec flattens the palette object into an ordered entry list by
// iterating the three fixed group names. Unrecognized role names inside a
// group are dropped, not errored.
func parsePaletteSpec(palette gjson.Result) PaletteSpec {
	spec := PaletteSpec{}
	if !palette.Exists() {
		return spec
	}

	spec.BaseColorVariable = palette.Get("base_color").String()
	for g := ColorGroup(0); g < colorGroupCount; g++ {
		group := g
		palette.Get(group.String()).ForEach(func(key, value gjson.Result) bool {
			role := ColorRoleFromString(key.String())
			if role == RoleNone {
				return true
			}
			spec.Entries = append(spec.Entries, PaletteColorEntry{
				Group:    group,
				Role:     role,
				Variable: value.String(),
			})
			return true
		})
	}
	return spec
}

// parseResourceGroups reads the resources object: subdir name to an ordered
// mapping of template color literal to variable name. gjson iterates in
// document order, which defines the replacement order the recolorer applies.
func parseResourceGroups(resources gjson.Result) []ResourceGroup {
	var groups []ResourceGroup
	resources.ForEach(func(subdir, rules gjson.Result) bool {
		group := ResourceGroup{Subdir: subdir.String()}
		rules.ForEach(func(color, variable gjson.Result) bool {
			group.Rules = append(group.Rules, ReplaceRule{
				TemplateColor: color.String(),
				Variable:      variable.String(),
			})
			return true
		})
		groups = append(groups, group)
		return true
	})
	return groups
}
