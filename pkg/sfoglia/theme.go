package sfoglia

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// ThemeDescriptor is one parsed theme file: a dark/light flag plus the flat
// set of named color variables the theme contributes. Loaded once per theme
// selection.
type ThemeDescriptor struct {
	Dark   bool
	Colors map[string]string
}

const (
	themeRootTag  = "resources"
	themeColorTag = "color"
)

// LoadThemeDescriptor parses a theme XML document: a <resources> root with a
// boolean-like "dark" attribute and a sequence of <color name="...">#rrggbb
// </color> children. Parsing is fail-fast: the first malformed entry aborts
// with a ThemeConfigError naming the violated constraint and the tag.
func LoadThemeDescriptor(path string) (*ThemeDescriptor, *EngineError) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(ThemeConfigError, "cannot open theme file: %s", path)
	}
	defer f.Close()

	return decodeTheme(f)
}

func decodeTheme(r io.Reader) (*ThemeDescriptor, *EngineError) {
	dec := xml.NewDecoder(r)

	root, err := nextStartElement(dec)
	if err != nil {
		return nil, newError(ThemeConfigError, "malformed theme file - %v", err)
	}
	if root.Name.Local != themeRootTag {
		return nil, newError(ThemeConfigError,
			"malformed theme file - expected tag <%s> instead of <%s>", themeRootTag, root.Name.Local)
	}

	desc := &ThemeDescriptor{Colors: map[string]string{}}

	dark, ok := attrValue(root, "dark")
	if !ok {
		return nil, newError(ThemeConfigError,
			"malformed theme file - %q attribute missing in <%s> tag", "dark", themeRootTag)
	}
	desc.Dark, err = parseBoolish(dark)
	if err != nil {
		return nil, newError(ThemeConfigError,
			"malformed theme file - %q attribute of <%s> tag is not a boolean: %q", "dark", themeRootTag, dark)
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newError(ThemeConfigError, "malformed theme file - %v", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != themeColorTag {
			return nil, newError(ThemeConfigError,
				"malformed theme file - expected tag <%s> instead of <%s>", themeColorTag, start.Name.Local)
		}

		var entry struct {
			Name  string `xml:"name,attr"`
			Value string `xml:",chardata"`
		}
		if err := dec.DecodeElement(&entry, &start); err != nil {
			return nil, newError(ThemeConfigError, "malformed theme file - %v", err)
		}
		if entry.Name == "" {
			return nil, newError(ThemeConfigError,
				"malformed theme file - %q attribute missing in <%s> tag", "name", themeColorTag)
		}
		entry.Value = strings.TrimSpace(entry.Value)
		if entry.Value == "" {
			return nil, newError(ThemeConfigError,
				"malformed theme file - text of <%s> tag is empty", themeColorTag)
		}

		desc.Colors[entry.Name] = entry.Value
	}

	return desc, nil
}

func nextStartElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

func attrValue(el xml.StartElement, name string) (string, bool) {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// parseBoolish accepts both numeric ("0"/"1") and textual boolean forms,
// since theme files in the wild use either.
func parseBoolish(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}
