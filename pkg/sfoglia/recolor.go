package sfoglia

import "bytes"

// ColorReplacePair maps a color literal used in a resource template to the
// literal it should become under the active theme.
type ColorReplacePair struct {
	TemplateColor string
	ThemeColor    string
}

// ReplaceColors rewrites raw vector-image content by applying each pair's
// literal replacement across the whole buffer, in list order. Replacement is
// naive substring substitution: a later pair can re-touch text inserted by an
// earlier one when the literals still match. Styles that reuse one
// placeholder color for several semantic roles rely on exactly this
// ordering, so the pass must stay sequential and unprotected.
//
// The input slice is not modified; the returned buffer is freshly allocated
// by the first replacement that changes anything.
func ReplaceColors(content []byte, pairs []ColorReplacePair) []byte {
	for _, pair := range pairs {
		content = bytes.ReplaceAll(content, []byte(pair.TemplateColor), []byte(pair.ThemeColor))
	}
	return content
}
