package sfoglia

import (
	"regexp"
	"strconv"
	"strings"
)

// tokenPattern matches {{...}} placeholders. The non-greedy group keeps
// adjacent tokens on one line separate.
var tokenPattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

const opacityPrefix = "opacity("

// RenderTemplate substitutes {{name}} and {{name|opacity(f)}} tokens in a
// stylesheet template. Plain tokens resolve to the environment value for
// name, or the empty string when the variable is unbound. Opacity tokens
// resolve the variable and wrap it through RGBAColor; a malformed opacity
// literal falls back to fully opaque. Substitution is a single left-to-right
// pass: inserted values are never rescanned for tokens.
//
// opacity is the only function the token grammar recognizes; a token whose
// call expression is anything else resolves to the variable value unchanged.
func RenderTemplate(template string, resolve func(string) string) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(token string) string {
		expr := token[2 : len(token)-2]
		if !strings.HasSuffix(expr, ")") {
			return resolve(expr)
		}

		name, call, found := strings.Cut(expr, "|")
		if !found {
			return resolve(expr)
		}

		value := resolve(name)
		if !strings.HasPrefix(call, opacityPrefix) {
			return value
		}

		opacity, err := strconv.ParseFloat(call[len(opacityPrefix):len(call)-1], 64)
		if err != nil {
			opacity = 1.0
		}
		return RGBAColor(value, opacity)
	})
}
