package sfoglia

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func envResolver(env map[string]string) func(string) string {
	return func(name string) string { return env[name] }
}

func TestRenderTemplateSubstitutesVerbatim(t *testing.T) {
	t.Parallel()

	env := map[string]string{"accent": "#ff0000", "radius": "4"}
	out := RenderTemplate("color: {{accent}}; radius: {{radius}}px;", envResolver(env))
	require.Equal(t, "color: #ff0000; radius: 4px;", out)
}

func TestRenderTemplateNoReexpansion(t *testing.T) {
	t.Parallel()

	// An inserted value is never itself rescanned for tokens.
	env := map[string]string{"outer": "{{inner}}", "inner": "surprise"}
	out := RenderTemplate("{{outer}}", envResolver(env))
	require.Equal(t, "{{inner}}", out)
}

func TestRenderTemplateUnknownVariableIsEmpty(t *testing.T) {
	t.Parallel()

	out := RenderTemplate("a{{missing}}b", envResolver(nil))
	require.Equal(t, "ab", out)
}

func TestRenderTemplateOpacity(t *testing.T) {
	t.Parallel()

	env := map[string]string{"accent": "#112233"}
	out := RenderTemplate("{{accent|opacity(0.5)}}", envResolver(env))
	require.Equal(t, "#80112233", out)
}

func TestRenderTemplateOpacityBadLiteralFallsBackOpaque(t *testing.T) {
	t.Parallel()

	env := map[string]string{"accent": "#112233"}
	out := RenderTemplate("{{accent|opacity(oops)}}", envResolver(env))
	require.Equal(t, "#ff112233", out)
}

func TestRenderTemplateUnknownFunctionResolvesValue(t *testing.T) {
	t.Parallel()

	env := map[string]string{"accent": "#112233"}
	out := RenderTemplate("{{accent|darken(0.5)}}", envResolver(env))
	require.Equal(t, "#112233", out)
}

func TestRenderTemplateAdjacentTokens(t *testing.T) {
	t.Parallel()

	env := map[string]string{"a": "1", "b": "2"}
	out := RenderTemplate("{{a}}{{b}}", envResolver(env))
	require.Equal(t, "12", out)
}

func ExampleRenderTemplate() {
	env := map[string]string{"primaryColor": "#ffd740"}
	resolve := func(name string) string { return env[name] }

	fmt.Println(RenderTemplate("background: {{primaryColor|opacity(0.25)}};", resolve))
	// Output: background: #40ffd740;
}
