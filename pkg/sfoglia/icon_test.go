package sfoglia

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10" viewBox="0 0 10 10">` +
	`<rect x="0" y="0" width="10" height="10" fill="#0000ff"/></svg>`

func TestIconRendererAppliesRecolorAtConstruction(t *testing.T) {
	t.Parallel()

	r := NewIconRenderer("test.svg", []byte(testSVG), func(content []byte) []byte {
		return ReplaceColors(content, []ColorReplacePair{{TemplateColor: "#0000ff", ThemeColor: "#ffd740"}})
	})
	require.Contains(t, string(r.Content()), "#ffd740")
	require.NotContains(t, string(r.Content()), "#0000ff")
}

func TestIconRendererNilRecolorServesTemplate(t *testing.T) {
	t.Parallel()

	r := NewIconRenderer("test.svg", []byte(testSVG), nil)
	require.Equal(t, testSVG, string(r.Content()))
}

func TestIconRendererRefreshPicksUpNewPairs(t *testing.T) {
	t.Parallel()

	pairs := []ColorReplacePair{{TemplateColor: "#0000ff", ThemeColor: "#ffd740"}}
	r := NewIconRenderer("test.svg", []byte(testSVG), func(content []byte) []byte {
		return ReplaceColors(content, pairs)
	})
	require.Contains(t, string(r.Content()), "#ffd740")

	pairs = []ColorReplacePair{{TemplateColor: "#0000ff", ThemeColor: "#123456"}}
	r.Refresh()
	require.Contains(t, string(r.Content()), "#123456")
}

func TestIconRendererRasterize(t *testing.T) {
	t.Parallel()

	r := NewIconRenderer("test.svg", []byte(testSVG), nil)

	img, err := r.Rasterize(16, 16)
	require.NoError(t, err)
	require.Equal(t, 16, img.Bounds().Dx())
	require.Equal(t, 16, img.Bounds().Dy())

	// Same size hits the cache.
	again, err := r.Rasterize(16, 16)
	require.NoError(t, err)
	require.Same(t, img, again)

	// Refresh invalidates cached rasterizations.
	r.Refresh()
	fresh, err := r.Rasterize(16, 16)
	require.NoError(t, err)
	require.NotSame(t, img, fresh)
}

func TestIconRendererRasterizeBadSVG(t *testing.T) {
	t.Parallel()

	r := NewIconRenderer("broken.svg", []byte("<svg"), nil)
	_, err := r.Rasterize(16, 16)
	require.Error(t, err)
}

func TestRegistryRefreshesLiveRenderers(t *testing.T) {
	t.Parallel()

	var pairs []ColorReplacePair
	recolor := func(content []byte) []byte { return ReplaceColors(content, pairs) }

	reg := &iconRegistry{}
	a := NewIconRenderer("a.svg", []byte(testSVG), recolor)
	b := NewIconRenderer("b.svg", []byte(testSVG), recolor)
	reg.register(a)
	reg.register(b)

	pairs = []ColorReplacePair{{TemplateColor: "#0000ff", ThemeColor: "#ffd740"}}
	reg.notifyThemeChanged(1)

	require.Contains(t, string(a.Content()), "#ffd740")
	require.Contains(t, string(b.Content()), "#ffd740")
}

func TestRegistrySkipsAlreadyCurrentGeneration(t *testing.T) {
	t.Parallel()

	refreshes := 0
	reg := &iconRegistry{}
	r := NewIconRenderer("a.svg", []byte(testSVG), func(content []byte) []byte {
		refreshes++
		return content
	})
	reg.register(r)
	refreshes = 0

	reg.notifyThemeChanged(1)
	reg.notifyThemeChanged(1)
	require.Equal(t, 1, refreshes)

	reg.notifyThemeChanged(2)
	require.Equal(t, 2, refreshes)
}

func TestRegistryPrunesDeadRenderers(t *testing.T) {
	t.Parallel()

	reg := &iconRegistry{}
	keep := NewIconRenderer("keep.svg", []byte(testSVG), nil)
	reg.register(keep)

	registerTransient(reg)
	require.Equal(t, 2, reg.size())

	// The transient renderer is unreachable; after collection the
	// broadcast must skip its entry without faulting and compact it away.
	runtime.GC()
	runtime.GC()

	require.NotPanics(t, func() { reg.notifyThemeChanged(1) })
	require.Equal(t, 1, reg.size())
	runtime.KeepAlive(keep)
}

//go:noinline
func registerTransient(reg *iconRegistry) {
	reg.register(NewIconRenderer("gone.svg", bytes.Clone([]byte(testSVG)), nil))
}
