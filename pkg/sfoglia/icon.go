package sfoglia

import (
	"bytes"
	"fmt"
	"image"
	"weak"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// RecolorFunc rewrites raw SVG bytes into their themed form. It is the
// optional capability an IconRenderer is constructed with; nil means the
// renderer serves its template unchanged.
type RecolorFunc func([]byte) []byte

// IconRenderer is a live themed-icon handle: immutable SVG template bytes
// plus a derived, recolored buffer that Refresh recomputes from the current
// theme. Renderers are owned by whatever UI component displays them; the
// engine's registry tracks them only through weak references.
type IconRenderer struct {
	name       string
	template   []byte
	content    []byte
	recolor    RecolorFunc
	generation int64
	rasters    *rasterCache
}

// NewIconRenderer builds a renderer for the given SVG template and applies
// the recolor capability once so the handle starts out themed.
func NewIconRenderer(name string, template []byte, recolor RecolorFunc) *IconRenderer {
	r := &IconRenderer{
		name:     name,
		template: bytes.Clone(template),
		recolor:  recolor,
		rasters:  newRasterCache(),
	}
	r.Refresh()
	return r
}

// Name returns the asset name the renderer was issued for.
func (r *IconRenderer) Name() string { return r.name }

// Content returns the current recolored SVG bytes.
func (r *IconRenderer) Content() []byte { return r.content }

// Refresh re-derives the recolored buffer from the immutable template and
// drops any cached rasterizations.
func (r *IconRenderer) Refresh() {
	content := bytes.Clone(r.template)
	if r.recolor != nil {
		content = r.recolor(content)
	}
	r.content = content
	r.rasters.Clear()
}

// Rasterize renders the current themed SVG to an RGBA image of the given
// size. Results are cached per size until the next Refresh.
func (r *IconRenderer) Rasterize(width, height int) (image.Image, error) {
	key := fmt.Sprintf("%dx%d", width, height)
	if img := r.rasters.Get(key); img != nil {
		return img, nil
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(r.content))
	if err != nil {
		return nil, fmt.Errorf("parsing svg %s: %w", r.name, err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	r.rasters.Set(key, img)
	return img, nil
}

// iconRegistry tracks every live IconRenderer issued by an engine instance.
// Registration is implicit at construction time and there is no unregister
// call: membership is inferred from liveness, and dead weak references are
// pruned while iterating. The registry must never keep a renderer alive nor
// fault on one that was destroyed before a broadcast.
type iconRegistry struct {
	handles []weak.Pointer[IconRenderer]
}

func (reg *iconRegistry) register(r *IconRenderer) {
	reg.handles = append(reg.handles, weak.Make(r))
}

// notifyThemeChanged refreshes all still-alive renderers that have not
// painted with the given generation yet, compacting dead entries in place.
func (reg *iconRegistry) notifyThemeChanged(generation int64) {
	alive := reg.handles[:0]
	for _, handle := range reg.handles {
		r := handle.Value()
		if r == nil {
			continue
		}
		if r.generation != generation {
			r.Refresh()
			r.generation = generation
		}
		alive = append(alive, handle)
	}
	clear(reg.handles[len(alive):])
	reg.handles = alive
}

func (reg *iconRegistry) size() int { return len(reg.handles) }

const defaultRasterCacheSize = 5

// rasterCache is a small LRU of rasterized icon images keyed by size.
type rasterCache struct {
	images  map[string]image.Image
	order   []string // tracks insertion order for LRU eviction
	maxSize int
}

func newRasterCache() *rasterCache {
	return &rasterCache{
		images:  make(map[string]image.Image),
		order:   make([]string, 0, defaultRasterCacheSize),
		maxSize: defaultRasterCacheSize,
	}
}

func (c *rasterCache) Get(key string) image.Image {
	if img, exists := c.images[key]; exists {
		c.moveToEnd(key)
		return img
	}
	return nil
}

func (c *rasterCache) Set(key string, img image.Image) {
	if _, exists := c.images[key]; exists {
		c.images[key] = img
		c.moveToEnd(key)
		return
	}

	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}

	c.images[key] = img
	c.order = append(c.order, key)
}

func (c *rasterCache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *rasterCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.images, oldest)
}

func (c *rasterCache) Clear() {
	c.images = make(map[string]image.Image)
	c.order = c.order[:0]
}
