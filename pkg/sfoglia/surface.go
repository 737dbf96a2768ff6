package sfoglia

// UISurface is the capability an engine uses to reach whatever UI toolkit is
// hosting it. It is injected explicitly so the core never depends on an
// ambient application singleton: a nil surface simply means palette
// application and font registration are skipped.
type UISurface interface {
	// ApplyPalette pushes a freshly generated palette onto the host's
	// widgets.
	ApplyPalette(p *Palette)

	// AddFont registers one font file with the host's font machinery.
	// Failures are reported but treated as best-effort by the engine.
	AddFont(path string) error
}
