// Package sfoglia is a runtime theming engine. A style is a directory bundle
// of variables, a palette spec, stylesheet templates and SVG resource
// templates; each style ships one or more named themes (flat color sets with
// a dark/light flag). The engine resolves style variables and theme colors
// into a merged environment, renders stylesheet templates, recolors SVG
// assets, builds a widget palette, and keeps previously issued icon handles
// repainting themselves when the theme changes.
package sfoglia
