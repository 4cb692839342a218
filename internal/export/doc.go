// Package export writes one in-memory run to an io.Writer as CSV or JSON,
// and renders braille canvases and bob trails as SVG. Nothing here keeps
// state between runs.
package export
