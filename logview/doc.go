// Package logview implements a virtualized view over a large, growing log.
//
// A View owns a buffer.Store of styled lines, named palettes, a caret and an
// origin-anchored selection. It converts between viewport pixels and
// (line, col) cells, repaints only invalidated rectangles into an
// off-screen Canvas, and coalesces content changes into one deferred
// refresh per event-loop turn.
//
// Everything platform specific goes through Host: the raster and term
// subpackages provide implementations.
package logview
