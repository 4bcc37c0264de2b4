// Package raster draws a logview.View into an off-screen *image.RGBA.
//
// Canvas renders with golang.org/x/image faces. GoFonts serves the Go Mono
// family through opentype. Host is a headless event loop: it runs posted
// work and timer callbacks on one goroutine, repaints what the view
// invalidated and keeps the last presented frame.
package raster
