// Package theme loads palettes, a base font and line rules from TOML files
// and applies them to a logview.View.
//
// A theme file looks like:
//
//	active = "dark"
//
//	[font]
//	family = "Go Mono"
//	size = 11
//
//	[palettes.dark]
//	styles = [
//	  { text = "#d0d0d0", background = "#1e1e1e", caret_line = "#2a2a2a" },
//	  { text = "tomato", attrs = ["bold"] },
//	]
//
//	[[rules]]
//	pattern = "(?i)error"
//	style = 1
//	mark = true
//
// Colors are #rgb, #rrggbb or SVG color names. Colors not given keep the
// view's system colors.
package theme
