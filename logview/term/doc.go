// Package term hosts a logview.View inside a Bubble Tea program.
//
// One terminal cell is one view pixel: the view is given a unit font, so
// lines are one row high and characters one column wide. The frame is a
// cell grid rendered with lipgloss, and copies go to the terminal
// clipboard with OSC 52.
package term
