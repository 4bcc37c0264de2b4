// Package buffer provides the log line store: an append-only, prefix-trimmed
// sequence of styled text lines addressed by (line, col) cells.
//
// The store has no internal synchronization. It is owned by one view and
// must only be touched from that view's goroutine.
package buffer
