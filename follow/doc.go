// Package follow streams the lines of a growing log file.
//
// A Tailer reads the existing content, then watches the file's directory
// with fsnotify and delivers appended lines in batches. Truncation and
// replacement (log rotation) restart the stream from the top of the new
// content and are reported with Batch.Reset.
package follow
