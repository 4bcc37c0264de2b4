package follow

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// splitter cuts a byte stream into lines, holding back an unterminated tail.
type splitter struct {
	partial []byte
}

func (s *splitter) feed(p []byte, lines []string) []string {
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			s.partial = append(s.partial, p...)
			break
		}
		var line []byte
		if len(s.partial) > 0 {
			line = append(s.partial, p[:i]...)
			s.partial = s.partial[:0]
		} else {
			line = p[:i]
		}
		lines = append(lines, trimCR(line))
		p = p[i+1:]
	}
	return lines
}

// flush returns the unterminated tail, if any.
func (s *splitter) flush() (string, bool) {
	if len(s.partial) == 0 {
		return "", false
	}
	line := trimCR(s.partial)
	s.partial = nil
	return line, true
}

func (s *splitter) reset() { s.partial = nil }

func trimCR(b []byte) string {
	return string(bytes.TrimSuffix(b, []byte{'\r'}))
}

const readChunk = 32 << 10

// Read calls fn with batches of at most max lines read from r. A final line
// without a newline is delivered too. Errors from fn stop the read and are
// returned as is.
func Read(r io.Reader, max int, fn func(lines []string) error) error {
	if max <= 0 {
		max = DefaultMaxBatch
	}
	var sp splitter
	buf := make([]byte, readChunk)
	var lines []string
	for {
		n, err := r.Read(buf)
		lines = sp.feed(buf[:n], lines)
		for len(lines) >= max {
			if ferr := fn(lines[:max:max]); ferr != nil {
				return ferr
			}
			lines = lines[max:]
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("follow: read: %w", err)
		}
	}
	if last, ok := sp.flush(); ok {
		lines = append(lines, last)
	}
	if len(lines) > 0 {
		return fn(lines)
	}
	return nil
}
