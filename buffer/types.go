package buffer

import "fmt"

// Cell points into the log by (line, col) in runes.
// Line and Col are 0-based. Line == line count addresses the position just
// past the last line.
type Cell struct {
	Line int
	Col  int
}

// Region is a possibly unordered pair of cells. Use Normalized before
// treating First as the minimum.
type Region struct {
	First  Cell
	Second Cell
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Line, c.Col) }

// Compare orders cells line-major, then by column.
func (c Cell) Compare(o Cell) int {
	if c.Line < o.Line {
		return -1
	}
	if c.Line > o.Line {
		return 1
	}
	if c.Col < o.Col {
		return -1
	}
	if c.Col > o.Col {
		return 1
	}
	return 0
}

func (c Cell) Less(o Cell) bool { return c.Compare(o) < 0 }

func (c Cell) Add(o Cell) Cell { return Cell{Line: c.Line + o.Line, Col: c.Col + o.Col} }

func (c Cell) Sub(o Cell) Cell { return Cell{Line: c.Line - o.Line, Col: c.Col - o.Col} }

// NextLine returns the first column of the following line.
func (c Cell) NextLine() Cell { return Cell{Line: c.Line + 1} }

func (c Cell) NextCol() Cell { return Cell{Line: c.Line, Col: c.Col + 1} }

func MinCell(a, b Cell) Cell {
	if b.Less(a) {
		return b
	}
	return a
}

func MaxCell(a, b Cell) Cell {
	if a.Less(b) {
		return b
	}
	return a
}

func (r Region) String() string { return fmt.Sprintf("%v-%v", r.First, r.Second) }

// Normalize swaps the endpoints in place so that First <= Second.
func (r *Region) Normalize() {
	if r.Second.Less(r.First) {
		r.First, r.Second = r.Second, r.First
	}
}

func (r Region) Normalized() Region {
	r.Normalize()
	return r
}

func (r Region) Empty() bool { return r.First == r.Second }

func (r Region) SingleLine() bool {
	return !r.Empty() && r.First.Line == r.Second.Line
}

// Contains reports whether c lies within the region, ends included.
func (r Region) Contains(c Cell) bool {
	n := r.Normalized()
	return n.First.Compare(c) <= 0 && c.Compare(n.Second) <= 0
}

// Shift moves both endpoints up by n lines. Used after a prefix trim.
func (r Region) Shift(n int) Region {
	r.First.Line -= n
	r.Second.Line -= n
	return r
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
