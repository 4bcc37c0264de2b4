package follow

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitter_HoldsPartialLines(t *testing.T) {
	var sp splitter
	lines := sp.feed([]byte("one\r\ntw"), nil)
	assert.Equal(t, []string{"one"}, lines)

	lines = sp.feed([]byte("o\n\nthr"), nil)
	assert.Equal(t, []string{"two", ""}, lines)

	last, ok := sp.flush()
	assert.True(t, ok)
	assert.Equal(t, "thr", last)
	_, ok = sp.flush()
	assert.False(t, ok)
}

func TestRead_Batches(t *testing.T) {
	var got [][]string
	in := iotest.OneByteReader(strings.NewReader("a\nb\nc\nd\ne"))
	err := Read(in, 2, func(lines []string) error {
		got = append(got, append([]string(nil), lines...))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, got)
}

func TestRead_StopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := Read(strings.NewReader("a\nb\nc\n"), 1, func([]string) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestRead_WrapsReaderErrors(t *testing.T) {
	err := Read(iotest.ErrReader(iotest.ErrTimeout), 0, func([]string) error { return nil })
	assert.ErrorIs(t, err, iotest.ErrTimeout)
}
