package follow

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// DefaultMaxBatch is the batch size used when Config.MaxBatch is zero.
const DefaultMaxBatch = 1024

var ErrClosed = errors.New("follow: tailer closed")

// Batch is a group of lines read together. Reset reports that the file was
// truncated or replaced before Lines were read.
type Batch struct {
	Lines []string
	Reset bool
}

type Config struct {
	// SkipExisting starts at the current end of the file.
	SkipExisting bool
	MaxBatch     int
	Logger       *slog.Logger
}

// Tailer follows one file. Batches arrive on Lines until Close.
type Tailer struct {
	path string
	cfg  Config
	log  *slog.Logger

	w       *fsnotify.Watcher
	out     chan Batch
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once

	// Owned by the run goroutine.
	f      *os.File
	offset int64
	sp     splitter
	buf    []byte
}

// Tail opens path and starts following it.
func Tail(path string, cfg Config) (*Tailer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("follow: %w", err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("follow: %w", err)
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = DefaultMaxBatch
	}
	t := &Tailer{
		path:    abs,
		cfg:     cfg,
		log:     cfg.Logger,
		f:       f,
		out:     make(chan Batch, 16),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		buf:     make([]byte, readChunk),
	}
	if t.log == nil {
		t.log = slog.Default()
	}
	if cfg.SkipExisting {
		if t.offset, err = f.Seek(0, io.SeekEnd); err != nil {
			f.Close()
			return nil, fmt.Errorf("follow: seek: %w", err)
		}
	}

	// The directory is watched so rotation shows up as Create.
	t.w, err = fsnotify.NewWatcher()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("follow: watcher: %w", err)
	}
	if err := t.w.Add(filepath.Dir(abs)); err != nil {
		t.w.Close()
		f.Close()
		return nil, fmt.Errorf("follow: watch %s: %w", filepath.Dir(abs), err)
	}
	go t.run()
	return t, nil
}

// Path returns the absolute path being followed.
func (t *Tailer) Path() string { return t.path }

// Lines returns the batch channel. It is closed when the tailer stops.
func (t *Tailer) Lines() <-chan Batch { return t.out }

// Close stops the tailer and waits for it to release the file.
func (t *Tailer) Close() error {
	err := ErrClosed
	t.once.Do(func() {
		close(t.done)
		err = nil
	})
	<-t.stopped
	return err
}

func (t *Tailer) run() {
	defer close(t.stopped)
	defer close(t.out)
	defer t.w.Close()
	defer t.closeFile()

	if !t.readAvailable() {
		return
	}
	for {
		select {
		case <-t.done:
			return
		case ev, ok := <-t.w.Events:
			if !ok {
				return
			}
			if ev.Name != t.path {
				continue
			}
			var more bool
			switch {
			case ev.Has(fsnotify.Create):
				more = t.reopen()
			case ev.Has(fsnotify.Write):
				more = t.readAvailable()
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				t.log.Debug("follow: file went away", "path", t.path, "op", ev.Op.String())
				t.closeFile()
				more = true
			default:
				more = true
			}
			if !more {
				return
			}
		case err, ok := <-t.w.Errors:
			if !ok {
				return
			}
			t.log.Warn("follow: watcher error", "path", t.path, "err", err)
		}
	}
}

// readAvailable sends every complete line up to the end of the file. It
// reports false once the tailer is closed.
func (t *Tailer) readAvailable() bool {
	if t.f == nil {
		return true
	}
	reset := false
	if st, err := t.f.Stat(); err == nil && st.Size() < t.offset {
		t.log.Info("follow: file truncated", "path", t.path, "size", st.Size(), "offset", t.offset)
		if _, err := t.f.Seek(0, io.SeekStart); err != nil {
			t.log.Warn("follow: seek", "path", t.path, "err", err)
			t.closeFile()
			return true
		}
		t.offset = 0
		t.sp.reset()
		reset = true
	}

	var lines []string
	for {
		n, err := t.f.Read(t.buf)
		t.offset += int64(n)
		lines = t.sp.feed(t.buf[:n], lines)
		for len(lines) >= t.cfg.MaxBatch {
			if !t.send(Batch{Lines: lines[:t.cfg.MaxBatch:t.cfg.MaxBatch], Reset: reset}) {
				return false
			}
			lines, reset = lines[t.cfg.MaxBatch:], false
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.log.Warn("follow: read", "path", t.path, "err", err)
			}
			break
		}
		if n == 0 {
			break
		}
	}
	if len(lines) == 0 && !reset {
		return true
	}
	return t.send(Batch{Lines: lines, Reset: reset})
}

// reopen switches to a file created at the followed path.
func (t *Tailer) reopen() bool {
	t.closeFile()
	f, err := os.Open(t.path)
	if err != nil {
		t.log.Warn("follow: reopen", "path", t.path, "err", err)
		return true
	}
	t.log.Debug("follow: reopened", "path", t.path)
	t.f, t.offset = f, 0
	t.sp.reset()
	if !t.send(Batch{Reset: true}) {
		return false
	}
	return t.readAvailable()
}

func (t *Tailer) closeFile() {
	if t.f != nil {
		t.f.Close()
		t.f = nil
	}
}

func (t *Tailer) send(b Batch) bool {
	select {
	case t.out <- b:
		return true
	case <-t.done:
		return false
	}
}
