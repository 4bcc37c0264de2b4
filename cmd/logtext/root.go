package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"regexp"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/iw2rmb/logtext"
	"github.com/iw2rmb/logtext/follow"
	"github.com/iw2rmb/logtext/logview"
	"github.com/iw2rmb/logtext/logview/term"
	"github.com/iw2rmb/logtext/theme"
)

type options struct {
	follow    bool
	maxLines  int
	themePath string
	palette   string
	gutter    int
	mark      string
	logPath   string
	escToEnd  bool
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:          "logtext FILE",
		Short:        "View a log file in the terminal",
		Args:         cobra.ExactArgs(1),
		Version:      logtext.Version(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := openLog(o.logPath)
			if err != nil {
				return err
			}
			defer closeLog()
			slog.SetDefault(logger)
			return runView(args[0], o, logger)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&o.follow, "follow", "f", false, "keep reading lines appended to the file")
	f.IntVarP(&o.maxLines, "max-lines", "n", 0, "keep at most this many lines (0: unlimited)")
	f.StringVarP(&o.themePath, "theme", "t", "", "TOML theme file with palettes and line rules")
	f.StringVarP(&o.palette, "palette", "p", "", "palette to activate (default: the theme's active palette)")
	f.IntVar(&o.gutter, "gutter", 0, "gutter width in columns (default: 2 when lines can be marked)")
	f.StringVarP(&o.mark, "mark", "m", "", "mark lines matching this regular expression in the gutter")
	f.StringVar(&o.logPath, "log", "", "write diagnostics to this file")
	f.BoolVar(&o.escToEnd, "esc-to-end", true, "escape jumps back to the end of the log")

	cmd.AddCommand(newSnapshotCmd())
	return cmd
}

// openLog returns a logger writing to path, or a discarding one. The
// terminal belongs to the program, so nothing is logged to stderr.
func openLog(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), func() { f.Close() }, nil
}

// classifier styles and marks lines from theme rules and --mark.
type classifier struct {
	theme *theme.Theme
	mark  *regexp.Regexp
}

func newClassifier(th *theme.Theme, mark string) (classifier, error) {
	c := classifier{theme: th}
	if mark != "" {
		re, err := regexp.Compile(mark)
		if err != nil {
			return c, fmt.Errorf("--mark: %w", err)
		}
		c.mark = re
	}
	return c, nil
}

func (c classifier) marks() bool {
	if c.mark != nil {
		return true
	}
	if c.theme == nil {
		return false
	}
	for _, r := range c.theme.Rules {
		if r.Mark {
			return true
		}
	}
	return false
}

func (c classifier) line(s string) term.Line {
	l := term.Line{Text: s}
	if c.theme != nil {
		l.Style, l.Marked = c.theme.Classify(s)
	}
	if c.mark != nil && c.mark.MatchString(s) {
		l.Marked = true
	}
	return l
}

// loadTheme loads path, or returns nil when it is empty.
func loadTheme(path string) (*theme.Theme, error) {
	if path == "" {
		return nil, nil
	}
	return theme.Load(path)
}

var markColor = color.RGBA{0xe0, 0x40, 0x40, 0xff}

func markImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(markColor), image.Point{}, draw.Src)
	return img
}

// darkColors suit terminals with a dark background.
var darkColors = logview.SystemColors{
	WindowText:      color.RGBA{0xd0, 0xd0, 0xd0, 0xff},
	Base:            color.RGBA{0x1c, 0x1c, 0x1c, 0xff},
	AlternateBase:   color.RGBA{0x26, 0x26, 0x26, 0xff},
	Highlight:       color.RGBA{0x30, 0x8c, 0xc6, 0xff},
	HighlightedText: color.RGBA{0xff, 0xff, 0xff, 0xff},
	ToolTipBase:     color.RGBA{0x3a, 0x3a, 0x2a, 0xff},
	Shadow:          color.RGBA{0x6c, 0x6c, 0x6c, 0xff},
}

func runView(path string, o options, logger *slog.Logger) error {
	th, err := loadTheme(o.themePath)
	if err != nil {
		return err
	}
	cls, err := newClassifier(th, o.mark)
	if err != nil {
		return err
	}

	src, stop, err := openSource(path, o.follow, logger)
	if err != nil {
		return err
	}
	defer stop()

	cfg := term.Config{Title: path}
	cfg.View = logview.Config{
		MaxLines:      o.maxLines,
		GutterWidth:   o.gutter,
		EscJumpsToEnd: o.escToEnd,
		Logger:        logger,
	}
	if lipgloss.HasDarkBackground() {
		cfg.View.Colors = darkColors
	}
	if cls.marks() {
		if cfg.View.GutterWidth == 0 {
			cfg.View.GutterWidth = 2
		}
		cfg.MarkImage = markImage(cfg.View.GutterWidth, 1)
	}

	m := term.New(cfg)
	if th != nil {
		// Cells have one size; theme fonts only apply to raster output.
		th.Font = nil
		if err := th.Apply(m.LogView()); err != nil {
			return err
		}
	}
	if o.palette != "" && !m.LogView().ActivatePalette(o.palette) {
		return fmt.Errorf("unknown palette %q", o.palette)
	}

	a := newApp(m, src, cls.line, o.follow)
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// openSource streams path: once through follow.Read, or continuously
// through a follow.Tailer.
func openSource(path string, tail bool, logger *slog.Logger) (<-chan follow.Batch, func(), error) {
	if tail {
		t, err := follow.Tail(path, follow.Config{Logger: logger})
		if err != nil {
			return nil, nil, err
		}
		return t.Lines(), func() { _ = t.Close() }, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	ch := make(chan follow.Batch, 4)
	done := make(chan struct{})
	go func() {
		defer close(ch)
		defer f.Close()
		err := follow.Read(f, follow.DefaultMaxBatch, func(lines []string) error {
			select {
			case ch <- follow.Batch{Lines: lines}:
				return nil
			case <-done:
				return errStopped
			}
		})
		if err != nil && !errors.Is(err, errStopped) {
			logger.Error("read failed", "path", path, "err", err)
		}
	}()
	return ch, func() { close(done) }, nil
}

var errStopped = errors.New("stopped")
