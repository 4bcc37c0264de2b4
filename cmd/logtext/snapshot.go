package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/iw2rmb/logtext/follow"
	"github.com/iw2rmb/logtext/logview"
	"github.com/iw2rmb/logtext/logview/raster"
)

type snapshotOptions struct {
	out       string
	width     int
	height    int
	family    string
	size      float64
	themePath string
	palette   string
	mark      string
	gutter    int
	maxLines  int
	top       bool
}

func newSnapshotCmd() *cobra.Command {
	var o snapshotOptions
	cmd := &cobra.Command{
		Use:   "snapshot FILE",
		Short: "Render a log file to an image",
		Long: "Render the end of a log file (or its start with --top) to a PNG, BMP or\n" +
			"TIFF image, chosen by the output extension.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open: %w", err)
			}
			defer f.Close()
			img, err := renderSnapshot(f, o, slog.Default())
			if err != nil {
				return err
			}
			return writeImage(o.out, img)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.out, "output", "o", "snapshot.png", "output image (.png, .bmp, .tif, .tiff)")
	f.IntVar(&o.width, "width", 1024, "image width in pixels")
	f.IntVar(&o.height, "height", 640, "image height in pixels")
	f.StringVar(&o.family, "font", raster.FamilyGoMono, "font family")
	f.Float64Var(&o.size, "font-size", 12, "font size in points")
	f.StringVarP(&o.themePath, "theme", "t", "", "TOML theme file")
	f.StringVarP(&o.palette, "palette", "p", "", "palette to activate")
	f.StringVarP(&o.mark, "mark", "m", "", "mark lines matching this regular expression")
	f.IntVar(&o.gutter, "gutter", 0, "gutter width in pixels (default: 12 when lines can be marked)")
	f.IntVarP(&o.maxLines, "max-lines", "n", 0, "keep at most this many lines (0: unlimited)")
	f.BoolVar(&o.top, "top", false, "show the start of the log instead of its end")
	return cmd
}

// renderSnapshot draws the lines of r into one frame.
func renderSnapshot(r io.Reader, o snapshotOptions, logger *slog.Logger) (*image.RGBA, error) {
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", o.width, o.height)
	}
	th, err := loadTheme(o.themePath)
	if err != nil {
		return nil, err
	}
	cls, err := newClassifier(th, o.mark)
	if err != nil {
		return nil, err
	}

	h := raster.NewHost(raster.HostConfig{})
	cfg := logview.Config{
		Font:        logview.FontDesc{Family: o.family, Size: o.size},
		Fonts:       &raster.GoFonts{},
		MaxLines:    o.maxLines,
		GutterWidth: o.gutter,
		HideCaret:   true,
		Clipboard:   &raster.MemoryClipboard{},
		Logger:      logger,
	}
	if cls.marks() && cfg.GutterWidth == 0 {
		cfg.GutterWidth = 12
	}
	v := logview.New(h, cfg)
	h.Attach(v)
	v.Resize(image.Pt(o.width, o.height))

	if th != nil {
		if err := th.Apply(v); err != nil {
			return nil, err
		}
	}
	if o.palette != "" && !v.ActivatePalette(o.palette) {
		return nil, fmt.Errorf("unknown palette %q", o.palette)
	}
	if cls.marks() {
		v.SetPixmap(markPixmap, markImage(v.GutterWidth()-2, v.LineHeight()-2))
	}

	restore := v.DisableUpdates()
	err = follow.Read(r, follow.DefaultMaxBatch, func(lines []string) error {
		for _, s := range lines {
			l := cls.line(s)
			n := v.Append(l.Text, l.Style)
			if l.Marked {
				v.SetLinePixmap(n, markPixmap)
			}
		}
		return nil
	})
	restore()
	if err != nil {
		return nil, err
	}
	v.Finalize()

	h.Flush()
	if o.top {
		v.ScrollToTop()
		h.Flush()
	}
	frame := h.Frame()
	if frame == nil {
		return nil, fmt.Errorf("nothing rendered for %dx%d", o.width, o.height)
	}
	out := image.NewRGBA(frame.Rect)
	copy(out.Pix, frame.Pix)
	return out, nil
}

const markPixmap = 0

func writeImage(path string, img image.Image) (err error) {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()
	if err := enc(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func encoderFor(path string) (func(io.Writer, image.Image) error, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Encode, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q", ext)
	}
}
