package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mapskeleton/internal/anim"
	"mapskeleton/internal/config"
	"mapskeleton/internal/errors"
	"mapskeleton/internal/render"
	"mapskeleton/internal/widget"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
)

// frameOpts are the flags shared by render and inspect.
type frameOpts struct {
	width    float64 // viewport width; 0 takes the configured viewport
	height   float64
	progress float64 // shimmer progress in [0, 1)
	mode     string  // "line" or "alpha"; empty keeps the configured mode
	label    string
}

func (o *frameOpts) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&o.width, "width", 0, "viewport width (default from config)")
	cmd.Flags().Float64Var(&o.height, "height", 0, "viewport height (default from config)")
	cmd.Flags().Float64Var(&o.progress, "progress", 0, "shimmer progress in [0, 1)")
	cmd.Flags().StringVar(&o.mode, "mode", "", "shimmer mode: line, alpha")
	cmd.Flags().StringVar(&o.label, "label", "", "centered label text")
}

func (o *frameOpts) validate() error {
	if o.width < 0 || o.height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "negative viewport %vx%v", o.width, o.height)
	}
	if o.progress < 0 || o.progress >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "progress %v outside [0, 1)", o.progress)
	}
	if _, err := anim.ParseMode(o.mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "--mode")
	}
	return nil
}

// frameWidget builds a widget for one frame: styled by cfg, sized to the
// viewport exactly, with the shimmer moved to the requested progress.
func frameWidget(ctx context.Context, cfg config.File, arg string, o *frameOpts) (*widget.Widget, source, error) {
	logger := loggerFromContext(ctx)
	src := resolveSource(cfg, arg, logger)
	w, err := newWidget(cfg, src, logger)
	if err != nil {
		return nil, src, err
	}
	if o.mode != "" {
		m, _ := anim.ParseMode(o.mode)
		w.SetMode(m)
	}
	if o.label != "" {
		w.SetLabel(o.label)
	}
	width, height := o.width, o.height
	if width == 0 {
		width = float64(cfg.Viewport.Width)
	}
	if height == 0 {
		height = float64(cfg.Viewport.Height)
	}
	w.Measure(
		widget.MeasureSpec{Mode: widget.Exactly, Size: width},
		widget.MeasureSpec{Mode: widget.Exactly, Size: height},
	)
	w.OnFrame(time.Duration(o.progress * float64(w.Style().Duration)))
	return w, src, nil
}

type renderOpts struct {
	frameOpts
	output string
	format string
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render one frame to SVG or PNG",
		Long: `Render draws a single frame of the skeleton. The source is an outline file
(skeleton text, .wkt, .geojson, .kml, path data) or an element id inside the
configured vector document. Without a source the configured id is used, and
without either the fallback circle is drawn.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			format, err := outputFormat(opts.output, opts.format)
			if err != nil {
				return err
			}
			opts.format = format
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), cfg, argOrEmpty(args), &opts, cmd.OutOrStdout())
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png (default from --output, else svg)")

	return cmd
}

// outputFormat picks the format from the explicit flag or the output
// extension.
func outputFormat(output, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" {
			format = formatSVG
		}
	}
	switch format {
	case formatSVG, formatPNG:
		return format, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported output format %q", format)
}

func runRender(ctx context.Context, cfg config.File, arg string, opts *renderOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	w, src, err := frameWidget(ctx, cfg, arg, &opts.frameOpts)
	if err != nil {
		return err
	}
	data, err := encodeFrame(ctx, w, opts.format, src.id)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "write %s", opts.output)
	}
	ww, wh := w.Size()
	prog.done(fmt.Sprintf("Rendered %s (%vx%v, %s)", opts.output, ww, wh, w.ShimmerState().Mode))
	return nil
}

func encodeFrame(ctx context.Context, w *widget.Widget, format, title string) ([]byte, error) {
	ww, wh := w.Size()
	switch format {
	case formatPNG:
		r := render.NewRaster(int(ww), int(wh))
		w.Draw(r, r)
		var buf bytes.Buffer
		if err := r.EncodePNG(&buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "encode png")
		}
		return buf.Bytes(), nil
	default:
		var opts []render.SVGOption
		if title != "" {
			opts = append(opts, render.WithTitle(title))
		}
		s := render.NewSVG(ww, wh, opts...)
		w.Draw(s, textMeasurer(ctx))
		return s.Bytes(), nil
	}
}
