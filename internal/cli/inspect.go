package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mapskeleton/internal/config"
	"mapskeleton/internal/render"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var opts frameOpts
	var noOps bool

	cmd := &cobra.Command{
		Use:   "inspect [source]",
		Short: "Print the outline geometry and the draw operations of one frame",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return runInspect(cmd.Context(), cfg, argOrEmpty(args), &opts, !noOps, cmd.OutOrStdout())
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&noOps, "no-ops", false, "omit the draw operations")

	return cmd
}

func runInspect(ctx context.Context, cfg config.File, arg string, opts *frameOpts, withOps bool, out io.Writer) error {
	w, src, err := frameWidget(ctx, cfg, arg, opts)
	if err != nil {
		return err
	}
	o := w.Outline()
	b := o.BBox()
	fit := w.Fit()
	ww, wh := w.Size()

	name := src.id
	if name == "" {
		name = "<none>"
	}
	fmt.Fprintf(out, "source:   %s\n", name)
	fmt.Fprintf(out, "fallback: %v\n", o.IsFallback())
	fmt.Fprintf(out, "polygons: %d  points: %d\n", len(o.Polygons()), o.NumPoints())
	fmt.Fprintf(out, "bbox:     %.3f %.3f %.3f %.3f\n", b.MinX, b.MinY, b.MaxX, b.MaxY)
	fmt.Fprintf(out, "viewport: %gx%g\n", ww, wh)
	fmt.Fprintf(out, "fit:      scale=%.4f translate=(%.3f, %.3f)\n", fit.Scale, fit.TranslateX, fit.TranslateY)
	for i, p := range o.Polygons() {
		fmt.Fprintf(out, "  polygon %d: %d points\n", i, len(p))
	}
	if !withOps {
		return nil
	}

	var rec render.Recorder
	w.Draw(&rec, textMeasurer(ctx))
	f := rec.Frame()
	sh := w.ShimmerState()
	fmt.Fprintf(out, "frame:    mode=%s progress=%.3f alpha=%.3f ops=%d\n", sh.Mode, sh.Progress, f.Alpha, len(f.Ops))
	for _, op := range f.Ops {
		fmt.Fprintf(out, "  %s\n", op)
	}
	return nil
}
