package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"mapskeleton/internal/errors"
	"mapskeleton/internal/tui"
)

func (c *CLI) viewCommand() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "view [source]",
		Short: "Show the animated skeleton in the terminal",
		Long: `View opens an interactive terminal viewer. Press space or click the outline
to bounce it, m to switch between the line and alpha shimmer, +/- to change the
cycle length, tab to pick another outline file and p to paste outline text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			style, err := cfg.WidgetStyle()
			if err != nil {
				return err
			}

			// the alt screen owns the terminal; logs go to a file or nowhere
			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return errors.Wrap(errors.ErrCodeUnavailable, err, "open log file")
				}
				defer f.Close()
				w = f
			}
			logger := newLogger(w, c.Logger.GetLevel())

			src := resolveSource(cfg, argOrEmpty(args), logger)
			return tui.Run(cmd.Context(), tui.Options{
				Loader: src.loader,
				Style:  style,
				Source: src.id,
				Dir:    src.dir,
				Logger: logger,
			})
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")

	return cmd
}
