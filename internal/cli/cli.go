package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"mapskeleton/internal/config"
	"mapskeleton/internal/geom"
	"mapskeleton/internal/render"
	"mapskeleton/internal/widget"
)

const appName = "mapskeleton"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Animated skeleton placeholders shaped like map outlines",
		Long:         `mapskeleton draws a polygon outline (a country, a district) filled with a flat color and animated with a shimmer band or an opacity pulse, the way a loading placeholder stands in for a map.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (.toml, .yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.viewCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())

	return root
}

// loadConfig reads --config, or returns the defaults when it is unset.
func (c *CLI) loadConfig() (config.File, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(c.configPath)
}

// source is a resolved outline reference.
type source struct {
	loader *geom.Loader
	id     string
	dir    string // root of the loader's provider
}

// resolveSource turns a command argument (or the configured id) into a
// loader. An argument naming an existing file is read from that file's
// directory; anything else is resolved against the configured source dir
// and vector document.
func resolveSource(cfg config.File, arg string, logger *log.Logger) source {
	if arg != "" && strings.Contains(arg, ".") {
		if st, err := os.Stat(arg); err == nil && !st.IsDir() {
			abs, err := filepath.Abs(arg)
			if err == nil {
				dir := filepath.Dir(abs)
				return source{
					loader: &geom.Loader{Provider: geom.FSProvider{FS: os.DirFS(dir)}, Logger: logger},
					id:     filepath.Base(abs),
					dir:    dir,
				}
			}
		}
	}
	id := arg
	if id == "" {
		id = cfg.Source.ID
	}
	dir := cfg.Source.Dir
	if dir == "" {
		dir = "."
	}
	return source{
		loader: &geom.Loader{
			Provider: geom.FSProvider{FS: os.DirFS(dir)},
			Document: cfg.Source.Document,
			Logger:   logger,
		},
		id:  id,
		dir: dir,
	}
}

// newWidget builds a widget styled by cfg showing src. An empty id leaves
// the fallback outline.
func newWidget(cfg config.File, src source, logger *log.Logger) (*widget.Widget, error) {
	style, err := cfg.WidgetStyle()
	if err != nil {
		return nil, err
	}
	w := widget.New(style, widget.WithLoader(src.loader), widget.WithLogger(logger))
	if src.id != "" {
		w.SetSource(src.id)
	}
	return w, nil
}

// textMeasurer prefers real font metrics and falls back to an estimate.
func textMeasurer(ctx context.Context) render.TextMeasurer {
	f, err := render.DefaultFont()
	if err == nil {
		var m *render.FontMeasurer
		if m, err = render.NewFontMeasurer(f); err == nil {
			return m
		}
	}
	loggerFromContext(ctx).Warn("font unavailable, estimating text size", "err", err)
	return render.EstimateMeasurer{}
}

func argOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
