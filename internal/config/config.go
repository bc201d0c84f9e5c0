// Package config loads widget settings from TOML or YAML files.
package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"mapskeleton/internal/anim"
	"mapskeleton/internal/errors"
	"mapskeleton/internal/widget"
)

// File is the on-disk configuration.
type File struct {
	Source    Source    `toml:"source" yaml:"source"`
	Style     Style     `toml:"style" yaml:"style"`
	Animation Animation `toml:"animation" yaml:"animation"`
	Viewport  Viewport  `toml:"viewport" yaml:"viewport"`
}

// Source says where outlines come from.
type Source struct {
	// ID is an outline file name, or an element id inside Document.
	ID string `toml:"id" yaml:"id"`
	// Dir is the directory outline files are read from.
	Dir string `toml:"dir" yaml:"dir"`
	// Document is a vector document holding path data by element id.
	Document string `toml:"document" yaml:"document"`
}

// Style holds colors as "#RRGGBB" or "#AARRGGBB".
type Style struct {
	Background  string  `toml:"background" yaml:"background"`
	Stroke      string  `toml:"stroke" yaml:"stroke"`
	StrokeWidth float64 `toml:"stroke_width" yaml:"stroke_width"`
	Shimmer     string  `toml:"shimmer" yaml:"shimmer"`
	Angle       float64 `toml:"angle" yaml:"angle"`
	AlphaMin    float64 `toml:"alpha_min" yaml:"alpha_min"`
	AlphaMax    float64 `toml:"alpha_max" yaml:"alpha_max"`
	Label       string  `toml:"label" yaml:"label"`
	LabelColor  string  `toml:"label_color" yaml:"label_color"`
	LabelSize   float64 `toml:"label_size" yaml:"label_size"`
}

// Animation holds the shimmer settings. Duration is a Go duration string.
type Animation struct {
	Mode     string `toml:"mode" yaml:"mode"`
	Duration string `toml:"duration" yaml:"duration"`
}

// Viewport is the default export size in pixels.
type Viewport struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
}

// Default returns the stock configuration.
func Default() File {
	return File{
		Source: Source{Dir: "."},
		Style: Style{
			Background:  "#888888",
			Stroke:      "#0000FF",
			StrokeWidth: 1,
			Shimmer:     "#FFFFFF",
			Angle:       30,
			AlphaMin:    0.3,
			AlphaMax:    1,
			LabelColor:  "#000000",
			LabelSize:   15,
		},
		Animation: Animation{Mode: "line", Duration: "3s"},
		Viewport:  Viewport{Width: 400, Height: 300},
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes. The format follows the extension: .toml, .yaml or .yml.
func Load(path string) (File, error) {
	f := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return f, errors.Wrap(errors.ErrCodeUnavailable, err, "read config %s", path)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		return f, errors.New(errors.ErrCodeUnsupported, "config format %q", ext)
	}
	if err != nil {
		return f, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := f.Validate(); err != nil {
		return f, err
	}
	return f, nil
}

// Validate checks that every value can be used.
func (f File) Validate() error {
	_, err := f.WidgetStyle()
	if err != nil {
		return err
	}
	if f.Viewport.Width < 0 || f.Viewport.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport %dx%d", f.Viewport.Width, f.Viewport.Height)
	}
	return nil
}

// WidgetStyle converts the style and animation sections.
func (f File) WidgetStyle() (widget.Style, error) {
	s := widget.DefaultStyle()
	colors := []struct {
		name string
		in   string
		out  *color.NRGBA
	}{
		{"background", f.Style.Background, &s.Background},
		{"stroke", f.Style.Stroke, &s.Stroke},
		{"shimmer", f.Style.Shimmer, &s.Shimmer},
		{"label_color", f.Style.LabelColor, &s.LabelColor},
	}
	for _, c := range colors {
		v, err := ParseColor(c.in)
		if err != nil {
			return s, errors.Wrap(errors.ErrCodeInvalidConfig, err, "style.%s", c.name)
		}
		*c.out = v
	}

	st := f.Style
	switch {
	case st.StrokeWidth < 0:
		return s, errors.New(errors.ErrCodeInvalidConfig, "style.stroke_width %v is negative", st.StrokeWidth)
	case st.LabelSize <= 0:
		return s, errors.New(errors.ErrCodeInvalidConfig, "style.label_size %v must be positive", st.LabelSize)
	case st.AlphaMin < 0 || st.AlphaMax > 1 || st.AlphaMin > st.AlphaMax:
		return s, errors.New(errors.ErrCodeInvalidConfig, "style.alpha bounds %v..%v outside 0..1", st.AlphaMin, st.AlphaMax)
	}
	s.StrokeWidth = st.StrokeWidth
	s.Angle = st.Angle
	s.AlphaMin, s.AlphaMax = st.AlphaMin, st.AlphaMax
	s.Label = st.Label
	s.LabelSize = st.LabelSize

	mode, err := anim.ParseMode(f.Animation.Mode)
	if err != nil {
		return s, errors.Wrap(errors.ErrCodeInvalidConfig, err, "animation.mode")
	}
	s.Mode = mode
	if f.Animation.Duration != "" {
		d, err := time.ParseDuration(f.Animation.Duration)
		if err != nil {
			return s, errors.Wrap(errors.ErrCodeInvalidConfig, err, "animation.duration")
		}
		if d <= 0 {
			return s, errors.New(errors.ErrCodeInvalidConfig, "animation.duration %v must be positive", d)
		}
		s.Duration = d
	}
	return s, nil
}

// ParseColor parses "#RRGGBB" or "#AARRGGBB".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(0xff)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "color %q", s)
		}
		alpha = uint8(a)
		s = "#" + s[3:]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c color.NRGBA) string {
	hex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	if c.A == 0xff {
		return hex
	}
	return "#" + strconv.FormatUint(uint64(c.A)|0x100, 16)[1:] + hex[1:]
}
