package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"mapskeleton/internal/anim"
	"mapskeleton/internal/errors"
	"mapskeleton/internal/widget"
)

func TestDefaultMatchesWidget(t *testing.T) {
	got, err := Default().WidgetStyle()
	if err != nil {
		t.Fatalf("WidgetStyle() error = %v", err)
	}
	if diff := cmp.Diff(widget.DefaultStyle(), got); diff != "" {
		t.Errorf("default style mismatch (-want +got):\n%s", diff)
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"skeleton.toml", `
[source]
id = "zhejiang"
document = "china.xml"

[style]
stroke = "#FF0000"
label = "Zhejiang"

[animation]
mode = "alpha"
duration = "1500ms"
`},
		{"skeleton.yaml", `
source:
  id: zhejiang
  document: china.xml
style:
  stroke: "#FF0000"
  label: Zhejiang
animation:
  mode: alpha
  duration: 1500ms
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load(writeFile(t, tt.name, tt.body))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			wantSource := Source{ID: "zhejiang", Dir: ".", Document: "china.xml"}
			if diff := cmp.Diff(wantSource, f.Source); diff != "" {
				t.Errorf("source mismatch (-want +got):\n%s", diff)
			}
			s, err := f.WidgetStyle()
			if err != nil {
				t.Fatalf("WidgetStyle() error = %v", err)
			}
			want := widget.DefaultStyle()
			want.Stroke = color.NRGBA{R: 0xff, A: 0xff}
			want.Label = "Zhejiang"
			want.Mode = anim.ModeAlpha
			want.Duration = 1500 * time.Millisecond
			if diff := cmp.Diff(want, s); diff != "" {
				t.Errorf("style mismatch (-want +got):\n%s", diff)
			}
			if f.Viewport.Width != 400 {
				t.Errorf("unset viewport lost its default: %+v", f.Viewport)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"bad.toml", "[style\n", errors.ErrCodeInvalidConfig},
		{"color.toml", "[style]\nbackground = \"gray\"\n", errors.ErrCodeInvalidConfig},
		{"alpha.yaml", "style:\n  alpha_min: 0.9\n  alpha_max: 0.2\n", errors.ErrCodeInvalidConfig},
		{"mode.yaml", "animation:\n  mode: wobble\n", errors.ErrCodeInvalidConfig},
		{"duration.yaml", "animation:\n  duration: -1s\n", errors.ErrCodeInvalidConfig},
		{"label.yml", "style:\n  label_size: 0\n", errors.ErrCodeInvalidConfig},
		{"viewport.toml", "[viewport]\nwidth = -1\n", errors.ErrCodeInvalidConfig},
		{"skeleton.json", "{}", errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.name, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeUnavailable) {
		t.Errorf("Load(missing) error = %v, want RESOURCE_UNAVAILABLE", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#888888", want: color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}},
		{in: " #0000ff ", want: color.NRGBA{B: 0xff, A: 0xff}},
		{in: "#80FF0000", want: color.NRGBA{R: 0xff, A: 0x80}},
		{in: "#00FFFFFF", want: color.NRGBA{R: 0xff, G: 0xff, B: 0xff}},
		{in: "red", wantErr: true},
		{in: "#zz000000", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatColor(t *testing.T) {
	for _, in := range []string{"#888888", "#80ff0000", "#0a0b0c0d"} {
		c, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q) error = %v", in, err)
		}
		if got := FormatColor(c); got != in {
			t.Errorf("FormatColor(ParseColor(%q)) = %q", in, got)
		}
	}
}
