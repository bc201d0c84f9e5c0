package cli

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"mapskeleton/internal/config"
	"mapskeleton/internal/errors"
)

const squareText = "0,0_10,0_10,10_0,10"

func testContext() context.Context {
	return withLogger(context.Background(), newLogger(io.Discard, log.InfoLevel))
}

// writeSource writes an outline file into a temp dir and returns its path.
func writeSource(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		format  string
		want    string
		wantErr bool
	}{
		{"stdout defaults to svg", "", "", "svg", false},
		{"svg by extension", "out.svg", "", "svg", false},
		{"png by extension", "out.PNG", "", "png", false},
		{"flag wins", "out.svg", "png", "png", false},
		{"unknown extension", "out.pdf", "", "", true},
		{"unknown flag", "", "gif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputFormat(tt.output, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("outputFormat(%q, %q) error = %v, wantErr %v", tt.output, tt.format, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeUnsupported) {
					t.Errorf("error code = %s, want UNSUPPORTED", errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("outputFormat(%q, %q) = %q, want %q", tt.output, tt.format, got, tt.want)
			}
		})
	}
}

func TestFrameOptsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    frameOpts
		wantErr bool
	}{
		{"zero value", frameOpts{}, false},
		{"alpha mode", frameOpts{mode: "alpha", progress: 0.5}, false},
		{"negative width", frameOpts{width: -1}, true},
		{"progress one", frameOpts{progress: 1}, true},
		{"negative progress", frameOpts{progress: -0.1}, true},
		{"bad mode", frameOpts{mode: "sparkle"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %s, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestRenderSVGToStdout(t *testing.T) {
	src := writeSource(t, "square.txt", squareText)
	opts := renderOpts{format: formatSVG}
	opts.width, opts.height = 100, 100
	opts.label = "Loading"

	var out bytes.Buffer
	if err := runRender(testContext(), config.Default(), src, &opts, &out); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	svg := out.String()
	for _, want := range []string{`<svg`, `width="100"`, `<title>square.txt</title>`, `<linearGradient`, `>Loading</text>`} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestRenderAlphaModeSVG(t *testing.T) {
	src := writeSource(t, "square.txt", squareText)
	opts := renderOpts{format: formatSVG}
	opts.mode = "alpha"
	opts.progress = 0.5

	var out bytes.Buffer
	if err := runRender(testContext(), config.Default(), src, &opts, &out); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	svg := out.String()
	// half a cycle is the bottom of the pulse
	if !strings.Contains(svg, `<g opacity="0.300">`) {
		t.Errorf("svg missing group opacity:\n%s", svg)
	}
	if strings.Contains(svg, "<linearGradient") {
		t.Error("alpha mode should not draw the shimmer band")
	}
}

func TestRenderPNGFile(t *testing.T) {
	src := writeSource(t, "square.txt", squareText)
	out := filepath.Join(t.TempDir(), "frame.png")
	opts := renderOpts{output: out, format: formatPNG}
	opts.width, opts.height = 64, 48

	if err := runRender(testContext(), config.Default(), src, &opts, io.Discard); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("png size = %dx%d, want 64x48", b.Dx(), b.Dy())
	}
	// center of the square is the flat background gray
	r, g, b, a := img.At(32, 24).RGBA()
	if r>>8 != 0x88 || g>>8 != 0x88 || b>>8 != 0x88 || a>>8 != 0xff {
		t.Errorf("center pixel = %02x%02x%02x%02x, want 888888ff", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestRenderWithoutSourceDrawsFallback(t *testing.T) {
	var out bytes.Buffer
	opts := renderOpts{format: formatSVG}
	if err := runRender(testContext(), config.Default(), "", &opts, &out); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	if !strings.Contains(out.String(), "<path") {
		t.Error("fallback frame should still draw paths")
	}
}
