package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"mapskeleton/internal/errors"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := map[string]bool{"view": false, "render": false, "inspect": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, name := range []string{"config", "verbose"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag not registered", name)
		}
	}
}

func TestVerboseRaisesLogLevel(t *testing.T) {
	src := writeSource(t, "square.txt", squareText)
	for _, tt := range []struct {
		args []string
		want log.Level
	}{
		{[]string{"inspect", src, "--no-ops"}, LogInfo},
		{[]string{"inspect", src, "--no-ops", "-v"}, LogDebug},
	} {
		c := New(io.Discard, LogInfo)
		root := c.RootCommand()
		root.SetOut(io.Discard)
		root.SetArgs(tt.args)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if got := c.Logger.GetLevel(); got != tt.want {
			t.Errorf("%v: level = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExecuteInspectWithConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "square.txt"), []byte(squareText), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "skeleton.toml")
	cfg := "[source]\nid = \"square.txt\"\ndir = \"" + filepath.ToSlash(dir) + "\"\n\n[viewport]\nwidth = 50\nheight = 20\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", cfgPath, "inspect", "--no-ops")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "source:   square.txt") || !strings.Contains(out, "viewport: 50x20") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestExecuteRenderToFile(t *testing.T) {
	src := writeSource(t, "square.txt", squareText)
	dst := filepath.Join(t.TempDir(), "out.svg")

	if _, err := execute(t, "render", src, "-o", dst, "--width", "40", "--height", "40"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "<svg") {
		t.Errorf("output is not svg: %.40s", data)
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing config", []string{"--config", "/nonexistent/skeleton.toml", "inspect"}, errors.ErrCodeUnavailable},
		{"bad progress", []string{"inspect", "--progress", "2"}, errors.ErrCodeInvalidConfig},
		{"bad format", []string{"render", "-o", "out.gif"}, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), tt.code)
			}
		})
	}
}
