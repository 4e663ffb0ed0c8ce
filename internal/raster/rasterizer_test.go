package raster

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTool creates an executable shell script standing in for ImageMagick.
func writeTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-convert")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func newRasterizer(t *testing.T, command string) (*Rasterizer, string) {
	t.Helper()
	r := NewRasterizer(command, 256, 900, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.TempDir = t.TempDir()
	return r, r.TempDir
}

func assertEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir holds %d entries, want 0", len(entries))
	}
}

func TestRasterizer_Rasterize(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	// Record the arguments and write the output (last argument).
	tool := writeTool(t, `echo "$@" > `+argsFile+`
for last; do :; done
echo png > "$last"
`)
	r, _ := newRasterizer(t, tool)

	out, err := r.Rasterize(context.Background(), "/icons/wi-day-sunny.svg")
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	defer os.Remove(out)

	if filepath.Ext(out) != ".png" {
		t.Errorf("output %q is not a .png", out)
	}

	args, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	want := "-background white -density 900 /icons/wi-day-sunny.svg -resize 256x256 " + out
	if strings.TrimSpace(string(args)) != want {
		t.Errorf("args = %q, want %q", strings.TrimSpace(string(args)), want)
	}

	data, err := os.ReadFile(out)
	if err != nil || strings.TrimSpace(string(data)) != "png" {
		t.Errorf("output content = %q, err = %v", data, err)
	}
}

func TestRasterizer_Rasterize_ToolNotFound(t *testing.T) {
	r, dir := newRasterizer(t, "printweather-no-such-convert")

	_, err := r.Rasterize(context.Background(), "/icons/wi-na.svg")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("error = %v, want ErrToolNotFound", err)
	}
	if !strings.Contains(err.Error(), "install ImageMagick") {
		t.Errorf("error %q lacks remediation", err.Error())
	}
	assertEmpty(t, dir)
}

func TestRasterizer_Rasterize_ToolFails(t *testing.T) {
	tool := writeTool(t, "echo 'convert: no decode delegate' >&2\nexit 1\n")
	r, dir := newRasterizer(t, tool)

	_, err := r.Rasterize(context.Background(), "/icons/wi-na.svg")
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error = %v, want *ToolError", err)
	}
	if !strings.Contains(toolErr.Stderr, "no decode delegate") {
		t.Errorf("Stderr = %q, want captured diagnostics", toolErr.Stderr)
	}
	if !strings.Contains(err.Error(), "no decode delegate") {
		t.Errorf("error %q does not report stderr", err.Error())
	}
	assertEmpty(t, dir)
}
