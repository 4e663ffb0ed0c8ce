// Package raster renders SVG weather icons to PNG with ImageMagick.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

var ErrToolNotFound = errors.New("rasterization tool not found")

// ToolError reports a non-zero exit of the rasterization tool.
type ToolError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("error converting SVG to PNG (%s): %v: %s", e.Command, e.Err, strings.TrimSpace(e.Stderr))
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Rasterizer converts an SVG into a square PNG on a white background.
type Rasterizer struct {
	Command string // ImageMagick "convert" or a compatible binary
	Size    int    // Output width and height in pixels
	Density int    // Render density passed to -density
	TempDir string // Directory for output files, os.TempDir() when empty

	logger *slog.Logger
}

func NewRasterizer(command string, size, density int, logger *slog.Logger) *Rasterizer {
	return &Rasterizer{
		Command: command,
		Size:    size,
		Density: density,
		logger:  logger.With("component", "rasterizer"),
	}
}

// Rasterize renders svgPath to a new temporary PNG and returns its path. The
// caller owns the returned file. On error no file is left behind.
func (r *Rasterizer) Rasterize(ctx context.Context, svgPath string) (string, error) {
	tmp, err := os.CreateTemp(r.TempDir, "printweather-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	pngPath := tmp.Name()
	_ = tmp.Close()

	if err := r.run(ctx, svgPath, pngPath); err != nil {
		_ = os.Remove(pngPath)
		return "", err
	}

	return pngPath, nil
}

func (r *Rasterizer) run(ctx context.Context, svgPath, pngPath string) error {
	bin, err := exec.LookPath(r.Command)
	if err != nil {
		return fmt.Errorf("%w: '%s' command not found. ImageMagick is required.\n"+
			"Please install ImageMagick", ErrToolNotFound, r.Command)
	}

	size := strconv.Itoa(r.Size)
	args := []string{
		"-background", "white",
		"-density", strconv.Itoa(r.Density),
		svgPath,
		"-resize", size + "x" + size,
		pngPath,
	}

	r.logger.Debug("rasterizing icon", "command", bin, "args", args)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &ToolError{Command: r.Command, Stderr: stderr.String(), Err: err}
	}

	return nil
}
