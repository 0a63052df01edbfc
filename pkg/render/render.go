// Package render invokes the external Graphviz layout tool to turn a DOT
// file into an image. Rendering is an optional capability: callers check
// Available before invoking, and an absent binary is a reported condition
// rather than a pipeline failure.
package render

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnavailable indicates the layout binary was not found on PATH.
var ErrUnavailable = errors.New("graphviz dot binary not available")

// Renderer turns a serialized graph into an image.
type Renderer interface {
	Available() bool
	Render(ctx context.Context, dotPath, pngPath string) error
}

// Graphviz shells out to the dot binary.
type Graphviz struct {
	binary string
}

// NewGraphviz locates the layout binary. The returned renderer is usable
// even when the binary is missing; Render then reports ErrUnavailable.
func NewGraphviz(binary string) *Graphviz {
	if binary == "" {
		binary = "dot"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return &Graphviz{}
	}
	return &Graphviz{binary: path}
}

// Available reports whether the layout binary was found.
func (g *Graphviz) Available() bool { return g.binary != "" }

// Render produces a PNG from a DOT file.
func (g *Graphviz) Render(ctx context.Context, dotPath, pngPath string) error {
	if !g.Available() {
		return ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, g.binary, "-Tpng", dotPath, "-o", pngPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("rendering %s: %w: %s", dotPath, err, msg)
		}
		return fmt.Errorf("rendering %s: %w", dotPath, err)
	}
	return nil
}
