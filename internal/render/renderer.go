// Package render converts graph descriptions into images with graphviz.
package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/masmgr/commitgraph-go/internal/command"
)

// DefaultFormat is the graphviz output format used when none is configured.
const DefaultFormat = "png"

// Renderer invokes a graphviz layout binary such as dot.
type Renderer struct {
	BinaryPath string
	Format     string
	runner     command.Runner
}

// NewRenderer creates a Renderer for the given binary. A nil runner uses
// command.ExecRunner.
func NewRenderer(binaryPath, format string, runner command.Runner) *Renderer {
	if runner == nil {
		runner = command.ExecRunner{}
	}
	format = strings.TrimPrefix(strings.TrimSpace(format), "-T")
	if format == "" {
		format = DefaultFormat
	}
	return &Renderer{BinaryPath: binaryPath, Format: format, runner: runner}
}

// Args returns the command-line arguments passed to the binary.
func (r *Renderer) Args(inputPath, outputPath string) []string {
	return []string{"-T" + r.Format, inputPath, "-o", outputPath}
}

// Render runs `<binary> -T<format> <input> -o <output>` and waits for it.
func (r *Renderer) Render(ctx context.Context, inputPath, outputPath string) error {
	if _, err := r.runner.Run(ctx, r.BinaryPath, r.Args(inputPath, outputPath)...); err != nil {
		return fmt.Errorf("render %s: %w", inputPath, err)
	}
	return nil
}
