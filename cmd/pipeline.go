package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/masmgr/commitgraph-go/config"
	"github.com/masmgr/commitgraph-go/internal/command"
	gitpkg "github.com/masmgr/commitgraph-go/internal/git"
	"github.com/masmgr/commitgraph-go/internal/graph"
	"github.com/masmgr/commitgraph-go/internal/output"
	"github.com/masmgr/commitgraph-go/internal/render"
)

// Pipeline renders the commit graph of one tag. Steps run strictly in
// order and the first failure ends the run.
type Pipeline struct {
	Config  *config.Config
	Runner  command.Runner        // executes git and graphviz
	Reader  gitpkg.AncestryReader // optional; built from Config when nil
	Out     io.Writer
	Verbose bool
	Format  output.OutputFormat
	Now     func() time.Time
}

// Run enumerates, inspects and assembles the commits, then serializes,
// renders, removes the graph description and reports.
func (p *Pipeline) Run(ctx context.Context) (*output.RunReport, error) {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	cfg := p.Config
	start := now()

	filter := graph.PathFilter{Include: cfg.Filters.Include, Exclude: cfg.Filters.Exclude}
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	reader, err := p.reader()
	if err != nil {
		return nil, err
	}

	p.info(out, "Listing commits reachable from %s in %s", cfg.TagName, cfg.RepoPath)
	commits, err := reader.ListCommits(ctx, cfg.TagName)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate commits: %w", err)
	}

	g, err := graph.Build(ctx, reader, commits, graph.BuildOptions{
		OnProgress: func(done, total int, sha string) {
			p.info(out, "Inspected %s (%d/%d)", graph.ShortID(sha), done, total)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to inspect commits: %w", err)
	}

	p.info(out, "Writing graph description to %s", cfg.DotPath)
	stats, err := graph.WriteDOTFile(cfg.DotPath, g, graph.DOTOptions{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("failed to write graph description: %w", err)
	}
	if stats.Dropped > 0 {
		p.info(out, "Skipped %d edges to parents outside the graph", stats.Dropped)
	}

	renderer := render.NewRenderer(cfg.GraphvizPath, cfg.OutputFormat, p.Runner)
	p.info(out, "Rendering %s with %s", cfg.OutputPNGPath, cfg.GraphvizPath)
	if err := renderer.Render(ctx, cfg.DotPath, cfg.OutputPNGPath); err != nil {
		return nil, fmt.Errorf("failed to render graph: %w", err)
	}

	if !cfg.KeepDot {
		if err := os.Remove(cfg.DotPath); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", cfg.DotPath, err)
		}
	}

	if cfg.JSONOutputPath != "" {
		if err := output.WriteGraphJSON(g, cfg.RepoPath, cfg.TagName, start, cfg.JSONOutputPath); err != nil {
			return nil, fmt.Errorf("failed to export graph: %w", err)
		}
	}

	report := &output.RunReport{
		RepoPath:    cfg.RepoPath,
		Tag:         cfg.TagName,
		ImagePath:   cfg.OutputPNGPath,
		DotPath:     cfg.DotPath,
		DotKept:     cfg.KeepDot,
		JSONPath:    cfg.JSONOutputPath,
		Stats:       stats,
		GeneratedAt: start,
		Elapsed:     now().Sub(start),
	}
	if err := output.NewSummaryWriter(p.Format).Write(out, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (p *Pipeline) reader() (gitpkg.AncestryReader, error) {
	if p.Reader != nil {
		return p.Reader, nil
	}

	backend, err := gitpkg.ParseBackend(p.Config.Backend)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	reader, err := gitpkg.NewReader(gitpkg.ReadOptions{
		RepoPath: p.Config.RepoPath,
		GitPath:  p.Config.GitPath,
		Backend:  backend,
		Runner:   p.Runner,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return reader, nil
}

// info prints a progress line when verbose output is enabled.
func (p *Pipeline) info(w io.Writer, format string, args ...interface{}) {
	if !p.Verbose {
		return
	}
	color.New(color.FgCyan).Fprintf(w, format+"\n", args...)
}
