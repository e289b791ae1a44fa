package git

import (
	"context"
	"fmt"
)

// AncestryReader defines the repository queries needed to build a commit graph.
// This abstraction allows for easier testing and alternative implementations.
type AncestryReader interface {
	// ListCommits returns the commits reachable from rev, newest first.
	ListCommits(ctx context.Context, rev string) ([]string, error)
	// ChangedFiles returns the paths touched by a commit.
	ChangedFiles(ctx context.Context, sha string) ([]string, error)
	// Parents returns the parent commit identifiers of a commit.
	Parents(ctx context.Context, sha string) ([]string, error)
}

// NewReader creates the AncestryReader selected by opts.Backend.
func NewReader(opts ReadOptions) (AncestryReader, error) {
	switch opts.Backend {
	case "", BackendCLI:
		return NewCLIReader(opts), nil
	case BackendGoGit:
		return NewGoGitReader(opts.RepoPath)
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}
}

// Compile-time interface conformance checks.
var (
	_ AncestryReader = (*CLIReader)(nil)
	_ AncestryReader = (*GoGitReader)(nil)
	_ AncestryReader = (*MockReader)(nil)
)
