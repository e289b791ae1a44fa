package git

import (
	"fmt"
	"strings"

	"github.com/masmgr/commitgraph-go/internal/command"
)

// CommitRecord holds the metadata collected for a single commit.
type CommitRecord struct {
	Files   []string
	Parents []string
}

// Backend selects how the repository is read.
type Backend string

const (
	// BackendCLI shells out to the git binary.
	BackendCLI Backend = "cli"
	// BackendGoGit reads the repository in-process with go-git.
	BackendGoGit Backend = "gogit"
)

// ParseBackend converts a configuration value into a Backend.
// An empty value selects BackendCLI.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cli", "git":
		return BackendCLI, nil
	case "gogit", "go-git":
		return BackendGoGit, nil
	default:
		return "", fmt.Errorf("unknown backend %q (expected cli or gogit)", s)
	}
}

// ReadOptions configures an AncestryReader.
type ReadOptions struct {
	RepoPath string
	GitPath  string // git binary, CLI backend only; defaults to "git"
	Backend  Backend
	Runner   command.Runner // CLI backend only; defaults to command.ExecRunner
}
