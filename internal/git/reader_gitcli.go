package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/masmgr/commitgraph-go/internal/command"
)

// CLIReader answers ancestry queries by running the git binary.
type CLIReader struct {
	runner   command.Runner
	gitPath  string
	repoPath string
}

// NewCLIReader creates a reader that runs git against opts.RepoPath.
func NewCLIReader(opts ReadOptions) *CLIReader {
	runner := opts.Runner
	if runner == nil {
		runner = command.ExecRunner{}
	}
	gitPath := opts.GitPath
	if gitPath == "" {
		gitPath = "git"
	}
	return &CLIReader{runner: runner, gitPath: gitPath, repoPath: opts.RepoPath}
}

func (r *CLIReader) git(ctx context.Context, args ...string) ([]byte, error) {
	return r.runner.Run(ctx, r.gitPath, append([]string{"-C", r.repoPath}, args...)...)
}

// ListCommits runs `git rev-list <rev>` and returns the commits in git's order.
func (r *CLIReader) ListCommits(ctx context.Context, rev string) ([]string, error) {
	out, err := r.git(ctx, "rev-list", rev)
	if err != nil {
		return nil, fmt.Errorf("list commits of %s: %w", rev, err)
	}

	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return []string{}, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// ChangedFiles runs `git diff-tree --no-commit-id --name-only -r <sha>`.
// A commit with no reported paths (root or merge commits included) yields a
// single empty string.
func (r *CLIReader) ChangedFiles(ctx context.Context, sha string) ([]string, error) {
	out, err := r.git(ctx, "diff-tree", "--no-commit-id", "--name-only", "-r", sha)
	if err != nil {
		return nil, fmt.Errorf("list files of commit %s: %w", sha, err)
	}
	return splitFileList(string(out)), nil
}

// Parents runs `git rev-list --parents -n 1 <sha>` and drops the commit itself.
func (r *CLIReader) Parents(ctx context.Context, sha string) ([]string, error) {
	out, err := r.git(ctx, "rev-list", "--parents", "-n", "1", sha)
	if err != nil {
		return nil, fmt.Errorf("list parents of commit %s: %w", sha, err)
	}
	return parseParentLine(string(out)), nil
}

// splitFileList splits newline-separated paths. Empty output is kept as [""].
func splitFileList(out string) []string {
	return strings.Split(strings.TrimSpace(out), "\n")
}

// parseParentLine parses "<sha> <parent>..." and returns the parents.
func parseParentLine(out string) []string {
	fields := strings.Fields(out)
	if len(fields) <= 1 {
		return []string{}
	}
	return fields[1:]
}
