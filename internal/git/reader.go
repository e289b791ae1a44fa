package git

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitReader answers ancestry queries in-process using go-git.
// Its results mirror those of CLIReader for the same repository.
type GoGitReader struct {
	repo *git.Repository
}

// NewGoGitReader opens the repository at repoPath.
func NewGoGitReader(repoPath string) (*GoGitReader, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", repoPath, err)
	}
	return &GoGitReader{repo: repo}, nil
}

// ListCommits walks the history reachable from rev in committer-time order,
// the same order `git rev-list` uses by default.
func (r *GoGitReader) ListCommits(ctx context.Context, rev string) ([]string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("list commits of %s: %w", rev, err)
	}

	cIter, err := r.repo.Log(&git.LogOptions{From: *hash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("list commits of %s: %w", rev, err)
	}
	defer cIter.Close()

	var commits []string
	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, c.Hash.String())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list commits of %s: %w", rev, err)
	}

	return commits, nil
}

// ChangedFiles diffs a commit against its only parent. Like `git diff-tree`
// without --root or -m, root and merge commits report no paths, which yields
// a single empty string.
func (r *GoGitReader) ChangedFiles(ctx context.Context, sha string) ([]string, error) {
	c, err := r.commit(sha)
	if err != nil {
		return nil, fmt.Errorf("list files of commit %s: %w", sha, err)
	}

	if c.NumParents() != 1 {
		return []string{""}, nil
	}

	paths, err := r.diffPaths(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("list files of commit %s: %w", sha, err)
	}
	if len(paths) == 0 {
		return []string{""}, nil
	}
	return paths, nil
}

// Parents returns the parent hashes recorded in the commit object.
func (r *GoGitReader) Parents(_ context.Context, sha string) ([]string, error) {
	c, err := r.commit(sha)
	if err != nil {
		return nil, fmt.Errorf("list parents of commit %s: %w", sha, err)
	}

	parents := make([]string, 0, len(c.ParentHashes))
	for _, h := range c.ParentHashes {
		parents = append(parents, h.String())
	}
	return parents, nil
}

func (r *GoGitReader) commit(sha string) (*object.Commit, error) {
	if !plumbing.IsHash(sha) {
		return nil, fmt.Errorf("invalid commit hash %q", sha)
	}
	return r.repo.CommitObject(plumbing.NewHash(sha))
}

// diffPaths returns the sorted, de-duplicated paths touched between the
// commit and its first parent.
func (r *GoGitReader) diffPaths(ctx context.Context, c *object.Commit) ([]string, error) {
	parent, err := c.Parent(0)
	if err != nil {
		return nil, err
	}

	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, &object.DiffTreeOptions{})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(changes)*2)
	paths := make([]string, 0, len(changes))
	add := func(p string) {
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, change := range changes {
		// Without rename detection a change is either an add, a delete or an
		// in-place modification, so From and To never name different paths.
		add(change.From.Name)
		add(change.To.Name)
	}

	sort.Strings(paths)
	return paths, nil
}
