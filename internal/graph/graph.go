// Package graph assembles commit ancestry into a directed graph and
// serializes it for graphviz.
package graph

import (
	"context"
	"fmt"

	"github.com/masmgr/commitgraph-go/internal/git"
)

// Graph maps commit identifiers to their records, keeping enumeration order.
type Graph struct {
	order   []string
	records map[string]git.CommitRecord
}

// Edge is a parent-to-child link between two commits of the graph.
type Edge struct {
	Parent string
	Child  string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{records: make(map[string]git.CommitRecord)}
}

// Add stores a record. Re-adding a commit replaces its record without
// changing its position.
func (g *Graph) Add(sha string, rec git.CommitRecord) {
	if _, ok := g.records[sha]; !ok {
		g.order = append(g.order, sha)
	}
	g.records[sha] = rec
}

// Len returns the number of commits.
func (g *Graph) Len() int {
	return len(g.order)
}

// Commits returns the commit identifiers in enumeration order.
func (g *Graph) Commits() []string {
	return append([]string(nil), g.order...)
}

// Lookup returns the record stored for sha.
func (g *Graph) Lookup(sha string) (git.CommitRecord, bool) {
	rec, ok := g.records[sha]
	return rec, ok
}

// Edges returns every parent-to-child edge whose parent is part of the graph,
// ordered by child then by parent position. dropped counts parents that were
// skipped because they lie outside the graph.
func (g *Graph) Edges() (edges []Edge, dropped int) {
	for _, child := range g.order {
		for _, parent := range g.records[child].Parents {
			if _, ok := g.Lookup(parent); !ok {
				dropped++
				continue
			}
			edges = append(edges, Edge{Parent: parent, Child: child})
		}
	}
	return edges, dropped
}

// ParentCount returns the total length of all parent lists.
func (g *Graph) ParentCount() int {
	n := 0
	for _, rec := range g.records {
		n += len(rec.Parents)
	}
	return n
}

// BuildOptions configures Build.
type BuildOptions struct {
	// OnProgress, when set, is called after each commit is inspected.
	OnProgress func(done, total int, sha string)
}

// Build inspects each commit with reader and assembles the graph.
// Commits are inspected one at a time, in order.
func Build(ctx context.Context, reader git.AncestryReader, commits []string, opts BuildOptions) (*Graph, error) {
	g := New()

	for i, sha := range commits {
		files, err := reader.ChangedFiles(ctx, sha)
		if err != nil {
			return nil, err
		}
		parents, err := reader.Parents(ctx, sha)
		if err != nil {
			return nil, err
		}

		g.Add(sha, git.CommitRecord{Files: files, Parents: parents})

		if opts.OnProgress != nil {
			opts.OnProgress(i+1, len(commits), sha)
		}
	}

	return g, nil
}

// ShortID returns the first seven characters of a commit identifier.
func ShortID(sha string) string {
	const shortLen = 7
	if len(sha) <= shortLen {
		return sha
	}
	return sha[:shortLen]
}

// String summarizes the graph size.
func (g *Graph) String() string {
	edges, dropped := g.Edges()
	return fmt.Sprintf("%d commits, %d edges (%d outside graph)", g.Len(), len(edges), dropped)
}
