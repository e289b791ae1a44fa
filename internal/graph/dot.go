package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DOTOptions controls graph serialization.
type DOTOptions struct {
	// Name is the digraph identifier; defaults to "G".
	Name string
	// Filter limits the paths shown in node labels.
	Filter PathFilter
}

// DOTStats describes what WriteDOT emitted.
type DOTStats struct {
	Nodes   int
	Edges   int
	Dropped int
}

// NodeLabel builds the label text of a commit node. Lines are joined with
// the DOT "\n" escape.
func NodeLabel(sha string, files []string) string {
	return "Commit: " + ShortID(sha) + `\nFiles:\n` + strings.Join(files, `\n`)
}

// WriteDOT writes g as a graphviz digraph: one node per commit, then one
// edge per parent that is itself a node. Labels are quoted but not escaped,
// so quote characters in file paths corrupt the output.
func WriteDOT(w io.Writer, g *Graph, opts DOTOptions) (DOTStats, error) {
	name := opts.Name
	if name == "" {
		name = "G"
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", name)

	for _, sha := range g.order {
		rec := g.records[sha]
		fmt.Fprintf(bw, "\"%s\" [label=\"%s\"];\n", sha, NodeLabel(sha, opts.Filter.Apply(rec.Files)))
	}

	edges, dropped := g.Edges()
	for _, e := range edges {
		fmt.Fprintf(bw, "\"%s\" -> \"%s\";\n", e.Parent, e.Child)
	}

	fmt.Fprint(bw, "}\n")

	if err := bw.Flush(); err != nil {
		return DOTStats{}, err
	}
	return DOTStats{Nodes: g.Len(), Edges: len(edges), Dropped: dropped}, nil
}

// WriteDOTFile writes the graph description to path, replacing any existing file.
func WriteDOTFile(path string, g *Graph, opts DOTOptions) (DOTStats, error) {
	f, err := os.Create(path)
	if err != nil {
		return DOTStats{}, fmt.Errorf("create %s: %w", path, err)
	}

	stats, err := WriteDOT(f, g, opts)
	if err != nil {
		f.Close()
		return DOTStats{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return DOTStats{}, fmt.Errorf("close %s: %w", path, err)
	}
	return stats, nil
}
