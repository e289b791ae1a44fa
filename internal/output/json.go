package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/masmgr/commitgraph-go/internal/graph"
)

// JSONSummaryWriter writes the run summary as JSON.
type JSONSummaryWriter struct{}

// JSONSummary is the JSON output structure for a run summary.
type JSONSummary struct {
	RepoPath     string  `json:"repo"`
	Tag          string  `json:"tag"`
	Image        string  `json:"image"`
	DotPath      *string `json:"dotPath,omitempty"`
	GraphJSON    *string `json:"graphJson,omitempty"`
	GeneratedAt  string  `json:"generatedAt"`
	ElapsedMs    int64   `json:"elapsedMs"`
	TotalCommits int     `json:"totalCommits"`
	TotalEdges   int     `json:"totalEdges"`
	DroppedEdges int     `json:"droppedEdges"`
}

// Write outputs the run summary as JSON.
func (jw *JSONSummaryWriter) Write(w io.Writer, report *RunReport) error {
	summary := JSONSummary{
		RepoPath:     report.RepoPath,
		Tag:          report.Tag,
		Image:        report.ImagePath,
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		ElapsedMs:    report.Elapsed.Milliseconds(),
		TotalCommits: report.Stats.Nodes,
		TotalEdges:   report.Stats.Edges,
		DroppedEdges: report.Stats.Dropped,
	}
	if report.DotKept {
		summary.DotPath = &report.DotPath
	}
	if report.JSONPath != "" {
		summary.GraphJSON = &report.JSONPath
	}
	return encodeJSON(w, summary)
}

// JSONGraph is the JSON export of an assembled commit graph.
type JSONGraph struct {
	RepoPath     string     `json:"repo"`
	Tag          string     `json:"tag"`
	GeneratedAt  string     `json:"generatedAt"`
	TotalCommits int        `json:"totalCommits"`
	DroppedEdges int        `json:"droppedEdges"`
	Nodes        []JSONNode `json:"nodes"`
	Edges        []JSONEdge `json:"edges"`
}

// JSONNode is a single commit of the exported graph.
type JSONNode struct {
	ID      string   `json:"id"`
	ShortID string   `json:"shortId"`
	Files   []string `json:"files"`
	Parents []string `json:"parents"`
}

// JSONEdge is a parent-to-child link of the exported graph.
type JSONEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NewJSONGraph converts g into its JSON export structure.
func NewJSONGraph(g *graph.Graph, repoPath, tag string, generatedAt time.Time) JSONGraph {
	commits := g.Commits()
	nodes := make([]JSONNode, 0, len(commits))
	for _, sha := range commits {
		rec, _ := g.Lookup(sha)
		parents := rec.Parents
		if parents == nil {
			parents = []string{}
		}
		nodes = append(nodes, JSONNode{
			ID:      sha,
			ShortID: graph.ShortID(sha),
			Files:   rec.Files,
			Parents: parents,
		})
	}

	edges, dropped := g.Edges()
	jsonEdges := make([]JSONEdge, 0, len(edges))
	for _, e := range edges {
		jsonEdges = append(jsonEdges, JSONEdge{From: e.Parent, To: e.Child})
	}

	return JSONGraph{
		RepoPath:     repoPath,
		Tag:          tag,
		GeneratedAt:  generatedAt.Format(time.RFC3339),
		TotalCommits: len(nodes),
		DroppedEdges: dropped,
		Nodes:        nodes,
		Edges:        jsonEdges,
	}
}

// WriteGraphJSON exports g as JSON to outputPath, or stdout when empty.
func WriteGraphJSON(g *graph.Graph, repoPath, tag string, generatedAt time.Time, outputPath string) error {
	w, file, err := openOutputWriter(outputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return encodeJSON(w, NewJSONGraph(g, repoPath, tag, generatedAt))
}

func encodeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
