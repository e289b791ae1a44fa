package output

import (
	"io"
	"time"

	"github.com/masmgr/commitgraph-go/internal/graph"
)

// Compile-time interface conformance checks.
var (
	_ SummaryWriter = (*ConsoleSummaryWriter)(nil)
	_ SummaryWriter = (*JSONSummaryWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
)

// ParseOutputFormat maps a flag value to an OutputFormat, defaulting to console.
func ParseOutputFormat(s string) OutputFormat {
	switch s {
	case "json":
		return FormatJSON
	default:
		return FormatConsole
	}
}

// RunReport describes a completed rendering run.
type RunReport struct {
	RepoPath    string
	Tag         string
	ImagePath   string
	DotPath     string
	DotKept     bool
	JSONPath    string
	Stats       graph.DOTStats
	GeneratedAt time.Time
	Elapsed     time.Duration
}

// SummaryWriter writes the run summary.
type SummaryWriter interface {
	Write(w io.Writer, report *RunReport) error
}

// NewSummaryWriter creates a summary writer for the specified format.
func NewSummaryWriter(format OutputFormat) SummaryWriter {
	switch format {
	case FormatJSON:
		return &JSONSummaryWriter{}
	default:
		return &ConsoleSummaryWriter{}
	}
}
