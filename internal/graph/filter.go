package graph

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter decides which file paths appear in node labels.
type PathFilter struct {
	Include []string // Glob patterns to include
	Exclude []string // Glob patterns to exclude
}

// Validate reports the first malformed pattern.
func (f PathFilter) Validate() error {
	for _, p := range f.Exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	for _, p := range f.Include {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid include pattern %q", p)
		}
	}
	return nil
}

// IsZero reports whether the filter has no patterns.
func (f PathFilter) IsZero() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Matches checks if a path passes the include/exclude patterns.
func (f PathFilter) Matches(path string) bool {
	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range f.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}

	// If no include patterns, accept all
	if len(f.Include) == 0 {
		return true
	}

	for _, pattern := range f.Include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}

	return false
}

// Apply returns the paths that pass the filter. The empty-string entry of a
// commit without changes is passed through untouched.
func (f PathFilter) Apply(paths []string) []string {
	if f.IsZero() {
		return paths
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" || f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
