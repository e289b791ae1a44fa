package git

import (
	"context"
	"fmt"
)

// MockReader is a test double for AncestryReader.
// It allows tests to provide predefined commit data without needing a real Git repository.
type MockReader struct {
	Commits   []string
	Files     map[string][]string
	ParentsOf map[string][]string
	Error     error
	// FailOn makes ChangedFiles and Parents fail for the given commit.
	FailOn string
}

// NewMockReader creates a MockReader from a map of commit records.
// The commits slice fixes the enumeration order.
func NewMockReader(commits []string, records map[string]CommitRecord) *MockReader {
	m := &MockReader{
		Commits:   commits,
		Files:     make(map[string][]string, len(records)),
		ParentsOf: make(map[string][]string, len(records)),
	}
	for sha, rec := range records {
		m.Files[sha] = rec.Files
		m.ParentsOf[sha] = rec.Parents
	}
	return m
}

// ListCommits returns the predefined commits or error.
func (m *MockReader) ListCommits(_ context.Context, _ string) ([]string, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Commits, nil
}

// ChangedFiles returns the predefined paths, or [""] when none were given.
func (m *MockReader) ChangedFiles(_ context.Context, sha string) ([]string, error) {
	if sha == m.FailOn {
		return nil, fmt.Errorf("list files of commit %s: mock failure", sha)
	}
	files, ok := m.Files[sha]
	if !ok || len(files) == 0 {
		return []string{""}, nil
	}
	return files, nil
}

// Parents returns the predefined parents.
func (m *MockReader) Parents(_ context.Context, sha string) ([]string, error) {
	if sha == m.FailOn {
		return nil, fmt.Errorf("list parents of commit %s: mock failure", sha)
	}
	parents := m.ParentsOf[sha]
	if parents == nil {
		return []string{}, nil
	}
	return parents, nil
}
