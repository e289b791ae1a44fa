package git

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	"github.com/masmgr/commitgraph-go/internal/command"
)

func TestSplitFileList(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{name: "Single file", out: "a.txt\n", want: []string{"a.txt"}},
		{name: "Several files", out: "a.txt\ndir/b.go\n", want: []string{"a.txt", "dir/b.go"}},
		{name: "Empty output keeps sentinel", out: "", want: []string{""}},
		{name: "Whitespace only keeps sentinel", out: "\n\n", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitFileList(tt.out)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitFileList(%q) = %q, want %q", tt.out, got, tt.want)
			}
		})
	}
}

func TestParseParentLine(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{name: "Root commit", out: "aaa\n", want: []string{}},
		{name: "One parent", out: "bbb aaa\n", want: []string{"aaa"}},
		{name: "Merge commit", out: "ccc aaa bbb\n", want: []string{"aaa", "bbb"}},
		{name: "Empty output", out: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseParentLine(tt.out)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseParentLine(%q) = %q, want %q", tt.out, got, tt.want)
			}
		})
	}
}

func TestCLIReader_IssuesExpectedCommands(t *testing.T) {
	fake := command.NewFakeRunner(map[string]command.Response{
		"git -C /repo rev-list v1.0":                              {Stdout: "bbb\naaa\n"},
		"git -C /repo diff-tree --no-commit-id --name-only -r bbb": {Stdout: "y.txt\n"},
		"git -C /repo rev-list --parents -n 1 bbb":                {Stdout: "bbb aaa\n"},
	})
	reader := NewCLIReader(ReadOptions{RepoPath: "/repo", Runner: fake})
	ctx := context.Background()

	commits, err := reader.ListCommits(ctx, "v1.0")
	if err != nil {
		t.Fatalf("ListCommits: %v", err)
	}
	if !reflect.DeepEqual(commits, []string{"bbb", "aaa"}) {
		t.Errorf("ListCommits = %q", commits)
	}

	files, err := reader.ChangedFiles(ctx, "bbb")
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"y.txt"}) {
		t.Errorf("ChangedFiles = %q", files)
	}

	parents, err := reader.Parents(ctx, "bbb")
	if err != nil {
		t.Fatalf("Parents: %v", err)
	}
	if !reflect.DeepEqual(parents, []string{"aaa"}) {
		t.Errorf("Parents = %q", parents)
	}

	if len(fake.Calls) != 3 {
		t.Fatalf("Calls = %d, want 3", len(fake.Calls))
	}
}

func TestCLIReader_CustomGitPath(t *testing.T) {
	fake := command.NewFakeRunner(nil)
	reader := NewCLIReader(ReadOptions{RepoPath: ".", GitPath: "/opt/git/bin/git", Runner: fake})

	if _, err := reader.ListCommits(context.Background(), "HEAD"); err != nil {
		t.Fatalf("ListCommits: %v", err)
	}
	if got := fake.Calls[0].Name; got != "/opt/git/bin/git" {
		t.Errorf("binary = %q, want %q", got, "/opt/git/bin/git")
	}
}

func TestCLIReader_ErrorsIncludeCommitAndStderr(t *testing.T) {
	failure := &command.ExitError{
		Name:   "git",
		Stderr: "fatal: bad object deadbeef",
		Err:    errors.New("exit status 128"),
	}
	fake := command.NewFakeRunner(nil)
	fake.Default = command.Response{Err: failure}
	reader := NewCLIReader(ReadOptions{RepoPath: ".", Runner: fake})
	ctx := context.Background()

	checks := []struct {
		name string
		call func() error
		want string
	}{
		{name: "ListCommits", call: func() error { _, err := reader.ListCommits(ctx, "nope"); return err }, want: "nope"},
		{name: "ChangedFiles", call: func() error { _, err := reader.ChangedFiles(ctx, "deadbeef"); return err }, want: "deadbeef"},
		{name: "Parents", call: func() error { _, err := reader.Parents(ctx, "deadbeef"); return err }, want: "deadbeef"},
	}

	for _, tt := range checks {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
			if !strings.Contains(err.Error(), "fatal: bad object") {
				t.Errorf("error %q does not surface stderr", err)
			}
			var exitErr *command.ExitError
			if !errors.As(err, &exitErr) {
				t.Errorf("error %T does not wrap *command.ExitError", err)
			}
		})
	}
}

func TestCLIReader_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	r := newTestRepo(t)
	r.write("x.txt", "x\n")
	a := r.commit("add x")
	r.write("y.txt", "y\n")
	b := r.commit("add y")

	reader := NewCLIReader(ReadOptions{RepoPath: r.dir})
	ctx := context.Background()

	commits, err := reader.ListCommits(ctx, "HEAD")
	if err != nil {
		t.Fatalf("ListCommits: %v", err)
	}
	if !reflect.DeepEqual(commits, []string{b, a}) {
		t.Fatalf("ListCommits = %q, want %q", commits, []string{b, a})
	}

	files, err := reader.ChangedFiles(ctx, b)
	if err != nil {
		t.Fatalf("ChangedFiles(b): %v", err)
	}
	if !reflect.DeepEqual(files, []string{"y.txt"}) {
		t.Errorf("ChangedFiles(b) = %q, want [y.txt]", files)
	}

	rootFiles, err := reader.ChangedFiles(ctx, a)
	if err != nil {
		t.Fatalf("ChangedFiles(a): %v", err)
	}
	if !reflect.DeepEqual(rootFiles, []string{""}) {
		t.Errorf("ChangedFiles(root) = %q, want [\"\"]", rootFiles)
	}

	parents, err := reader.Parents(ctx, a)
	if err != nil {
		t.Fatalf("Parents(a): %v", err)
	}
	if len(parents) != 0 {
		t.Errorf("Parents(root) = %q, want none", parents)
	}

	parents, err = reader.Parents(ctx, b)
	if err != nil {
		t.Fatalf("Parents(b): %v", err)
	}
	if !reflect.DeepEqual(parents, []string{a}) {
		t.Errorf("Parents(b) = %q, want [%s]", parents, a)
	}

	if _, err := reader.ListCommits(ctx, "no-such-tag"); err == nil {
		t.Error("expected error for unknown revision")
	}
}
