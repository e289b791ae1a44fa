package command

import (
	"context"
	"strings"
)

// Call records a single invocation seen by FakeRunner.
type Call struct {
	Name string
	Args []string
}

// String joins the program name and arguments with spaces.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Response is the canned result FakeRunner returns for a call.
type Response struct {
	Stdout string
	Err    error
}

// FakeRunner is a test double for Runner.
// Responses are keyed by Call.String(); unknown calls return Default.
type FakeRunner struct {
	Responses map[string]Response
	Default   Response
	Calls     []Call
	// OnRun, when set, is invoked before a response is chosen.
	OnRun func(call Call) error
}

// NewFakeRunner creates a FakeRunner with the given responses.
func NewFakeRunner(responses map[string]Response) *FakeRunner {
	return &FakeRunner{Responses: responses}
}

// Run records the call and returns the canned response.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	call := Call{Name: name, Args: append([]string(nil), args...)}
	f.Calls = append(f.Calls, call)

	if f.OnRun != nil {
		if err := f.OnRun(call); err != nil {
			return nil, err
		}
	}

	resp, ok := f.Responses[call.String()]
	if !ok {
		resp = f.Default
	}
	return []byte(resp.Stdout), resp.Err
}

// Compile-time interface conformance check.
var _ Runner = (*FakeRunner)(nil)
