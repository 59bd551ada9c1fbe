// Package runtimetest provides a scripted runtime.Runner for tests.
package runtimetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/cra-labs/create-react-app/internal/runtime"
)

// Call records one invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// CommandLine returns the call as a single string.
func (c Call) CommandLine() string {
	return runtime.CommandLine(c.Name, c.Args...)
}

type response struct {
	out string
	err error
}

// Runner answers commands from a table keyed by command line. Unknown
// commands fail as if the binary were missing.
type Runner struct {
	mu        sync.Mutex
	responses map[string]response
	calls     []Call

	// OnRun, when set, is called for every Run after the scripted response
	// is looked up, and its error replaces the scripted one. Tests use it
	// to simulate side effects such as a package manager creating files.
	OnRun func(call Call) error
}

// New returns an empty Runner.
func New() *Runner {
	return &Runner{responses: make(map[string]response)}
}

// On scripts a successful command returning out.
func (r *Runner) On(commandLine, out string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[commandLine] = response{out: out}
	return r
}

// Fail scripts a failing command.
func (r *Runner) Fail(commandLine string, err error) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[commandLine] = response{err: err}
	return r
}

// Calls returns every invocation so far.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Called reports whether commandLine was invoked.
func (r *Runner) Called(commandLine string) bool {
	for _, c := range r.Calls() {
		if c.CommandLine() == commandLine {
			return true
		}
	}
	return false
}

func (r *Runner) lookup(call Call) response {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
	resp, ok := r.responses[call.CommandLine()]
	if !ok {
		return response{err: fmt.Errorf("%s: executable file not found in $PATH", call.Name)}
	}
	return resp
}

// Output implements runtime.Runner.
func (r *Runner) Output(_ context.Context, dir, name string, args ...string) (string, error) {
	resp := r.lookup(Call{Dir: dir, Name: name, Args: args})
	return resp.out, resp.err
}

// Run implements runtime.Runner. Unscripted commands succeed.
func (r *Runner) Run(_ context.Context, dir, name string, args ...string) error {
	call := Call{Dir: dir, Name: name, Args: args}
	r.mu.Lock()
	r.calls = append(r.calls, call)
	resp := r.responses[call.CommandLine()]
	onRun := r.OnRun
	r.mu.Unlock()

	if onRun != nil {
		return onRun(call)
	}
	return resp.err
}
