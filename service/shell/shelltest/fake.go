// Package shelltest provides a recording shell.Service for tests.
package shelltest

import (
	"context"
	"sync"
	"time"

	"github.com/viant/shellkit/model/exitcode"
	"github.com/viant/shellkit/service/shell"
)

// Call represents a recorded Exec invocation
type Call struct {
	Root     bool
	Scripts  []string
	Started  time.Time
	Ended    time.Time
	Deadline bool
}

// Handler produces a reply for an Exec call
type Handler func(ctx context.Context, root bool, scripts ...string) (*shell.Raw, error)

// Fake records calls, it does not serialize them
type Fake struct {
	Handler  Handler
	Delay    time.Duration
	mux      sync.Mutex
	calls    []*Call
	inFlight int
	maxIn    int
	closed   int
}

// New creates a fake replying with handler
func New(handler Handler) *Fake {
	return &Fake{Handler: handler}
}

// Reply returns a handler with a fixed reply
func Reply(code exitcode.Code, stdout, stderr []string) Handler {
	return func(ctx context.Context, root bool, scripts ...string) (*shell.Raw, error) {
		return &shell.Raw{Code: code, Stdout: append([]string{}, stdout...), Stderr: append([]string{}, stderr...)}, nil
	}
}

// Fail returns a handler failing with err
func Fail(err error) Handler {
	return func(ctx context.Context, root bool, scripts ...string) (*shell.Raw, error) {
		return nil, err
	}
}

// Exec records the call and delegates to Handler
func (f *Fake) Exec(ctx context.Context, root bool, scripts ...string) (*shell.Raw, error) {
	_, hasDeadline := ctx.Deadline()
	call := &Call{Root: root, Scripts: append([]string{}, scripts...), Started: time.Now(), Deadline: hasDeadline}
	f.mux.Lock()
	f.calls = append(f.calls, call)
	f.inFlight++
	if f.inFlight > f.maxIn {
		f.maxIn = f.inFlight
	}
	f.mux.Unlock()

	if f.Delay > 0 {
		time.Sleep(f.Delay)
	}
	var raw *shell.Raw
	var err error
	if f.Handler != nil {
		raw, err = f.Handler(ctx, root, scripts...)
	} else {
		raw = &shell.Raw{Code: exitcode.Success}
	}

	f.mux.Lock()
	f.inFlight--
	call.Ended = time.Now()
	f.mux.Unlock()
	return raw, err
}

// Close counts close calls
func (f *Fake) Close() error {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.closed++
	return nil
}

// Calls returns recorded calls
func (f *Fake) Calls() []*Call {
	f.mux.Lock()
	defer f.mux.Unlock()
	return append([]*Call{}, f.calls...)
}

// MaxInFlight returns the highest number of overlapping calls observed
func (f *Fake) MaxInFlight() int {
	f.mux.Lock()
	defer f.mux.Unlock()
	return f.maxIn
}

// Closed returns the number of Close calls
func (f *Fake) Closed() int {
	f.mux.Lock()
	defer f.mux.Unlock()
	return f.closed
}

// Opener returns an opener handing out the fake
func (f *Fake) Opener() shell.Opener {
	return func(ctx context.Context) (shell.Service, error) {
		return f, nil
	}
}
