// Package shell defines the contract of the shell execution backend and
// provides an implementation on top of github.com/viant/gosh.
package shell

import (
	"context"
	"errors"

	"github.com/viant/shellkit/model/exitcode"
)

// ErrTimeout is returned when a script exceeds its deadline.
var ErrTimeout = errors.New("shell: execution timed out")

// Raw represents unprocessed backend output
type Raw struct {
	Code   exitcode.Code
	Stdout []string
	Stderr []string
}

// Success returns true if the backend reported a zero exit status
func (r *Raw) Success() bool {
	return r.Code == exitcode.Success
}

// Service executes scripts in a root or an unprivileged context.
// A context deadline, when present, bounds the execution.
type Service interface {
	Exec(ctx context.Context, root bool, scripts ...string) (*Raw, error)
	Close() error
}

// Opener opens a long-lived Service
type Opener func(ctx context.Context) (Service, error)

// IsTimeout returns true if err reports an exceeded deadline
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}
