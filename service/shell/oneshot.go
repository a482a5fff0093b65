package shell

import (
	"context"
	"fmt"
)

// OneShot opens a dedicated backend for every Exec and closes it afterwards.
// It holds no shared state and is safe for concurrent use.
type OneShot struct {
	opener Opener
}

// NewOneShot creates a per-call service
func NewOneShot(opener Opener) *OneShot {
	return &OneShot{opener: opener}
}

// Exec opens a backend, runs scripts and closes the backend
func (o *OneShot) Exec(ctx context.Context, root bool, scripts ...string) (*Raw, error) {
	service, err := o.opener(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open shell: %w", err)
	}
	defer service.Close()
	return service.Exec(ctx, root, scripts...)
}

// Close is a no-op, backends are released after each Exec
func (o *OneShot) Close() error {
	return nil
}
