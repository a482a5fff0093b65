package memory

import (
	"context"
	"sync"

	"github.com/viant/shellkit/service/setting"
)

// Service implements an in-memory flag store
type Service struct {
	values map[string]bool
	mu     sync.RWMutex
}

var _ setting.Writer = (*Service)(nil)

// Bool returns flag value, unknown key yields false
func (s *Service) Bool(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

// SetBool sets flag value
func (s *Service) SetBool(ctx context.Context, key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// New creates a memory store seeded with values
func New(values map[string]bool) *Service {
	ret := &Service{values: make(map[string]bool, len(values))}
	for k, v := range values {
		ret.values[k] = v
	}
	return ret
}
