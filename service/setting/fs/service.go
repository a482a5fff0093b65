package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/shellkit/service/setting"
)

// Service implements a JSON document backed flag store
type Service struct {
	URL string
	fs  afs.Service
	mu  sync.RWMutex
}

var _ setting.Writer = (*Service)(nil)

// Bool returns flag value, missing document or key yields false
func (s *Service) Bool(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	switch actual := values[key].(type) {
	case nil:
		return false, nil
	case bool:
		return actual, nil
	case string:
		ret, err := strconv.ParseBool(actual)
		if err != nil {
			return false, fmt.Errorf("invalid %v value %q: %w", key, actual, err)
		}
		return ret, nil
	default:
		return false, fmt.Errorf("invalid %v type: %T", key, actual)
	}
}

// SetBool persists flag value, other document entries are kept
func (s *Service) SetBool(ctx context.Context, key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load(ctx)
	if err != nil {
		return err
	}
	values[key] = value
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err = s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save settings to %s: %w", s.URL, err)
	}
	return nil
}

func (s *Service) load(ctx context.Context) (map[string]interface{}, error) {
	values := map[string]interface{}{}
	exists, err := s.fs.Exists(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if settings exist: %w", err)
	}
	if !exists {
		return values, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings %s: %w", s.URL, err)
	}
	return values, nil
}

// New creates a store for <baseURL>/<name>.json, name defaults to setting.DefaultName
func New(baseURL, name string) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if name == "" {
		name = setting.DefaultName
	}
	baseURL = url.Normalize(baseURL, file.Scheme)
	return &Service{
		URL: url.Join(baseURL, name+".json"),
		fs:  afs.New(),
	}, nil
}
