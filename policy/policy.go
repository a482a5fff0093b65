package policy

import (
	"context"
	"errors"
	"path"
	"strings"
)

// Execution modes
const (
	ModeAsk  = "ask"  // ask before every script
	ModeAuto = "auto" // execute automatically (default)
	ModeDeny = "deny" // block execution
)

// ErrDenied is reported when a script is rejected
var ErrDenied = errors.New("policy: script denied")

// AskFunc is invoked when Mode==ask. Returning true approves the script.
type AskFunc func(ctx context.Context, script string, programs []string, p *Policy) bool

// Policy represents approval settings for submitted scripts.
//
// A nil *Policy executes everything.
type Policy struct {
	Mode      string
	AllowList []string // program names, empty => all
	BlockList []string // program names
	Ask       AskFunc
}

// Config represents the serialisable part of a Policy
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Mode:      p.Mode,
		AllowList: append([]string(nil), p.AllowList...),
		BlockList: append([]string(nil), p.BlockList...),
	}
}

// FromConfig converts a stored Config back to a Policy without AskFunc
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      c.Mode,
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// IsAllowed evaluates AllowList and BlockList for a program name, case-insensitive
func (p *Policy) IsAllowed(program string) bool {
	if p == nil {
		return true
	}
	normalized := strings.ToLower(program)
	for _, b := range p.BlockList {
		if normalized == strings.ToLower(b) {
			return false
		}
	}
	if len(p.AllowList) == 0 {
		return true
	}
	for _, a := range p.AllowList {
		if normalized == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// Approve returns nil if script may run, or an error wrapping ErrDenied
func (p *Policy) Approve(ctx context.Context, script string) error {
	if p == nil {
		return nil
	}
	programs := Programs(script)
	switch strings.ToLower(p.Mode) {
	case ModeDeny:
		return ErrDenied
	case ModeAsk:
		if p.Ask == nil || !p.Ask(ctx, script, programs, p) {
			return ErrDenied
		}
	}
	for _, program := range programs {
		if !p.IsAllowed(program) {
			return &DeniedError{Program: program}
		}
	}
	return nil
}

// DeniedError identifies the program that was rejected
type DeniedError struct {
	Program string
}

func (e *DeniedError) Error() string {
	return ErrDenied.Error() + ": " + e.Program
}

// Unwrap returns ErrDenied
func (e *DeniedError) Unwrap() error {
	return ErrDenied
}

// Programs returns the program name of every script line, export lines are skipped
func Programs(script string) []string {
	var result []string
	for _, line := range strings.Split(script, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] == "export" || strings.HasPrefix(fields[0], "#") {
			continue
		}
		result = append(result, path.Base(fields[0]))
	}
	return result
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts policy or nil
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
