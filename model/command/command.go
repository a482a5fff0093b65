// Package command defines the shell command descriptor and its fluent builder.
//
// A Builder accumulates a script, environment entries, PATH directories, a
// timeout and a logging flag; Build freezes them into a Command which is
// safe to share across goroutines.
//
//	builder, err := command.New("echo $GREETING")
//	if err != nil {
//		return err
//	}
//	cmd, err := builder.AddEnvPair("GREETING", "hi").AddDir("/system/xbin").Build()
package command

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidArgument is returned for invalid builder input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyScript is returned when a script is empty.
	ErrEmptyScript = fmt.Errorf("%w: script is empty", ErrInvalidArgument)
)

// Command represents a frozen, executable shell command
type Command struct {
	script    string
	env       []string
	dir       string
	dirs      []string
	timeoutMs int
	logging   bool
}

// Script returns the script body
func (c *Command) Script() string {
	return c.script
}

// Env returns environment entries in NAME=VALUE format, in insertion order
func (c *Command) Env() []string {
	return clone(c.env)
}

// Dir returns the primary directory appended to PATH
func (c *Command) Dir() string {
	return c.dir
}

// Dirs returns additional directories appended to PATH
func (c *Command) Dirs() []string {
	return clone(c.dirs)
}

// TimeoutMs returns timeout in milliseconds, 0 means no timeout
func (c *Command) TimeoutMs() int {
	return c.timeoutMs
}

// Timeout returns timeout as duration
func (c *Command) Timeout() time.Duration {
	return time.Duration(c.timeoutMs) * time.Millisecond
}

// Logging returns true if execution should be logged
func (c *Command) Logging() bool {
	return c.logging
}

// String returns a readable rendering of the command
func (c *Command) String() string {
	return describe(c.script, c.timeoutMs, c.env, c.dir)
}

// Edit returns a builder seeded with the command state
func (c *Command) Edit() *Builder {
	ret := &Builder{
		script:    c.script,
		env:       clone(c.env),
		dir:       c.dir,
		dirs:      clone(c.dirs),
		timeoutMs: c.timeoutMs,
		logging:   c.logging,
	}
	return ret
}

func describe(script string, timeoutMs int, env []string, dir string) string {
	builder := strings.Builder{}
	builder.WriteString("Cmd{script=")
	builder.WriteString(script)
	if timeoutMs > 0 {
		builder.WriteString(fmt.Sprintf(", timeout=%d", timeoutMs))
	}
	if len(env) > 0 {
		builder.WriteString(fmt.Sprintf(", env=%v", env))
	}
	if dir != "" {
		builder.WriteString(", dir=")
		builder.WriteString(dir)
	}
	builder.WriteString("}")
	return builder.String()
}

func clone(items []string) []string {
	if items == nil {
		return nil
	}
	ret := make([]string, len(items))
	copy(ret, items)
	return ret
}
