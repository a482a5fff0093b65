package command

import (
	"strings"
)

// Builder accumulates command settings. It is not safe for concurrent use.
type Builder struct {
	script    string
	buffer    strings.Builder
	env       []string
	dir       string
	dirs      []string
	timeoutMs int
	logging   bool
	err       error
}

// New creates a builder for the supplied script
func New(script string) (*Builder, error) {
	if script == "" {
		return nil, ErrEmptyScript
	}
	return &Builder{script: script}, nil
}

// NewLines creates a builder with each line followed by a line break
func NewLines(lines ...string) (*Builder, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyScript
	}
	script := strings.Builder{}
	for _, line := range lines {
		script.WriteString(line)
		script.WriteString("\n")
	}
	return &Builder{script: script.String()}, nil
}

// NewEmpty creates a builder with an empty script, to be populated with AppendScript
func NewEmpty() *Builder {
	return &Builder{}
}

// AppendScript appends text followed by a line break, empty text is ignored.
// A non-empty append replaces the script with everything appended so far,
// a script given to New or NewLines is not part of that buffer.
func (b *Builder) AppendScript(text string) *Builder {
	if text == "" {
		return b
	}
	b.buffer.WriteString(text)
	b.buffer.WriteString("\n")
	b.script = b.buffer.String()
	return b
}

// SetScript replaces the script, empty script is recorded as an error
func (b *Builder) SetScript(script string) *Builder {
	if script == "" {
		if b.err == nil {
			b.err = ErrEmptyScript
		}
		return b
	}
	b.script = script
	return b
}

// Script returns the current script
func (b *Builder) Script() string {
	return b.script
}

// SetEnv replaces all environment entries (NAME=VALUE), no entries clears them
func (b *Builder) SetEnv(entries ...string) *Builder {
	b.env = b.env[:0]
	b.env = append(b.env, entries...)
	return b
}

// AddEnv adds a NAME=VALUE entry, empty entry is ignored
func (b *Builder) AddEnv(entry string) *Builder {
	if entry == "" {
		return b
	}
	b.env = append(b.env, entry)
	return b
}

// AddEnvPair adds a key/value entry, ignored if either part is empty
func (b *Builder) AddEnvPair(key, value string) *Builder {
	if key == "" || value == "" {
		return b
	}
	b.env = append(b.env, key+"="+value)
	return b
}

// AddAllEnv appends NAME=VALUE entries
func (b *Builder) AddAllEnv(entries ...string) *Builder {
	if len(entries) == 0 {
		return b
	}
	b.env = append(b.env, entries...)
	return b
}

// SetDir sets the primary directory appended to PATH
func (b *Builder) SetDir(dir string) *Builder {
	b.dir = dir
	return b
}

// SetDirs replaces additional PATH directories
func (b *Builder) SetDirs(dirs []string) *Builder {
	b.dirs = clone(dirs)
	return b
}

// AddDir appends an additional PATH directory, empty dir is ignored
func (b *Builder) AddDir(dir string) *Builder {
	if dir == "" {
		return b
	}
	b.dirs = append(b.dirs, dir)
	return b
}

// SetTimeout sets timeout in milliseconds
func (b *Builder) SetTimeout(ms int) *Builder {
	b.timeoutMs = ms
	return b
}

// EnableLogging marks the command for execution logging
func (b *Builder) EnableLogging() *Builder {
	b.logging = true
	return b
}

// Describe returns a readable rendering of the current builder state
func (b *Builder) Describe() string {
	return describe(b.script, b.timeoutMs, b.env, b.dir)
}

// Build freezes the builder state into a Command
func (b *Builder) Build() (*Command, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Command{
		script:    b.script,
		env:       clone(b.env),
		dir:       b.dir,
		dirs:      clone(b.dirs),
		timeoutMs: b.timeoutMs,
		logging:   b.logging,
	}, nil
}

// MustBuild builds or panics
func (b *Builder) MustBuild() *Command {
	ret, err := b.Build()
	if err != nil {
		panic(err)
	}
	return ret
}
