// Package result holds the outcome of a shell command execution together with
// classification and presentation helpers.
package result

import (
	"encoding/json"
	"strings"

	"github.com/viant/shellkit/model/command"
	"github.com/viant/shellkit/model/exitcode"
)

// Result represents an immutable command execution outcome
type Result struct {
	code        exitcode.Code
	stdoutLines []string
	stderrLines []string
	stdoutText  string
	stderrText  string
	err         error
	command     *command.Command
}

// FromLines creates a result where the line slices are primary
func FromLines(code exitcode.Code, stdout, stderr []string) *Result {
	stdout = orEmpty(stdout)
	stderr = orEmpty(stderr)
	return &Result{
		code:        code,
		stdoutLines: stdout,
		stderrLines: stderr,
		stdoutText:  strings.Join(stdout, "\n"),
		stderrText:  strings.Join(stderr, "\n"),
	}
}

// FromText creates a result where the texts are primary. Texts are kept
// verbatim while lines are split on "\n" with trailing empty lines dropped,
// so FromText(0, "a\n", "") reports StdoutText "a\n" and StdoutLines ["a"].
// Joining the lines does not restore the text when it ends with a line break.
func FromText(code exitcode.Code, stdout, stderr string) *Result {
	return &Result{
		code:        code,
		stdoutLines: toLines(stdout),
		stderrLines: toLines(stderr),
		stdoutText:  stdout,
		stderrText:  stderr,
	}
}

// FromError creates an exception result, err is attached as is
func FromError(err error) *Result {
	ret := FromLines(exitcode.Exception, nil, nil)
	ret.err = err
	if err != nil {
		ret.stderrLines = []string{err.Error()}
		ret.stderrText = err.Error()
	}
	return ret
}

// WithCommand returns a copy of the result bound to the source command
func (r *Result) WithCommand(cmd *command.Command) *Result {
	ret := *r
	ret.command = cmd
	return &ret
}

// WithError returns a copy of the result with err attached
func (r *Result) WithError(err error) *Result {
	ret := *r
	ret.err = err
	return &ret
}

// Code returns the exit code
func (r *Result) Code() exitcode.Code {
	return r.code
}

// StdoutLines returns standard output lines, never nil
func (r *Result) StdoutLines() []string {
	return r.stdoutLines
}

// StderrLines returns standard error lines, never nil
func (r *Result) StderrLines() []string {
	return r.stderrLines
}

// StdoutText returns standard output text
func (r *Result) StdoutText() string {
	return r.stdoutText
}

// StderrText returns standard error text
func (r *Result) StderrText() string {
	return r.stderrText
}

// Err returns an error captured before any process ran
func (r *Result) Err() error {
	return r.err
}

// ExceptionMessage returns captured error message or empty string
func (r *Result) ExceptionMessage() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Command returns the source command, if known
func (r *Result) Command() *command.Command {
	return r.command
}

// IsSuccessful returns true if the exit code is Success
func (r *Result) IsSuccessful() bool {
	return r.code == exitcode.Success
}

// isSuccess is a stricter check: a zero exit with stderr only counts as a
// failure, a positive exit counts only when both streams carry output.
func (r *Result) isSuccess() bool {
	if r.code == exitcode.Success {
		return r.stdoutText != "" || r.stderrText == ""
	}
	return r.code > exitcode.Success && r.stdoutText != "" && r.stderrText != ""
}

// IsException returns true if execution failed with an error before the shell ran
func (r *Result) IsException() bool {
	return r.code == exitcode.Exception && r.err != nil
}

// IsTimeout returns true if execution timed out
func (r *Result) IsTimeout() bool {
	return r.code == exitcode.Timeout
}

type jsonResult struct {
	Code    int      `json:"code"`
	Status  string   `json:"status"`
	Stdout  []string `json:"stdout"`
	Stderr  []string `json:"stderr"`
	Error   string   `json:"error,omitempty"`
	Command string   `json:"command,omitempty"`
}

// MarshalJSON encodes the result
func (r *Result) MarshalJSON() ([]byte, error) {
	out := jsonResult{
		Code:   r.code.Int(),
		Status: r.code.String(),
		Stdout: r.stdoutLines,
		Stderr: r.stderrLines,
		Error:  r.ExceptionMessage(),
	}
	if r.command != nil {
		out.Command = r.command.Script()
	}
	return json.Marshal(out)
}

func orEmpty(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}

func toLines(text string) []string {
	if text == "" {
		return []string{}
	}
	ret := strings.Split(text, "\n")
	for len(ret) > 0 && ret[len(ret)-1] == "" {
		ret = ret[:len(ret)-1]
	}
	return ret
}
