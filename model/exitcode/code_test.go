package exitcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_String(t *testing.T) {
	var testCases = []struct {
		description string
		code        Code
		expect      string
	}{
		{description: "success", code: Success, expect: "Success"},
		{description: "command not found", code: CommandNotFound, expect: "CommandNotFound"},
		{description: "sentinel", code: ShellNotFound, expect: "ShellNotFound"},
		{description: "plain status", code: Of(3), expect: "exit(3)"},
		{description: "timeout alias", code: Timeout, expect: "ShellDied"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.code.String(), testCase.description)
	}
}

func TestCode_Classification(t *testing.T) {
	assert.True(t, Success.IsSuccess())
	assert.False(t, WatchdogDo.IsSuccess())
	assert.True(t, Exception.IsSentinel())
	assert.True(t, ShellWrongUID.IsSentinel())
	assert.False(t, CommandNotFound.IsSentinel())
	assert.True(t, Terminated.IsNamed())
	assert.False(t, Of(42).IsNamed())
	assert.Equal(t, 127, CommandNotFound.Int())
	assert.Equal(t, "exit status 42", Of(42).Describe())
	assert.Equal(t, "unknown sentinel -9", Of(-9).Describe())
}

func TestLookup(t *testing.T) {
	code, ok := Lookup("CommandNotExecutable")
	assert.True(t, ok)
	assert.Equal(t, CommandNotExecutable, code)

	_, ok = Lookup("commandNotExecutable")
	assert.False(t, ok)
}
