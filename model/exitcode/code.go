// Package exitcode defines the closed set of status codes shared by commands,
// results and the shell backends.
package exitcode

import "strconv"

// Code represents a shell exit status or a reserved sentinel.
type Code int

const (
	WatchdogDo           Code = 1
	Success              Code = 0
	WatchdogExit         Code = -1
	ShellDied            Code = -2
	ShellExecFailed      Code = -3
	ShellWrongUID        Code = -4
	ShellNotFound        Code = -5
	Terminated           Code = 130
	CommandNotExecutable Code = 126
	CommandNotFound      Code = 127
)

const (
	// Exception marks a failure raised before any process ran.
	Exception = WatchdogExit
	// Timeout marks an execution that exceeded its deadline.
	Timeout = ShellDied
)

var names = map[Code]string{
	WatchdogDo:           "WatchdogDo",
	Success:              "Success",
	WatchdogExit:         "WatchdogExit",
	ShellDied:            "ShellDied",
	ShellExecFailed:      "ShellExecFailed",
	ShellWrongUID:        "ShellWrongUID",
	ShellNotFound:        "ShellNotFound",
	Terminated:           "Terminated",
	CommandNotExecutable: "CommandNotExecutable",
	CommandNotFound:      "CommandNotFound",
}

// Of converts a raw status into a Code.
func Of(status int) Code {
	return Code(status)
}

// Lookup returns the named code, the lookup is case-sensitive.
func Lookup(name string) (Code, bool) {
	for code, candidate := range names {
		if candidate == name {
			return code, true
		}
	}
	return 0, false
}

// Int returns the raw status
func (c Code) Int() int {
	return int(c)
}

// IsNamed returns true if the code belongs to the well-known set.
func (c Code) IsNamed() bool {
	_, ok := names[c]
	return ok
}

// IsSentinel returns true for codes that do not describe a real process status.
func (c Code) IsSentinel() bool {
	return c < Success
}

// IsSuccess returns true for Success.
func (c Code) IsSuccess() bool {
	return c == Success
}

// Describe returns a short human-readable explanation.
func (c Code) Describe() string {
	switch c {
	case Success:
		return "success"
	case WatchdogDo:
		return "general failure"
	case WatchdogExit:
		return "execution failed before the shell ran"
	case ShellDied:
		return "shell died or timed out"
	case ShellExecFailed:
		return "shell could not be started"
	case ShellWrongUID:
		return "shell is running under unexpected uid"
	case ShellNotFound:
		return "shell not found or permission missing"
	case Terminated:
		return "terminated by signal"
	case CommandNotExecutable:
		return "command is not executable"
	case CommandNotFound:
		return "command not found"
	}
	if c > Success {
		return "exit status " + strconv.Itoa(int(c))
	}
	return "unknown sentinel " + strconv.Itoa(int(c))
}

func (c Code) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return "exit(" + strconv.Itoa(int(c)) + ")"
}
