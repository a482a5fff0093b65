package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/shellkit"
	"github.com/viant/shellkit/model/exitcode"
	"github.com/viant/shellkit/service/setting"
	"github.com/viant/shellkit/service/setting/memory"
	"github.com/viant/shellkit/service/shell/shelltest"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func execute(t *testing.T, fake *shelltest.Fake, store setting.Store, stdin string, args ...string) (string, error) {
	t.Helper()
	a := &app{options: []shellkit.Option{shellkit.WithOpener(fake.Opener())}}
	if store != nil {
		a.options = append(a.options, shellkit.WithSettings(store))
	}
	root := newRootCmd(a)
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := runRoot(context.Background(), a, root)
	return out.String(), err
}

func TestRunCmd(t *testing.T) {
	var testCases = []struct {
		description  string
		handler      shelltest.Handler
		args         []string
		expectScript string
		expectRoot   bool
		expectOut    string
		expectStatus int
	}{
		{
			description:  "plain",
			handler:      shelltest.Reply(exitcode.Success, []string{"hello"}, nil),
			args:         []string{"run", "-o", "text", "echo hello"},
			expectScript: "echo hello\n",
			expectOut:    "Exit Code: 0\nSTDOUT:\nhello\n\n",
		},
		{
			description:  "root with env and path",
			handler:      shelltest.Reply(exitcode.Success, nil, nil),
			args:         []string{"run", "--root", "-e", "A=1", "-p", "/system/xbin", "-o", "text", "id", "whoami"},
			expectScript: "export PATH=$PATH:/system/xbin\nexport A=1\nid\nwhoami\n",
			expectRoot:   true,
			expectOut:    "Exit Code: 0\n\n",
		},
		{
			description:  "failure status",
			handler:      shelltest.Reply(exitcode.Code(2), nil, []string{"ls: /x: No such file or directory"}),
			args:         []string{"run", "-o", "text", "ls /x"},
			expectScript: "ls /x\n",
			expectOut:    "Exit Code: 2\nSTDERR:\nls: /x: No such file or directory\nerror code: 2\n\n",
			expectStatus: 2,
		},
		{
			description:  "raw skips diagnostics",
			handler:      shelltest.Reply(exitcode.Code(2), nil, []string{"boom"}),
			args:         []string{"run", "--raw", "-o", "text", "false"},
			expectScript: "false\n",
			expectOut:    "Exit Code: 2\nSTDERR:\nboom\n\n",
			expectStatus: 2,
		},
	}
	for _, testCase := range testCases {
		fake := shelltest.New(testCase.handler)
		out, err := execute(t, fake, nil, "", testCase.args...)
		if testCase.expectStatus == 0 {
			assert.Nil(t, err, testCase.description)
		} else {
			var exitErr *ExitCodeError
			if assert.True(t, errors.As(err, &exitErr), testCase.description) {
				assert.Equal(t, testCase.expectStatus, exitErr.Code, testCase.description)
			}
		}
		assert.Equal(t, testCase.expectOut, out, testCase.description)
		calls := fake.Calls()
		if assert.Len(t, calls, 1, testCase.description) {
			assert.Equal(t, testCase.expectRoot, calls[0].Root, testCase.description)
			assert.Equal(t, []string{testCase.expectScript}, calls[0].Scripts, testCase.description)
		}
	}
}

func TestRunCmd_JSON(t *testing.T) {
	fake := shelltest.New(shelltest.Reply(exitcode.Success, []string{"uid=0(root)"}, nil))
	out, err := execute(t, fake, nil, "", "run", "-o", "json", "id")
	assert.Nil(t, err)
	var decoded map[string]interface{}
	if assert.Nil(t, json.Unmarshal([]byte(out), &decoded)) {
		assert.EqualValues(t, 0, decoded["code"])
	}
	_, err = execute(t, fake, nil, "", "run", "-o", "xml", "id")
	assert.NotNil(t, err)
}

func TestSessionCmd(t *testing.T) {
	var testCases = []struct {
		description  string
		granted      bool
		args         []string
		stdin        string
		expectCalls  int
		expectStatus int
	}{
		{
			description: "runs each line",
			granted:     true,
			args:        []string{"session", "-o", "text"},
			stdin:       "id\n\n# comment\nwhoami\n",
			expectCalls: 2,
		},
		{
			description:  "no root permission",
			args:         []string{"session", "-o", "text"},
			stdin:        "id\n",
			expectStatus: 1,
		},
	}
	for _, testCase := range testCases {
		fake := shelltest.New(shelltest.Reply(exitcode.Success, []string{"ok"}, nil))
		store := memory.New(map[string]bool{setting.RootPermission: testCase.granted})
		_, err := execute(t, fake, store, testCase.stdin, testCase.args...)
		if testCase.expectStatus == 0 {
			assert.Nil(t, err, testCase.description)
		} else {
			var exitErr *ExitCodeError
			if assert.True(t, errors.As(err, &exitErr), testCase.description) {
				assert.Equal(t, testCase.expectStatus, exitErr.Code, testCase.description)
			}
		}
		calls := fake.Calls()
		assert.Len(t, calls, testCase.expectCalls, testCase.description)
		for _, call := range calls {
			assert.True(t, call.Root, testCase.description)
		}
		assert.Equal(t, 1, fake.Closed(), testCase.description)
	}
}

func TestSessionCmd_StopOnError(t *testing.T) {
	fake := shelltest.New(shelltest.Reply(exitcode.Code(1), nil, []string{"denied"}))
	store := memory.New(map[string]bool{setting.RootPermission: true})
	_, err := execute(t, fake, store, "false\nid\n", "session", "--stop-on-error", "-o", "text")
	var exitErr *ExitCodeError
	assert.True(t, errors.As(err, &exitErr))
	assert.Len(t, fake.Calls(), 1)
}

func TestCheckRootCmd(t *testing.T) {
	store := memory.New(nil)
	fake := shelltest.New(shelltest.Reply(exitcode.Success, []string{"root"}, nil))
	out, err := execute(t, fake, store, "", "check-root", "--save")
	assert.Nil(t, err)
	assert.Equal(t, "root: true\n", out)
	assert.True(t, setting.Lookup(context.Background(), store, setting.RootPermission))
	calls := fake.Calls()
	if assert.Len(t, calls, 1) {
		assert.True(t, calls[0].Root)
		assert.Equal(t, []string{"echo root\n"}, calls[0].Scripts)
	}

	fake = shelltest.New(shelltest.Reply(exitcode.CommandNotFound, nil, []string{"su: not found"}))
	out, err = execute(t, fake, store, "", "check-root", "--save")
	var exitErr *ExitCodeError
	assert.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "root: false\n", out)
	assert.False(t, setting.Lookup(context.Background(), store, setting.RootPermission))
}

func TestSettingCmd(t *testing.T) {
	store := memory.New(nil)
	fake := shelltest.New(nil)

	_, err := execute(t, fake, store, "", "setting", "set", setting.RootPermission, "true")
	assert.Nil(t, err)
	out, err := execute(t, fake, store, "", "setting", "get")
	assert.Nil(t, err)
	assert.Equal(t, "RootPermission: true\n", out)

	_, err = execute(t, fake, store, "", "setting", "set", "Other", "maybe")
	assert.NotNil(t, err)
	out, err = execute(t, fake, store, "", "setting", "get", "Other")
	assert.Nil(t, err)
	assert.Equal(t, "Other: false\n", out)
}

func TestConfigCmd(t *testing.T) {
	out, err := execute(t, shelltest.New(nil), nil, "", "config")
	assert.Nil(t, err)
	assert.Contains(t, out, "rootCommand: su")
	assert.Contains(t, out, "key: RootPermission")
}

func TestExitStatus(t *testing.T) {
	var testCases = []struct {
		description string
		code        exitcode.Code
		expect      int
	}{
		{description: "success", code: exitcode.Success, expect: 0},
		{description: "positive", code: exitcode.CommandNotFound, expect: 127},
		{description: "sentinel", code: exitcode.ShellNotFound, expect: 1},
		{description: "out of range", code: exitcode.Code(300), expect: 1},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, exitStatus(testCase.code), testCase.description)
	}
}

type countingExporter struct {
	mux       sync.Mutex
	spans     int
	shutdowns int
}

func (e *countingExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	e.mux.Lock()
	defer e.mux.Unlock()
	e.spans += len(spans)
	return nil
}

func (e *countingExporter) Shutdown(ctx context.Context) error {
	e.mux.Lock()
	defer e.mux.Unlock()
	e.shutdowns++
	return nil
}

func TestRunRoot_ClosesOnFailure(t *testing.T) {
	exporter := &countingExporter{}
	fake := shelltest.New(shelltest.Reply(exitcode.Code(3), nil, []string{"boom"}))
	a := &app{options: []shellkit.Option{
		shellkit.WithOpener(fake.Opener()),
		shellkit.WithTracingExporter("shellkit", "test", exporter),
	}}
	root := newRootCmd(a)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "-o", "text", "false"})

	err := runRoot(context.Background(), a, root)
	var exitErr *ExitCodeError
	if assert.True(t, errors.As(err, &exitErr)) {
		assert.Equal(t, 3, exitErr.Code)
	}
	exporter.mux.Lock()
	defer exporter.mux.Unlock()
	assert.Equal(t, 1, exporter.shutdowns)
	assert.Equal(t, 1, exporter.spans)
}
