package shellkit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/shellkit/model/command"
	"github.com/viant/shellkit/model/exitcode"
	"github.com/viant/shellkit/policy"
	"github.com/viant/shellkit/service/setting"
	"github.com/viant/shellkit/service/setting/fs"
	"github.com/viant/shellkit/service/setting/memory"
	"github.com/viant/shellkit/service/shell/shelltest"
)

func TestService_Executor(t *testing.T) {
	ctx := context.Background()
	fake := shelltest.New(shelltest.Reply(exitcode.CommandNotFound, nil, []string{"sh: busybox: not found"}))
	srv, err := New(WithOpener(fake.Opener()), WithSettings(memory.New(map[string]bool{setting.RootPermission: true})))
	if !assert.Nil(t, err) {
		return
	}

	builder, err := command.New("busybox")
	assert.Nil(t, err)
	ret := srv.Executor().ExecuteCommand(ctx, builder.AddEnv("A=1").MustBuild(), true)
	assert.Equal(t, exitcode.CommandNotFound, ret.Code())
	assert.Equal(t, []string{"sh: busybox: not found", "error: the command does not exist, e.g. the installed BusyBox does not provide it"}, ret.StderrLines())

	calls := fake.Calls()
	if assert.Len(t, calls, 1) {
		assert.True(t, calls[0].Root)
		assert.Equal(t, []string{"export A=1\nbusybox"}, calls[0].Scripts)
	}
	assert.Equal(t, 1, fake.Closed())
	assert.Nil(t, srv.Close(ctx))
}

func TestService_OpenSession(t *testing.T) {
	ctx := context.Background()
	fake := shelltest.New(nil)
	cfg := DefaultConfig()
	cfg.Setting.Key = "Granted"
	cfg.Setting.Values = map[string]bool{"Granted": true}
	srv, err := New(WithConfig(cfg), WithOpener(fake.Opener()))
	if !assert.Nil(t, err) {
		return
	}
	sess, err := srv.OpenSession(ctx)
	if !assert.Nil(t, err) {
		return
	}
	assert.True(t, sess.Run(ctx, "id"))
	assert.True(t, sess.RunLines(ctx, "id", "whoami"))
	assert.Equal(t, 0, fake.Closed())
	assert.Nil(t, sess.Close())
	assert.Equal(t, 1, fake.Closed())
}

func TestService_Policy(t *testing.T) {
	ctx := context.Background()
	fake := shelltest.New(nil)
	cfg := DefaultConfig()
	cfg.Policy = &policy.Config{BlockList: []string{"reboot"}}
	srv, err := New(WithConfig(cfg), WithOpener(fake.Opener()))
	if !assert.Nil(t, err) {
		return
	}
	ret := srv.Executor().ExecuteScript(ctx, "reboot", true)
	assert.True(t, errors.Is(ret.Err(), policy.ErrDenied))
	assert.Empty(t, fake.Calls())
}

func TestService_Settings(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Setting.URL = "mem://localhost/shellkit/service"
	srv, err := New(WithConfig(cfg), WithOpener(shelltest.New(nil).Opener()))
	if !assert.Nil(t, err) {
		return
	}
	store, ok := srv.Settings().(*fs.Service)
	if !assert.True(t, ok) {
		return
	}
	assert.Nil(t, store.SetBool(ctx, setting.RootPermission, true))
	assert.True(t, setting.Lookup(ctx, srv.Settings(), setting.RootPermission))
	assert.True(t, srv.Executor().CheckRootPermission(ctx))

	_, err = New(WithConfig(&Config{Shell: DefaultConfig().Shell, Setting: SettingConfig{URL: "mem://localhost/x"}}))
	assert.NotNil(t, err)
}
