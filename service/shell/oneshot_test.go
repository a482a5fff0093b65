package shell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/shellkit/model/exitcode"
	"github.com/viant/shellkit/service/shell"
	"github.com/viant/shellkit/service/shell/shelltest"
)

func TestOneShot_Exec(t *testing.T) {
	ctx := context.Background()
	fake := shelltest.New(shelltest.Reply(exitcode.Success, []string{"ok"}, nil))
	srv := shell.NewOneShot(fake.Opener())

	for i := 0; i < 2; i++ {
		raw, err := srv.Exec(ctx, false, "echo ok")
		assert.Nil(t, err)
		assert.Equal(t, []string{"ok"}, raw.Stdout)
	}
	assert.Equal(t, 2, fake.Closed())
	assert.Nil(t, srv.Close())

	failing := shell.NewOneShot(func(ctx context.Context) (shell.Service, error) {
		return nil, errors.New("no pty")
	})
	raw, err := failing.Exec(ctx, true, "id")
	assert.Nil(t, raw)
	assert.NotNil(t, err)
}
