package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten(t *testing.T) {
	var testCases = []struct {
		description string
		build       func() *Command
		expect      string
	}{
		{
			description: "dirs env and script",
			build: func() *Command {
				builder, _ := New("echo hi")
				return builder.SetDirs([]string{"/a", "/b"}).AddEnvPair("K", "V").MustBuild()
			},
			expect: "export PATH=$PATH:/a\nexport PATH=$PATH:/b\nexport K=V\necho hi",
		},
		{
			description: "primary dir comes first",
			build: func() *Command {
				builder, _ := New("busybox ls")
				return builder.AddDir("/b").SetDir("/a").MustBuild()
			},
			expect: "export PATH=$PATH:/a\nexport PATH=$PATH:/b\nbusybox ls",
		},
		{
			description: "script only",
			build: func() *Command {
				builder, _ := New("id")
				return builder.MustBuild()
			},
			expect: "id",
		},
		{
			description: "nil command",
			build:       func() *Command { return nil },
			expect:      "",
		},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Flatten(testCase.build()), testCase.description)
	}
}

func TestJoinLines(t *testing.T) {
	assert.Equal(t, "a\nb\n", JoinLines([]string{"a", "b"}))
	assert.Equal(t, "", JoinLines(nil))
}
