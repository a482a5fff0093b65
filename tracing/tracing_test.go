package tracing

import (
	"context"
	"errors"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracingFile(t *testing.T) {
	fname := path.Join(t.TempDir(), "span_test.txt")
	assert.Nil(t, Init("shellkit", "0.0.1", fname))

	_, span := StartSpan(context.Background(), "shell.exec")
	span.WithAttributes(map[string]string{"job.id": "1"}).WithBool("root", true).WithInt("code", 127)
	EndSpan(span, errors.New("command not found"))
	assert.Nil(t, Shutdown(context.Background()))

	data, err := os.ReadFile(fname)
	assert.Nil(t, err)
	assert.Contains(t, string(data), "shell.exec")
}

func TestSpan_Nil(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithInt("code", 1))
	assert.Nil(t, span.WithBool("root", false))
	assert.Nil(t, span.WithAttributes(map[string]string{"a": "b"}))
	EndSpan(span, nil)
}
