package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSince(t *testing.T) {
	started := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	NowFunc = func() time.Time { return started.Add(1500 * time.Millisecond) }
	defer func() { NowFunc = time.Now }()
	assert.Equal(t, 1500*time.Millisecond, Since(started))
	assert.Equal(t, started.Add(1500*time.Millisecond), Now())
}
