package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countdown struct {
	left atomic.Int64
}

func (c *countdown) Tick() int {
	return int(c.left.Add(-1))
}

func TestNewClock(t *testing.T) {
	_, err := NewClock(nil, time.Second)
	assert.ErrorIs(t, err, ErrNilTimer)

	_, err = NewClock(&countdown{}, 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestClock(t *testing.T) {
	t.Run("expires when the timer runs out", func(t *testing.T) {
		timer := &countdown{}
		timer.left.Store(3)
		clock, err := NewClock(timer, time.Millisecond)
		require.NoError(t, err)

		expired := make(chan struct{})
		done := make(chan struct{})
		go func() {
			clock.Start(func() { close(expired) })
			close(done)
		}()

		select {
		case <-expired:
		case <-time.After(time.Second):
			t.Fatal("clock did not expire")
		}
		<-done
		assert.Equal(t, int64(-1), timer.left.Load())
	})

	t.Run("stop ends the clock without expiring", func(t *testing.T) {
		timer := &countdown{}
		timer.left.Store(1 << 20)
		clock, err := NewClock(timer, time.Millisecond)
		require.NoError(t, err)

		done := make(chan struct{})
		expired := false
		go func() {
			clock.Start(func() { expired = true })
			close(done)
		}()

		clock.Stop()
		clock.Stop()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("clock did not stop")
		}
		assert.False(t, expired)
	})
}
