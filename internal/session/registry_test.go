package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestRegistry(ttl time.Duration) (*Registry, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	r := NewRegistry(ttl)
	r.now = clock.now
	return r, clock
}

func TestRecordAndRepeat(t *testing.T) {
	r, _ := newTestRegistry(time.Minute)

	_, ok := r.LastMessage("t1")
	assert.False(t, ok)

	r.Record("t1", "req-1", "stock_query", "What's the current price of TSLA?")
	r.Touch("t1")

	msg, ok := r.LastMessage("t1")
	require.True(t, ok)
	assert.Equal(t, "What's the current price of TSLA?", msg)

	state, ok := r.GetState("t1")
	require.True(t, ok)
	assert.Equal(t, int64(2), state.Commands)
	assert.Equal(t, "req-1", state.LastRequestID)
}

func TestResetForgetsMessage(t *testing.T) {
	r, _ := newTestRegistry(time.Minute)
	r.Record("t1", "req-1", "navigation", "Navigate to alerts")
	r.Reset("t1")

	_, ok := r.LastMessage("t1")
	assert.False(t, ok)
	_, ok = r.GetState("t1")
	assert.True(t, ok)
}

func TestExpiry(t *testing.T) {
	r, clock := newTestRegistry(time.Minute)
	r.Record("t2", "req-2", "unknown", "hello")
	r.Record("t1", "req-1", "unknown", "hi")

	states := r.ListActive()
	require.Len(t, states, 2)
	assert.Equal(t, "t1", states[0].TerminalID)

	clock.t = clock.t.Add(2 * time.Minute)
	_, ok := r.LastMessage("t1")
	assert.False(t, ok)
	assert.Empty(t, r.ListActive())
	assert.Equal(t, 2, r.Prune())
}

func TestRecordIgnoresBlankTerminal(t *testing.T) {
	r, _ := newTestRegistry(0)
	r.Record("  ", "req", "unknown", "x")
	assert.Empty(t, r.ListActive())
}
