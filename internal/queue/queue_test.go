package queue

import (
	"testing"

	"github.com/frudas24/deskcontrol/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQueue_FIFO verifies events come out in push order across ring growth.
func TestQueue_FIFO(t *testing.T) {
	q := New()
	require.True(t, q.IsEmpty())

	const n = 3*minCap + 5
	for i := 0; i < n; i++ {
		require.True(t, q.Push(event.Keycode{Keycode: uint32(i)}))
	}
	assert.Equal(t, n, q.Len())

	for i := 0; i < n; i++ {
		ev, ok := q.Take()
		require.True(t, ok)
		assert.Equal(t, event.Keycode{Keycode: uint32(i)}, ev)
	}
	_, ok := q.Take()
	assert.False(t, ok)
	assert.True(t, q.IsEmpty())
}

// TestQueue_Wraparound verifies order holds when head is in the middle of the ring before it grows.
func TestQueue_Wraparound(t *testing.T) {
	q := New()
	next, want := 0, 0
	for round := 0; round < 4; round++ {
		for i := 0; i < minCap-3; i++ {
			q.Push(event.Keycode{Keycode: uint32(next)})
			next++
		}
		for i := 0; i < minCap/2; i++ {
			ev, ok := q.Take()
			require.True(t, ok)
			require.Equal(t, event.Keycode{Keycode: uint32(want)}, ev)
			want++
		}
	}
	for !q.IsEmpty() {
		ev, _ := q.Take()
		require.Equal(t, event.Keycode{Keycode: uint32(want)}, ev)
		want++
	}
	assert.Equal(t, next, want)
}

// TestQueue_Destroy verifies pending events are released and later pushes fail.
func TestQueue_Destroy(t *testing.T) {
	q := New()
	q.Push(event.Text{Text: "a"})
	q.Push(event.Text{Text: "b"})

	assert.Equal(t, 2, q.Destroy())
	assert.True(t, q.IsEmpty())
	assert.False(t, q.Push(event.Text{Text: "c"}))
	assert.Equal(t, 0, q.Destroy())
}
