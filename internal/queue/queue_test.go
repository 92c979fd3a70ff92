package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushPopFIFO(t *testing.T) {
	s := New()

	s.Push("g1", "a")
	s.Push("g1", "b")
	s.Push("g1", "c")

	assert.Equal(t, []string{"a", "b", "c"}, s.List("g1"))

	for _, want := range []string{"a", "b", "c"} {
		got, ok := s.Pop("g1")
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestDuplicateTrackIDsAllowed(t *testing.T) {
	s := New()

	s.Push("g1", "a")
	s.Push("g1", "a")

	assert.Equal(t, []string{"a", "a"}, s.List("g1"))
}

func TestPopEmptyQueue(t *testing.T) {
	s := New()

	var popped int
	s.OnPop("g1", func() { popped++ })

	got, ok := s.Pop("g1")

	assert.False(t, ok)
	assert.Empty(t, got)
	// the pop event fires even when nothing was removed
	assert.Equal(t, 1, popped)
}

func TestListUnknownGuildIsEmpty(t *testing.T) {
	s := New()
	assert.Empty(t, s.List("nope"))
}

func TestPushNotifiesWithTrackID(t *testing.T) {
	s := New()

	var got []string
	s.OnPush("g1", func(id string) { got = append(got, id) })

	s.Push("g1", "a")
	s.Push("g1", "b")

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestGuildIsolation(t *testing.T) {
	s := New()

	var g2Events int
	s.OnPush("g2", func(string) { g2Events++ })
	s.OnPop("g2", func() { g2Events++ })

	s.Push("g1", "a")
	s.Pop("g1")

	assert.Empty(t, s.List("g2"))
	assert.Equal(t, 0, g2Events)
}

func TestGuildsListsNonEmptyOnly(t *testing.T) {
	s := New()

	s.Push("g1", "a")
	s.Push("g2", "b")
	s.Pop("g2")

	assert.Equal(t, []string{"g1"}, s.Guilds())
}

func TestRestoreReplacesQueueSilently(t *testing.T) {
	s := New()

	var events int
	s.OnPush("g1", func(string) { events++ })

	s.Restore("g1", []string{"x", "y"})

	assert.Equal(t, []string{"x", "y"}, s.List("g1"))
	assert.Equal(t, 0, events)
}
