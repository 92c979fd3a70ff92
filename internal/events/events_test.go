package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkipSongReachesGuildSubscribersOnly(t *testing.T) {
	d := NewDispatcher()

	var g1, g2 int
	d.OnSkip("g1", func() { g1++ })
	d.OnSkip("g2", func() { g2++ })

	d.SkipSong("g1")
	d.SkipSong("g1")

	assert.Equal(t, 2, g1)
	assert.Equal(t, 0, g2)
}

func TestSkipWithoutSubscribersIsNoop(t *testing.T) {
	d := NewDispatcher()
	d.SkipSong("nobody") // must not panic
}

func TestUnsubscribedSkipHandlerStopsFiring(t *testing.T) {
	d := NewDispatcher()

	var fired int
	unsub := d.OnSkip("g1", func() { fired++ })

	d.SkipSong("g1")
	unsub()
	d.SkipSong("g1")

	assert.Equal(t, 1, fired)
}
