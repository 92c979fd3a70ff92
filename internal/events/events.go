// Package events carries per-guild control signals that do not belong to
// any one store, currently just the skip request.
package events

import "ourtube/internal/tracker"

type Dispatcher struct {
	skip *tracker.Registry[func()]
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		skip: tracker.New[func()]("Events.skipSong"),
	}
}

// SkipSong asks the guild's active playback to stop the current track
// and advance. No-op when nothing is subscribed (nothing playing).
func (d *Dispatcher) SkipSong(guildID string) {
	d.skip.Emit(guildID, func(h func()) { h() })
}

func (d *Dispatcher) OnSkip(guildID string, fn func()) func() {
	return d.skip.On(guildID, fn)
}
