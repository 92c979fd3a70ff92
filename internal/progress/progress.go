// Package progress tracks last-known playback progress per guild.
package progress

import (
	"sync"

	"ourtube/internal/tracker"
)

// Progress is the raw computed playback ratio for a track. Percent may
// exceed 100 near the end of a track when the measured duration is
// approximate; consumers clamp for display.
type Progress struct {
	TrackID string
	Percent float64
}

// Map holds one live Progress value per guild, overwritten on every
// update. Setting an unchanged value does not notify subscribers.
type Map struct {
	mu      sync.Mutex
	byGuild map[string]Progress

	changed *tracker.Registry[func(Progress)]
}

func NewMap() *Map {
	return &Map{
		byGuild: make(map[string]Progress),
		changed: tracker.New[func(Progress)]("SongProgress.newProgress"),
	}
}

// Set stores the latest progress and notifies subscribers, unless the
// value equals the stored one.
func (m *Map) Set(guildID string, p Progress) {
	m.mu.Lock()
	old, ok := m.byGuild[guildID]
	if ok && old == p {
		m.mu.Unlock()
		return
	}
	m.byGuild[guildID] = p
	m.mu.Unlock()

	m.changed.Emit(guildID, func(h func(Progress)) { h(p) })
}

// Get returns the last known progress for the guild.
func (m *Map) Get(guildID string) (Progress, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byGuild[guildID]
	return p, ok
}

func (m *Map) OnChange(guildID string, fn func(Progress)) func() {
	return m.changed.On(guildID, fn)
}
