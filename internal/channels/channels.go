// Package channels records which voice channel each guild plays to.
package channels

import (
	"sync"

	"ourtube/internal/tracker"
)

// Map stores the selected output channel per guild and notifies
// subscribers when the selection actually changes.
type Map struct {
	mu      sync.Mutex
	byGuild map[string]string

	changed *tracker.Registry[func(channelID string)]
}

func NewMap() *Map {
	return &Map{
		byGuild: make(map[string]string),
		changed: tracker.New[func(channelID string)]("GuildChannel.newChannel"),
	}
}

// Set records the guild's output channel. Re-selecting the current
// channel does not notify.
func (m *Map) Set(guildID, channelID string) {
	m.mu.Lock()
	old, ok := m.byGuild[guildID]
	if ok && old == channelID {
		m.mu.Unlock()
		return
	}
	m.byGuild[guildID] = channelID
	m.mu.Unlock()

	m.changed.Emit(guildID, func(h func(string)) { h(channelID) })
}

// Get returns the guild's selected channel.
func (m *Map) Get(guildID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byGuild[guildID]
	return id, ok
}

func (m *Map) OnChange(guildID string, fn func(channelID string)) func() {
	return m.changed.On(guildID, fn)
}
