// Package queue holds the per-guild FIFO of pending track IDs.
package queue

import (
	"slices"
	"sync"

	"ourtube/internal/tracker"
)

// Store keeps one ordered track list per guild. Absent guilds behave as
// empty queues; no operation fails.
type Store struct {
	mu     sync.Mutex
	queues map[string][]string

	push *tracker.Registry[func(trackID string)]
	pop  *tracker.Registry[func()]
}

func New() *Store {
	return &Store{
		queues: make(map[string][]string),
		push:   tracker.New[func(trackID string)]("GuildQueue.push"),
		pop:    tracker.New[func()]("GuildQueue.pop"),
	}
}

// Push appends a track to the guild's queue, creating the queue if
// needed, and notifies push subscribers with the track ID.
func (s *Store) Push(guildID, trackID string) {
	s.mu.Lock()
	s.queues[guildID] = append(s.queues[guildID], trackID)
	s.mu.Unlock()

	s.push.Emit(guildID, func(h func(string)) { h(trackID) })
}

// Pop removes and returns the front track. Popping an empty queue
// returns ("", false). Pop subscribers are notified either way; callers
// that care must check the return value, not the event.
func (s *Store) Pop(guildID string) (string, bool) {
	s.mu.Lock()
	q := s.queues[guildID]
	var (
		trackID string
		ok      bool
	)
	if len(q) > 0 {
		trackID, ok = q[0], true
		s.queues[guildID] = q[1:]
	}
	s.mu.Unlock()

	s.pop.Emit(guildID, func(h func()) { h() })
	return trackID, ok
}

// List returns an ordered snapshot of the guild's queue.
func (s *Store) List(guildID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.queues[guildID])
}

// Guilds returns the IDs of guilds with a non-empty queue.
func (s *Store) Guilds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.queues))
	for id, q := range s.queues {
		if len(q) > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Restore replaces the guild's queue wholesale. Used to reload persisted
// queues on startup; emits no events.
func (s *Store) Restore(guildID string, tracks []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queues[guildID] = slices.Clone(tracks)
}

func (s *Store) OnPush(guildID string, fn func(trackID string)) func() {
	return s.push.On(guildID, fn)
}

func (s *Store) OncePush(guildID string, fn func(trackID string)) func() {
	return s.push.Once(guildID, fn)
}

func (s *Store) OnPop(guildID string, fn func()) func() {
	return s.pop.On(guildID, fn)
}
