package session

import (
	"context"
	"log"
	"sync"

	"ourtube/internal/channels"
)

type running struct {
	channelID string
	cancel    context.CancelFunc
	done      chan struct{}
}

// Manager owns the session goroutines, one per guild. A channel-change
// event tears the guild's session down completely and builds a fresh one
// on the new channel; the old teardown finishes before the new session
// starts, so a guild never has two live playback streams.
type Manager struct {
	deps     Deps
	channels *channels.Map

	mu       sync.Mutex
	sessions map[string]*running
	watched  map[string]func()
	stopped  bool
}

func NewManager(deps Deps, ch *channels.Map) *Manager {
	return &Manager{
		deps:     deps,
		channels: ch,
		sessions: make(map[string]*running),
		watched:  make(map[string]func()),
	}
}

// Watch makes the manager react to the guild's channel selection.
// Idempotent; if a channel is already selected the session starts
// immediately.
func (m *Manager) Watch(guildID string) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	if _, ok := m.watched[guildID]; ok {
		m.mu.Unlock()
		return
	}
	m.watched[guildID] = m.channels.OnChange(guildID, func(channelID string) {
		m.restart(guildID, channelID)
	})
	m.mu.Unlock()

	if channelID, ok := m.channels.Get(guildID); ok {
		m.restart(guildID, channelID)
	}
}

// restart replaces the guild's session. Safe to call with the current
// channel; that just rebuilds the session.
func (m *Manager) restart(guildID, channelID string) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}

	// Concurrent restarts for one guild race here; each iteration claims
	// whichever session is currently tracked, so at most one survives.
	for {
		old, ok := m.sessions[guildID]
		if !ok {
			break
		}
		delete(m.sessions, guildID)
		old.cancel()
		m.mu.Unlock()
		<-old.done
		m.mu.Lock()
		if m.stopped {
			m.mu.Unlock()
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &running{channelID: channelID, cancel: cancel, done: make(chan struct{})}
	m.sessions[guildID] = r
	m.mu.Unlock()

	sess := New(guildID, channelID, m.deps)
	go func() {
		defer close(r.done)
		sess.Run(ctx)
	}()
}

// Stop cancels every session and subscription and waits for the
// goroutines to drain. The manager is unusable afterwards.
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	for _, unsub := range m.watched {
		unsub()
	}
	m.watched = nil
	sessions := m.sessions
	m.sessions = make(map[string]*running)
	m.mu.Unlock()

	for guildID, r := range sessions {
		r.cancel()
		<-r.done
		log.Printf("[Session] guild %s: shut down", guildID)
	}
}
