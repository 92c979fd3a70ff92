// Package tracker implements per-guild observer registries. Each registry
// carries the handlers for exactly one event name; stores compose one
// registry per event they emit.
package tracker

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCallbackTTL bounds one-shot handlers registered for
// request/response exchanges. A handler still registered when the TTL
// fires is removed and logged as a leak.
const DefaultCallbackTTL = 60 * time.Second

type registration[H any] struct {
	handler H
	once    bool
	expire  *time.Timer
}

// Registry holds handlers of type H keyed by guild ID. All mutation is
// guarded by a single mutex; dispatch snapshots handlers and invokes
// them outside the lock. The zero value is not usable, call New.
type Registry[H any] struct {
	name   string
	mu     sync.Mutex
	guilds map[string]map[string]*registration[H]
}

// New creates a registry. The name only shows up in log output.
func New[H any](name string) *Registry[H] {
	return &Registry[H]{
		name:   name,
		guilds: make(map[string]map[string]*registration[H]),
	}
}

// On registers a handler for a guild and returns its unsubscriber.
// Multiple handlers per guild are allowed. Unsubscribing twice is a no-op.
func (r *Registry[H]) On(guildID string, handler H) func() {
	return r.register(guildID, handler, false, 0)
}

// Once registers a handler that fires at most one time. The handler is
// removed from the registry before it is invoked, so a handler that
// synchronously re-emits the same event cannot fire itself again.
func (r *Registry[H]) Once(guildID string, handler H) func() {
	return r.register(guildID, handler, true, 0)
}

// OnceWithin is Once with a self-expiry: if the handler has not fired
// after ttl it is dropped and a warning is logged. Used for callbacks
// that a collaborator is expected to fulfill promptly.
func (r *Registry[H]) OnceWithin(guildID string, ttl time.Duration, handler H) func() {
	if ttl <= 0 {
		ttl = DefaultCallbackTTL
	}
	return r.register(guildID, handler, true, ttl)
}

func (r *Registry[H]) register(guildID string, handler H, once bool, ttl time.Duration) func() {
	key := uuid.NewString()
	reg := &registration[H]{handler: handler, once: once}

	r.mu.Lock()
	byKey, ok := r.guilds[guildID]
	if !ok {
		byKey = make(map[string]*registration[H])
		r.guilds[guildID] = byKey
	}
	byKey[key] = reg
	r.mu.Unlock()

	unsub := func() { r.remove(guildID, key) }

	if ttl > 0 {
		reg.expire = time.AfterFunc(ttl, func() {
			if r.remove(guildID, key) {
				log.Printf("[Tracker] %s: callback for guild %s expired after %v without firing", r.name, guildID, ttl)
			}
		})
	}

	return unsub
}

// remove reports whether the registration was still present.
func (r *Registry[H]) remove(guildID, key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	byKey, ok := r.guilds[guildID]
	if !ok {
		return false
	}
	reg, ok := byKey[key]
	if !ok {
		return false
	}
	delete(byKey, key)
	if len(byKey) == 0 {
		delete(r.guilds, guildID)
	}
	if reg.expire != nil {
		reg.expire.Stop()
	}
	return true
}

// Emit invokes every handler registered for the guild. One-shot handlers
// are unregistered before invoke runs. A panicking handler does not stop
// the others. Handler order is unspecified.
func (r *Registry[H]) Emit(guildID string, invoke func(H)) {
	r.mu.Lock()
	byKey := r.guilds[guildID]
	handlers := make([]H, 0, len(byKey))
	for key, reg := range byKey {
		handlers = append(handlers, reg.handler)
		if reg.once {
			delete(byKey, key)
			if reg.expire != nil {
				reg.expire.Stop()
			}
		}
	}
	if len(byKey) == 0 {
		delete(r.guilds, guildID)
	}
	r.mu.Unlock()

	for _, h := range handlers {
		r.invokeSafe(guildID, invoke, h)
	}
}

func (r *Registry[H]) invokeSafe(guildID string, invoke func(H), handler H) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[Tracker] %s: handler panic for guild %s: %v", r.name, guildID, rec)
		}
	}()
	invoke(handler)
}

// Count returns the number of live registrations for a guild.
func (r *Registry[H]) Count(guildID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.guilds[guildID])
}
