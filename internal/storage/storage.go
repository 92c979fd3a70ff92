// Package storage persists queue snapshots so pending tracks survive a
// restart. The playback core never touches it; wiring happens in main.
package storage

import (
	"context"
	"log"
	"time"

	"github.com/keshon/datastore"

	"ourtube/internal/queue"
)

const queuesKey = "guild_queues"

type Storage struct {
	ds *datastore.DataStore
}

// New opens the store. ctx scopes the datastore's background save
// goroutine; cancel it before calling Close.
func New(ctx context.Context, filePath string) (*Storage, error) {
	ds, err := datastore.New(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// SaveQueues stores the full per-guild queue snapshot.
func (s *Storage) SaveQueues(queues map[string][]string) error {
	return s.ds.Set(queuesKey, queues)
}

// LoadQueues returns the last saved snapshot, empty when none exists.
func (s *Storage) LoadQueues() (map[string][]string, error) {
	queues := map[string][]string{}
	if _, err := s.ds.Get(queuesKey, &queues); err != nil {
		return nil, err
	}
	return queues, nil
}

// RunQueueSnapshots periodically captures every non-empty guild queue
// into the store until ctx is canceled. Run it from main as a background
// goroutine.
func RunQueueSnapshots(ctx context.Context, s *Storage, q *queue.Store, every time.Duration) {
	if every <= 0 {
		every = 5 * time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[Storage] queue snapshots stopped")
			return
		case <-ticker.C:
			snapshot := make(map[string][]string)
			for _, guildID := range q.Guilds() {
				snapshot[guildID] = q.List(guildID)
			}
			if err := s.SaveQueues(snapshot); err != nil {
				log.Printf("[Storage] queue snapshot failed: %v", err)
			}
		}
	}
}
