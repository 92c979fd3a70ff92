// Package catalog resolves track metadata from the upstream video
// catalog. It performs no caching and no retries; both are the caller's
// concern.
package catalog

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound means the upstream reported the track ID invalid,
	// private or gone. Not worth retrying.
	ErrNotFound = errors.New("track not found in catalog")

	// ErrRateLimited means the upstream pushed back. The caller decides
	// whether and when to try again.
	ErrRateLimited = errors.New("catalog rate limited")
)

type Thumbnail struct {
	URL    string
	Width  int
	Height int
}

// TrackMetadata is immutable once resolved.
type TrackMetadata struct {
	ID        string
	Title     string
	Thumbnail Thumbnail
	Duration  time.Duration
}

// Client fetches metadata for a single track. Implementations must be
// safe for concurrent use; resolutions for different guilds run in
// parallel.
type Client interface {
	Fetch(ctx context.Context, trackID string) (TrackMetadata, error)
}
