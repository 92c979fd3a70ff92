// Package sink abstracts the voice destination that consumes decoded
// audio. The playback session only sees these interfaces; tests swap in
// fakes, production uses the Discord implementation.
package sink

import (
	"context"
	"io"
)

// Sink connects to a guild's output channel.
type Sink interface {
	Join(ctx context.Context, guildID, channelID string) (Handle, error)
}

// Handle is a live connection to one voice channel.
type Handle interface {
	// Accept forwards the stream until it ends. EOF is a natural end and
	// returns nil. Closing stop aborts forwarding without error; the
	// caller uses it for hard teardown (shutdown, channel change).
	Accept(stream io.Reader, stop <-chan struct{}) error

	Close() error
}
