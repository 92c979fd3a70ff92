// Package media turns a track ID into a playback-ready PCM byte stream:
// metadata fetch, source format selection, raw download and an ffmpeg
// transcoding stage.
package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	youtube "github.com/kkdai/youtube/v2"

	"ourtube/internal/catalog"
)

// TrackStream is an open, playing-from-the-start audio stream plus the
// metadata it was resolved with. StartedAt carries a monotonic reading;
// elapsed playback time is time.Since(StartedAt).
type TrackStream struct {
	Meta catalog.TrackMetadata
	io.ReadCloser
	StartedAt time.Time
}

// Opener builds TrackStreams. The returned cleanup func must run on
// every exit path; it kills the transcoder process and closes the raw
// source, whether or not the stream was drained.
type Opener struct {
	catalog catalog.Client
	client  *youtube.Client
}

func NewOpener(c catalog.Client, timeout time.Duration) *Opener {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Opener{
		catalog: c,
		client: &youtube.Client{
			HTTPClient: &http.Client{Timeout: timeout},
		},
	}
}

// Open resolves the track and wires up the fetch -> transcode pipeline.
// Any failing step returns a single error and no partial stream.
func (o *Opener) Open(ctx context.Context, trackID string) (*TrackStream, func(), error) {
	meta, err := o.catalog.Fetch(ctx, trackID)
	if err != nil {
		return nil, nil, err
	}

	video, err := o.client.GetVideoContext(ctx, trackID)
	if err != nil {
		return nil, nil, fmt.Errorf("source info for %s: %w", trackID, err)
	}

	format, err := bestAudioFormat(video.Formats)
	if err != nil {
		return nil, nil, fmt.Errorf("source format for %s: %w", trackID, err)
	}

	raw, _, err := o.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, nil, fmt.Errorf("source stream for %s: %w", trackID, err)
	}

	pcm, cleanup, err := transcode(ctx, raw)
	if err != nil {
		raw.Close()
		return nil, nil, fmt.Errorf("transcode for %s: %w", trackID, err)
	}

	return &TrackStream{
		Meta:       meta,
		ReadCloser: pcm,
		StartedAt:  time.Now(),
	}, cleanup, nil
}
