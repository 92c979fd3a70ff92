package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	youtube "github.com/kkdai/youtube/v2"
	"golang.org/x/time/rate"
)

// preferredThumbWidth matches the upstream "medium" thumbnail size.
const preferredThumbWidth = 320

// YouTube resolves metadata through the YouTube innertube API. A token
// bucket bounds the request rate so many guilds resolving at once do not
// hammer the upstream.
type YouTube struct {
	client  *youtube.Client
	limiter *rate.Limiter
}

func NewYouTube(timeout time.Duration) *YouTube {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &YouTube{
		client: &youtube.Client{
			HTTPClient: &http.Client{Timeout: timeout},
		},
		limiter: rate.NewLimiter(rate.Limit(4), 8),
	}
}

func (y *YouTube) Fetch(ctx context.Context, trackID string) (TrackMetadata, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return TrackMetadata{}, err
	}

	video, err := y.client.GetVideoContext(ctx, trackID)
	if err != nil {
		return TrackMetadata{}, mapUpstreamError(trackID, err)
	}

	return TrackMetadata{
		ID:        trackID,
		Title:     video.Title,
		Thumbnail: pickThumbnail(video.Thumbnails),
		Duration:  video.Duration,
	}, nil
}

func mapUpstreamError(trackID string, err error) error {
	var playability *youtube.ErrPlayabiltyStatus
	var status youtube.ErrUnexpectedStatusCode

	switch {
	case errors.Is(err, youtube.ErrInvalidCharactersInVideoID),
		errors.Is(err, youtube.ErrVideoIDMinLength),
		errors.As(err, &playability):
		return fmt.Errorf("%w: %s: %v", ErrNotFound, trackID, err)
	case errors.As(err, &status) && int(status) == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return fmt.Errorf("catalog fetch for %s: %w", trackID, err)
	}
}

// pickThumbnail chooses the variant closest to the medium size the web
// client displays, falling back to the first one offered.
func pickThumbnail(thumbs youtube.Thumbnails) Thumbnail {
	if len(thumbs) == 0 {
		return Thumbnail{}
	}

	best := thumbs[0]
	bestDiff := widthDiff(best.Width)
	for _, t := range thumbs[1:] {
		if d := widthDiff(t.Width); d < bestDiff {
			best, bestDiff = t, d
		}
	}

	return Thumbnail{
		URL:    best.URL,
		Width:  int(best.Width),
		Height: int(best.Height),
	}
}

func widthDiff(w uint) int {
	d := int(w) - preferredThumbWidth
	if d < 0 {
		return -d
	}
	return d
}
