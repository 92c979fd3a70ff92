package catalog

import (
	"errors"
	"net/http"
	"testing"

	youtube "github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
)

func TestMapUpstreamError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "bad video id",
			err:  youtube.ErrVideoIDMinLength,
			want: ErrNotFound,
		},
		{
			name: "invalid characters",
			err:  youtube.ErrInvalidCharactersInVideoID,
			want: ErrNotFound,
		},
		{
			name: "unplayable",
			err:  &youtube.ErrPlayabiltyStatus{Status: "ERROR", Reason: "Video unavailable"},
			want: ErrNotFound,
		},
		{
			name: "rate limited",
			err:  youtube.ErrUnexpectedStatusCode(http.StatusTooManyRequests),
			want: ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapUpstreamError("abc123def45", tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapUpstreamErrorWrapsTransient(t *testing.T) {
	cause := errors.New("connection reset")

	got := mapUpstreamError("abc123def45", cause)

	assert.ErrorIs(t, got, cause)
	assert.NotErrorIs(t, got, ErrNotFound)
	assert.NotErrorIs(t, got, ErrRateLimited)
}

func TestPickThumbnailPrefersMedium(t *testing.T) {
	thumbs := youtube.Thumbnails{
		{URL: "small", Width: 120, Height: 90},
		{URL: "medium", Width: 320, Height: 180},
		{URL: "large", Width: 1280, Height: 720},
	}

	got := pickThumbnail(thumbs)

	assert.Equal(t, Thumbnail{URL: "medium", Width: 320, Height: 180}, got)
}

func TestPickThumbnailEmpty(t *testing.T) {
	assert.Equal(t, Thumbnail{}, pickThumbnail(nil))
}
