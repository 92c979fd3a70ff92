package media

import (
	"testing"

	youtube "github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func audioFormat(itag, bitrate int, quality string) youtube.Format {
	return youtube.Format{
		ItagNo:        itag,
		Bitrate:       bitrate,
		AudioQuality:  quality,
		AudioChannels: 2,
	}
}

func TestBestAudioFormat(t *testing.T) {
	tests := []struct {
		name     string
		formats  youtube.FormatList
		wantItag int
	}{
		{
			name: "highest bitrate wins",
			formats: youtube.FormatList{
				audioFormat(1, 96000, "AUDIO_QUALITY_LOW"),
				audioFormat(2, 160000, "AUDIO_QUALITY_MEDIUM"),
				audioFormat(3, 128000, "AUDIO_QUALITY_MEDIUM"),
			},
			wantItag: 2,
		},
		{
			name: "tie prefers unlabeled format",
			formats: youtube.FormatList{
				audioFormat(1, 128000, "AUDIO_QUALITY_MEDIUM"),
				audioFormat(2, 128000, ""),
			},
			wantItag: 2,
		},
		{
			name: "labeled does not displace unlabeled on tie",
			formats: youtube.FormatList{
				audioFormat(1, 128000, ""),
				audioFormat(2, 128000, "AUDIO_QUALITY_MEDIUM"),
			},
			wantItag: 1,
		},
		{
			name: "zero bitrate entries lose",
			formats: youtube.FormatList{
				audioFormat(1, 0, ""),
				audioFormat(2, 48000, "AUDIO_QUALITY_LOW"),
			},
			wantItag: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bestAudioFormat(tt.formats)
			require.NoError(t, err)
			assert.Equal(t, tt.wantItag, got.ItagNo)
		})
	}
}

func TestBestAudioFormatNoAudio(t *testing.T) {
	videoOnly := youtube.FormatList{
		{ItagNo: 1, Bitrate: 1000000, AudioChannels: 0},
	}

	_, err := bestAudioFormat(videoOnly)
	assert.ErrorIs(t, err, errNoAudioFormat)

	_, err = bestAudioFormat(nil)
	assert.ErrorIs(t, err, errNoAudioFormat)
}
