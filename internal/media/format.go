package media

import (
	"errors"

	youtube "github.com/kkdai/youtube/v2"
)

var errNoAudioFormat = errors.New("no audio formats available")

// bestAudioFormat picks the candidate with the highest bitrate among the
// formats that carry audio. On a bitrate tie a format without an audio
// quality label wins over a labeled one.
func bestAudioFormat(formats youtube.FormatList) (*youtube.Format, error) {
	audio := formats.WithAudioChannels()
	if len(audio) == 0 {
		return nil, errNoAudioFormat
	}

	best := &audio[0]
	for i := 1; i < len(audio); i++ {
		f := &audio[i]
		switch {
		case f.Bitrate > best.Bitrate:
			best = f
		case f.Bitrate == best.Bitrate && f.AudioQuality == "" && best.AudioQuality != "":
			best = f
		}
	}
	return best, nil
}
