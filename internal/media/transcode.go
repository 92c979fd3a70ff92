package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
)

const (
	channels    = 2
	sampleRate  = 48000
	volumeScale = "0.3"
)

// transcode pipes src through an ffmpeg child process normalizing to
// stereo 48kHz signed 16-bit PCM with a fixed attenuation. The cleanup
// closes src, kills ffmpeg and reaps it; skipping it leaks a process per
// track.
func transcode(ctx context.Context, src io.ReadCloser) (io.ReadCloser, func(), error) {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", "pipe:0",
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"-af", "volume="+volumeScale,
		"-loglevel", "warning",
		"pipe:1",
	)

	cmd.Stdin = src
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("ffmpeg stdout pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	cleanup := func() {
		src.Close()
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
		if err := cmd.Wait(); err != nil {
			log.Printf("[Media] ffmpeg exited: %v", err)
		}
	}

	return out, cleanup, nil
}
