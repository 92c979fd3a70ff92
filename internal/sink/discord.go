package sink

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/bwmarrin/discordgo"
	"layeh.com/gopus"
)

const (
	channels   = 2
	sampleRate = 48000
	frameSize  = 960 // 20ms at 48kHz
)

// Discord streams PCM audio into a guild voice connection, opus-encoded
// frame by frame.
type Discord struct {
	dg *discordgo.Session
}

func NewDiscord(dg *discordgo.Session) *Discord {
	return &Discord{dg: dg}
}

func (d *Discord) Join(ctx context.Context, guildID, channelID string) (Handle, error) {
	vc, err := d.dg.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, fmt.Errorf("failed to join voice channel %s: %w", channelID, err)
	}
	return &discordHandle{vc: vc}, nil
}

type discordHandle struct {
	vc *discordgo.VoiceConnection
}

func (h *discordHandle) Accept(stream io.Reader, stop <-chan struct{}) error {
	encoder, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		return fmt.Errorf("encoder error: %w", err)
	}

	h.vc.Speaking(true)
	defer h.vc.Speaking(false)

	pcmBuf := make([]byte, frameSize*channels*2)
	intBuf := make([]int16, frameSize*channels)

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		n, err := io.ReadFull(stream, pcmBuf)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			// pad the final partial frame so the tail still plays
			for i := n; i < len(pcmBuf); i++ {
				pcmBuf[i] = 0
			}
		} else if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		for i := range intBuf {
			intBuf[i] = int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
		}

		opus, encErr := encoder.Encode(intBuf, frameSize, len(pcmBuf))
		if encErr != nil {
			return fmt.Errorf("encode error: %w", encErr)
		}

		select {
		case h.vc.OpusSend <- opus:
		case <-stop:
			return nil
		}

		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}
	}
}

func (h *discordHandle) Close() error {
	return h.vc.Disconnect()
}
