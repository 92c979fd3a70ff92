// Package bot is the Discord gateway glue: it translates chat commands
// and voice-state into queue pushes, skip signals and channel selection.
// The playback core never sees Discord types.
package bot

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"ourtube/internal/channels"
	"ourtube/internal/events"
	"ourtube/internal/queue"
	"ourtube/internal/session"
)

type Bot struct {
	dg     *discordgo.Session
	prefix string

	queue    *queue.Store
	events   *events.Dispatcher
	channels *channels.Map
	manager  *session.Manager
}

func New(dg *discordgo.Session, prefix string, q *queue.Store, ev *events.Dispatcher, ch *channels.Map, m *session.Manager) *Bot {
	b := &Bot{
		dg:       dg,
		prefix:   prefix,
		queue:    q,
		events:   ev,
		channels: ch,
		manager:  m,
	}

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentMessageContent

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)

	return b
}

func (b *Bot) Start() error {
	return b.dg.Open()
}

func (b *Bot) Stop() error {
	return b.dg.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[Bot] Logged in as %s, %d guild(s)", r.User.Username, len(r.Guilds))
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[Bot] Joined guild %s (%s)", g.Name, g.ID)
	b.manager.Watch(g.ID)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot || m.GuildID == "" {
		return
	}
	if !strings.HasPrefix(m.Content, b.prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, b.prefix))
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "play":
		if len(fields) < 2 {
			b.reply(m.ChannelID, "Usage: "+b.prefix+"play <track id>")
			return
		}
		b.handlePlay(m, fields[1])
	case "skip":
		b.events.SkipSong(m.GuildID)
	case "queue":
		b.handleQueue(m)
	}
}

func (b *Bot) handlePlay(m *discordgo.MessageCreate, trackID string) {
	channelID, err := b.findUserVoiceChannel(m.GuildID, m.Author.ID)
	if err != nil {
		b.reply(m.ChannelID, "Join a voice channel first.")
		return
	}

	b.channels.Set(m.GuildID, channelID)
	b.manager.Watch(m.GuildID)
	b.queue.Push(m.GuildID, trackID)
	b.reply(m.ChannelID, "Queued "+trackID)
}

func (b *Bot) handleQueue(m *discordgo.MessageCreate) {
	tracks := b.queue.List(m.GuildID)
	if len(tracks) == 0 {
		b.reply(m.ChannelID, "Queue is empty.")
		return
	}

	var sb strings.Builder
	for i, id := range tracks {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, id)
	}
	b.reply(m.ChannelID, sb.String())
}

// findUserVoiceChannel locates the voice channel the user currently sits
// in, from the gateway's cached guild state.
func (b *Bot) findUserVoiceChannel(guildID, userID string) (string, error) {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return "", fmt.Errorf("error retrieving guild: %w", err)
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return vs.ChannelID, nil
		}
	}
	return "", fmt.Errorf("user not in any voice channel")
}

func (b *Bot) reply(channelID, content string) {
	if _, err := b.dg.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("[Bot] Failed to send message: %v", err)
	}
}
