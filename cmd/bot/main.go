// cmd/bot/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"ourtube/internal/bot"
	"ourtube/internal/catalog"
	"ourtube/internal/channels"
	"ourtube/internal/config"
	"ourtube/internal/events"
	"ourtube/internal/media"
	"ourtube/internal/progress"
	"ourtube/internal/queue"
	"ourtube/internal/session"
	"ourtube/internal/sink"
	"ourtube/internal/storage"
	v "ourtube/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	store, err := storage.New(ctx, cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}

	q := queue.New()
	if saved, err := store.LoadQueues(); err != nil {
		log.Printf("[INFO] Could not restore queues: %v", err)
	} else {
		for guildID, tracks := range saved {
			q.Restore(guildID, tracks)
		}
	}

	prog := progress.NewMap()
	ev := events.NewDispatcher()
	chmap := channels.NewMap()

	cat := catalog.NewYouTube(cfg.CatalogTimeout)
	opener := media.NewOpener(cat, cfg.MediaTimeout)

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatal(err)
	}

	manager := session.NewManager(session.Deps{
		Queue:        q,
		Progress:     prog,
		Events:       ev,
		Opener:       opener,
		Sink:         sink.NewDiscord(dg),
		PollInterval: cfg.ProgressPoll,
	}, chmap)

	go storage.RunQueueSnapshots(ctx, store, q, cfg.SnapshotEvery)

	b := bot.New(dg, cfg.CommandPrefix, q, ev, chmap, manager)
	if err := b.Start(); err != nil {
		log.Fatal(err)
	}
	log.Printf("[INFO] %v is running. Press Ctrl+C to exit.", v.AppName)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Printf("[INFO] Shutting down...")
	manager.Stop()
	if err := b.Stop(); err != nil {
		log.Printf("[INFO] Gateway close error: %v", err)
	}

	// the datastore's Close waits for its ctx-scoped goroutine to exit
	cancel()
	if err := store.Close(); err != nil {
		log.Printf("[INFO] Storage close error: %v", err)
	}
}
