// Package config reads bot configuration from the environment, with an
// optional .env file for local runs.
package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	StoragePath   string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!"`

	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`
	MediaTimeout   time.Duration `env:"MEDIA_TIMEOUT" envDefault:"30s"`
	ProgressPoll   time.Duration `env:"PROGRESS_POLL_INTERVAL" envDefault:"100ms"`
	SnapshotEvery  time.Duration `env:"QUEUE_SNAPSHOT_INTERVAL" envDefault:"5s"`
}

func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
