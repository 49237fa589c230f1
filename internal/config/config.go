package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken      string   `env:"DISCORD_TOKEN,required"`
	DatabasePath      string   `env:"DATABASE_PATH" envDefault:"components.db"`
	DispatchWorkers   int      `env:"DISPATCH_WORKERS" envDefault:"8"`
	DispatchQueue     int      `env:"DISPATCH_QUEUE" envDefault:"64"`
	InitSlashCommands bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	GuildBlacklist    []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
	ReportGuilds      []string `env:"REPORT_GUILDS" envSeparator:","`
}

func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
