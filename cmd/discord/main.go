package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/keshon/server-herald/internal/command"
	"github.com/keshon/server-herald/internal/commands/coinflip"
	"github.com/keshon/server-herald/internal/commands/help"
	"github.com/keshon/server-herald/internal/commands/report"
	"github.com/keshon/server-herald/internal/components"
	"github.com/keshon/server-herald/internal/config"
	"github.com/keshon/server-herald/internal/discord"
	"github.com/keshon/server-herald/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", version.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	store, err := components.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	registry, err := command.Build([]*command.Command{
		help.New(),
		coinflip.New(),
		report.New(cfg.ReportGuilds...),
		report.NewUserMenu(cfg.ReportGuilds...),
		report.NewMessageMenu(cfg.ReportGuilds...),
	})
	if err != nil {
		log.Fatal(err)
	}

	bot := discord.NewBot(cfg, registry, store)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
