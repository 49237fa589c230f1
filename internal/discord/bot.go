package discord

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-herald/internal/command"
	"github.com/keshon/server-herald/internal/components"
	"github.com/keshon/server-herald/internal/config"
	"github.com/keshon/server-herald/pkg/workpool"
)

// Bot is a Discord bot. It owns the gateway session, the command registry, the
// component correlation store and the dispatch worker pool.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	registry *command.Registry
	store    *components.Store
	pool     *workpool.Pool
}

// NewBot creates a Bot around an already-built registry and store.
func NewBot(cfg *config.Config, registry *command.Registry, store *components.Store) *Bot {
	return &Bot{
		cfg:      cfg,
		registry: registry,
		store:    store,
		pool:     workpool.New(cfg.DispatchWorkers, cfg.DispatchQueue),
	}
}

// Run starts the Discord bot and blocks until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onGuildCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")

	// Close the gateway before stopping the pool so no new interactions arrive
	// while the queue drains.
	if err := dg.Close(); err != nil {
		log.Printf("[WARN] Error closing Discord session: %v", err)
	}
	b.pool.Stop()
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
}

// onReady is called when the bot is ready.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	botInfo, err := s.User("@me")
	if err != nil {
		log.Println("[WARN] Error retrieving bot user:", err)
		return
	}

	if b.cfg.InitSlashCommands {
		if err := b.registerGlobalCommands(); err != nil {
			log.Println("[ERR] Error registering global commands:", err)
		}
	} else {
		log.Println("[INFO] Registering slash commands skipped")
	}

	for _, g := range r.Guilds {
		if b.isGuildBlacklisted(g.ID) {
			log.Printf("[INFO] Leaving blacklisted guild: %s", g.ID)
			if err := s.GuildLeave(g.ID); err != nil {
				log.Printf("[ERR] Failed to leave guild %s: %v", g.ID, err)
			}
			continue
		}

		if b.cfg.InitSlashCommands {
			if err := b.registerGuildCommands(g.ID); err != nil {
				log.Println("[ERR] Error registering commands for guild", g.ID, ":", err)
			}
		}
	}

	log.Printf("[INFO] ✅ Discord bot %v is running.", botInfo.Username)
}

// onGuildCreate is called when the bot joins a guild.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.ID, g.Guild.Name)

	if b.isGuildBlacklisted(g.Guild.ID) {
		log.Printf("[INFO] Leaving blacklisted guild: %s (%s)", g.Guild.ID, g.Guild.Name)
		if err := s.GuildLeave(g.Guild.ID); err != nil {
			log.Printf("[ERR] Failed to leave guild %s: %v", g.Guild.ID, err)
		}
		return
	}

	if err := b.registerGuildCommands(g.Guild.ID); err != nil {
		log.Printf("[ERR] Failed to register commands for new guild %s: %v", g.Guild.ID, err)
	}
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.GuildBlacklist, guildID)
}
