package discord

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/keshon/server-herald/internal/command"
)

// Discord allows roughly 200 command writes per day per guild; pace the burst
// on startup well below the global REST limit.
var registerLimiter = rate.NewLimiter(rate.Every(time.Second/40), 1)

// definitionsFor returns the Discord-facing definitions a command carries.
// Types were normalized by command.Build; guild registration runs on several
// handler goroutines at once, so this must stay a pure reader.
func definitionsFor(cmd *command.Command) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	if cmd.Slash != nil {
		defs = append(defs, cmd.Slash)
	}
	if cmd.UserMenu != nil {
		defs = append(defs, cmd.UserMenu)
	}
	if cmd.MessageMenu != nil {
		defs = append(defs, cmd.MessageMenu)
	}
	return defs
}

// registerGlobalCommands overwrites the application-wide command set with all
// global-visibility commands.
func (b *Bot) registerGlobalCommands() error {
	appID, err := b.applicationID()
	if err != nil {
		return err
	}

	var defs []*discordgo.ApplicationCommand
	for _, cmd := range b.registry.All() {
		if cmd.Visibility == command.VisibilityGlobal {
			defs = append(defs, definitionsFor(cmd)...)
		}
	}

	if _, err := b.dg.ApplicationCommandBulkOverwrite(appID, "", defs); err != nil {
		return fmt.Errorf("overwrite global commands: %w", err)
	}
	log.Printf("[INFO] Registered %d global command definitions", len(defs))
	return nil
}

// registerGuildCommands registers guild-only commands plus the private
// commands enabled in this guild. A private command never reaches a guild
// outside its allow-list; it simply does not exist there. Definition hashes
// are cached locally so unchanged commands are not re-sent on every start.
func (b *Bot) registerGuildCommands(guildID string) error {
	appID, err := b.applicationID()
	if err != nil {
		return err
	}

	var wanted []*discordgo.ApplicationCommand
	for _, cmd := range b.registry.All() {
		switch cmd.Visibility {
		case command.VisibilityGuildOnly:
			wanted = append(wanted, definitionsFor(cmd)...)
		case command.VisibilityPrivate:
			if cmd.EnabledIn(guildID) {
				wanted = append(wanted, definitionsFor(cmd)...)
			}
		}
	}

	wantedHashes := make(map[string]string, len(wanted))
	for _, def := range wanted {
		wantedHashes[defKey(def)] = hashCommand(def)
	}

	localHashes := loadGuildCommandHashes(guildID)

	// A failed listing must not look like "no commands exist": skip the
	// obsolete-delete pass and let creates proceed against the hash cache.
	existing, err := b.dg.ApplicationCommands(appID, guildID)
	if err != nil {
		log.Printf("[ERR] [%s] Failed to list existing commands: %v", guildID, err)
		existing = nil
	}

	// Delete obsolete
	for _, old := range existing {
		key := fmt.Sprintf("%s/%d", old.Name, old.Type)
		if _, ok := wantedHashes[key]; ok {
			continue
		}
		log.Printf("[INFO] [%s] Deleting obsolete command: %s", guildID, old.Name)
		_ = registerLimiter.Wait(context.Background())
		if err := b.dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
			log.Printf("[ERR] [%s] Failed to delete %s: %v", guildID, old.Name, err)
		}
		delete(localHashes, key)
	}

	// Create or update changed commands
	for _, def := range wanted {
		key := defKey(def)
		if localHashes[key] == wantedHashes[key] {
			continue
		}
		_ = registerLimiter.Wait(context.Background())
		if _, err := b.dg.ApplicationCommandCreate(appID, guildID, def); err != nil {
			log.Printf("[ERR] [%s] Can't create command %s: %v", guildID, def.Name, err)
			continue
		}
		log.Printf("[DONE] [%s] Command registered: %s", guildID, def.Name)
		localHashes[key] = wantedHashes[key]
	}

	saveGuildCommandHashes(guildID, localHashes)
	return nil
}

func defKey(def *discordgo.ApplicationCommand) string {
	return fmt.Sprintf("%s/%d", def.Name, def.Type)
}

func (b *Bot) applicationID() (string, error) {
	if b.dg.State.User != nil && b.dg.State.User.ID != "" {
		return b.dg.State.User.ID, nil
	}
	user, err := b.dg.User("@me")
	if err != nil {
		return "", fmt.Errorf("fetch self: %w", err)
	}
	return user.ID, nil
}
