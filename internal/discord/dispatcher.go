package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-herald/internal/command"
)

const genericFailureReply = "Something went wrong."

// onInteractionCreate is the single entry point for every inbound interaction.
// It classifies the event and hands the actual work to the worker pool; no
// handler code ever runs on the gateway goroutine, so a slow handler cannot
// stall delivery of other events.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var task func()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		task = func() { b.dispatchCommand(s, i) }
	case discordgo.InteractionApplicationCommandAutocomplete:
		task = func() { b.dispatchAutocomplete(s, i) }
	case discordgo.InteractionMessageComponent:
		task = func() { b.dispatchComponent(s, i) }
	case discordgo.InteractionModalSubmit:
		task = func() { b.dispatchModal(s, i) }
	default:
		return
	}

	if !b.pool.TrySubmit(task) {
		log.Printf("[WARN] Dispatch queue full, dropping interaction %s (%d rejected total)", i.ID, b.pool.Rejected())
	}
}

// dispatchCommand handles a direct command invocation: registry lookup,
// authorization gate, then the matching handler.
func (b *Bot) dispatchCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	cmd := b.registry.ByKind(data.CommandType, data.Name)
	if cmd == nil {
		// Discord should never report a command that was not registered.
		log.Printf("[ERR] %v command %q not found in registry", data.CommandType, data.Name)
		b.respondGenericFailure(s, i)
		return
	}

	if !cmd.EnabledIn(i.GuildID) {
		log.Printf("[ERR] Private command %q invoked from guild %s where it is not enabled", cmd.Name, i.GuildID)
		b.respondGenericFailure(s, i)
		return
	}

	caller := command.Caller{GuildID: i.GuildID}
	if cmd.Visibility != command.VisibilityGlobal {
		if i.Member == nil {
			log.Printf("[ERR] Guild command %q invoked without member context", cmd.Name)
			b.respondGenericFailure(s, i)
			return
		}
		caller.UserPermissions = i.Member.Permissions

		botPerms, err := s.UserChannelPermissions(s.State.User.ID, i.ChannelID)
		if err != nil {
			log.Printf("[ERR] Failed to resolve bot permissions in channel %s: %v", i.ChannelID, err)
			b.respondGenericFailure(s, i)
			return
		}
		caller.BotPermissions = botPerms
	}

	decision := command.CanRun(cmd, caller)
	if !decision.Allowed {
		b.respondDenied(s, i, decision)
		return
	}

	var err error
	switch data.CommandType {
	case discordgo.ChatApplicationCommand:
		err = cmd.Run(&command.SlashContext{
			Session:    s,
			Event:      i,
			Components: b.store,
			Registry:   b.registry,
		})
	case discordgo.UserApplicationCommand:
		var target *discordgo.User
		if data.Resolved != nil {
			target = data.Resolved.Users[data.TargetID]
		}
		err = cmd.RunUser(&command.UserContext{
			Session:    s,
			Event:      i,
			Components: b.store,
			Target:     target,
		})
	case discordgo.MessageApplicationCommand:
		var target *discordgo.Message
		if data.Resolved != nil {
			target = data.Resolved.Messages[data.TargetID]
		}
		err = cmd.RunMessage(&command.MessageContext{
			Session:    s,
			Event:      i,
			Components: b.store,
			Target:     target,
		})
	}
	if err != nil {
		log.Printf("[ERR] Error running command %s: %v", cmd.Name, err)
		b.respondGenericFailure(s, i)
	}
}

// dispatchComponent handles button and select menu callbacks. The custom ID is
// the key into the correlation store; an empty entity means the callback is
// stale or foreign and is ignored, an expired one disables the message's dead
// elements in place without invoking any handler.
func (b *Bot) dispatchComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	data := i.MessageComponentData()

	entity := b.store.Retrieve(ctx, data.CustomID)
	if entity.IsEmpty() {
		log.Printf("[WARN] Stale or foreign component callback: %s", data.CustomID)
		return
	}

	if entity.IsExpired(time.Now()) {
		b.disableExpiredComponents(ctx, s, i)
		return
	}

	cmd := b.registry.ByName(entity.ListenerID)
	if cmd == nil {
		log.Printf("[ERR] Component %s references unknown command %q", entity.ID, entity.ListenerID)
		b.respondGenericFailure(s, i)
		return
	}

	callback := componentCallback(cmd, data.ComponentType)
	if callback == nil {
		log.Printf("[ERR] Command %q has no handler for component type %d", cmd.Name, data.ComponentType)
		b.respondGenericFailure(s, i)
		return
	}

	err := callback(&command.ComponentContext{
		Session:    s,
		Event:      i,
		Components: b.store,
		Entity:     entity,
	})
	if err != nil {
		log.Printf("[ERR] Error running component callback for %s: %v", cmd.Name, err)
		b.respondGenericFailure(s, i)
	}
}

// componentCallback picks the handler matching the pressed element's type, or
// nil when the command does not implement it.
func componentCallback(cmd *command.Command, kind discordgo.ComponentType) func(*command.ComponentContext) error {
	if kind == discordgo.ButtonComponent {
		return cmd.OnButton
	}
	return cmd.OnSelect
}

// dispatchAutocomplete forwards option suggestion events to the owning
// command. There is no failure reply on this path: Discord simply shows an
// empty suggestion list when no choices arrive.
func (b *Bot) dispatchAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	cmd := b.registry.ByName(data.Name)
	if cmd == nil || cmd.OnAutocomplete == nil {
		log.Printf("[ERR] Autocomplete for %q has no registered provider", data.Name)
		return
	}

	err := cmd.OnAutocomplete(&command.AutocompleteContext{
		Session:    s,
		Event:      i,
		Components: b.store,
	})
	if err != nil {
		log.Printf("[ERR] Error running autocomplete for %s: %v", cmd.Name, err)
	}
}

// dispatchModal handles modal submissions. Expiry is not re-checked here,
// modals are short-lived by construction; the row is removed after the handler
// returns so a submission is one-shot.
func (b *Bot) dispatchModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	data := i.ModalSubmitData()

	entity := b.store.Retrieve(ctx, data.CustomID)
	if entity.IsEmpty() {
		log.Printf("[WARN] Modal submission with unknown id: %s", data.CustomID)
		b.respondGenericFailure(s, i)
		return
	}

	cmd := b.registry.ByName(entity.ListenerID)
	if cmd == nil || cmd.OnModal == nil {
		log.Printf("[ERR] Modal %s references command %q with no modal handler", entity.ID, entity.ListenerID)
		b.respondGenericFailure(s, i)
		return
	}

	err := cmd.OnModal(&command.ModalContext{
		Session:    s,
		Event:      i,
		Components: b.store,
		Entity:     entity,
	})
	if err != nil {
		log.Printf("[ERR] Error running modal handler for %s: %v", cmd.Name, err)
		b.respondGenericFailure(s, i)
	}

	if err := b.store.Remove(ctx, entity.ID); err != nil {
		log.Printf("[ERR] Failed to remove modal component %s: %v", entity.ID, err)
	}
}

func (b *Bot) respondGenericFailure(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := command.RespondEphemeral(s, i, genericFailureReply); err != nil {
		log.Printf("[ERR] Failed to send failure reply: %v", err)
	}
}

// respondDenied names the missing permissions. The gate guarantees the bot set
// is only populated when the user set is empty.
func (b *Bot) respondDenied(s *discordgo.Session, i *discordgo.InteractionCreate, d command.Decision) {
	subject := "You are"
	missing := d.MissingUser
	if len(missing) == 0 {
		subject = "The bot is"
		missing = d.MissingBot
	}

	embed := &discordgo.MessageEmbed{
		Title: "Lacking permissions!",
		Description: fmt.Sprintf("%s missing `%s`.", subject,
			strings.Join(command.PermissionNameList(missing), "`, `")),
		Color: command.EmbedColor,
	}
	if err := command.RespondEmbedEphemeral(s, i, embed); err != nil {
		log.Printf("[ERR] Failed to send denial reply: %v", err)
	}
}
