// Package report implements the moderation report commands: a slash command
// plus user and message context menu variants. All three collect details
// through a modal whose custom ID remembers the reported target until the
// submission comes back.
package report

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-herald/internal/command"
	"github.com/keshon/server-herald/internal/components"
)

const (
	slashName   = "report"
	userName    = "Report User"
	messageName = "Report Message"
)

// New returns the /report slash command. Visibility is private: only the
// given guilds receive the command at all.
func New(enabledGuilds ...string) *command.Command {
	return &command.Command{
		Name:            slashName,
		Description:     "Report a member to the moderators",
		Visibility:      command.VisibilityPrivate,
		EnabledGuilds:   enabledGuilds,
		UserPermissions: []int64{discordgo.PermissionModerateMembers},
		BotPermissions:  []int64{discordgo.PermissionManageMessages},
		Slash: &discordgo.ApplicationCommand{
			Name:        slashName,
			Description: "Report a member to the moderators",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The member to report",
					Required:    true,
				},
			},
		},
		Run:     runSlash,
		OnModal: onModal,
	}
}

// NewUserMenu returns the "Report User" context menu variant.
func NewUserMenu(enabledGuilds ...string) *command.Command {
	return &command.Command{
		Name:            userName,
		Visibility:      command.VisibilityPrivate,
		EnabledGuilds:   enabledGuilds,
		UserPermissions: []int64{discordgo.PermissionModerateMembers},
		BotPermissions:  []int64{discordgo.PermissionManageMessages},
		UserMenu:        &discordgo.ApplicationCommand{Name: userName},
		RunUser:         runUserMenu,
		OnModal:         onModal,
	}
}

// NewMessageMenu returns the "Report Message" context menu variant.
func NewMessageMenu(enabledGuilds ...string) *command.Command {
	return &command.Command{
		Name:            messageName,
		Visibility:      command.VisibilityPrivate,
		EnabledGuilds:   enabledGuilds,
		UserPermissions: []int64{discordgo.PermissionModerateMembers},
		BotPermissions:  []int64{discordgo.PermissionManageMessages},
		MessageMenu:     &discordgo.ApplicationCommand{Name: messageName},
		RunMessage:      runMessageMenu,
		OnModal:         onModal,
	}
}

func runSlash(ctx *command.SlashContext) error {
	data := ctx.Event.ApplicationCommandData()
	if len(data.Options) == 0 {
		return fmt.Errorf("report invoked without a user option")
	}
	userID, _ := data.Options[0].Value.(string)
	return openModal(ctx.Session, ctx.Event, ctx.Components,
		slashName, int(discordgo.ChatApplicationCommand), "user", userID)
}

func runUserMenu(ctx *command.UserContext) error {
	if ctx.Target == nil {
		return fmt.Errorf("report user menu without a resolved target")
	}
	return openModal(ctx.Session, ctx.Event, ctx.Components,
		userName, int(discordgo.UserApplicationCommand), "user", ctx.Target.ID)
}

func runMessageMenu(ctx *command.MessageContext) error {
	if ctx.Target == nil {
		return fmt.Errorf("report message menu without a resolved target")
	}
	return openModal(ctx.Session, ctx.Event, ctx.Components,
		messageName, int(discordgo.MessageApplicationCommand), "message", ctx.Target.ID)
}

// openModal stores the reported target with the modal's ID and shows the
// reason form. The row never expires on its own; the dispatcher removes it
// once the submission is handled.
func openModal(s *discordgo.Session, e *discordgo.InteractionCreate, store *components.Store,
	listener string, kind int, targetKind, targetID string) error {

	id, err := store.CreateID(context.Background(), listener, kind, nil, targetKind, targetID)
	if err != nil {
		return fmt.Errorf("create modal id: %w", err)
	}

	return command.RespondModal(s, e, id, "Report",
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "reason",
					Label:       "Reason",
					Style:       discordgo.TextInputParagraph,
					Placeholder: "What happened?",
					Required:    true,
					MaxLength:   1000,
				},
			},
		},
	)
}

func onModal(ctx *command.ModalContext) error {
	args := ctx.Entity.Arguments
	if len(args) < 2 {
		return fmt.Errorf("report modal %s has malformed arguments: %v", ctx.Entity.ID, args)
	}
	targetKind, targetID := args[0], args[1]

	reason := textInputValue(ctx.Event.ModalSubmitData(), "reason")
	if reason == "" {
		return fmt.Errorf("report modal %s submitted without a reason", ctx.Entity.ID)
	}

	log.Printf("[INFO] Report filed in guild %s: %s %s, reason: %q",
		ctx.Event.GuildID, targetKind, targetID, reason)

	return command.RespondEmbedEphemeral(ctx.Session, ctx.Event, &discordgo.MessageEmbed{
		Title:       "Report submitted",
		Description: fmt.Sprintf("Your report about %s `%s` has been passed to the moderators.", targetKind, targetID),
		Color:       command.EmbedColor,
	})
}

// textInputValue digs the named text input out of the submitted modal rows.
func textInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, item := range actionsRow.Components {
			if input, ok := item.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
