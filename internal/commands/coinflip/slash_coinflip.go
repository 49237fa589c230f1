package coinflip

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-herald/internal/command"
)

const (
	name     = "coin-flip"
	retryTTL = 15 * time.Minute
)

// New returns the /coin-flip command. The reply carries a "Flip again" button
// whose custom ID correlates back to this command through the component store.
func New() *command.Command {
	return &command.Command{
		Name:        name,
		Description: "Flips a coin for you",
		Visibility:  command.VisibilityGuildOnly,
		Slash: &discordgo.ApplicationCommand{
			Name:        name,
			Description: "Flips a coin for you",
		},
		Run:      run,
		OnButton: onButton,
	}
}

func run(ctx *command.SlashContext) error {
	expire := time.Now().Add(retryTTL)
	id, err := ctx.Components.CreateID(context.Background(), name,
		int(discordgo.ChatApplicationCommand), &expire, "retry")
	if err != nil {
		return fmt.Errorf("create retry button id: %w", err)
	}

	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{flipEmbed()},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label:    "Flip again",
							Style:    discordgo.PrimaryButton,
							CustomID: id,
						},
					},
				},
			},
		},
	})
}

func onButton(ctx *command.ComponentContext) error {
	args := ctx.Entity.Arguments
	if len(args) == 0 || args[0] != "retry" {
		return fmt.Errorf("unknown coin-flip button arguments: %v", args)
	}
	return command.UpdateEmbed(ctx.Session, ctx.Event, flipEmbed())
}

func flipEmbed() *discordgo.MessageEmbed {
	result := "Heads!"
	if rand.IntN(2) == 0 {
		result = "Tails!"
	}
	return &discordgo.MessageEmbed{
		Description: result,
		Color:       command.EmbedColor,
	}
}
