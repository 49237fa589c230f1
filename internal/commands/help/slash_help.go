package help

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-herald/internal/command"
	"github.com/keshon/server-herald/internal/version"
)

const name = "help"

// New returns the global /help command listing every registered command.
func New() *command.Command {
	return &command.Command{
		Name:        name,
		Description: "Lists available commands",
		Visibility:  command.VisibilityGlobal,
		Slash: &discordgo.ApplicationCommand{
			Name:        name,
			Description: "Lists available commands",
		},
		Run: run,
	}
}

func run(ctx *command.SlashContext) error {
	var sb strings.Builder
	for _, cmd := range ctx.Registry.All() {
		desc := cmd.Description
		if desc == "" {
			desc = "—"
		}
		fmt.Fprintf(&sb, "`%s` · %s · %s\n", cmd.Name, cmd.Visibility, desc)
	}

	return command.RespondEmbedEphemeral(ctx.Session, ctx.Event, &discordgo.MessageEmbed{
		Title:       version.AppFullName + " commands",
		Description: sb.String(),
		Color:       command.EmbedColor,
	})
}
