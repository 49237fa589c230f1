package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// disableExpiredComponents re-renders the message the callback came from,
// disabling every element whose correlation record is expired and removing
// those records. The rebuilt layout is pushed with a single edit so concurrent
// callbacks cannot race over multiple partial edits.
func (b *Bot) disableExpiredComponents(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Message == nil {
		return
	}

	rows := disableExpiredRows(i.Message.Components, func(id string) bool {
		entity := b.store.Retrieve(ctx, id)
		if !entity.IsExpired(time.Now()) {
			return false
		}
		if err := b.store.Remove(ctx, id); err != nil {
			log.Printf("[ERR] Failed to remove expired component %s: %v", id, err)
		}
		return true
	})

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{Components: rows},
	})
	if err != nil {
		log.Printf("[ERR] Failed to disable expired components on message %s: %v", i.Message.ID, err)
	}
}

// disableExpiredRows rebuilds the action rows, replacing every element whose
// ID the expired func reports as dead with a disabled copy of itself. Row
// grouping and element order are preserved.
func disableExpiredRows(rows []discordgo.MessageComponent, expired func(id string) bool) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			out = append(out, row)
			continue
		}

		items := make([]discordgo.MessageComponent, 0, len(actionsRow.Components))
		for _, item := range actionsRow.Components {
			items = append(items, disableIfExpired(item, expired))
		}
		out = append(out, discordgo.ActionsRow{Components: items})
	}
	return out
}

func disableIfExpired(item discordgo.MessageComponent, expired func(id string) bool) discordgo.MessageComponent {
	switch c := item.(type) {
	case *discordgo.Button:
		if c.CustomID == "" || !expired(c.CustomID) {
			return item
		}
		disabled := *c
		disabled.Disabled = true
		return disabled
	case *discordgo.SelectMenu:
		if c.CustomID == "" || !expired(c.CustomID) {
			return item
		}
		disabled := *c
		disabled.Disabled = true
		return disabled
	default:
		return item
	}
}
