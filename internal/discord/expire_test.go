package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisableExpiredRows(t *testing.T) {
	rows := []discordgo.MessageComponent{
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.Button{Label: "Flip again", Style: discordgo.PrimaryButton, CustomID: "expired-1"},
			&discordgo.Button{Label: "Docs", Style: discordgo.LinkButton, URL: "https://example.com"},
		}},
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.SelectMenu{CustomID: "live-1", Options: []discordgo.SelectMenuOption{{Label: "a", Value: "a"}}},
		}},
	}

	lookups := map[string]int{}
	out := disableExpiredRows(rows, func(id string) bool {
		lookups[id]++
		return id == "expired-1"
	})

	require.Len(t, out, 2, "row grouping is preserved")

	first, ok := out[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, first.Components, 2)

	disabled, ok := first.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.True(t, disabled.Disabled)
	assert.Equal(t, "Flip again", disabled.Label, "label survives the disabled copy")
	assert.Equal(t, discordgo.PrimaryButton, disabled.Style, "style survives the disabled copy")

	// The link button has no custom ID; it is passed through untouched and
	// never looked up.
	assert.Same(t, rows[0].(*discordgo.ActionsRow).Components[1], first.Components[1])

	second, ok := out[1].(discordgo.ActionsRow)
	require.True(t, ok)
	live, ok := second.Components[0].(*discordgo.SelectMenu)
	require.True(t, ok)
	assert.False(t, live.Disabled)

	assert.Equal(t, map[string]int{"expired-1": 1, "live-1": 1}, lookups)
}

func TestDisableExpiredRowsAllExpired(t *testing.T) {
	rows := []discordgo.MessageComponent{
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.Button{Label: "a", CustomID: "x"},
			&discordgo.SelectMenu{CustomID: "y"},
		}},
	}

	out := disableExpiredRows(rows, func(string) bool { return true })

	row := out[0].(discordgo.ActionsRow)
	assert.True(t, row.Components[0].(discordgo.Button).Disabled)
	assert.True(t, row.Components[1].(discordgo.SelectMenu).Disabled)
}
