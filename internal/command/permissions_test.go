package command

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func guildCmd() *Command {
	return &Command{
		Name:            "report",
		Visibility:      VisibilityGuildOnly,
		UserPermissions: []int64{discordgo.PermissionModerateMembers, discordgo.PermissionManageMessages},
		BotPermissions:  []int64{discordgo.PermissionBanMembers},
	}
}

func TestCanRunGlobalSkipsPermissionChecks(t *testing.T) {
	cmd := guildCmd()
	cmd.Visibility = VisibilityGlobal

	d := CanRun(cmd, Caller{})
	assert.True(t, d.Allowed)
	assert.Empty(t, d.MissingUser)
	assert.Empty(t, d.MissingBot)
}

func TestCanRunAllowsWhenAllPermissionsHeld(t *testing.T) {
	d := CanRun(guildCmd(), Caller{
		UserPermissions: discordgo.PermissionModerateMembers | discordgo.PermissionManageMessages,
		BotPermissions:  discordgo.PermissionBanMembers,
	})
	assert.True(t, d.Allowed)
}

func TestCanRunReportsMissingUserPermissions(t *testing.T) {
	d := CanRun(guildCmd(), Caller{
		UserPermissions: discordgo.PermissionModerateMembers,
		BotPermissions:  discordgo.PermissionBanMembers,
	})
	assert.False(t, d.Allowed)
	assert.Equal(t, []int64{discordgo.PermissionManageMessages}, d.MissingUser)
	assert.Empty(t, d.MissingBot)
}

func TestCanRunShortCircuitsBotCheck(t *testing.T) {
	// User and bot are both lacking; only the user set may be reported so an
	// unauthorized user learns nothing about the bot's capabilities.
	d := CanRun(guildCmd(), Caller{})
	assert.False(t, d.Allowed)
	assert.Equal(t,
		[]int64{discordgo.PermissionModerateMembers, discordgo.PermissionManageMessages},
		d.MissingUser)
	assert.Empty(t, d.MissingBot)
}

func TestCanRunReportsMissingBotPermissions(t *testing.T) {
	d := CanRun(guildCmd(), Caller{
		UserPermissions: discordgo.PermissionModerateMembers | discordgo.PermissionManageMessages,
	})
	assert.False(t, d.Allowed)
	assert.Empty(t, d.MissingUser)
	assert.Equal(t, []int64{discordgo.PermissionBanMembers}, d.MissingBot)
}

func TestCanRunPrivateUsesSamePermissionChecks(t *testing.T) {
	cmd := guildCmd()
	cmd.Visibility = VisibilityPrivate
	cmd.EnabledGuilds = []string{"707295470661140562"}

	d := CanRun(cmd, Caller{
		GuildID:         "707295470661140562",
		UserPermissions: discordgo.PermissionModerateMembers | discordgo.PermissionManageMessages,
		BotPermissions:  discordgo.PermissionBanMembers,
	})
	assert.True(t, d.Allowed)
}

func TestPermissionName(t *testing.T) {
	assert.Equal(t, "Ban Members", PermissionName(discordgo.PermissionBanMembers))
	assert.Equal(t, "0x4000000000000000", PermissionName(1<<62))

	assert.Equal(t,
		[]string{"Moderate Members", "Manage Messages"},
		PermissionNameList([]int64{discordgo.PermissionModerateMembers, discordgo.PermissionManageMessages}))
}
