package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Caller is the invoking context snapshot the dispatcher hands to CanRun.
// Permission values are the effective channel permissions at invocation time;
// they are never cached between invocations.
type Caller struct {
	GuildID         string
	UserPermissions int64
	BotPermissions  int64
}

// Decision is the outcome of an authorization check. When the user is missing
// permissions the bot set is left empty: the bot comparison is skipped so an
// unauthorized user learns nothing about the bot's own capabilities.
type Decision struct {
	Allowed     bool
	MissingUser []int64
	MissingBot  []int64
}

// CanRun decides whether the caller may run the command. It is pure and
// side-effect free; the dispatcher is responsible for the denial reply.
func CanRun(cmd *Command, caller Caller) Decision {
	if cmd.Visibility == VisibilityGlobal {
		return Decision{Allowed: true}
	}

	missingUser := missingPermissions(cmd.UserPermissions, caller.UserPermissions)
	if len(missingUser) > 0 {
		return Decision{MissingUser: missingUser}
	}

	missingBot := missingPermissions(cmd.BotPermissions, caller.BotPermissions)
	if len(missingBot) > 0 {
		return Decision{MissingBot: missingBot}
	}

	return Decision{Allowed: true}
}

func missingPermissions(required []int64, held int64) []int64 {
	var missing []int64
	for _, p := range required {
		if held&p == 0 {
			missing = append(missing, p)
		}
	}
	return missing
}

// PermissionName returns the human-readable name of a permission flag.
func PermissionName(p int64) string {
	if name, ok := PermissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", p)
}

// PermissionNameList maps a set of permission flags to their names.
func PermissionNameList(perms []int64) []string {
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, PermissionName(p))
	}
	return names
}

var PermissionNames = map[int64]string{
	discordgo.PermissionCreateInstantInvite:              "Create Instant Invite",
	discordgo.PermissionKickMembers:                      "Kick Members",
	discordgo.PermissionBanMembers:                       "Ban Members",
	discordgo.PermissionAdministrator:                    "Administrator",
	discordgo.PermissionManageChannels:                   "Manage Channels",
	discordgo.PermissionManageGuild:                      "Manage Server",
	discordgo.PermissionAddReactions:                     "Add Reactions",
	discordgo.PermissionViewAuditLogs:                    "View Audit Logs",
	discordgo.PermissionViewChannel:                      "View Channel",
	discordgo.PermissionSendMessages:                     "Send Messages",
	discordgo.PermissionSendTTSMessages:                  "Send TTS Messages",
	discordgo.PermissionManageMessages:                   "Manage Messages",
	discordgo.PermissionEmbedLinks:                       "Embed Links",
	discordgo.PermissionAttachFiles:                      "Attach Files",
	discordgo.PermissionReadMessageHistory:               "Read Message History",
	discordgo.PermissionMentionEveryone:                  "Mention Everyone",
	discordgo.PermissionUseExternalEmojis:                "Use External Emojis",
	discordgo.PermissionUseApplicationCommands:           "Use Application Commands",
	discordgo.PermissionManageThreads:                    "Manage Threads",
	discordgo.PermissionCreatePublicThreads:              "Create Public Threads",
	discordgo.PermissionCreatePrivateThreads:             "Create Private Threads",
	discordgo.PermissionUseExternalStickers:              "Use External Stickers",
	discordgo.PermissionSendMessagesInThreads:            "Send Messages in Threads",
	discordgo.PermissionSendVoiceMessages:                "Send Voice Messages",
	discordgo.PermissionSendPolls:                        "Send Polls",
	discordgo.PermissionUseExternalApps:                  "Use External Apps",
	discordgo.PermissionVoicePrioritySpeaker:             "Priority Speaker",
	discordgo.PermissionVoiceStreamVideo:                 "Stream Video",
	discordgo.PermissionVoiceConnect:                     "Connect to Voice Channel",
	discordgo.PermissionVoiceSpeak:                       "Speak",
	discordgo.PermissionVoiceMuteMembers:                 "Mute Members",
	discordgo.PermissionVoiceDeafenMembers:               "Deafen Members",
	discordgo.PermissionVoiceMoveMembers:                 "Move Members",
	discordgo.PermissionVoiceUseVAD:                      "Use Voice Activity Detection",
	discordgo.PermissionVoiceRequestToSpeak:              "Request to Speak",
	discordgo.PermissionUseEmbeddedActivities:            "Use Embedded Activities",
	discordgo.PermissionUseSoundboard:                    "Use Soundboard",
	discordgo.PermissionUseExternalSounds:                "Use External Sounds",
	discordgo.PermissionChangeNickname:                   "Change Nickname",
	discordgo.PermissionManageNicknames:                  "Manage Nicknames",
	discordgo.PermissionManageRoles:                      "Manage Roles",
	discordgo.PermissionManageWebhooks:                   "Manage Webhooks",
	discordgo.PermissionManageGuildExpressions:           "Manage Expressions (Emojis, Stickers, Sounds)",
	discordgo.PermissionManageEvents:                     "Manage Events",
	discordgo.PermissionViewCreatorMonetizationAnalytics: "View Creator Monetization Analytics",
	discordgo.PermissionCreateGuildExpressions:           "Create Expressions (Emojis, Stickers, Sounds)",
	discordgo.PermissionCreateEvents:                     "Create Events",
	discordgo.PermissionViewGuildInsights:                "View Guild Insights",
	discordgo.PermissionModerateMembers:                  "Moderate Members",
}
