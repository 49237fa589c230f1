package command

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-herald/internal/components"
)

// Visibility controls where a command is registered and who may invoke it.
type Visibility int

const (
	// VisibilityGlobal commands are registered application-wide and always invokable.
	VisibilityGlobal Visibility = iota
	// VisibilityGuildOnly commands are registered per guild and permission-checked.
	VisibilityGuildOnly
	// VisibilityPrivate commands are registered only in EnabledGuilds.
	VisibilityPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisibilityGlobal:
		return "global"
	case VisibilityGuildOnly:
		return "guild-only"
	case VisibilityPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// Command describes a single interaction command. A command declares which
// capabilities it implements by setting the matching definition and handler;
// dispatch is done by presence-check, never by type inspection. Commands are
// built once at startup and shared read-only between dispatcher workers.
type Command struct {
	Name        string
	Description string

	Visibility    Visibility
	EnabledGuilds []string

	UserPermissions []int64
	BotPermissions  []int64

	// Definitions registered with Discord. Slash maps to a chat input command,
	// UserMenu/MessageMenu to the respective context menus. Definition names
	// must equal Name so callbacks route back to this command.
	Slash       *discordgo.ApplicationCommand
	UserMenu    *discordgo.ApplicationCommand
	MessageMenu *discordgo.ApplicationCommand

	Run        func(*SlashContext) error
	RunUser    func(*UserContext) error
	RunMessage func(*MessageContext) error

	OnButton func(*ComponentContext) error
	OnSelect func(*ComponentContext) error
	OnModal  func(*ModalContext) error

	// OnAutocomplete supplies option suggestions while the user is still
	// typing the slash command; respond with RespondChoices.
	OnAutocomplete func(*AutocompleteContext) error
}

// EnabledIn reports whether a private command is allowed in the given guild.
// Non-private commands are enabled everywhere.
func (c *Command) EnabledIn(guildID string) bool {
	if c.Visibility != VisibilityPrivate {
		return true
	}
	for _, id := range c.EnabledGuilds {
		if id == guildID {
			return true
		}
	}
	return false
}

// SlashContext is handed to Run when a user invokes the slash command.
type SlashContext struct {
	Session    *discordgo.Session
	Event      *discordgo.InteractionCreate
	Components *components.Store
	Registry   *Registry
}

// UserContext is handed to RunUser for a user context menu invocation.
type UserContext struct {
	Session    *discordgo.Session
	Event      *discordgo.InteractionCreate
	Components *components.Store
	Target     *discordgo.User
}

// MessageContext is handed to RunMessage for a message context menu invocation.
type MessageContext struct {
	Session    *discordgo.Session
	Event      *discordgo.InteractionCreate
	Components *components.Store
	Target     *discordgo.Message
}

// ComponentContext is handed to OnButton/OnSelect. Entity holds the correlation
// record for the pressed element, arguments already decoded.
type ComponentContext struct {
	Session    *discordgo.Session
	Event      *discordgo.InteractionCreate
	Components *components.Store
	Entity     components.Entity
}

// ModalContext is handed to OnModal. The correlation row is removed by the
// dispatcher after the handler returns, making modals one-shot.
type ModalContext struct {
	Session    *discordgo.Session
	Event      *discordgo.InteractionCreate
	Components *components.Store
	Entity     components.Entity
}

// AutocompleteContext is handed to OnAutocomplete for each keystroke event.
type AutocompleteContext struct {
	Session    *discordgo.Session
	Event      *discordgo.InteractionCreate
	Components *components.Store
}
