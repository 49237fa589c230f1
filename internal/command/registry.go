package command

import (
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// ErrDuplicate is returned by Build when two commands share a name.
var ErrDuplicate = fmt.Errorf("duplicate command name")

// Registry is an immutable name index over the command list, built once at
// process start. There is no runtime mutation API; changing the command set
// requires a restart.
type Registry struct {
	byName map[string]*Command
	all    []*Command
}

// Build indexes the given commands and fails fast on empty or duplicate names.
// Definition types are normalized here, once; after Build the commands are
// shared read-only between goroutines and must not be written again.
func Build(cmds []*Command) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Command, len(cmds))}

	for _, c := range cmds {
		if c.Name == "" {
			return nil, fmt.Errorf("command with empty name")
		}
		if _, exists := r.byName[c.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, c.Name)
		}
		if c.Slash != nil {
			c.Slash.Type = discordgo.ChatApplicationCommand
		}
		if c.UserMenu != nil {
			c.UserMenu.Type = discordgo.UserApplicationCommand
		}
		if c.MessageMenu != nil {
			c.MessageMenu.Type = discordgo.MessageApplicationCommand
		}
		r.byName[c.Name] = c
		r.all = append(r.all, c)
	}

	sort.Slice(r.all, func(i, j int) bool { return r.all[i].Name < r.all[j].Name })
	return r, nil
}

// ByName returns the command with the given name, or nil.
func (r *Registry) ByName(name string) *Command {
	return r.byName[name]
}

// ByKind returns the command with the given name only if it implements the
// handler for the given application command type.
func (r *Registry) ByKind(kind discordgo.ApplicationCommandType, name string) *Command {
	c := r.byName[name]
	if c == nil {
		return nil
	}
	switch kind {
	case discordgo.ChatApplicationCommand:
		if c.Run == nil {
			return nil
		}
	case discordgo.UserApplicationCommand:
		if c.RunUser == nil {
			return nil
		}
	case discordgo.MessageApplicationCommand:
		if c.RunMessage == nil {
			return nil
		}
	default:
		return nil
	}
	return c
}

// All returns every registered command, sorted by name.
func (r *Registry) All() []*Command {
	return r.all
}
