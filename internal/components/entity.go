// Package components persists the correlation between short-lived interactive
// elements (buttons, select menus, modals) and the command that created them.
// Each element's custom ID is a key into the component table, which remembers
// the originating command, its capability kind, an optional expiration time and
// an ordered argument list.
package components

import "time"

// Entity is a single correlation record. A zero ListenerID marks the record as
// orphaned; callers must treat such entities as not found, since Discord will
// happily deliver callbacks for IDs whose rows were removed long ago.
type Entity struct {
	ID         string
	ListenerID string
	Kind       int
	ExpireAt   *time.Time
	Arguments  []string
}

// Empty returns the well-defined not-found entity for the given ID.
func Empty(id string) Entity {
	return Entity{ID: id}
}

// IsEmpty reports whether the entity represents a missing record.
func (e Entity) IsEmpty() bool {
	return e.ListenerID == ""
}

// IsExpired reports whether the entity is expired at the given time. A nil
// ExpireAt never expires.
func (e Entity) IsExpired(now time.Time) bool {
	if e.ExpireAt == nil {
		return false
	}
	return now.After(*e.ExpireAt)
}
