package components

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "components.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndRetrieve(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	id, err := store.CreateID(ctx, "coin-flip", int(discordgo.ChatApplicationCommand), nil, "retry")
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.LessOrEqual(t, len(id), 100, "Discord caps custom IDs at 100 characters")

	e := store.Retrieve(ctx, id)
	assert.False(t, e.IsEmpty())
	assert.Equal(t, "coin-flip", e.ListenerID)
	assert.Equal(t, int(discordgo.ChatApplicationCommand), e.Kind)
	assert.Equal(t, []string{"retry"}, e.Arguments)
	assert.False(t, e.IsExpired(time.Now()))
}

func TestRetrieveUnknownIDIsEmpty(t *testing.T) {
	store := openTestStore(t)

	e := store.Retrieve(context.Background(), "no-such-id")
	assert.True(t, e.IsEmpty())
	assert.Equal(t, "no-such-id", e.ID)
	assert.Empty(t, e.Arguments)
	assert.Nil(t, e.ExpireAt)
}

func TestExpirationPersists(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	expire := time.Now().Add(-time.Hour)
	id, err := store.CreateID(ctx, "coin-flip", int(discordgo.ChatApplicationCommand), &expire, "retry")
	require.NoError(t, err)

	e := store.Retrieve(ctx, id)
	require.NotNil(t, e.ExpireAt)
	assert.True(t, e.IsExpired(time.Now()))
	assert.WithinDuration(t, expire.UTC(), *e.ExpireAt, time.Second)
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	id, err := store.CreateID(ctx, "report", int(discordgo.UserApplicationCommand), nil, "user", "42")
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, id))
	assert.True(t, store.Retrieve(ctx, id).IsEmpty())

	// Removing an already removed row is not an error.
	require.NoError(t, store.Remove(ctx, id))
	require.NoError(t, store.Remove(ctx, "never-existed"))
}

func TestCreateIDRequiresListener(t *testing.T) {
	store := openTestStore(t)

	_, err := store.CreateID(context.Background(), "", 0, nil)
	assert.Error(t, err)
}

func TestArgumentsSurviveDelimiters(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	args := []string{"a,b", `quo"ted`, ""}
	id, err := store.CreateID(ctx, "report", int(discordgo.MessageApplicationCommand), nil, args...)
	require.NoError(t, err)

	assert.Equal(t, args, store.Retrieve(ctx, id).Arguments)
}
