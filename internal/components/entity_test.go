package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmptyEntity(t *testing.T) {
	e := Empty("some-id")

	assert.True(t, e.IsEmpty())
	assert.Equal(t, "some-id", e.ID)
	assert.Empty(t, e.Arguments)
	assert.Nil(t, e.ExpireAt)
}

func TestIsExpired(t *testing.T) {
	now := time.Now()

	e := Entity{ListenerID: "coin-flip"}
	assert.False(t, e.IsExpired(now), "nil ExpireAt never expires")
	assert.False(t, e.IsExpired(now.Add(1000*time.Hour)))

	past := now.Add(-time.Hour)
	e.ExpireAt = &past
	assert.True(t, e.IsExpired(now))
	// Once expired, later checks stay expired.
	assert.True(t, e.IsExpired(now.Add(time.Hour)))

	future := now.Add(time.Hour)
	e.ExpireAt = &future
	assert.False(t, e.IsExpired(now))
}
