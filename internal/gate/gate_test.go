package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deposito626-api/internal/cart"
)

type fakeAllowlist struct {
	members map[string]bool
	err     error
	lookups int
}

func (f *fakeAllowlist) Exists(ctx context.Context, phoneNumber string) (bool, error) {
	f.lookups++
	if f.err != nil {
		return false, f.err
	}
	return f.members[phoneNumber], nil
}

func TestAttemptUnlockNormalizesAndUnlocks(t *testing.T) {
	store := cart.NewStore(nil)
	allow := &fakeAllowlist{members: map[string]bool{"6266271703": true}}
	g := New(store, allow)
	store.OpenAccessModal()

	referrer, err := g.AttemptUnlock(context.Background(), "626-627-1703")
	require.NoError(t, err)
	assert.Equal(t, "6266271703", referrer)

	user := store.User()
	assert.True(t, user.IsAccessUnlocked)
	assert.False(t, user.IsAccessModalOpen)
	assert.Equal(t, "6266271703", user.ReferrerPhone)
	assert.Equal(t, Unlocked, g.CurrentState())
}

func TestAttemptUnlockRejectsShortNumberBeforeLookup(t *testing.T) {
	store := cart.NewStore(nil)
	allow := &fakeAllowlist{members: map[string]bool{"5551234567": true}}
	g := New(store, allow)

	_, err := g.AttemptUnlock(context.Background(), "555-123")
	assert.ErrorIs(t, err, ErrInvalidPhone)
	assert.Equal(t, 0, allow.lookups)
	assert.False(t, store.User().IsAccessUnlocked)
}

func TestAttemptUnlockNotInAllowlist(t *testing.T) {
	store := cart.NewStore(nil)
	g := New(store, &fakeAllowlist{members: map[string]bool{}})

	_, err := g.AttemptUnlock(context.Background(), "(555) 123-4567")
	assert.ErrorIs(t, err, ErrNotAllowed)
	assert.Equal(t, Locked, g.CurrentState())
}

func TestAttemptUnlockLookupFailureIsDistinct(t *testing.T) {
	store := cart.NewStore(nil)
	g := New(store, &fakeAllowlist{err: errors.New("connection reset")})

	_, err := g.AttemptUnlock(context.Background(), "5551234567")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotAllowed)
	assert.NotErrorIs(t, err, ErrInvalidPhone)
	assert.False(t, store.User().IsAccessUnlocked)
}

func TestModalVisibleOnlyWhileLocked(t *testing.T) {
	store := cart.NewStore(nil)
	g := New(store, &fakeAllowlist{members: map[string]bool{"6266271703": true}})

	assert.False(t, g.ModalVisible())
	store.OpenAccessModal()
	assert.True(t, g.ModalVisible())

	_, err := g.AttemptUnlock(context.Background(), "6266271703")
	require.NoError(t, err)
	assert.False(t, g.ModalVisible())

	// Re-opening the modal after unlock keeps the gate hidden.
	store.OpenAccessModal()
	assert.False(t, g.ModalVisible())
}
