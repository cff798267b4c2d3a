// Package gate implements the access gate that keeps the storefront
// invite-only: a phone number must match the verified-members allowlist
// before the catalog accepts cart additions.
package gate

import (
	"context"
	"errors"
	"fmt"
	"log"

	"deposito626-api/internal/cart"
	"deposito626-api/internal/phone"
)

// State is the gate's position for the current session.
type State string

const (
	// Locked means no allowlisted number has been presented yet.
	Locked State = "locked"
	// Unlocking means a lookup is in flight.
	Unlocking State = "unlocking"
	// Unlocked is terminal for the session; no lock action exists.
	Unlocked State = "unlocked"
)

var (
	// ErrInvalidPhone is returned before any lookup when fewer than ten
	// digits remain after normalization.
	ErrInvalidPhone = errors.New("please enter a valid 10-digit phone number")

	// ErrNotAllowed is returned when the number is not in the allowlist.
	ErrNotAllowed = errors.New("access denied: this number is not in our trusted network")
)

// Allowlist is the external lookup of verified members.
type Allowlist interface {
	// Exists reports whether the normalized phone number has a
	// verified-member record.
	Exists(ctx context.Context, phoneNumber string) (bool, error)
}

// Gate validates phone numbers against the allowlist and flips the
// session's unlock flag on success.
type Gate struct {
	store     *cart.Store
	allowlist Allowlist
}

// New creates a gate over the given session store and allowlist.
func New(store *cart.Store, allowlist Allowlist) *Gate {
	return &Gate{store: store, allowlist: allowlist}
}

// CurrentState derives the gate state from the session.
func (g *Gate) CurrentState() State {
	if g.store.User().IsAccessUnlocked {
		return Unlocked
	}
	return Locked
}

// ModalVisible reports whether the gate UI should show: only while the
// modal is open and the session is still locked.
func (g *Gate) ModalVisible() bool {
	user := g.store.User()
	return user.IsAccessModalOpen && !user.IsAccessUnlocked
}

// AttemptUnlock normalizes the input, rejects short numbers before any
// lookup, and unlocks the session when the number is allowlisted. On
// success the matched number is recorded as the referrer and the modal
// closes. Lookup failures and rejections leave the session locked.
func (g *Gate) AttemptUnlock(ctx context.Context, rawPhone string) (string, error) {
	cleaned := phone.Normalize(rawPhone)
	if len(cleaned) < phone.MinDigits {
		return "", ErrInvalidPhone
	}

	if g.allowlist == nil {
		return "", fmt.Errorf("verification failed: allowlist unavailable")
	}

	found, err := g.allowlist.Exists(ctx, cleaned)
	if err != nil {
		log.Printf("[AccessGate] Allowlist lookup failed: %v", err)
		return "", fmt.Errorf("verification failed, please try again: %w", err)
	}
	if !found {
		return "", ErrNotAllowed
	}

	g.store.UnlockAccess(cleaned)
	log.Printf("[AccessGate] Unlocked via referrer %s", cleaned)
	return cleaned, nil
}
