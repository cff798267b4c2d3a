// Package cart holds the storefront's single cart/session state
// container. Every mutation persists the full state through a pluggable
// Persister so the cart survives restarts.
package cart

import (
	"log"
	"sync"

	"deposito626-api/internal/model"
)

// State is the persisted shape: the cart lines plus the session flags.
type State struct {
	Items []model.CartLine  `json:"items"`
	User  model.UserSession `json:"user"`
}

// Store is the process-wide cart/session container. All operations are
// total over valid input and safe for concurrent use; identities are not
// validated (the caller already fetched the product data it passes in).
type Store struct {
	mu        sync.Mutex
	state     State
	persister Persister
}

// NewStore creates a store, loading any previously persisted state. A
// nil persister disables persistence. Load failures start from a clean
// state rather than failing startup.
func NewStore(p Persister) *Store {
	s := &Store{persister: p}
	if p != nil {
		state, err := p.Load()
		if err != nil {
			log.Printf("[CartStore] Load failed, starting empty: %v", err)
		} else if state != nil {
			s.state = *state
		}
	}
	if s.state.Items == nil {
		s.state.Items = []model.CartLine{}
	}
	return s
}

// persist writes the full state out. Called with the lock held; failures
// are logged and never surfaced, the in-memory state stays authoritative.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.state); err != nil {
		log.Printf("[CartStore] Persist failed: %v", err)
	}
}

func (s *Store) findIndex(id model.LineIdentity) int {
	for i, item := range s.state.Items {
		if item.Identity() == id {
			return i
		}
	}
	return -1
}

// AddItem merges the line into the cart: an existing line with the same
// identity tuple gets its quantity incremented, otherwise a new line is
// appended. Quantities below 1 are ignored.
func (s *Store) AddItem(line model.CartLine, quantity int) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	line.Quantity = quantity
	if i := s.findIndex(line.Identity()); i >= 0 {
		s.state.Items[i].Quantity += quantity
	} else {
		s.state.Items = append(s.state.Items, line)
	}
	s.persist()
}

// RemoveItem deletes the matching line. Absent identities are a no-op.
func (s *Store) RemoveItem(id model.LineIdentity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.findIndex(id); i >= 0 {
		s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
		s.persist()
	}
}

// UpdateQuantity sets the line's quantity exactly. Quantities at or
// below zero remove the line.
func (s *Store) UpdateQuantity(id model.LineIdentity, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(id)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.findIndex(id); i >= 0 {
		s.state.Items[i].Quantity = quantity
		s.persist()
	}
}

// ClearCart empties the line list. Session fields are untouched.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Items = []model.CartLine{}
	s.persist()
}

// Items returns a copy of the current lines.
func (s *Store) Items() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartLine, len(s.state.Items))
	copy(items, s.state.Items)
	return items
}

// Subtotal returns Σ(price × quantity) over all lines, recomputed on
// every call.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	for _, item := range s.state.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// ItemCount returns Σ quantity over all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.state.Items {
		count += item.Quantity
	}
	return count
}

// User returns a copy of the session flags.
func (s *Store) User() model.UserSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User
}

// SetPhone stores the customer's normalized phone number.
func (s *Store) SetPhone(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User.Phone = phone
	s.persist()
}

// SetVerified flips the demo verification flag.
func (s *Store) SetVerified(verified bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User.IsVerified = verified
	s.persist()
}

// UnlockAccess marks the session unlocked, records which allowlisted
// number vouched for it, and closes the access modal.
func (s *Store) UnlockAccess(referrerPhone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User.IsAccessUnlocked = true
	s.state.User.IsAccessModalOpen = false
	s.state.User.ReferrerPhone = referrerPhone
	s.persist()
}

// OpenAccessModal marks the gate modal visible.
func (s *Store) OpenAccessModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User.IsAccessModalOpen = true
	s.persist()
}

// CloseAccessModal hides the gate modal.
func (s *Store) CloseAccessModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User.IsAccessModalOpen = false
	s.persist()
}

// SetCartOpen toggles the cart overlay flag.
func (s *Store) SetCartOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User.IsCartOpen = open
	s.persist()
}
