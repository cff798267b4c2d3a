// Package checkout drives the cart overlay's state machine: edit the
// cart, validate contact details, then a confirm step that copies the
// formatted order to the clipboard, opens the Instagram DM deep link,
// and submits the order in the background.
package checkout

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"deposito626-api/internal/cart"
	"deposito626-api/internal/model"
	"deposito626-api/internal/order"
	"deposito626-api/internal/phone"
)

// Step identifies the flow's current position.
type Step string

const (
	// StepCart is the editable cart view.
	StepCart Step = "cart"
	// StepConfirm is the "ready to send" view with the copy countdown.
	StepConfirm Step = "confirm"
)

// MinAddressLen is the shortest delivery address accepted, after trimming.
const MinAddressLen = 5

// DefaultCountdown is how long the Send action stays disabled after
// entering the confirm step, giving the customer time to notice the
// clipboard copy happened.
const DefaultCountdown = 4 * time.Second

var (
	// ErrEmptyCart rejects checkout with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidPhone rejects phone input under ten digits.
	ErrInvalidPhone = errors.New("please enter a valid 10-digit phone number")
	// ErrInvalidAddress rejects addresses shorter than five characters.
	ErrInvalidAddress = errors.New("please enter a delivery address of at least 5 characters")
	// ErrNotConfirming is returned when Send or CopyAgain run outside
	// the confirm step.
	ErrNotConfirming = errors.New("no order is awaiting confirmation")
	// ErrCountdownActive is returned when Send runs before the
	// countdown elapses.
	ErrCountdownActive = errors.New("please wait a moment before sending")
)

// Clipboard is write-only text clipboard access. Writes may fail and
// failures are never fatal: the message stays visible for manual copy.
type Clipboard interface {
	WriteText(text string) error
}

// LinkOpener navigates to the messaging deep link.
type LinkOpener interface {
	Open(url string) error
}

// Submitter persists the outbound order. Called fire-and-forget.
type Submitter interface {
	Create(ctx context.Context, o *model.Order) error
}

// Config wires the flow's collaborators.
type Config struct {
	Store     *cart.Store
	Clipboard Clipboard
	Opener    LinkOpener
	Submitter Submitter
	Countdown time.Duration
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// Confirmation is what the confirm step presents to the customer.
type Confirmation struct {
	OrderID          string  `json:"order_id"`
	Message          string  `json:"message"`
	Subtotal         float64 `json:"subtotal"`
	DeepLinkURL      string  `json:"deep_link_url"`
	CountdownSeconds int     `json:"countdown_seconds"`
	Copied           bool    `json:"copied"`
}

// Flow is the checkout state machine. Safe for concurrent use; a single
// flow instance backs the storefront's single cart.
type Flow struct {
	mu        sync.Mutex
	store     *cart.Store
	clipboard Clipboard
	opener    LinkOpener
	submitter Submitter
	countdown time.Duration
	now       func() time.Time

	step        Step
	details     order.Details
	message     string
	confirmedAt time.Time

	// submitWG lets tests wait for the detached submission.
	submitWG sync.WaitGroup
}

// NewFlow creates a checkout flow starting at the cart step.
func NewFlow(cfg Config) *Flow {
	countdown := cfg.Countdown
	if countdown == 0 {
		countdown = DefaultCountdown
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Flow{
		store:     cfg.Store,
		clipboard: cfg.Clipboard,
		opener:    cfg.Opener,
		submitter: cfg.Submitter,
		countdown: countdown,
		now:       now,
		step:      StepCart,
	}
}

// Step returns the flow's current step.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// ValidateInput checks the cart step's advance conditions without
// mutating anything.
func ValidateInput(phoneInput, address string) error {
	if _, ok := phone.NormalizeLast10(phoneInput); !ok {
		return ErrInvalidPhone
	}
	if len(strings.TrimSpace(address)) < MinAddressLen {
		return ErrInvalidAddress
	}
	return nil
}

// Checkout advances Cart → Confirm: validates input, normalizes and
// stores the phone, snapshots the cart, generates the order id, formats
// the message, and best-effort copies it to the clipboard. The cart is
// left untouched until Send.
func (f *Flow) Checkout(phoneInput, address string) (*Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := f.store.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	cleanPhone, ok := phone.NormalizeLast10(phoneInput)
	if !ok {
		return nil, ErrInvalidPhone
	}
	addr := strings.TrimSpace(address)
	if len(addr) < MinAddressLen {
		return nil, ErrInvalidAddress
	}

	f.store.SetPhone(cleanPhone)

	// Total comes from the snapshot, not a second store read: the cart
	// can change concurrently and the message must stay self-consistent.
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}

	f.details = order.Details{
		OrderID:  order.GenerateOrderID(),
		Items:    items,
		Subtotal: subtotal,
		Phone:    cleanPhone,
		Address:  addr,
	}
	f.message = order.FormatMessage(f.details)

	copied := true
	if err := f.clipboard.WriteText(f.message); err != nil {
		log.Printf("[Checkout] Clipboard copy failed: %v", err)
		copied = false
	}

	f.step = StepConfirm
	f.confirmedAt = f.now()

	return &Confirmation{
		OrderID:          f.details.OrderID,
		Message:          f.message,
		Subtotal:         f.details.Subtotal,
		DeepLinkURL:      order.DMURL(),
		CountdownSeconds: int(f.countdown / time.Second),
		Copied:           copied,
	}, nil
}

// CountdownRemaining reports how long until Send unlocks. Zero once the
// countdown has elapsed or outside the confirm step.
func (f *Flow) CountdownRemaining() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepConfirm {
		return 0
	}
	remaining := f.countdown - f.now().Sub(f.confirmedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Send performs the confirm step's primary action: open the deep link
// synchronously first (popup blockers punish deferred opens), then hand
// the order to the submitter in a detached goroutine, then clear the
// cart and return to the cart step. The cart is cleared if and only if
// this succeeds past the countdown check.
func (f *Flow) Send() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepConfirm {
		return ErrNotConfirming
	}
	if f.now().Sub(f.confirmedAt) < f.countdown {
		return ErrCountdownActive
	}

	if err := f.opener.Open(order.DMURL()); err != nil {
		log.Printf("[Checkout] Failed to open deep link: %v", err)
	}

	f.dispatchSubmit(f.details)

	f.store.ClearCart()
	f.store.SetCartOpen(false)
	f.step = StepCart
	f.message = ""
	f.details = order.Details{}

	return nil
}

// dispatchSubmit persists the order on its own goroutine with its own
// timeout. Failures are logged, never surfaced: the customer already
// has the message and the DM window open.
func (f *Flow) dispatchSubmit(d order.Details) {
	if f.submitter == nil {
		return
	}

	items := make([]model.OrderItem, len(d.Items))
	for i, line := range d.Items {
		items[i] = model.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Flavor:    line.Flavor,
			Size:      line.Size,
		}
	}
	o := &model.Order{
		CustomerName: d.Phone,
		Phone:        d.Phone,
		Address:      d.Address,
		Items:        items,
		TotalAmount:  d.Subtotal,
		Status:       model.OrderPending,
	}

	f.submitWG.Add(1)
	go func() {
		defer f.submitWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := f.submitter.Create(ctx, o); err != nil {
			log.Printf("[Checkout] Order submission failed for %s: %v", d.OrderID, err)
		}
	}()
}

// CopyAgain re-copies the already generated message. Available at any
// point in the confirm step.
func (f *Flow) CopyAgain() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepConfirm {
		return ErrNotConfirming
	}
	return f.clipboard.WriteText(f.message)
}

// Abandon returns to the cart step without touching the cart or
// submitting anything. Closing the overlay mid-flow lands here.
func (f *Flow) Abandon() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.step = StepCart
	f.message = ""
	f.details = order.Details{}
}

// WaitForSubmissions blocks until detached order submissions finish.
// Used by tests and graceful shutdown.
func (f *Flow) WaitForSubmissions() {
	f.submitWG.Wait()
}
