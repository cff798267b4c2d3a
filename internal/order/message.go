// Package order renders checkout snapshots into the plaintext message
// handed off to the Instagram DM deep link, and generates order ids.
package order

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"deposito626-api/internal/model"
)

// InstagramHandle is the store's DM target.
const InstagramHandle = "eldeposito626"

const orderIDPrefix = "DP"

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Details is the snapshot the formatter renders. It is built once per
// checkout attempt and never persisted locally.
type Details struct {
	OrderID  string
	Items    []model.CartLine
	Subtotal float64
	Phone    string
	Address  string
}

// GenerateOrderID returns an id of the form DP-<base36 millis>-<4 random
// base36 chars>, uppercased. Unique with overwhelming probability, not
// guaranteed; callers own collision handling.
func GenerateOrderID() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("%s-%s-%s", orderIDPrefix, timestamp, randomBase36(4))
}

func randomBase36(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to
		// the timestamp's low bits rather than panicking mid-checkout.
		millis := time.Now().UnixNano()
		for i := range buf {
			buf[i] = byte(millis >> (8 * i))
		}
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return strings.ToUpper(string(out))
}

// FormatMessage renders the order as the customer-facing plaintext
// message. Output is byte-stable for identical input so the "copy again"
// action re-produces the exact same text.
func FormatMessage(d Details) string {
	lines := make([]string, 0, len(d.Items))
	for _, item := range d.Items {
		variants := joinVariants(item.Size, item.Flavor)
		variantText := ""
		if variants != "" {
			variantText = " [" + variants + "]"
		}
		lines = append(lines, fmt.Sprintf("• %dx %s%s - $%.2f",
			item.Quantity, item.Name, variantText, item.Price*float64(item.Quantity)))
	}

	addressLine := ""
	if d.Address != "" {
		addressLine = "📍 Address: " + d.Address
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📦 New Order #%s\n\n", d.OrderID)
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\n💰 Total: $%.2f\n", d.Subtotal)
	fmt.Fprintf(&b, "📱 Phone: %s\n", d.Phone)
	b.WriteString(addressLine)
	b.WriteString("\n\n---\nSent from deposito626.com")
	return b.String()
}

func joinVariants(size, flavor string) string {
	parts := make([]string, 0, 2)
	if size != "" {
		parts = append(parts, size)
	}
	if flavor != "" {
		parts = append(parts, flavor)
	}
	return strings.Join(parts, ", ")
}

// DMURL returns the Instagram deep link that opens the store's DM
// conversation.
func DMURL() string {
	return "https://ig.me/m/" + InstagramHandle
}
