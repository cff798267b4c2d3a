package order

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deposito626-api/internal/model"
)

func TestGenerateOrderIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^DP-[0-9A-Z]+-[0-9A-Z]{4}$`)

	for i := 0; i < 50; i++ {
		id := GenerateOrderID()
		assert.Regexp(t, pattern, id)
	}
}

func TestGenerateOrderIDDiffersWithinSameMillisecond(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[GenerateOrderID()] = true
	}
	// The timestamp component repeats inside a millisecond; the random
	// suffix must still keep ids apart.
	assert.Greater(t, len(seen), 190)
}

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage(Details{
		OrderID: "DP-ABC-123",
		Items: []model.CartLine{
			{ProductID: 1, Name: "X", Price: 5, Quantity: 2, Flavor: "Lime"},
		},
		Subtotal: 10,
		Phone:    "5551234567",
	})

	assert.Contains(t, msg, "📦 New Order #DP-ABC-123")
	assert.Contains(t, msg, "• 2x X [Lime] - $10.00")
	assert.Contains(t, msg, "💰 Total: $10.00")
	assert.Contains(t, msg, "📱 Phone: 5551234567")
	assert.Contains(t, msg, "Sent from deposito626.com")
	assert.NotContains(t, msg, "📍 Address:")
}

func TestFormatMessageVariants(t *testing.T) {
	tests := []struct {
		name string
		item model.CartLine
		want string
	}{
		{
			name: "size and flavor",
			item: model.CartLine{Name: "Chips", Price: 3.5, Quantity: 1, Size: "Large", Flavor: "Mango"},
			want: "• 1x Chips [Large, Mango] - $3.50",
		},
		{
			name: "flavor only",
			item: model.CartLine{Name: "Soda", Price: 2, Quantity: 3, Flavor: "Cola"},
			want: "• 3x Soda [Cola] - $6.00",
		},
		{
			name: "no variants",
			item: model.CartLine{Name: "Candle", Price: 12.25, Quantity: 1},
			want: "• 1x Candle - $12.25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := FormatMessage(Details{OrderID: "DP-1-1", Items: []model.CartLine{tt.item}, Subtotal: 1, Phone: "5550000000"})
			assert.Contains(t, msg, tt.want)
		})
	}
}

func TestFormatMessageDeterministic(t *testing.T) {
	d := Details{
		OrderID: "DP-SAME-SAME",
		Items: []model.CartLine{
			{Name: "A", Price: 1.5, Quantity: 2, Size: "S"},
			{Name: "B", Price: 4, Quantity: 1},
		},
		Subtotal: 7,
		Phone:    "6266271703",
		Address:  "123 Main St",
	}

	first := FormatMessage(d)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, FormatMessage(d))
	}
	assert.Contains(t, first, "📍 Address: 123 Main St")
}

func TestFormatMessageAddressOmittedLeavesBlankLine(t *testing.T) {
	msg := FormatMessage(Details{OrderID: "DP-1-1", Items: []model.CartLine{{Name: "A", Price: 1, Quantity: 1}}, Subtotal: 1, Phone: "5550000000"})

	lines := strings.Split(msg, "\n")
	// Phone line is followed by the (empty) address slot, then the
	// separator block.
	require.True(t, len(lines) >= 4)
	assert.Equal(t, "---", lines[len(lines)-2])
	assert.Equal(t, "Sent from deposito626.com", lines[len(lines)-1])
	assert.Equal(t, "", lines[len(lines)-4])
}

func TestDMURL(t *testing.T) {
	assert.Equal(t, "https://ig.me/m/eldeposito626", DMURL())
}
