package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deposito626-api/internal/model"
)

func TestParseFlavors(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Lime, Mango", []string{"Lime", "Mango"}},
		{"  Lime ,, Mango ,", []string{"Lime", "Mango"}},
		{"", nil},
		{" , , ", nil},
		{"Lime, Lime", []string{"Lime", "Lime"}},
	}

	for _, tt := range tests {
		got := ParseFlavors(tt.input)
		if tt.want == nil {
			assert.Empty(t, got, "input %q", tt.input)
		} else {
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}

func TestSetFlavorsInputSeedsZeroStock(t *testing.T) {
	f := NewForm(model.Product{})

	f.SetFlavorsInput("Lime, Mango")

	p := f.Product()
	assert.Equal(t, []string{"Lime", "Mango"}, p.AvailableFlavors)
	assert.Equal(t, map[string]int{"Lime": 0, "Mango": 0}, p.FlavorStock)
	assert.Equal(t, 0, p.StockQuantity)
	assert.False(t, f.ManualEditable())
}

func TestSetFlavorStockUpdatesAggregate(t *testing.T) {
	f := NewForm(model.Product{})
	f.SetFlavorsInput("Lime, Mango")

	f.SetFlavorStock("Lime", 5)
	assert.Equal(t, 5, f.Product().StockQuantity)

	f.SetFlavorStock("Mango", 3)
	assert.Equal(t, 8, f.Product().StockQuantity)
}

func TestSetFlavorStockUnknownFlavorIgnored(t *testing.T) {
	f := NewForm(model.Product{})
	f.SetFlavorsInput("Lime")

	f.SetFlavorStock("Mango", 7)

	p := f.Product()
	assert.Equal(t, map[string]int{"Lime": 0}, p.FlavorStock)
	assert.Equal(t, 0, p.StockQuantity)
}

func TestRemovedFlavorsDropFromStockMap(t *testing.T) {
	f := NewForm(model.Product{})
	f.SetFlavorsInput("Lime, Mango")
	f.SetFlavorStock("Lime", 5)
	f.SetFlavorStock("Mango", 2)

	f.SetFlavorsInput("Lime")

	p := f.Product()
	assert.Equal(t, []string{"Lime"}, p.AvailableFlavors)
	assert.Equal(t, map[string]int{"Lime": 5}, p.FlavorStock)
	assert.Equal(t, 5, p.StockQuantity)
}

func TestClearingFlavorsRestoresManualQuantity(t *testing.T) {
	f := NewForm(model.Product{StockQuantity: 12})
	require.True(t, f.ManualEditable())

	f.SetFlavorsInput("Lime")
	f.SetFlavorStock("Lime", 4)
	assert.Equal(t, 4, f.Product().StockQuantity)

	f.SetFlavorsInput("")
	assert.Equal(t, 12, f.Product().StockQuantity)
	assert.Empty(t, f.Product().FlavorStock)
	assert.True(t, f.ManualEditable())
}

func TestClearingFlavorsWithoutManualQuantityIsZero(t *testing.T) {
	f := NewForm(model.Product{})
	f.SetFlavorsInput("Lime")
	f.SetFlavorStock("Lime", 9)

	f.SetFlavorsInput("")

	assert.Equal(t, 0, f.Product().StockQuantity)
}

func TestSetFlavorsInputIdempotent(t *testing.T) {
	f := NewForm(model.Product{})
	f.SetFlavorsInput("Lime, Mango")
	f.SetFlavorStock("Lime", 5)

	before := f.Product()
	f.SetFlavorsInput("Lime, Mango")
	after := f.Product()

	assert.Equal(t, before.AvailableFlavors, after.AvailableFlavors)
	assert.Equal(t, before.FlavorStock, after.FlavorStock)
	assert.Equal(t, before.StockQuantity, after.StockQuantity)
}

func TestDuplicateFlavorsKeptInListCollapsedInMap(t *testing.T) {
	f := NewForm(model.Product{})

	f.SetFlavorsInput("Lime, Lime, Mango")

	p := f.Product()
	assert.Equal(t, []string{"Lime", "Lime", "Mango"}, p.AvailableFlavors)
	assert.Equal(t, map[string]int{"Lime": 0, "Mango": 0}, p.FlavorStock)
}
