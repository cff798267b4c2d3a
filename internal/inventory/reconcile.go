// Package inventory keeps a product edit form's flavor list, per-flavor
// stock map, and aggregate stock quantity mutually consistent while the
// admin types.
package inventory

import (
	"strings"

	"deposito626-api/internal/model"
)

// ParseFlavors splits comma-separated free text into trimmed, non-empty
// flavor names. Order is preserved and duplicates are kept as typed;
// the stock map collapses them since it is keyed by name.
func ParseFlavors(input string) []string {
	parts := strings.Split(input, ",")
	flavors := make([]string, 0, len(parts))
	for _, p := range parts {
		if f := strings.TrimSpace(p); f != "" {
			flavors = append(flavors, f)
		}
	}
	return flavors
}

// Form is a product draft whose stock fields are reconciled on every
// edit. The manual quantity entered before flavors were introduced is
// remembered and restored when the flavor list is cleared again.
type Form struct {
	product        model.Product
	manualQuantity int
}

// NewForm wraps a product for editing.
func NewForm(p model.Product) *Form {
	f := &Form{product: p}
	if len(p.AvailableFlavors) == 0 {
		f.manualQuantity = p.StockQuantity
	}
	if f.product.FlavorStock == nil {
		f.product.FlavorStock = make(map[string]int)
	}
	f.recompute()
	return f
}

// Product returns the current draft with all derived fields in sync.
func (f *Form) Product() model.Product {
	return f.product
}

// SetFlavorsInput re-parses the free-text flavor field and synchronizes
// the stock map: new flavors enter at zero stock, flavors no longer
// listed are dropped. Idempotent for identical input.
func (f *Form) SetFlavorsInput(input string) {
	flavors := ParseFlavors(input)

	stock := f.product.FlavorStock
	for _, flavor := range flavors {
		if _, ok := stock[flavor]; !ok {
			stock[flavor] = 0
		}
	}
	listed := make(map[string]bool, len(flavors))
	for _, flavor := range flavors {
		listed[flavor] = true
	}
	for flavor := range stock {
		if !listed[flavor] {
			delete(stock, flavor)
		}
	}

	f.product.AvailableFlavors = flavors
	f.recompute()
}

// SetFlavorStock updates one flavor's count. Unknown flavors are
// ignored; negative counts clamp to zero.
func (f *Form) SetFlavorStock(flavor string, quantity int) {
	if _, ok := f.product.FlavorStock[flavor]; !ok {
		return
	}
	if quantity < 0 {
		quantity = 0
	}
	f.product.FlavorStock[flavor] = quantity
	f.recompute()
}

// SetManualQuantity sets the aggregate directly. Only effective while
// the product has no flavors; the value is remembered either way so
// clearing the flavor list restores it.
func (f *Form) SetManualQuantity(quantity int) {
	if quantity < 0 {
		quantity = 0
	}
	f.manualQuantity = quantity
	f.recompute()
}

// ManualEditable reports whether the aggregate quantity field accepts
// direct input (no flavors defined).
func (f *Form) ManualEditable() bool {
	return len(f.product.AvailableFlavors) == 0
}

// recompute derives the aggregate: the flavor map's sum when flavors
// exist, otherwise the manual quantity.
func (f *Form) recompute() {
	if len(f.product.AvailableFlavors) > 0 {
		total := 0
		for _, q := range f.product.FlavorStock {
			total += q
		}
		f.product.StockQuantity = total
		return
	}
	f.product.StockQuantity = f.manualQuantity
}
