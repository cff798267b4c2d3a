package model

// StockStatus is the coarse availability shown on the storefront.
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLimited    StockStatus = "limited"
	StockOutOfStock StockStatus = "out_of_stock"
)

// Product is a catalog entry. Flavor-carrying products track per-flavor
// counts in FlavorStock; StockQuantity is the aggregate the storefront
// displays and must equal the sum of FlavorStock when flavors exist.
type Product struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Price            float64        `json:"price"`
	ImageURL         string         `json:"image_url"`
	StockStatus      StockStatus    `json:"stock_status"`
	Category         string         `json:"category"`
	AvailableSizes   []string       `json:"available_sizes,omitempty"`
	AvailableFlavors []string       `json:"available_flavors,omitempty"`
	FlavorStock      map[string]int `json:"flavor_stock,omitempty"`
	StockQuantity    int            `json:"stock_quantity"`
}
