package model

// LineIdentity is the tuple that decides whether two cart additions
// merge into one line or stay separate.
type LineIdentity struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Flavor    string `json:"flavor,omitempty"`
}

// CartLine is one entry in the cart. At most one line exists per
// identity tuple; repeated adds increment Quantity.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
	Size      string  `json:"size,omitempty"`
	Flavor    string  `json:"flavor,omitempty"`
}

// Identity returns the line's merge key.
func (l CartLine) Identity() LineIdentity {
	return LineIdentity{ProductID: l.ProductID, Size: l.Size, Flavor: l.Flavor}
}

// UserSession holds the storefront session flags persisted alongside the
// cart. IsAccessUnlocked never flips back to false once set; no lock
// action exists.
type UserSession struct {
	Phone             string `json:"phone"`
	IsVerified        bool   `json:"is_verified"`
	IsAccessUnlocked  bool   `json:"is_access_unlocked"`
	IsAccessModalOpen bool   `json:"is_access_modal_open"`
	IsCartOpen        bool   `json:"is_cart_open"`
	ReferrerPhone     string `json:"referrer_phone,omitempty"`
}
