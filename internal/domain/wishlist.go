package domain

// WishlistEntry is a liked product. Wishlist entries have no variant
// granularity; a product appears at most once.
type WishlistEntry struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"original_price,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	Category      string `json:"category,omitempty"`
}

// Wishlist is the in-memory wishlist snapshot for one storefront session.
type Wishlist struct {
	Entries []WishlistEntry `json:"entries"`
}

// Contains reports whether the product is in the wishlist.
func (w *Wishlist) Contains(productID string) bool {
	for i := range w.Entries {
		if w.Entries[i].ProductID == productID {
			return true
		}
	}
	return false
}

// ItemCount returns the number of entries.
func (w *Wishlist) ItemCount() int {
	return len(w.Entries)
}
