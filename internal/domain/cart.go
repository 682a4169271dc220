package domain

// Shipping is free above the threshold, otherwise a flat fee applies.
// Prices are whole currency units.
const (
	FreeShippingThreshold int64 = 2000
	FlatShippingFee       int64 = 100
)

// LineKey is the identity key of a cart line. Two lines with the same key
// never coexist; adding a matching line merges quantities instead.
type LineKey struct {
	ProductID string
	Size      string
	Color     string
}

// CartLine is one purchasable configuration of a product in the cart.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Key returns the identity key of this line.
func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

// Cart is the in-memory cart snapshot for one storefront session.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// FindLine returns the index of the line matching the given key, or -1.
func (c *Cart) FindLine(key LineKey) int {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			return i
		}
	}
	return -1
}

// ItemCount returns the sum of all line quantities.
func (c *Cart) ItemCount() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// Subtotal returns the sum of price×quantity over all lines.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}

// Shipping returns 0 when the subtotal reaches the free-shipping threshold,
// otherwise the flat fee.
func (c *Cart) Shipping() int64 {
	if c.Subtotal() >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// Total returns subtotal plus shipping.
func (c *Cart) Total() int64 {
	return c.Subtotal() + c.Shipping()
}

// Totals bundles the derived aggregates recomputed on every state change.
type Totals struct {
	ItemCount int   `json:"item_count"`
	Subtotal  int64 `json:"subtotal"`
	Shipping  int64 `json:"shipping"`
	Total     int64 `json:"total"`
}

// Totals returns the current derived aggregates.
func (c *Cart) Totals() Totals {
	return Totals{
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
		Shipping:  c.Shipping(),
		Total:     c.Total(),
	}
}
