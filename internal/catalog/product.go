package catalog

// Merchandising badges, in default-sort priority order.
const (
	BadgeTrending = "trending"
	BadgeHot      = "hot"
	BadgeNew      = "new"
	BadgeSale     = "sale"
)

// badgePriority maps badges to their featured-sort weight.
// Unknown or absent badges rank lowest.
var badgePriority = map[string]int{
	BadgeTrending: 4,
	BadgeHot:      3,
	BadgeNew:      2,
	BadgeSale:     1,
}

// Product is a catalog entry as rendered on category and search pages.
// Sizes, Colors, and Brand may be absent for products that do not carry the
// attribute; absence never excludes a product from attribute filters.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand,omitempty"`
	Price         int64    `json:"price"`
	OriginalPrice *int64   `json:"original_price,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Badge         string   `json:"badge,omitempty"`
	Rating        float64  `json:"rating"`
	ImageURL      string   `json:"image_url,omitempty"`
	OutOfStock    bool     `json:"out_of_stock,omitempty"`
}

// BadgePriority returns the featured-sort weight of the product's badge.
func (p Product) BadgePriority() int {
	return badgePriority[p.Badge]
}

// DiscountPercent returns the discount of the product relative to its
// original price, in percent. Products without an original price have no
// discount.
func (p Product) DiscountPercent() float64 {
	if p.OriginalPrice == nil || *p.OriginalPrice <= 0 {
		return 0
	}
	return float64(*p.OriginalPrice-p.Price) / float64(*p.OriginalPrice) * 100
}

// InStock reports availability; products are in stock unless explicitly
// flagged otherwise.
func (p Product) InStock() bool {
	return !p.OutOfStock
}
