package catalog

import (
	"sort"
	"strconv"
	"strings"
)

// Sort keys accepted by the pipeline.
const (
	SortFeatured  = "featured"
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortName      = "name"
)

// Availability labels used by the availability filter.
const (
	AvailabilityInStock    = "in-stock"
	AvailabilityOutOfStock = "out-of-stock"
)

// IsValidSort reports whether the given sort key is recognized.
func IsValidSort(s string) bool {
	switch s {
	case SortFeatured, SortNewest, SortPriceLow, SortPriceHigh, SortRating, SortName:
		return true
	}
	return false
}

// Filter is the full filter specification for a category or search page.
// Zero values mean "not filtered": empty slices select everything and nil
// price bounds are open-ended.
type Filter struct {
	Category      string
	MinPrice      *int64
	MaxPrice      *int64
	Sizes         []string
	Colors        []string
	Brands        []string
	DiscountTiers []int // "N% or more" tiers; a product needs to satisfy at least one
	Availability  []string
	SortBy        string
}

// Apply filters and sorts the given products. It is pure: identical inputs
// always yield an identical ordered output, and the input slice is never
// modified.
func Apply(products []Product, f Filter) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	sortProducts(out, f.SortBy)
	return out
}

func matches(p Product, f Filter) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}

	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}

	if len(f.DiscountTiers) > 0 && !matchesDiscount(p, f.DiscountTiers) {
		return false
	}

	// Attribute filters keep products that lack the attribute entirely;
	// otherwise at least one value must overlap the selected set.
	if len(f.Sizes) > 0 && len(p.Sizes) > 0 && !overlaps(p.Sizes, f.Sizes) {
		return false
	}
	if len(f.Colors) > 0 && len(p.Colors) > 0 && !overlaps(p.Colors, f.Colors) {
		return false
	}
	if len(f.Brands) > 0 && p.Brand != "" && !contains(f.Brands, p.Brand) {
		return false
	}

	if len(f.Availability) > 0 {
		label := AvailabilityInStock
		if p.OutOfStock {
			label = AvailabilityOutOfStock
		}
		if !contains(f.Availability, label) {
			return false
		}
	}

	return true
}

// matchesDiscount reports whether the product qualifies for at least one
// selected "N% or more" tier. Products without an original price never
// qualify.
func matchesDiscount(p Product, tiers []int) bool {
	if p.OriginalPrice == nil || *p.OriginalPrice <= 0 {
		return false
	}
	discount := p.DiscountPercent()
	for _, tier := range tiers {
		if discount >= float64(tier) {
			return true
		}
	}
	return false
}

func overlaps(have, want []string) bool {
	for _, h := range have {
		if contains(want, h) {
			return true
		}
	}
	return false
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// numericID parses the product id as a number for the "newest" tie-break.
// Non-numeric ids sort as 0.
func numericID(p Product) int64 {
	n, err := strconv.ParseInt(p.ID, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func sortProducts(products []Product, sortBy string) {
	switch sortBy {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			iNew := products[i].Badge == BadgeNew
			jNew := products[j].Badge == BadgeNew
			if iNew != jNew {
				return iNew
			}
			return numericID(products[i]) > numericID(products[j])
		})
	default:
		// Featured: badge priority descending, rating descending on ties.
		sort.SliceStable(products, func(i, j int) bool {
			pi, pj := products[i].BadgePriority(), products[j].BadgePriority()
			if pi != pj {
				return pi > pj
			}
			return products[i].Rating > products[j].Rating
		})
	}
}
