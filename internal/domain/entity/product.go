package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// currencySymbol prefixes every formatted price (Naira).
const currencySymbol = "₦"

// Product is an entry of the eco-friendly pad catalog.
// Price is expressed in the smallest currency unit.
type Product struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Price               int64     `json:"price"`
	NumberOfPad         int       `json:"number_of_pad"`
	Description         string    `json:"description"`
	Content             []string  `json:"content,omitempty"`
	EnvironmentalImpact string    `json:"environmental_impact,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ProductInput is the payload for creating a product.
type ProductInput struct {
	Title               string   `json:"title"`
	Price               int64    `json:"price"`
	NumberOfPad         int      `json:"number_of_pad"`
	Description         string   `json:"description"`
	Content             []string `json:"content"`
	EnvironmentalImpact string   `json:"environmental_impact"`
}

// Validate checks required fields and positive amounts.
func (in ProductInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return domainerror.NewMissingFieldError("title")
	case strings.TrimSpace(in.Description) == "":
		return domainerror.NewMissingFieldError("description")
	case in.Content == nil:
		return domainerror.NewMissingFieldError("content")
	case strings.TrimSpace(in.EnvironmentalImpact) == "":
		return domainerror.NewMissingFieldError("environmental_impact")
	case in.Price <= 0:
		return domainerror.NewValidationError("price", "Price must be greater than 0")
	case in.NumberOfPad <= 0:
		return domainerror.NewValidationError("number_of_pad", "Number of pads must be greater than 0")
	}
	return nil
}

// ProductSort selects the ordering of a catalog view.
type ProductSort string

const (
	SortPriceAsc  ProductSort = "price-asc"
	SortPriceDesc ProductSort = "price-desc"
	SortName      ProductSort = "name"
)

// PriceRange is an inclusive price filter in minor units.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// FormatPrice renders a minor-unit amount as "₦1,234.56".
func FormatPrice(minor int64) string {
	amount := decimal.New(minor, -2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + currencySymbol + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// SortProductsByPrice returns a copy of products ordered by price.
func SortProductsByPrice(products []Product, ascending bool) []Product {
	sorted := append([]Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return sorted[i].Price < sorted[j].Price
		}
		return sorted[i].Price > sorted[j].Price
	})
	return sorted
}

// SortProductsByTitle returns a copy of products ordered by title, ignoring case.
func SortProductsByTitle(products []Product) []Product {
	sorted := append([]Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := strings.ToLower(sorted[i].Title), strings.ToLower(sorted[j].Title)
		if a == b {
			return sorted[i].Title < sorted[j].Title
		}
		return a < b
	})
	return sorted
}

// FilterProductsByPrice returns the products whose price lies within [min, max].
func FilterProductsByPrice(products []Product, min, max int64) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Price >= min && p.Price <= max {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SearchProducts returns the products whose title or description contains term.
func SearchProducts(products []Product, term string) []Product {
	term = strings.ToLower(term)
	matches := make([]Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			matches = append(matches, p)
		}
	}
	return matches
}

// ArrangeProducts applies an optional price filter, then the requested sort.
// An empty or unknown sort orders by name.
func ArrangeProducts(products []Product, by ProductSort, filter *PriceRange) []Product {
	result := append([]Product(nil), products...)
	if filter != nil {
		result = FilterProductsByPrice(result, filter.Min, filter.Max)
	}
	switch by {
	case SortPriceAsc:
		return SortProductsByPrice(result, true)
	case SortPriceDesc:
		return SortProductsByPrice(result, false)
	default:
		return SortProductsByTitle(result)
	}
}
