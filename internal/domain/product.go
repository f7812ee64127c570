package domain

import "github.com/shopspring/decimal"

// OptionValue is a single option-name/option-value pair of a variant,
// e.g. {Name: "Color", Value: "Red"}
type OptionValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Price is the calculated price of a variant in the storefront region
type Price struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// Variant is a purchasable configuration of a product. Options are kept in
// the order the commerce backend returned them.
type Variant struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	SKU     string        `json:"sku,omitempty"`
	Options []OptionValue `json:"options"`
	Price   *Price        `json:"price,omitempty"`
}

// Image is a product image
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Product is the read-only view of a commerce product used to render a
// product page
type Product struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Images      []Image   `json:"images"`
	Variants    []Variant `json:"variants"`
}
