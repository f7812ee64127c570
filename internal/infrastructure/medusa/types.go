package medusa

import "github.com/shopspring/decimal"

// ProductsResponse is the body of GET /store/products
type ProductsResponse struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
	Offset   int       `json:"offset"`
	Limit    int       `json:"limit"`
}

// Product is a Medusa store product with the fields this service requests
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Handle      string          `json:"handle"`
	Description string          `json:"description"`
	Thumbnail   string          `json:"thumbnail"`
	Images      []ProductImage  `json:"images"`
	Options     []ProductOption `json:"options"`
	Variants    []Variant       `json:"variants"`
}

// ProductImage is a product image record
type ProductImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ProductOption is an option axis of a product (e.g. "Color")
type ProductOption struct {
	ID     string               `json:"id"`
	Title  string               `json:"title"`
	Values []ProductOptionValue `json:"values"`
}

// ProductOptionValue is one allowed value of a product option
type ProductOptionValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Variant is a Medusa product variant
type Variant struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	SKU             string           `json:"sku"`
	Options         []VariantOption  `json:"options"`
	CalculatedPrice *CalculatedPrice `json:"calculated_price"`
}

// VariantOption is a variant's value for one option. Depending on the API
// version and requested fields the option title is either nested under
// Option or has to be looked up on the product by OptionID.
type VariantOption struct {
	ID       string         `json:"id"`
	Value    string         `json:"value"`
	OptionID string         `json:"option_id"`
	Option   *ProductOption `json:"option"`
}

// CalculatedPrice is the region price of a variant
type CalculatedPrice struct {
	CalculatedAmount decimal.NullDecimal `json:"calculated_amount"`
	CurrencyCode     string              `json:"currency_code"`
}

// errorResponse is the error body returned by the Medusa API
type errorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
