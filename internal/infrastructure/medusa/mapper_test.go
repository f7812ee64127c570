package medusa

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efe-storefront/backend/internal/domain"
)

func TestMapToProduct(t *testing.T) {
	tests := []struct {
		name string
		in   *Product
		want *domain.Product
	}{
		{
			name: "nil product",
			in:   nil,
			want: nil,
		},
		{
			name: "product without variants",
			in:   &Product{ID: "prod_1", Handle: "gift-card", Title: "Gift Card"},
			want: &domain.Product{
				ID:       "prod_1",
				Handle:   "gift-card",
				Title:    "Gift Card",
				Images:   []domain.Image{},
				Variants: []domain.Variant{},
			},
		},
		{
			name: "images without url are skipped",
			in: &Product{
				ID:     "prod_2",
				Handle: "tee",
				Title:  "Tee",
				Images: []ProductImage{{ID: "a", URL: "https://cdn/tee-Color-Red.jpg"}, {ID: "b", URL: " "}},
			},
			want: &domain.Product{
				ID:       "prod_2",
				Handle:   "tee",
				Title:    "Tee",
				Images:   []domain.Image{{URL: "https://cdn/tee-Color-Red.jpg", Alt: "Tee"}},
				Variants: []domain.Variant{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapToProduct(tt.in))
		})
	}
}

func TestMapToProduct_VariantOptionShapes(t *testing.T) {
	in := &Product{
		ID:     "prod_roller",
		Handle: "ab-roller",
		Options: []ProductOption{
			{ID: "opt_color", Title: "Color"},
			{ID: "opt_type", Title: "Type"},
			{ID: "opt_pro", Title: "Pro Usage"},
		},
		Variants: []Variant{{
			ID: "var_1",
			Options: []VariantOption{
				// nested title
				{Value: "Purple", Option: &ProductOption{ID: "opt_color", Title: "Color"}},
				// flat option_id
				{Value: "Gym", OptionID: "opt_type"},
				// nested option without title
				{Value: "Advanced", Option: &ProductOption{ID: "opt_pro"}},
				// unresolvable
				{Value: "Mystery", OptionID: "opt_missing"},
			},
		}},
	}

	got := MapToProduct(in)
	require.Len(t, got.Variants, 1)
	assert.Equal(t, []domain.OptionValue{
		{Name: "Color", Value: "Purple"},
		{Name: "Type", Value: "Gym"},
		{Name: "Pro Usage", Value: "Advanced"},
	}, got.Variants[0].Options)
}

func TestMapToProduct_Prices(t *testing.T) {
	in := &Product{
		Handle: "tee",
		Variants: []Variant{
			{ID: "priced", CalculatedPrice: &CalculatedPrice{
				CalculatedAmount: decimal.NewNullDecimal(decimal.RequireFromString("24.90")),
				CurrencyCode:     "usd",
			}},
			{ID: "null_amount", CalculatedPrice: &CalculatedPrice{CurrencyCode: "usd"}},
			{ID: "no_price"},
		},
	}

	got := MapToProduct(in)
	require.Len(t, got.Variants, 3)

	require.NotNil(t, got.Variants[0].Price)
	assert.True(t, decimal.RequireFromString("24.9").Equal(got.Variants[0].Price.Amount))
	assert.Equal(t, "USD", got.Variants[0].Price.CurrencyCode)
	assert.Nil(t, got.Variants[1].Price)
	assert.Nil(t, got.Variants[2].Price)
}
