package medusa

import (
	"strings"

	"github.com/efe-storefront/backend/internal/domain"
)

// MapToProduct converts a Medusa product into the domain Product. Variant
// options are flattened into ordered name/value pairs here so nothing
// downstream has to know which shape the API returned.
func MapToProduct(p *Product) *domain.Product {
	if p == nil {
		return nil
	}

	optionTitles := make(map[string]string, len(p.Options))
	for _, opt := range p.Options {
		optionTitles[opt.ID] = opt.Title
	}

	product := &domain.Product{
		ID:          p.ID,
		Handle:      p.Handle,
		Title:       p.Title,
		Description: p.Description,
		Thumbnail:   p.Thumbnail,
		Images:      make([]domain.Image, 0, len(p.Images)),
		Variants:    make([]domain.Variant, 0, len(p.Variants)),
	}

	for _, img := range p.Images {
		if strings.TrimSpace(img.URL) == "" {
			continue
		}
		product.Images = append(product.Images, domain.Image{URL: img.URL, Alt: p.Title})
	}

	for _, v := range p.Variants {
		product.Variants = append(product.Variants, mapVariant(v, optionTitles))
	}

	return product
}

func mapVariant(v Variant, optionTitles map[string]string) domain.Variant {
	variant := domain.Variant{
		ID:      v.ID,
		Title:   v.Title,
		SKU:     v.SKU,
		Options: make([]domain.OptionValue, 0, len(v.Options)),
	}

	for _, opt := range v.Options {
		name := optionName(opt, optionTitles)
		if name == "" {
			continue
		}
		variant.Options = append(variant.Options, domain.OptionValue{Name: name, Value: opt.Value})
	}

	if v.CalculatedPrice != nil && v.CalculatedPrice.CalculatedAmount.Valid {
		variant.Price = &domain.Price{
			Amount:       v.CalculatedPrice.CalculatedAmount.Decimal,
			CurrencyCode: strings.ToUpper(v.CalculatedPrice.CurrencyCode),
		}
	}

	return variant
}

// optionName resolves the title of a variant option from the nested option
// or the product's option list
func optionName(opt VariantOption, optionTitles map[string]string) string {
	if opt.Option != nil && opt.Option.Title != "" {
		return opt.Option.Title
	}
	optionID := opt.OptionID
	if optionID == "" && opt.Option != nil {
		optionID = opt.Option.ID
	}
	return optionTitles[optionID]
}
