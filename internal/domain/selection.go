package domain

// SelectionMode describes which suffix grammar a slug used
type SelectionMode string

const (
	SelectionNone   SelectionMode = "none"
	SelectionVisual SelectionMode = "visual"
	SelectionMulti  SelectionMode = "multi"
)

// SlugSelection is the decoded form of a product slug
type SlugSelection struct {
	Slug         string            `json:"slug"`
	Handle       string            `json:"handle"`
	Mode         SelectionMode     `json:"mode"`
	VisualOption string            `json:"visualOption,omitempty"`
	VisualValue  string            `json:"visualValue,omitempty"`
	Options      map[string]string `json:"options,omitempty"`
}

// IsEmpty reports whether the slug carried no option selection
func (s SlugSelection) IsEmpty() bool {
	switch s.Mode {
	case SelectionVisual:
		return s.VisualValue == ""
	case SelectionMulti:
		return len(s.Options) == 0
	default:
		return true
	}
}

// CarouselState is the image list and the index the carousel opens on
type CarouselState struct {
	Images      []Image `json:"images"`
	ActiveIndex int     `json:"activeIndex"`
}

// ProductPage is everything a product detail page needs to render
type ProductPage struct {
	Product          *Product      `json:"product"`
	Variant          *Variant      `json:"variant,omitempty"`
	Selection        SlugSelection `json:"selection"`
	Images           []Image       `json:"images"`
	ActiveIndex      int           `json:"activeIndex"`
	VariantImages    []Image       `json:"variantImages"`
	IsValidSelection bool          `json:"isValidSelection"`
	CanonicalSlug    string        `json:"canonicalSlug"`
	Source           string        `json:"source"` // "Commerce" or "Cache"
}

// VariantLink holds the slugs that address a single variant
type VariantLink struct {
	VariantID  string `json:"variantId"`
	Title      string `json:"title"`
	VisualSlug string `json:"visualSlug"`
	MultiSlug  string `json:"multiSlug"`
}

// FavoriteItem is one resolved entry of a favorites list
type FavoriteItem struct {
	Slug      string        `json:"slug"`
	Handle    string        `json:"handle"`
	Title     string        `json:"title"`
	VariantID string        `json:"variantId,omitempty"`
	Variant   string        `json:"variant,omitempty"`
	Thumbnail string        `json:"thumbnail,omitempty"`
	Price     *Price        `json:"price,omitempty"`
	Options   []OptionValue `json:"options,omitempty"`
}

// FavoritesResult splits a favorites list into resolved and dropped slugs
type FavoritesResult struct {
	Items   []FavoriteItem `json:"items"`
	Invalid []string       `json:"invalid"`
}
