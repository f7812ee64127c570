package usecase

import (
	"strings"

	"github.com/efe-storefront/backend/internal/domain"
	"github.com/efe-storefront/backend/pkg/logger"
)

// FindByVisualOption returns the variant whose optionName option equals
// value, comparing both case-insensitively. Without a value, or when the
// product has at most one variant, the first variant is returned (nil for an
// empty list). Nil means no variant carries the value.
func FindByVisualOption(variants []domain.Variant, value, optionName string) *domain.Variant {
	if len(variants) == 0 {
		return nil
	}
	if value == "" || len(variants) == 1 {
		return &variants[0]
	}

	optionName = visualOptionOrDefault(optionName)
	for i := range variants {
		if hasVisualOption(variants[i], value, optionName) {
			return &variants[i]
		}
	}
	return nil
}

// FindByMultiOption returns the first variant that satisfies every entry
// of selection, a map of normalized option name to normalized value.
// Options on the variant that are not part of the selection are ignored.
func FindByMultiOption(variants []domain.Variant, selection map[string]string) *domain.Variant {
	if len(variants) == 0 {
		return nil
	}
	if len(selection) == 0 || len(variants) == 1 {
		return &variants[0]
	}

	for i := range variants {
		if matchesSelection(variants[i], selection) {
			return &variants[i]
		}
	}
	return nil
}

// IsValidVisualOption reports whether some variant carries value for
// optionName. An empty value is always valid.
func IsValidVisualOption(variants []domain.Variant, value, optionName string) bool {
	if value == "" {
		return true
	}
	optionName = visualOptionOrDefault(optionName)
	for _, variant := range variants {
		if hasVisualOption(variant, value, optionName) {
			return true
		}
	}
	return false
}

// IsValidMultiOption reports whether some variant satisfies the whole
// selection. An empty selection is always valid.
func IsValidMultiOption(variants []domain.Variant, selection map[string]string) bool {
	if len(selection) == 0 {
		return true
	}
	for _, variant := range variants {
		if matchesSelection(variant, selection) {
			return true
		}
	}
	return false
}

func hasVisualOption(variant domain.Variant, value, optionName string) bool {
	for _, opt := range variant.Options {
		if strings.EqualFold(opt.Name, optionName) && strings.EqualFold(opt.Value, value) {
			return true
		}
	}
	return false
}

func matchesSelection(variant domain.Variant, selection map[string]string) bool {
	for name, value := range selection {
		if !hasNormalizedOption(variant, name, value) {
			return false
		}
	}
	return true
}

func hasNormalizedOption(variant domain.Variant, name, value string) bool {
	for _, opt := range variant.Options {
		if NormalizeToken(opt.Name) == name && NormalizeToken(opt.Value) == value {
			return true
		}
	}
	return false
}

// OptionValueOf returns the value of the named option on a variant,
// comparing names after normalization
func OptionValueOf(variant *domain.Variant, optionName string) (string, bool) {
	if variant == nil {
		return "", false
	}
	want := NormalizeToken(optionName)
	for _, opt := range variant.Options {
		if NormalizeToken(opt.Name) == want {
			return opt.Value, true
		}
	}
	return "", false
}

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	VisualOptionName   string
	EnableDebugLogging bool
}

// MatchingService applies the matching rules to decoded slug selections
type MatchingService struct {
	visualOption       string
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	return &MatchingService{
		visualOption:       visualOptionOrDefault(config.VisualOptionName),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// VisualOption returns the option name encoded by visual slugs
func (s *MatchingService) VisualOption() string {
	return s.visualOption
}

// Validate reports whether the selection addresses an existing variant.
// No selection is valid for any product.
func (s *MatchingService) Validate(selection domain.SlugSelection, variants []domain.Variant) bool {
	var valid bool
	switch selection.Mode {
	case domain.SelectionVisual:
		valid = IsValidVisualOption(variants, selection.VisualValue, s.optionFor(selection))
	case domain.SelectionMulti:
		valid = IsValidMultiOption(variants, selection.Options)
	default:
		valid = true
	}

	if s.enableDebugLogging {
		logger.Debug().
			Str("slug", selection.Slug).
			Str("mode", string(selection.Mode)).
			Int("variants", len(variants)).
			Bool("valid", valid).
			Msg("[MATCH] validate selection")
	}
	return valid
}

// Resolve returns the variant addressed by the selection, nil if none
func (s *MatchingService) Resolve(selection domain.SlugSelection, variants []domain.Variant) *domain.Variant {
	var variant *domain.Variant
	switch selection.Mode {
	case domain.SelectionVisual:
		variant = FindByVisualOption(variants, selection.VisualValue, s.optionFor(selection))
	case domain.SelectionMulti:
		variant = FindByMultiOption(variants, selection.Options)
	default:
		variant = FindByMultiOption(variants, nil)
	}

	if s.enableDebugLogging {
		event := logger.Debug().Str("slug", selection.Slug)
		if variant != nil {
			event = event.Str("variant_id", variant.ID).Str("variant", variant.Title)
		}
		event.Msg("[MATCH] resolved variant")
	}
	return variant
}

// CarouselValue returns the visual option value the image carousel should
// open on. In multi mode it is the selection entry for the visual option.
func (s *MatchingService) CarouselValue(selection domain.SlugSelection) string {
	switch selection.Mode {
	case domain.SelectionVisual:
		return selection.VisualValue
	case domain.SelectionMulti:
		return selection.Options[NormalizeToken(s.visualOption)]
	default:
		return ""
	}
}

// CanonicalSlug rebuilds the slug for variant in the grammar the selection
// used. Without a selection or a variant the bare handle is canonical.
func (s *MatchingService) CanonicalSlug(selection domain.SlugSelection, variant *domain.Variant) string {
	if variant == nil {
		return selection.Handle
	}
	switch selection.Mode {
	case domain.SelectionVisual:
		return s.VisualSlug(selection.Handle, variant)
	case domain.SelectionMulti:
		return BuildMultiSlugFromOptions(selection.Handle, variant.Options)
	default:
		return selection.Handle
	}
}

// VisualSlug builds the visual slug for a variant, or the bare handle when
// the variant has no visual option
func (s *MatchingService) VisualSlug(handle string, variant *domain.Variant) string {
	value, ok := OptionValueOf(variant, s.visualOption)
	if !ok {
		return StripVisualSuffix(handle, s.visualOption)
	}
	return BuildVisualSlug(handle, strings.ToLower(value), s.visualOption)
}

func (s *MatchingService) optionFor(selection domain.SlugSelection) string {
	if selection.VisualOption != "" {
		return selection.VisualOption
	}
	return s.visualOption
}
