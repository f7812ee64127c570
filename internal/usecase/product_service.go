package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/efe-storefront/backend/internal/domain"
	"github.com/efe-storefront/backend/pkg/logger"
)

// Result sources reported on a ProductPage
const (
	SourceCommerce = "Commerce"
	SourceCache    = "Cache"
)

const (
	defaultCacheTTL     = 10 * time.Minute
	defaultMaxFavorites = 50
)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	CacheTTL           time.Duration
	VisualOptionName   string
	EnableDebugLogging bool
	MaxFavorites       int
}

// ProductService resolves product page slugs against commerce products
type ProductService struct {
	cache           domain.CacheRepository
	commerceClient  domain.CommerceClient
	matchingService *MatchingService
	images          ImageSelector
	cacheTTL        time.Duration
	maxFavorites    int
}

// NewProductService creates a new product service with dependencies
func NewProductService(
	cache domain.CacheRepository,
	commerceClient domain.CommerceClient,
	config ProductServiceConfig,
) *ProductService {
	matchingService := NewMatchingService(MatchConfig{
		VisualOptionName:   config.VisualOptionName,
		EnableDebugLogging: config.EnableDebugLogging,
	})

	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	maxFavorites := config.MaxFavorites
	if maxFavorites <= 0 {
		maxFavorites = defaultMaxFavorites
	}

	return &ProductService{
		cache:           cache,
		commerceClient:  commerceClient,
		matchingService: matchingService,
		images:          NewURLConventionSelector(),
		cacheTTL:        cacheTTL,
		maxFavorites:    maxFavorites,
	}
}

// DecodeSlug parses a slug with the configured visual option
func (s *ProductService) DecodeSlug(slug string) domain.SlugSelection {
	return ParseSlug(slug, s.matchingService.VisualOption())
}

// BuildVisualSlug builds a visual slug, defaulting to the configured option
func (s *ProductService) BuildVisualSlug(handle, value, optionName string) string {
	if optionName == "" {
		optionName = s.matchingService.VisualOption()
	}
	return BuildVisualSlug(handle, value, optionName)
}

// BuildMultiSlug builds a canonical multi-option slug
func (s *ProductService) BuildMultiSlug(handle string, options map[string]string) string {
	return BuildMultiSlug(handle, options)
}

// ResolveProductPage decodes a slug, loads the product and resolves the
// variant and carousel state it addresses.
// Flow: decode slug -> cache -> commerce backend -> validate -> resolve
//
// A selection that matches no variant returns the page with
// IsValidSelection=false together with ErrInvalidSelection.
func (s *ProductService) ResolveProductPage(ctx context.Context, slug string) (*domain.ProductPage, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrInvalidRequest
	}

	selection := s.DecodeSlug(slug)
	if selection.Handle == "" {
		return nil, fmt.Errorf("%w: slug %q has no product handle", domain.ErrInvalidRequest, slug)
	}

	product, source, err := s.getProduct(ctx, selection.Handle)
	if err != nil {
		return nil, err
	}

	page := &domain.ProductPage{
		Product:       product,
		Selection:     selection,
		Images:        nonNilImages(product.Images),
		VariantImages: nonNilImages(product.Images),
		CanonicalSlug: selection.Handle,
		Source:        source,
	}

	if !s.matchingService.Validate(selection, product.Variants) {
		return page, fmt.Errorf("%w: %q", domain.ErrInvalidSelection, slug)
	}
	page.IsValidSelection = true

	page.Variant = s.matchingService.Resolve(selection, product.Variants)

	visualOption := s.matchingService.VisualOption()
	value := s.matchingService.CarouselValue(selection)
	carousel := s.images.SelectCarouselImages(product.Images, value, visualOption)
	page.Images = nonNilImages(carousel.Images)
	page.ActiveIndex = carousel.ActiveIndex
	page.VariantImages = nonNilImages(s.images.FilterImagesByVisualOption(product.Images, value, visualOption))
	page.CanonicalSlug = s.matchingService.CanonicalSlug(selection, page.Variant)

	return page, nil
}

// VariantLinks returns the visual and multi-option slugs of every variant of
// the product addressed by slug
func (s *ProductService) VariantLinks(ctx context.Context, slug string) ([]domain.VariantLink, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrInvalidRequest
	}

	selection := s.DecodeSlug(slug)
	if selection.Handle == "" {
		return nil, fmt.Errorf("%w: slug %q has no product handle", domain.ErrInvalidRequest, slug)
	}

	product, _, err := s.getProduct(ctx, selection.Handle)
	if err != nil {
		return nil, err
	}

	handle := product.Handle
	if handle == "" {
		handle = selection.Handle
	}

	links := make([]domain.VariantLink, 0, len(product.Variants))
	for i := range product.Variants {
		variant := &product.Variants[i]
		links = append(links, domain.VariantLink{
			VariantID:  variant.ID,
			Title:      variant.Title,
			VisualSlug: s.matchingService.VisualSlug(handle, variant),
			MultiSlug:  BuildMultiSlugFromOptions(handle, variant.Options),
		})
	}
	return links, nil
}

// ResolveFavorites resolves a list of favorite slugs. Slugs whose product is
// gone or whose selection no longer exists are reported in Invalid; a
// commerce backend failure aborts the whole list.
func (s *ProductService) ResolveFavorites(ctx context.Context, slugs []string) (*domain.FavoritesResult, error) {
	if len(slugs) > s.maxFavorites {
		return nil, fmt.Errorf("%w: at most %d favorites per request", domain.ErrInvalidRequest, s.maxFavorites)
	}

	result := &domain.FavoritesResult{
		Items:   []domain.FavoriteItem{},
		Invalid: []string{},
	}
	seen := make(map[string]bool, len(slugs))

	for _, slug := range slugs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		slug = strings.TrimSpace(slug)
		if seen[slug] {
			continue
		}
		seen[slug] = true

		page, err := s.ResolveProductPage(ctx, slug)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) ||
				errors.Is(err, domain.ErrInvalidSelection) ||
				errors.Is(err, domain.ErrInvalidRequest) {
				result.Invalid = append(result.Invalid, slug)
				continue
			}
			return nil, err
		}

		result.Items = append(result.Items, favoriteFromPage(page))
	}

	return result, nil
}

func favoriteFromPage(page *domain.ProductPage) domain.FavoriteItem {
	item := domain.FavoriteItem{
		Slug:      page.CanonicalSlug,
		Handle:    page.Selection.Handle,
		Title:     page.Product.Title,
		Thumbnail: page.Product.Thumbnail,
	}
	if page.ActiveIndex < len(page.Images) {
		item.Thumbnail = page.Images[page.ActiveIndex].URL
	}
	if page.Variant != nil {
		item.VariantID = page.Variant.ID
		item.Variant = page.Variant.Title
		item.Price = page.Variant.Price
		item.Options = page.Variant.Options
	}
	return item
}

// getProduct loads a product from cache or the commerce backend and reports
// where it came from
func (s *ProductService) getProduct(ctx context.Context, handle string) (*domain.Product, string, error) {
	cacheKey := generateCacheKey(handle)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		return cached, SourceCache, nil
	}

	product, err := s.commerceClient.GetProductByHandle(ctx, handle)
	if err != nil {
		if passThroughCommerceError(err) {
			return nil, "", err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}
		return nil, "", fmt.Errorf("%w: %v", domain.ErrCommerceAPIFailure, err)
	}
	if product == nil {
		return nil, "", domain.ErrProductNotFound
	}

	if err := s.setInCache(ctx, cacheKey, product); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("handle", handle).Msg("failed to cache product")
	}

	return product, SourceCommerce, nil
}

// passThroughCommerceError reports whether a client error already carries a
// meaning the delivery layer maps on its own
func passThroughCommerceError(err error) bool {
	return errors.Is(err, domain.ErrProductNotFound) ||
		errors.Is(err, domain.ErrCommerceAPIFailure) ||
		errors.Is(err, domain.ErrRateLimited) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

// generateCacheKey creates the cache key for a product handle. Handles are
// matched exactly by the commerce backend so the key keeps their case.
// Format: "product:{handle}"
func generateCacheKey(handle string) string {
	return "product:" + strings.TrimSpace(handle)
}

func (s *ProductService) getFromCache(ctx context.Context, key string) (*domain.Product, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal(payload, &product); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheMiss, err)
	}
	return &product, nil
}

func (s *ProductService) setInCache(ctx context.Context, key string, product *domain.Product) error {
	if s.cache == nil {
		return nil
	}
	payload, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, payload, s.cacheTTL)
}

func nonNilImages(images []domain.Image) []domain.Image {
	if images == nil {
		return []domain.Image{}
	}
	return images
}
