package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efe-storefront/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string][]byte
	getError  error
	setError  error
	getCalled bool
	setCalled bool
	lastTTL   time.Duration
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.setCalled = true
	m.lastTTL = ttl
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockCommerceClient is a mock implementation of domain.CommerceClient
type MockCommerceClient struct {
	products map[string]*domain.Product
	err      error
	calls    int
}

func NewMockCommerceClient(products ...*domain.Product) *MockCommerceClient {
	m := &MockCommerceClient{products: make(map[string]*domain.Product)}
	for _, p := range products {
		m.products[p.Handle] = p
	}
	return m
}

func (m *MockCommerceClient) GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.products[handle]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func sampleTee() *domain.Product {
	return &domain.Product{
		ID:        "prod_tee",
		Handle:    "tee",
		Title:     "Classic Tee",
		Thumbnail: "https://cdn.example.com/tee-thumb.jpg",
		Images: []domain.Image{
			{URL: "https://cdn.example.com/tee-Color-Red-1.jpg"},
			{URL: "https://cdn.example.com/tee-Color-Blue-1.jpg"},
			{URL: "https://cdn.example.com/tee-Color-Blue-2.jpg"},
		},
		Variants: []domain.Variant{
			{
				ID:      "var_red_m",
				Title:   "Red / M",
				Options: []domain.OptionValue{{Name: "Color", Value: "Red"}, {Name: "Size", Value: "M"}},
				Price:   &domain.Price{Amount: decimal.RequireFromString("19.99"), CurrencyCode: "EUR"},
			},
			{
				ID:      "var_blue_m",
				Title:   "Blue / M",
				Options: []domain.OptionValue{{Name: "Color", Value: "Blue"}, {Name: "Size", Value: "M"}},
				Price:   &domain.Price{Amount: decimal.RequireFromString("21.50"), CurrencyCode: "EUR"},
			},
			{
				ID:      "var_blue_l",
				Title:   "Blue / L",
				Options: []domain.OptionValue{{Name: "Color", Value: "Blue"}, {Name: "Size", Value: "L"}},
			},
		},
	}
}

func newTestService(cache domain.CacheRepository, client domain.CommerceClient) *ProductService {
	return NewProductService(cache, client, ProductServiceConfig{
		CacheTTL:     time.Minute,
		MaxFavorites: 5,
	})
}

func TestResolveProductPage_VisualSelection(t *testing.T) {
	cache := NewMockCacheRepository()
	client := NewMockCommerceClient(sampleTee())
	service := newTestService(cache, client)

	page, err := service.ResolveProductPage(context.Background(), "tee-color_blue")
	require.NoError(t, err)

	assert.True(t, page.IsValidSelection)
	require.NotNil(t, page.Variant)
	assert.Equal(t, "var_blue_m", page.Variant.ID)
	assert.Equal(t, domain.SelectionVisual, page.Selection.Mode)
	assert.Len(t, page.Images, 3)
	assert.Equal(t, 1, page.ActiveIndex)
	assert.Len(t, page.VariantImages, 2)
	assert.Equal(t, "tee-color_blue", page.CanonicalSlug)
	assert.Equal(t, SourceCommerce, page.Source)

	assert.True(t, cache.setCalled)
	assert.Equal(t, time.Minute, cache.lastTTL)
	_, cached := cache.data["product:tee"]
	assert.True(t, cached)
}

func TestResolveProductPage_MultiSelection(t *testing.T) {
	service := newTestService(NewMockCacheRepository(), NewMockCommerceClient(sampleTee()))

	page, err := service.ResolveProductPage(context.Background(), "tee--size_l-color_blue")
	require.NoError(t, err)

	require.NotNil(t, page.Variant)
	assert.Equal(t, "var_blue_l", page.Variant.ID)
	assert.Equal(t, 1, page.ActiveIndex)
	assert.Equal(t, "tee--color_blue-size_l", page.CanonicalSlug)
}

func TestResolveProductPage_NoSelection(t *testing.T) {
	service := newTestService(nil, NewMockCommerceClient(sampleTee()))

	page, err := service.ResolveProductPage(context.Background(), "tee")
	require.NoError(t, err)

	assert.True(t, page.IsValidSelection)
	assert.Equal(t, "var_red_m", page.Variant.ID)
	assert.Equal(t, 0, page.ActiveIndex)
	assert.Len(t, page.VariantImages, 3)
	assert.Equal(t, "tee", page.CanonicalSlug)
}

func TestResolveProductPage_InvalidSelection(t *testing.T) {
	tests := []struct {
		name string
		slug string
	}{
		{"unknown visual value", "tee-color_green"},
		{"unknown combination", "tee--color_red-size_l"},
		{"unknown option name", "tee--material_cotton"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(NewMockCacheRepository(), NewMockCommerceClient(sampleTee()))

			page, err := service.ResolveProductPage(context.Background(), tt.slug)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidSelection))

			// The page still carries the product so callers can render a 404 with context
			require.NotNil(t, page)
			assert.False(t, page.IsValidSelection)
			assert.Nil(t, page.Variant)
			assert.Equal(t, "tee", page.CanonicalSlug)
		})
	}
}

func TestResolveProductPage_BadRequests(t *testing.T) {
	service := newTestService(nil, NewMockCommerceClient(sampleTee()))

	for _, slug := range []string{"", "   ", "--color_red", "-color_red"} {
		_, err := service.ResolveProductPage(context.Background(), slug)
		assert.True(t, errors.Is(err, domain.ErrInvalidRequest), "slug %q: %v", slug, err)
	}
}

func TestResolveProductPage_CacheHit(t *testing.T) {
	cache := NewMockCacheRepository()
	client := NewMockCommerceClient(sampleTee())
	service := newTestService(cache, client)
	ctx := context.Background()

	first, err := service.ResolveProductPage(ctx, "tee-color_red")
	require.NoError(t, err)
	assert.Equal(t, SourceCommerce, first.Source)

	second, err := service.ResolveProductPage(ctx, "tee-color_blue")
	require.NoError(t, err)
	assert.Equal(t, SourceCache, second.Source)
	assert.Equal(t, 1, client.calls)

	require.NotNil(t, second.Variant.Price)
	assert.True(t, decimal.RequireFromString("21.50").Equal(second.Variant.Price.Amount))
	assert.Equal(t, "EUR", second.Variant.Price.CurrencyCode)
}

func TestResolveProductPage_HandleCaseDoesNotDependOnCache(t *testing.T) {
	cache := NewMockCacheRepository()
	client := NewMockCommerceClient(sampleTee())
	service := newTestService(cache, client)
	ctx := context.Background()

	_, err := service.ResolveProductPage(ctx, "TEE")
	assert.True(t, errors.Is(err, domain.ErrProductNotFound), "cold cache: %v", err)

	_, err = service.ResolveProductPage(ctx, "tee")
	require.NoError(t, err)

	_, err = service.ResolveProductPage(ctx, "TEE-color_red")
	assert.True(t, errors.Is(err, domain.ErrProductNotFound), "warm cache: %v", err)
	assert.Equal(t, 3, client.calls)
}

func TestResolveProductPage_CorruptCacheFallsBack(t *testing.T) {
	cache := NewMockCacheRepository()
	cache.data["product:tee"] = []byte("{not json")
	client := NewMockCommerceClient(sampleTee())
	service := newTestService(cache, client)

	page, err := service.ResolveProductPage(context.Background(), "tee")
	require.NoError(t, err)
	assert.Equal(t, SourceCommerce, page.Source)
	assert.Equal(t, 1, client.calls)
}

func TestResolveProductPage_CacheErrorsAreNotFatal(t *testing.T) {
	cache := NewMockCacheRepository()
	cache.getError = domain.ErrCacheUnavailable
	cache.setError = domain.ErrCacheUnavailable
	service := newTestService(cache, NewMockCommerceClient(sampleTee()))

	page, err := service.ResolveProductPage(context.Background(), "tee-color_red")
	require.NoError(t, err)
	assert.Equal(t, "var_red_m", page.Variant.ID)
	assert.True(t, cache.setCalled)
}

func TestResolveProductPage_CommerceErrors(t *testing.T) {
	tests := []struct {
		name      string
		clientErr error
		wantErr   error
	}{
		{"not found passes through", domain.ErrProductNotFound, domain.ErrProductNotFound},
		{"commerce failure passes through", domain.ErrCommerceAPIFailure, domain.ErrCommerceAPIFailure},
		{"unknown error is wrapped", errors.New("connection reset"), domain.ErrCommerceAPIFailure},
		{"rate limit passes through", domain.ErrRateLimited, domain.ErrRateLimited},
		{"deadline passes through", context.DeadlineExceeded, context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewMockCommerceClient()
			client.err = tt.clientErr
			service := newTestService(NewMockCacheRepository(), client)

			page, err := service.ResolveProductPage(context.Background(), "tee-color_red")
			assert.Nil(t, page)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestResolveProductPage_UnknownProduct(t *testing.T) {
	service := newTestService(nil, NewMockCommerceClient(sampleTee()))

	_, err := service.ResolveProductPage(context.Background(), "hoodie-color_red")
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestResolveProductPage_CanceledContext(t *testing.T) {
	client := NewMockCommerceClient()
	client.err = errors.New("request aborted")
	service := newTestService(nil, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.ResolveProductPage(ctx, "tee")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestVariantLinks(t *testing.T) {
	service := newTestService(nil, NewMockCommerceClient(sampleTee()))

	links, err := service.VariantLinks(context.Background(), "tee-color_red")
	require.NoError(t, err)
	require.Len(t, links, 3)

	assert.Equal(t, domain.VariantLink{
		VariantID:  "var_blue_l",
		Title:      "Blue / L",
		VisualSlug: "tee-color_blue",
		MultiSlug:  "tee--color_blue-size_l",
	}, links[2])
	assert.Equal(t, "tee-color_red", links[0].VisualSlug)

	_, err = service.VariantLinks(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
}

func TestResolveFavorites(t *testing.T) {
	service := newTestService(NewMockCacheRepository(), NewMockCommerceClient(sampleTee()))

	result, err := service.ResolveFavorites(context.Background(), []string{
		"tee-color_blue",
		"tee-color_green",
		"hoodie",
		"tee-color_blue",
		"tee--size_l",
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	blue := result.Items[0]
	assert.Equal(t, "tee-color_blue", blue.Slug)
	assert.Equal(t, "tee", blue.Handle)
	assert.Equal(t, "Classic Tee", blue.Title)
	assert.Equal(t, "var_blue_m", blue.VariantID)
	assert.Equal(t, "https://cdn.example.com/tee-Color-Blue-1.jpg", blue.Thumbnail)
	require.NotNil(t, blue.Price)
	assert.Equal(t, "EUR", blue.Price.CurrencyCode)

	assert.Equal(t, "tee--color_blue-size_l", result.Items[1].Slug)
	assert.Equal(t, []string{"tee-color_green", "hoodie"}, result.Invalid)
}

func TestResolveFavorites_Limits(t *testing.T) {
	service := newTestService(nil, NewMockCommerceClient(sampleTee()))

	_, err := service.ResolveFavorites(context.Background(), []string{"a", "b", "c", "d", "e", "f"})
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))

	result, err := service.ResolveFavorites(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.NotNil(t, result.Invalid)
}

func TestResolveFavorites_CommerceFailureAborts(t *testing.T) {
	client := NewMockCommerceClient()
	client.err = domain.ErrCommerceAPIFailure
	service := newTestService(nil, client)

	result, err := service.ResolveFavorites(context.Background(), []string{"tee-color_red"})
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrCommerceAPIFailure))
}

func TestSlugHelpers(t *testing.T) {
	service := NewProductService(nil, nil, ProductServiceConfig{VisualOptionName: "Finish"})

	assert.Equal(t, "lipstick-finish_gloss", service.BuildVisualSlug("lipstick", "gloss", ""))
	assert.Equal(t, "lipstick-color_red", service.BuildVisualSlug("lipstick", "red", "Color"))
	assert.Equal(t, "tee--color_red-size_m", service.BuildMultiSlug("tee", map[string]string{"Size": "M", "Color": "Red"}))

	selection := service.DecodeSlug("lipstick-finish_matte")
	assert.Equal(t, domain.SelectionVisual, selection.Mode)
	assert.Equal(t, "matte", selection.VisualValue)
}

func TestGenerateCacheKey(t *testing.T) {
	assert.Equal(t, "product:tee", generateCacheKey("tee"))
	assert.Equal(t, "product:tee", generateCacheKey("  tee "))
	assert.Equal(t, "product:TEE", generateCacheKey("TEE"))
}
