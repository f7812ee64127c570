package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/efe-storefront/backend/internal/domain"
	"github.com/efe-storefront/backend/pkg/logger"
)

const (
	serviceName    = "storefront-backend"
	serviceVersion = "1.0.0"
)

// ProductResolver is the product use case the handlers depend on
type ProductResolver interface {
	ResolveProductPage(ctx context.Context, slug string) (*domain.ProductPage, error)
	VariantLinks(ctx context.Context, slug string) ([]domain.VariantLink, error)
	ResolveFavorites(ctx context.Context, slugs []string) (*domain.FavoritesResult, error)
	DecodeSlug(slug string) domain.SlugSelection
	BuildVisualSlug(handle, value, optionName string) string
	BuildMultiSlug(handle string, options map[string]string) string
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products ProductResolver
}

// NewHandler creates a new HTTP handler. A nil resolver makes the product
// endpoints answer 501.
func NewHandler(products ProductResolver) *Handler {
	return &Handler{products: products}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// GetProductPage resolves a product page slug
func (h *Handler) GetProductPage(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	page, err := h.products.ResolveProductPage(c.Request.Context(), slugParam(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSelection) && page != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     err.Error(),
				"code":      "INVALID_SELECTION",
				"selection": page.Selection,
			})
			return
		}
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetVariantLinks lists the slugs of every variant of a product
func (h *Handler) GetVariantLinks(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	links, err := h.products.VariantLinks(c.Request.Context(), slugParam(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"variants": links})
}

// DecodeSlug returns the handle and option selection encoded in a slug
func (h *Handler) DecodeSlug(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	c.JSON(http.StatusOK, h.products.DecodeSlug(slugParam(c)))
}

// BuildVisualSlug builds a single-option slug
func (h *Handler) BuildVisualSlug(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var req VisualSlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slug": h.products.BuildVisualSlug(req.Handle, req.Value, req.OptionName),
	})
}

// BuildMultiSlug builds a canonical multi-option slug
func (h *Handler) BuildMultiSlug(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var req MultiSlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slug": h.products.BuildMultiSlug(req.Handle, req.Options),
	})
}

// ResolveFavorites resolves a list of favorite slugs
func (h *Handler) ResolveFavorites(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var req FavoritesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeValidationError(c, err)
		return
	}

	result, err := h.products.ResolveFavorites(c.Request.Context(), req.Slugs)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// slugParam returns the slug segment in its wire encoding. Without escapes
// that differ from the default encoding Go leaves RawPath empty and gin
// matches on the decoded path, so literal percent signs are re-escaped.
func slugParam(c *gin.Context) string {
	slug := c.Param("slug")
	if c.Request.URL.RawPath == "" {
		slug = strings.ReplaceAll(slug, "%", "%25")
	}
	return slug
}

func (h *Handler) configured(c *gin.Context) bool {
	if h.products == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "product service not configured",
		})
		return false
	}
	return true
}

func (h *Handler) writeValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
		"code":  "INVALID_REQUEST",
	})
}

// writeError maps domain errors to HTTP responses
func (h *Handler) writeError(c *gin.Context, err error) {
	status, code := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  code,
	})
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "PRODUCT_NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidSelection):
		return http.StatusNotFound, "INVALID_SELECTION"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "RATE_LIMITED"
	case errors.Is(err, domain.ErrCommerceAPIFailure):
		return http.StatusBadGateway, "COMMERCE_UNAVAILABLE"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
