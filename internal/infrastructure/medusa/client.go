package medusa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/efe-storefront/backend/internal/domain"
	"github.com/efe-storefront/backend/pkg/logger"
)

// productFields asks the store API for everything variant resolution needs
const productFields = "id,title,handle,description,thumbnail,*images,*options,*options.values," +
	"*variants,*variants.options,*variants.options.option,*variants.calculated_price"

// Config holds the settings of the Medusa store API client
type Config struct {
	BaseURL           string
	PublishableKey    string
	RegionID          string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
}

// Client handles communication with the Medusa store API
type Client struct {
	httpClient     *http.Client
	baseURL        string
	publishableKey string
	regionID       string
	rateLimiter    *rate.Limiter
	maxRetries     int
	debug          bool
}

// NewClient creates a new Medusa store API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 20
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 40
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		publishableKey: cfg.PublishableKey,
		regionID:       cfg.RegionID,
		rateLimiter:    rate.NewLimiter(rate.Limit(rps), burst),
		maxRetries:     maxRetries,
	}
}

// SetDebug enables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before the given retry attempt:
// 500ms, 1s, 2s, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "efe-storefront/1.0")
	if c.publishableKey != "" {
		req.Header.Set("x-publishable-api-key", c.publishableKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCommerceAPIFailure, err)
	}
	return resp, nil
}

// GetProductByHandle fetches a single product by its handle
func (c *Client) GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, domain.ErrInvalidRequest
	}

	params := url.Values{}
	params.Set("handle", handle)
	params.Set("fields", productFields)
	params.Set("limit", "1")
	if c.regionID != "" {
		params.Set("region_id", c.regionID)
	}
	reqURL := fmt.Sprintf("%s/store/products?%s", c.baseURL, params.Encode())

	var resp ProductsResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	for i := range resp.Products {
		// The handle filter is exact but guard against a backend ignoring it
		if resp.Products[i].Handle == handle {
			return MapToProduct(&resp.Products[i]), nil
		}
	}

	if c.debug {
		logger.Debug().Str("handle", handle).Msg("[MEDUSA] no product for handle")
	}
	return nil, domain.ErrProductNotFound
}

// getJSON performs a GET with rate limiting and retries on transient
// failures (network errors, 429 and 5xx) and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	var lastErr error
	// One initial attempt plus maxRetries retries
	for attempt := 1; attempt <= c.maxRetries+1; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(exponentialBackoff(attempt - 1)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			// Wait fails early when the next token lies past the deadline
			if _, ok := ctx.Deadline(); ok {
				return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
			}
			return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}

		if c.debug {
			logger.Debug().Int("attempt", attempt).Str("url", reqURL).Msg("[MEDUSA] request")
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn().Err(err).Int("attempt", attempt).Msg("[MEDUSA] request error")
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrCommerceAPIFailure, readErr)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("%w: failed to decode response: %v", domain.ErrCommerceAPIFailure, err)
			}
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return domain.ErrProductNotFound
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			logger.Warn().
				Int("attempt", attempt).
				Int("status", resp.StatusCode).
				Msg("[MEDUSA] transient API error")
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCommerceAPIFailure, resp.StatusCode)
			continue
		default:
			return fmt.Errorf("%w: status %d: %s", domain.ErrCommerceAPIFailure, resp.StatusCode, errorMessage(body))
		}
	}

	logger.Error().Err(lastErr).Str("url", reqURL).Msg("[MEDUSA] all retries failed")
	return lastErr
}

// errorMessage extracts the message of a Medusa error body
func errorMessage(body []byte) string {
	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
