// Package catalog is the Open Food Facts adapter: packaged products with
// crowd-sourced per-100g nutriment data. It is the only source that
// leaves the process, so failures here are expected and must degrade to
// an empty candidate list, never to a hard error for the caller.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/nutriplan/engine/internal/domain"
)

const (
	// DefaultBaseURL is the production Open Food Facts endpoint.
	DefaultBaseURL = "https://world.openfoodfacts.org"

	// searchPageSize caps how many products one search pulls down.
	searchPageSize = 30

	// cacheTTL keeps a search result warm; product data moves slowly.
	cacheTTL = 30 * time.Minute
)

// Client handles communication with the Open Food Facts API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	cache       domain.CacheRepository
}

// NewClient creates a catalog client. The cache is optional; pass nil to
// hit the API on every search.
func NewClient(baseURL string, timeout time.Duration, cache domain.CacheRepository) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	// OFF asks unauthenticated clients to stay under ~100 req/min on the
	// search endpoint. 1 req/sec with a small burst keeps us well clear.
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		userAgent:   "NutriPlanEngine/1.0 (meal sourcing)",
		rateLimiter: limiter,
		cache:       cache,
	}
}

// Source identifies this adapter to the decision engine.
func (c *Client) Source() domain.Source {
	return domain.SourceCatalog
}

// Retrieve searches the catalog with meal-type keywords. Any failure is
// reported as an error for logging, but the orchestrator absorbs it; the
// catalog is never load-bearing.
func (c *Client) Retrieve(ctx context.Context, mc domain.MealContext) ([]domain.Candidate, error) {
	query := queryFor(mc.Slot.MealType)
	return c.Search(ctx, query)
}

// Search runs a keyword search and maps the products to candidates.
// Results are cached per query.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Candidate, error) {
	cacheKey := "catalog:search:" + query
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil {
			if candidates, ok := cached.([]domain.Candidate); ok {
				log.Printf("[CATALOG] cache hit for %q (%d products)", query, len(candidates))
				return candidates, nil
			}
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/cgi/search.pl", c.baseURL)
	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("search_simple", "1")
	params.Add("action", "process")
	params.Add("json", "1")
	params.Add("page_size", fmt.Sprintf("%d", searchPageSize))
	params.Add("sort_by", "unique_scans_n")
	params.Add("fields", "code,product_name,product_name_fr,brands,nutriments,labels_tags,image_front_small_url")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[CATALOG] search %q failed: status %d", query, resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	candidates := mapProducts(searchResp.Products)
	log.Printf("[CATALOG] %q: %d products, %d usable", query, len(searchResp.Products), len(candidates))

	if c.cache != nil {
		_ = c.cache.Set(ctx, cacheKey, candidates, cacheTTL)
	}
	return candidates, nil
}

// GetByBarcode fetches a single product by its barcode.
func (c *Client) GetByBarcode(ctx context.Context, barcode string) (*domain.Candidate, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL, url.PathEscape(barcode))

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	var productResp productResponse
	if err := json.NewDecoder(resp.Body).Decode(&productResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if productResp.Status != 1 {
		return nil, domain.ErrNoCandidates
	}

	candidate, ok := mapProduct(productResp.Product)
	if !ok {
		return nil, domain.ErrNoCandidates
	}
	return &candidate, nil
}

func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return resp, nil
}
