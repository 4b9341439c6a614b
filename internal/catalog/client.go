// Package catalog is the HTTP client for the product catalog service.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type Client struct {
	baseURL string
	http    *http.Client
	sfg     singleflight.Group // collapses concurrent fetches of the same product
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type ListOptions struct {
	Featured bool
	Color    string
}

// List fetches products, optionally filtered by featured flag and color.
func (c *Client) List(ctx context.Context, opts ListOptions) ([]domain.Product, error) {
	u := c.baseURL + "/api/products"
	q := url.Values{}
	if opts.Featured {
		q.Set("featured", "true")
	}
	if opts.Color != "" {
		q.Set("color", opts.Color)
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Get fetches a single product by id. Concurrent calls for the same id share
// one request.
func (c *Client) Get(ctx context.Context, id string) (*domain.Product, error) {
	v, err, _ := c.sfg.Do(id, func() (interface{}, error) {
		return c.fetchProduct(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (c *Client) fetchProduct(ctx context.Context, id string) (*domain.Product, error) {
	u := c.baseURL + "/api/products/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build product request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &product, nil
}
