// Package booklore implements a REST client for the Booklore book-library
// server.
package booklore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/mediashelf/collection-helper/internal/domain"
)

// Client talks to one Booklore server. The API key is optional; when set
// it is sent as a Bearer token.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Books lists books with limit/offset pagination.
func (c *Client) Books(ctx context.Context, limit, offset int) ([]Book, error) {
	params := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	var env booksEnvelope
	if err := c.get(ctx, "/api/books", params, &env); err != nil {
		return nil, fmt.Errorf("booklore books: %w", err)
	}
	return env.Books, nil
}

// Book fetches one book by ID.
func (c *Client) Book(ctx context.Context, bookID string) (*Book, error) {
	var book Book
	if err := c.get(ctx, "/api/books/"+url.PathEscape(bookID), nil, &book); err != nil {
		return nil, fmt.Errorf("booklore book %s: %w", bookID, err)
	}
	return &book, nil
}

// Search finds books matching the query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Book, error) {
	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(limit)},
	}
	var env booksEnvelope
	if err := c.get(ctx, "/api/books/search", params, &env); err != nil {
		return nil, fmt.Errorf("booklore search %q: %w", query, err)
	}
	return env.Books, nil
}

// Collections lists the user-defined collections.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	var env collectionsEnvelope
	if err := c.get(ctx, "/api/collections", nil, &env); err != nil {
		return nil, fmt.Errorf("booklore collections: %w", err)
	}
	return env.Collections, nil
}

// Ping verifies the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{"limit": {"1"}, "offset": {"0"}}
	var env booksEnvelope
	if err := c.get(ctx, "/api/books", params, &env); err != nil {
		return fmt.Errorf("booklore ping: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrUpstreamMalformed, endpoint, err)
	}
	return nil
}
