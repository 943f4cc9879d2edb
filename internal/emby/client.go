// Package emby implements a minimal REST client for the Emby media server
// API, covering the listing and search surface the catalog facade needs.
package emby

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

// includeItemTypes limits listings to the media kinds the facade maps.
const includeItemTypes = "Movie,Series,Book"

// Client talks to one Emby server using API-key auth.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client for the given server. baseURL is the server
// root, e.g. http://localhost:8096.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Libraries returns all media folders on the server.
func (c *Client) Libraries(ctx context.Context) ([]Library, error) {
	var env librariesEnvelope
	if err := c.get(ctx, "/Library/MediaFolders", nil, &env); err != nil {
		return nil, fmt.Errorf("emby libraries: %w", err)
	}
	return env.Items, nil
}

// LibraryItems lists movies, series and books in one library.
func (c *Client) LibraryItems(ctx context.Context, libraryID string, limit int) ([]MediaItem, error) {
	params := url.Values{
		"ParentId":         {libraryID},
		"Limit":            {strconv.Itoa(limit)},
		"Recursive":        {"true"},
		"IncludeItemTypes": {includeItemTypes},
		"Fields":           {"Genres,Overview,DateCreated,ProductionYear"},
	}
	var env itemsEnvelope
	if err := c.get(ctx, "/Items", params, &env); err != nil {
		return nil, fmt.Errorf("emby items for library %s: %w", libraryID, err)
	}
	return env.Items, nil
}

// Item fetches one item by ID.
func (c *Client) Item(ctx context.Context, itemID string) (*MediaItem, error) {
	var item MediaItem
	if err := c.get(ctx, "/Items/"+url.PathEscape(itemID), nil, &item); err != nil {
		return nil, fmt.Errorf("emby item %s: %w", itemID, err)
	}
	return &item, nil
}

// Search finds items matching the query across the whole server.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]MediaItem, error) {
	params := url.Values{
		"SearchTerm":       {query},
		"Limit":            {strconv.Itoa(limit)},
		"Recursive":        {"true"},
		"IncludeItemTypes": {includeItemTypes},
	}
	var env itemsEnvelope
	if err := c.get(ctx, "/Items", params, &env); err != nil {
		return nil, fmt.Errorf("emby search %q: %w", query, err)
	}
	return env.Items, nil
}

// Ping verifies the server is reachable and the API key is accepted.
func (c *Client) Ping(ctx context.Context) error {
	var info SystemInfo
	if err := c.get(ctx, "/System/Info", nil, &info); err != nil {
		return fmt.Errorf("emby ping: %w", err)
	}
	return nil
}

// get performs an authenticated GET and decodes the JSON body into out.
// Transport failures wrap domain.ErrUpstreamUnavailable; undecodable
// bodies wrap domain.ErrUpstreamMalformed.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Emby-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

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
