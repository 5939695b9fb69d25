package meli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"marroking/internal/logger"
)

// Client talks to the MercadoLibre API with a bearer token.
type Client struct {
	baseURL      string
	statusFilter string
	pageSize     int
	httpClient   *http.Client
	logger       *logger.Logger
}

func NewClient(baseURL, statusFilter string, pageSize int, logger *logger.Logger) *Client {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Client{
		baseURL:      baseURL,
		statusFilter: statusFilter,
		pageSize:     pageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// ListItemIDs walks the scan-type item search for a seller and returns
// every item id. The scroll cursor from each response is threaded into the
// next request; the walk stops on the first empty results page. A response
// that has results but no scroll cursor is treated as a single
// non-paginated page.
func (c *Client) ListItemIDs(ctx context.Context, accessToken, userID string) ([]string, error) {
	var ids []string
	scrollID := ""

	for {
		page, err := c.searchPage(ctx, accessToken, userID, scrollID)
		if err != nil {
			return nil, err
		}

		if len(page.Results) == 0 {
			break
		}
		ids = append(ids, page.Results...)

		if page.ScrollID == "" {
			// Contract-change fallback: no cursor means no further pages.
			break
		}
		scrollID = page.ScrollID
	}

	return ids, nil
}

func (c *Client) searchPage(ctx context.Context, accessToken, userID, scrollID string) (*ScrollResponse, error) {
	searchURL := fmt.Sprintf("%s/users/%s/items/search", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	q := req.URL.Query()
	q.Set("search_type", "scan")
	q.Set("limit", fmt.Sprintf("%d", c.pageSize))
	if c.statusFilter != "" {
		q.Set("status", c.statusFilter)
	}
	if scrollID != "" {
		q.Set("scroll_id", scrollID)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("item search failed: %d - %s", resp.StatusCode, string(body))
	}

	var page ScrollResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return &page, nil
}

// GetItem fetches one item with its variation attributes. Callers treat a
// failure here as a per-item skip, not a fatal condition.
func (c *Client) GetItem(ctx context.Context, accessToken, itemID string) (*Item, error) {
	itemURL := fmt.Sprintf("%s/items/%s", c.baseURL, url.PathEscape(itemID))

	req, err := http.NewRequestWithContext(ctx, "GET", itemURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	q := req.URL.Query()
	q.Set("include_attributes", "all")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("item fetch failed: %d - %s", resp.StatusCode, string(body))
	}

	var item Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to decode item response: %w", err)
	}

	return &item, nil
}
