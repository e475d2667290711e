package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
)

// Client fetches roster data from the roster API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL.
// No client-side timeout is set; callers bound requests through ctx.
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{})
}

// NewWithHTTPClient creates a client using a caller-provided http.Client
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Players fetches GET /api/players
func (c *Client) Players(ctx context.Context) ([]models.PlayerRecord, error) {
	var players []models.PlayerRecord
	if err := c.get(ctx, "/api/players", &players, false); err != nil {
		return nil, err
	}
	return players, nil
}

// PlayerNames fetches GET /api/player-names
func (c *Client) PlayerNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.get(ctx, "/api/player-names", &names, false); err != nil {
		return nil, err
	}
	return names, nil
}

// PlayerAverages fetches GET /api/player-averages/{name}.
// Error statuses with a JSON body are returned as averages so the caller
// can inspect the "error" flag; only transport and decode failures are errors.
func (c *Client) PlayerAverages(ctx context.Context, name string) (*models.PlayerAverages, error) {
	var avg models.PlayerAverages
	path := "/api/player-averages/" + url.PathEscape(name)
	if err := c.get(ctx, path, &avg, true); err != nil {
		return nil, err
	}
	return &avg, nil
}

// get makes an HTTP GET request and decodes the JSON body into out
func (c *Client) get(ctx context.Context, path string, out interface{}, decodeErrors bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && !decodeErrors {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("roster API error: status=%d, body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	return nil
}
