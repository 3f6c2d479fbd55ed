package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meltforce/jellyfit/internal/models"
	"github.com/meltforce/jellyfit/internal/tracker"
)

// errNotFound marks a 404 from the API; lookups turn it into a nil result.
var errNotFound = errors.New("not found")

// HTTPClient implements DataSource by calling the jellyfit REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	if !start.IsZero() {
		v.Set("start", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		v.Set("end", end.Format(time.RFC3339))
	}
	return v
}

func (c *HTTPClient) Sessions(ctx context.Context, start, end time.Time, category string) ([]models.Session, error) {
	params := timeParams(start, end)
	if category != "" {
		params.Set("type", category)
	}
	var sessions []models.Session
	if err := c.get(ctx, "/api/v1/sessions", params, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *HTTPClient) Session(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := c.get(ctx, "/api/v1/sessions/"+url.PathEscape(id), nil, &s)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) WeeklyPlan(ctx context.Context) (*models.WeeklyPlan, error) {
	var resp struct {
		Plan *models.WeeklyPlan `json:"plan"`
	}
	err := c.get(ctx, "/api/v1/plan", nil, &resp)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return resp.Plan, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.UserProfile, error) {
	var p models.UserProfile
	err := c.get(ctx, "/api/v1/profile", nil, &p)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*tracker.Stats, error) {
	var st tracker.Stats
	if err := c.get(ctx, "/api/v1/stats", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *HTTPClient) Insights(ctx context.Context) (string, error) {
	var resp struct {
		Insight string `json:"insight"`
	}
	if err := c.get(ctx, "/api/v1/insights", nil, &resp); err != nil {
		return "", err
	}
	return resp.Insight, nil
}
