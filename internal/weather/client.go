// Package weather proxies current-weather lookups for a restaurant's
// stored location. It is a thin collaborator around the core: failures
// here never touch rating state.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"platehub/pkg/utils"
)

// UpstreamError carries the provider's status code so the route can
// propagate it instead of masking everything as a 500.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weather upstream returned status %d", e.Status)
}

type Client struct {
	cfg  utils.WeatherConfig
	http *http.Client
}

func NewClient(cfg utils.WeatherConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Current fetches the weather for a location. The provider's JSON body
// is passed through untouched on success.
func (c *Client) Current(ctx context.Context, location, units string) (json.RawMessage, error) {
	if units == "" {
		units = "metric"
	}

	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", c.cfg.APIKey)
	q.Set("units", units)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read weather response: %w", err)
	}
	return json.RawMessage(body), nil
}
