// Package mapping talks to the third-party map services a route plan needs:
// walking directions, terrain elevation and place lookup.
package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/logging"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/routemetrics"
)

const (
	DefaultMapboxURL = "https://api.mapbox.com"
	DefaultNPSURL    = "https://developer.nps.gov/api/v1"
	defaultTimeout   = 30 * time.Second
	maxErrorBody     = 512
)

// Coordinate is a [lon, lat] point.
type Coordinate = routemetrics.Coordinate

// UpstreamError reports a non-2xx answer from a map service.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

func defaultHTTPClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: defaultTimeout}
}

// getJSON issues req and decodes a 200 response body into out.
func getJSON(client *http.Client, req *http.Request, service string, logger *slog.Logger, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, service+"_response")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &UpstreamError{Service: service, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", service, err)
	}
	return nil
}

func newGet(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "happy-hiker-app/1.0")
	return req, nil
}
