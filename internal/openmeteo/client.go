// Package openmeteo talks to the open-meteo geocoding and forecast APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/pders01/weatherboard/internal/config"
)

// ErrCoordinates is returned when a geocoding match carries coordinates
// outside the valid range.
var ErrCoordinates = errors.New("coordinates out of range")

const (
	maxErrorBody = 4 << 10
	// Only the best match is ever used.
	geocodeCount = "1"
)

type Client struct {
	httpClient   *http.Client
	geocodingURL string
	forecastURL  string
	language     string
	userAgent    string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Lookup.HTTPTimeout,
		},
		geocodingURL: cfg.Lookup.GeocodingURL,
		forecastURL:  cfg.Lookup.ForecastURL,
		language:     cfg.Lookup.Language,
		userAgent:    cfg.Lookup.UserAgent,
	}
}

// Search resolves a free-text name. The name is sent exactly as given.
func (c *Client) Search(ctx context.Context, name string) (*GeocodingResponse, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("count", geocodeCount)
	q.Set("language", c.language)
	q.Set("format", "json")

	var out GeocodingResponse
	if err := c.getJSON(ctx, c.geocodingURL, q, &out); err != nil {
		// open-meteo rejects names it cannot search (too short, say) with a
		// 4xx JSON body. That is a miss, not a transport failure.
		var se *StatusError
		if errors.As(err, &se) && se.IsClientError() && se.APIError != nil {
			return &GeocodingResponse{}, nil
		}
		return nil, errors.Wrapf(err, "geocoding %q", name)
	}

	if len(out.Results) > 0 {
		p := out.Results[0]
		if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
			return nil, errors.Wrapf(ErrCoordinates, "geocoding %q: %.4f,%.4f", name, p.Latitude, p.Longitude)
		}
	}

	return &out, nil
}

// CurrentWeather fetches the current-weather block for a coordinate pair.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (*ForecastResponse, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current_weather", "true")

	var out ForecastResponse
	if err := c.getJSON(ctx, c.forecastURL, q, &out); err != nil {
		return nil, errors.Wrapf(err, "forecast %v,%v", lat, lon)
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, base string, q url.Values, out interface{}) error {
	u, err := url.Parse(base)
	if err != nil {
		return errors.Wrap(err, "parse base url")
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "executing request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}

// StatusError is returned for responses with a status of 400 or above.
// APIError is set when the body decoded as open-meteo's error JSON.
type StatusError struct {
	StatusCode int
	APIError   *APIError
}

func (e *StatusError) Error() string {
	if e.APIError != nil && e.APIError.Reason != "" {
		return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.APIError.Reason)
	}
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}

func (e *StatusError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	se := &StatusError{StatusCode: resp.StatusCode}
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil {
		se.APIError = &apiErr
	}
	return se
}
