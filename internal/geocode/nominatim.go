// Package geocode turns device coordinates into a postal code.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "confesercenti-vallo-app/1.0"
	defaultTimeout   = 10 * time.Second
)

// ErrNoPostalCode is returned when the provider answered but had no postcode
// for the coordinates.
var ErrNoPostalCode = errors.New("postal code not found in response")

// Geocoder resolves coordinates to a raw postal code string.
type Geocoder interface {
	ReversePostalCode(ctx context.Context, lat, lon float64) (string, error)
}

// NominatimClient calls the OpenStreetMap Nominatim reverse endpoint.
type NominatimClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewNominatimClient creates a client. Empty arguments select the public
// Nominatim instance and a default User-Agent, which Nominatim requires.
func NewNominatimClient(baseURL, userAgent string, timeout time.Duration) *NominatimClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &NominatimClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
	}
}

type reverseResponse struct {
	Address struct {
		Postcode string `json:"postcode"`
	} `json:"address"`
	Error string `json:"error"`
}

// ReversePostalCode returns address.postcode for the given coordinates.
func (c *NominatimClient) ReversePostalCode(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("nominatim: %s", out.Error)
	}

	postcode := strings.TrimSpace(out.Address.Postcode)
	if postcode == "" {
		return "", ErrNoPostalCode
	}
	return postcode, nil
}
