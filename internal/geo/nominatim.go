package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// NominatimClient geocodes free-form place strings through the public
// Nominatim search endpoint.
type NominatimClient struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
}

func NewNominatimClient(userAgent string) *NominatimClient {
	return &NominatimClient{
		Client:    &http.Client{Timeout: 20 * time.Second},
		BaseURL:   "https://nominatim.openstreetmap.org/search",
		UserAgent: userAgent,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (n *NominatimClient) Geocode(ctx context.Context, location string) (Point, error) {
	q := strings.TrimSpace(location)
	if q == "" {
		return Point{}, errors.New("empty location")
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", n.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Point{}, err
	}
	// Nominatim's usage policy requires an identifying agent on every call.
	req.Header.Set("User-Agent", n.UserAgent)

	resp, err := n.Client.Do(req)
	if err != nil {
		return Point{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Point{}, fmt.Errorf("nominatim: status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Point{}, err
	}
	if len(results) == 0 {
		return Point{}, errors.New("no result for location")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Point{}, fmt.Errorf("nominatim: bad latitude %q", results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Point{}, fmt.Errorf("nominatim: bad longitude %q", results[0].Lon)
	}

	return Point{Lat: lat, Lon: lon}, nil
}
