package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lifeline/internal/domain"
)

// NoopGeocoder resolves nothing. Used when no provider is configured.
type NoopGeocoder struct{}

func (NoopGeocoder) Resolve(ctx context.Context, address string) (*domain.Location, error) {
	return nil, nil
}

// HTTPGeocoder queries a nominatim-style search endpoint. Any failure is
// reported upward as an error and treated as "no resolution" by callers.
type HTTPGeocoder struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewHTTPGeocoder(baseURL string, logger *slog.Logger) *HTTPGeocoder {
	return &HTTPGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

func (g *HTTPGeocoder) Resolve(ctx context.Context, address string) (*domain.Location, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder status %s", resp.Status)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, err
	}

	loc := domain.Location{Lat: lat, Lng: lng}
	if !loc.Valid() {
		return nil, nil
	}
	return &loc, nil
}
