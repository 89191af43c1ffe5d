package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ivangsquared/poc-address-finder/internal/config"
	"github.com/ivangsquared/poc-address-finder/internal/domain"
	"github.com/ivangsquared/poc-address-finder/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// NewClient creates a geocoder backed by a Nominatim-compatible API.
func NewClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.Geocoder {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// ReverseGeocode resolves a coordinate to a display address. A coordinate the
// provider has no address for yields an empty string, not an error.
func (c *client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		c.baseURL,
		url.QueryEscape(strconv.FormatFloat(lat, 'f', -1, 64)),
		url.QueryEscape(strconv.FormatFloat(lng, 'f', -1, 64)),
	)

	c.logger.Debug("Calling reverse geocode",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng))

	var result reverseResponse
	if err := c.get(ctx, endpoint, &result); err != nil {
		return "", err
	}

	// Nominatim reports "Unable to geocode" as an error field on a 200.
	if result.Error != "" {
		return "", nil
	}

	return result.DisplayName, nil
}

// ForwardGeocode resolves a free-text address to the best-match coordinate,
// or nil when there is no match.
func (c *client) ForwardGeocode(ctx context.Context, address string) (*domain.Point, error) {
	endpoint := fmt.Sprintf("%s/search?format=jsonv2&limit=1&q=%s",
		c.baseURL,
		url.QueryEscape(address),
	)

	c.logger.Debug("Calling forward geocode", zap.String("address", address))

	var results []searchResult
	if err := c.get(ctx, endpoint, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoder response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoder response: %w", err)
	}

	return &domain.Point{Lat: lat, Lng: lng}, nil
}

func (c *client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Geocoder request failed", zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		c.logger.Error("Geocoder returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("geocoder error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 2<<20)).Decode(out); err != nil {
		c.logger.Error("Failed to decode geocoder response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
