package ipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ivangsquared/poc-address-finder/internal/config"
	"github.com/ivangsquared/poc-address-finder/internal/domain"
	"github.com/ivangsquared/poc-address-finder/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a locator backed by an ip-api style geolocation provider.
// It stands in for the device geolocation capability of the original POC.
func NewClient(cfg *config.LocatorConfig, logger *zap.Logger) repository.Locator {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

type positionResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentPosition requests a single position fix. Callers bound the wait with
// the context deadline.
func (c *client) CurrentPosition(ctx context.Context) (*domain.Point, error) {
	endpoint := c.baseURL + "/json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Locator request failed", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		c.logger.Error("Locator returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("locator error: status %d", resp.StatusCode)
	}

	var result positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error("Failed to decode locator response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Status != "success" {
		c.logger.Warn("Locator denied position fix", zap.String("message", result.Message))
		return nil, fmt.Errorf("locator denied: %s", result.Message)
	}

	return &domain.Point{Lat: result.Lat, Lng: result.Lon}, nil
}
