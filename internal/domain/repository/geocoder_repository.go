package repository

import (
	"context"

	"github.com/ivangsquared/poc-address-finder/internal/domain"
)

// Geocoder is the external forward/reverse geocoding collaborator.
type Geocoder interface {
	// ReverseGeocode returns a display address for the coordinate. An empty
	// string with a nil error means the geocoder had no address for it.
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)

	// ForwardGeocode resolves a free-text address to a coordinate. A nil
	// point with a nil error means no match.
	ForwardGeocode(ctx context.Context, address string) (*domain.Point, error)
}

// Locator is the device/current-position capability.
type Locator interface {
	CurrentPosition(ctx context.Context) (*domain.Point, error)
}
