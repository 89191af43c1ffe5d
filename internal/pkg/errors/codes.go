package errors

import "net/http"

var (
	ErrMissingNMI = New(
		"MISSING_NMI",
		"Missing or invalid NMI",
		http.StatusBadRequest,
	)

	ErrNMINotFound = New(
		"NMI_NOT_FOUND",
		"NMI not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Session not found",
		http.StatusNotFound,
	)

	ErrGeocodingFailed = New(
		"GEOCODING_FAILED",
		"Geocoding request failed",
		http.StatusBadGateway,
	)

	ErrGeolocationUnsupported = New(
		"GEOLOCATION_UNSUPPORTED",
		"Geolocation is not supported in this environment",
		http.StatusNotImplemented,
	)

	ErrGeolocationFailed = New(
		"GEOLOCATION_FAILED",
		"Unable to determine current location",
		http.StatusGatewayTimeout,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
