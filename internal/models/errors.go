package models

import "errors"

// Tracking failures. None of them is fatal: a tick that hits one leaves the state unchanged.
var (
	// ErrPermissionDenied is returned when the device refused location access.
	ErrPermissionDenied = errors.New("location permission denied")

	// ErrGeocodeUnavailable is returned when reverse geocoding produced no address.
	ErrGeocodeUnavailable = errors.New("reverse geocode unavailable")

	// ErrContinentUnresolvable is returned when the country code is missing from the continent table.
	ErrContinentUnresolvable = errors.New("continent unresolvable")

	// ErrNetworkFailure is returned when the remote history could not be fetched.
	// Seeding fails as a whole; no partial history is applied.
	ErrNetworkFailure = errors.New("network failure")
)

// ErrValidation is returned for input that violates record rules (missing name, malformed date).
// Handlers map it to HTTP 422.
var ErrValidation = errors.New("validation error")
