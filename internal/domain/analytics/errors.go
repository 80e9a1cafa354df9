package analytics

import "errors"

var (
	// ErrInvalidQueryKey is returned for an unknown granularity/metric pair.
	ErrInvalidQueryKey = errors.New("invalid query key")

	// ErrInsufficientData is returned when a series is too short to derive a trend.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrExternalService is returned when the trend provider fails or times out.
	ErrExternalService = errors.New("external service error")

	ErrInvalidOffer   = errors.New("invalid offer")
	ErrInvalidPayment = errors.New("invalid payment")
)
