package tracking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTrackingNotFound   = errors.New("tracking: shipment not found")
	ErrMissingCoordinates = errors.New("tracking: pickup, drop-off and current location are required")
	ErrRouteUnavailable   = errors.New("tracking: route unavailable")
	ErrRouteRateLimited   = errors.New("tracking: route refresh rate limited")
	ErrNotTracking        = errors.New("tracking: session is not tracking")
	ErrSessionStopped     = errors.New("tracking: session stopped")
	ErrSessionNotFound    = errors.New("tracking: session not found")
	ErrForbidden          = errors.New("tracking: not allowed to track this shipment")
)

// RateLimitedError carries the wait before the next route refresh is
// accepted, in whole seconds rounded up.
type RateLimitedError struct {
	RemainingSeconds int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%v: retry in %ds", ErrRouteRateLimited, e.RemainingSeconds)
}

func (e *RateLimitedError) Is(target error) bool {
	return target == ErrRouteRateLimited
}

func ceilSeconds(d time.Duration) int {
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		return 1
	}
	return s
}
