// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"porter/internal/modules/booking"
	"porter/internal/modules/pricing"
	"porter/internal/modules/shipment"
	"porter/internal/modules/tracking"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID accepts the uppercase alphanumeric shipment ids the id
// generator produces.
func isValidID(v string) bool {
	if v == "" || len(v) > 32 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeInternal(c *gin.Context, err error) {
	_ = c.Error(err)
	writeError(c, http.StatusInternalServerError, "internal error")
}

func writeShipmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shipment.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, shipment.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, shipment.ErrInvalidState), errors.Is(err, shipment.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeInternal(c, err)
	}
}

type partialFailureResponse struct {
	Error       string              `json:"error"`
	Written     []shipment.Shipment `json:"written"`
	FailedIndex int                 `json:"failedIndex"`
}

type validationResponse struct {
	Error  string                   `json:"error"`
	Errors booking.ValidationResult `json:"errors"`
}

func writeBookingError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	var perr *booking.SubmissionPartialFailure
	switch {
	case errors.As(err, &verr):
		writeJSON(c, http.StatusUnprocessableEntity, validationResponse{Error: "validation failed", Errors: verr.Result})
	case errors.As(err, &perr):
		_ = c.Error(err)
		writeJSON(c, http.StatusBadGateway, partialFailureResponse{
			Error:       "submission incomplete",
			Written:     perr.Written,
			FailedIndex: perr.FailedIndex,
		})
	case errors.Is(err, pricing.ErrNoPricing), errors.Is(err, pricing.ErrNoMatch):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, booking.ErrNoOwner):
		writeError(c, http.StatusUnauthorized, err.Error())
	default:
		writeInternal(c, err)
	}
}

type rateLimitedResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after"`
}

func writeTrackingError(c *gin.Context, err error) {
	var rl *tracking.RateLimitedError
	switch {
	case errors.As(err, &rl):
		c.Header("Retry-After", strconv.Itoa(rl.RemainingSeconds))
		writeJSON(c, http.StatusTooManyRequests, rateLimitedResponse{Error: err.Error(), RetryAfter: rl.RemainingSeconds})
	case errors.Is(err, tracking.ErrTrackingNotFound), errors.Is(err, tracking.ErrSessionNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, tracking.ErrForbidden):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, tracking.ErrMissingCoordinates), errors.Is(err, tracking.ErrNotTracking), errors.Is(err, tracking.ErrSessionStopped):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, tracking.ErrRouteUnavailable):
		_ = c.Error(err)
		writeError(c, http.StatusBadGateway, tracking.ErrRouteUnavailable.Error())
	default:
		writeInternal(c, err)
	}
}
