package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"porter/internal/modules/booking"
	"porter/internal/modules/pricing"
	"porter/internal/modules/shipment"
	"porter/internal/modules/tracking"
)

func record(write func(*gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	write(c)
	return w
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"20260301NAIAA9A9", true},
		{"", false},
		{"20260301naiaa9a9", false},
		{"../etc", false},
		{"A123456789012345678901234567890123", false},
	}
	for _, tt := range tests {
		if got := isValidID(tt.in); got != tt.want {
			t.Errorf("isValidID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriteShipmentError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{shipment.ErrBadRequest, http.StatusBadRequest},
		{fmt.Errorf("get: %w", shipment.ErrNotFound), http.StatusNotFound},
		{shipment.ErrInvalidState, http.StatusConflict},
		{shipment.ErrConflict, http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := record(func(c *gin.Context) { writeShipmentError(c, tt.err) })
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
	}
}

func TestWriteBookingError(t *testing.T) {
	w := record(func(c *gin.Context) {
		writeBookingError(c, &booking.ValidationError{Result: booking.ValidationResult{"pickup.bay": "Select a pickup bay"}})
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation failed","errors":{"pickup.bay":"Select a pickup bay"}}`, w.Body.String())

	w = record(func(c *gin.Context) {
		writeBookingError(c, &booking.SubmissionPartialFailure{
			Written:     []shipment.Shipment{{ID: "20260301NAIAAAAA"}},
			FailedIndex: 1,
			Err:         errors.New("insert failed"),
		})
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"failedIndex":1`)
	assert.Contains(t, w.Body.String(), `"20260301NAIAAAAA"`)

	w = record(func(c *gin.Context) { writeBookingError(c, pricing.ErrNoMatch) })
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestWriteTrackingError(t *testing.T) {
	w := record(func(c *gin.Context) { writeTrackingError(c, &tracking.RateLimitedError{RemainingSeconds: 42}) })
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "42", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"retry_after":42`)

	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: %w", tracking.ErrTrackingNotFound, shipment.ErrNotFound), http.StatusNotFound},
		{tracking.ErrSessionNotFound, http.StatusNotFound},
		{tracking.ErrForbidden, http.StatusForbidden},
		{tracking.ErrMissingCoordinates, http.StatusConflict},
		{fmt.Errorf("%w: %w", tracking.ErrRouteUnavailable, errors.New("OVER_QUERY_LIMIT")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := record(func(c *gin.Context) { writeTrackingError(c, tt.err) })
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
	}
}

func TestParseQuantities(t *testing.T) {
	tests := []struct {
		in   string
		want []int
		ok   bool
	}{
		{"3", []int{3}, true},
		{"1, 15,7", []int{1, 15, 7}, true},
		{"0", nil, false},
		{"16", nil, false},
		{"4,x", nil, false},
		{"", nil, false},
		{"1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1", nil, false},
	}
	for _, tt := range tests {
		got, ok := parseQuantities(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
