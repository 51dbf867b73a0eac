// README: Booking handlers: preview (validation + pricing) and submission.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpmiddleware "porter/internal/http/middleware"
	"porter/internal/modules/booking"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

func (h *BookingHandler) Validate(c *gin.Context) {
	var b booking.Booking
	if err := c.ShouldBindJSON(&b); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	writeJSON(c, http.StatusOK, h.booking.Preview(c.Request.Context(), b))
}

func (h *BookingHandler) Submit(c *gin.Context) {
	var b booking.Booking
	if err := c.ShouldBindJSON(&b); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	written, err := h.booking.Submit(c.Request.Context(), httpmiddleware.CallerUID(c), b)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"shipments": written})
}
