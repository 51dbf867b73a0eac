// README: Pricing handlers: region list and per-city quotes.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"porter/internal/modules/booking"
	"porter/internal/modules/pricing"
)

type PricingHandler struct {
	pricing *pricing.Service
}

func NewPricingHandler(svc *pricing.Service) *PricingHandler {
	return &PricingHandler{pricing: svc}
}

func (h *PricingHandler) Regions(c *gin.Context) {
	regions, err := h.pricing.ListRegions(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusBadGateway, pricing.ErrNoPricing.Error())
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"regions": regions})
}

// Quote answers ?region=&city=[&luggage=2,7]. With luggage quantities the
// response carries the per-passenger surcharges and the booking total.
func (h *PricingHandler) Quote(c *gin.Context) {
	region := strings.TrimSpace(c.Query("region"))
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		writeError(c, http.StatusBadRequest, "city required")
		return
	}
	raw := c.Query("luggage")
	if raw == "" {
		writeJSON(c, http.StatusOK, h.pricing.Quote(c.Request.Context(), city, region))
		return
	}
	quantities, ok := parseQuantities(raw)
	if !ok {
		writeError(c, http.StatusBadRequest, fmt.Sprintf("luggage must list up to %d quantities between %d and %d", booking.MaxPassengers, booking.MinLuggage, booking.MaxLuggage))
		return
	}
	writeJSON(c, http.StatusOK, h.pricing.QuoteBooking(c.Request.Context(), city, region, quantities))
}

func parseQuantities(raw string) ([]int, bool) {
	parts := strings.Split(raw, ",")
	if len(parts) > booking.MaxPassengers {
		return nil, false
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < booking.MinLuggage || n > booking.MaxLuggage {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}
