// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"porter/internal/http/handlers"
	"porter/internal/http/middleware"
	"porter/internal/infra"
	"porter/internal/modules/address"
	"porter/internal/modules/booking"
	"porter/internal/modules/pricing"
	"porter/internal/modules/shipment"
	"porter/internal/modules/tracking"
)

type RouterDeps struct {
	Address  *address.Service
	Pricing  *pricing.Service
	Booking  *booking.Service
	Shipment *shipment.Service
	Tracking *tracking.Manager
	Verifier infra.TokenVerifier
	Limiter  *middleware.ClientLimiter
	Log      *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(log), middleware.Recovery(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", middleware.Auth(deps.Verifier))
	if deps.Limiter != nil {
		api.Use(middleware.RateLimit(deps.Limiter))
	}

	addressHandler := handlers.NewAddressHandler(deps.Address)
	api.POST("/addresses/resolve", addressHandler.Resolve)

	pricingHandler := handlers.NewPricingHandler(deps.Pricing)
	api.GET("/pricing/regions", pricingHandler.Regions)
	api.GET("/pricing/quote", pricingHandler.Quote)

	bookingHandler := handlers.NewBookingHandler(deps.Booking)
	api.POST("/bookings/validate", bookingHandler.Validate)
	api.POST("/bookings", bookingHandler.Submit)

	shipmentHandler := handlers.NewShipmentHandler(deps.Shipment)
	api.GET("/shipments", shipmentHandler.List)
	api.GET("/shipments/:id", shipmentHandler.Get)
	api.POST("/shipments/:id/cancel", shipmentHandler.Cancel)
	courier := api.Group("", middleware.RequireRole(middleware.RoleCourier))
	courier.PATCH("/shipments/:id/status", shipmentHandler.UpdateStatus)
	courier.PUT("/shipments/:id/location", shipmentHandler.UpdateLocation)

	trackingHandler := handlers.NewTrackingHandler(deps.Tracking)
	api.POST("/tracking", trackingHandler.Open)
	api.GET("/tracking/:sid", trackingHandler.View)
	api.POST("/tracking/:sid/route", trackingHandler.RefreshRoute)
	api.DELETE("/tracking/:sid", trackingHandler.Close)

	return r
}
