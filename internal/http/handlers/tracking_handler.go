// README: Tracking session handlers: open, read, refresh route, close.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	httpmiddleware "porter/internal/http/middleware"
	"porter/internal/modules/tracking"
	"porter/internal/types"
)

type TrackingHandler struct {
	tracking *tracking.Manager
}

func NewTrackingHandler(m *tracking.Manager) *TrackingHandler {
	return &TrackingHandler{tracking: m}
}

type openTrackingReq struct {
	ShipmentID string `json:"shipment_id"`
}

func (h *TrackingHandler) Open(c *gin.Context) {
	var req openTrackingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id := strings.TrimSpace(req.ShipmentID)
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid shipment id")
		return
	}
	v, err := h.tracking.Open(c.Request.Context(), httpmiddleware.CallerUID(c), types.ID(id))
	if err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, v)
}

func (h *TrackingHandler) View(c *gin.Context) {
	v, err := h.tracking.View(c.Param("sid"), httpmiddleware.CallerUID(c))
	if err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *TrackingHandler) RefreshRoute(c *gin.Context) {
	v, err := h.tracking.RefreshRoute(c.Request.Context(), c.Param("sid"), httpmiddleware.CallerUID(c))
	if err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *TrackingHandler) Close(c *gin.Context) {
	if err := h.tracking.Close(c.Param("sid"), httpmiddleware.CallerUID(c)); err != nil {
		writeTrackingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
