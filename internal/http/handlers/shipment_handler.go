// README: Shipment handlers: owner reads and cancellation, courier status and location updates.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpmiddleware "porter/internal/http/middleware"
	"porter/internal/modules/shipment"
	"porter/internal/types"
)

type ShipmentHandler struct {
	shipment *shipment.Service
}

func NewShipmentHandler(svc *shipment.Service) *ShipmentHandler {
	return &ShipmentHandler{shipment: svc}
}

func (h *ShipmentHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid shipment id")
		return
	}
	sh, err := h.shipment.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeShipmentError(c, err)
		return
	}
	if !visibleTo(sh, httpmiddleware.CallerUID(c)) {
		writeShipmentError(c, shipment.ErrNotFound)
		return
	}
	writeJSON(c, http.StatusOK, sh)
}

// List returns the caller's own shipments.
func (h *ShipmentHandler) List(c *gin.Context) {
	list, err := h.shipment.ListByOwner(c.Request.Context(), httpmiddleware.CallerUID(c))
	if err != nil {
		writeShipmentError(c, err)
		return
	}
	if list == nil {
		list = []shipment.Shipment{}
	}
	writeJSON(c, http.StatusOK, gin.H{"shipments": list})
}

func (h *ShipmentHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid shipment id")
		return
	}
	sh, err := h.shipment.Cancel(c.Request.Context(), types.ID(id), httpmiddleware.CallerUID(c))
	if err != nil {
		writeShipmentError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sh)
}

type updateStatusReq struct {
	Status shipment.Status `json:"status"`
}

func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid shipment id")
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	sh, err := h.shipment.UpdateStatus(c.Request.Context(), shipment.StatusCommand{
		ShipmentID: types.ID(id),
		To:         req.Status,
		CourierID:  httpmiddleware.CallerUID(c),
	})
	if err != nil {
		writeShipmentError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sh)
}

type updateLocationReq struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (h *ShipmentHandler) UpdateLocation(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid shipment id")
		return
	}
	var req updateLocationReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Lat == nil || req.Lng == nil {
		writeError(c, http.StatusBadRequest, "lat and lng required")
		return
	}
	err := h.shipment.UpdateLocation(c.Request.Context(), shipment.LocationCommand{
		ShipmentID: types.ID(id),
		CourierID:  httpmiddleware.CallerUID(c),
		Location:   types.Point{Lat: *req.Lat, Lng: *req.Lng},
	})
	if err != nil {
		writeShipmentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func visibleTo(sh *shipment.Shipment, caller types.ID) bool {
	return sh.OwnerID == caller || (sh.CourierID != nil && *sh.CourierID == caller)
}
