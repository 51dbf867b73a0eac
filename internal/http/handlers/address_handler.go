// README: Address resolution handler: free text, place id or coordinates to a gazetteer address.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"porter/internal/modules/address"
	"porter/internal/types"
)

type AddressHandler struct {
	address *address.Service
}

func NewAddressHandler(svc *address.Service) *AddressHandler {
	return &AddressHandler{address: svc}
}

type resolveAddressReq struct {
	Address string   `json:"address"`
	PlaceID string   `json:"place_id"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

type resolveAddressResp struct {
	address.Resolution
	Complete bool `json:"complete"`
}

func (h *AddressHandler) Resolve(c *gin.Context) {
	var req resolveAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	var (
		res address.Resolution
		err error
	)
	ctx := c.Request.Context()
	switch {
	case strings.TrimSpace(req.PlaceID) != "":
		res, err = h.address.ResolvePlace(ctx, req.PlaceID)
	case strings.TrimSpace(req.Address) != "":
		res, err = h.address.ResolveAddress(ctx, req.Address)
	case req.Lat != nil && req.Lng != nil:
		res, err = h.address.ResolvePoint(ctx, types.Point{Lat: *req.Lat, Lng: *req.Lng})
	default:
		writeError(c, http.StatusBadRequest, "address, place_id or lat/lng required")
		return
	}
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, resolveAddressResp{Resolution: res, Complete: res.Address.Complete()})
}
