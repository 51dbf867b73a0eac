// README: Tracking view model, route types and the collaborators a session needs.
package tracking

import (
	"context"
	"time"

	"porter/internal/modules/shipment"
	"porter/internal/types"
)

type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateTracking State = "tracking"
	StateError    State = "error"
)

type RouteOptions struct {
	TrafficAware bool
}

type RouteResult struct {
	DistanceMeters    int
	Duration          time.Duration
	DurationInTraffic time.Duration
	Path              []types.Point
}

// RouteProvider computes a driving route between two points.
type RouteProvider interface {
	Route(ctx context.Context, origin, dest types.Point, opts RouteOptions) (RouteResult, error)
}

// Records is the slice of the shipment record store a session reads.
type Records interface {
	Get(ctx context.Context, id types.ID) (*shipment.Shipment, error)
	Subscribe(ctx context.Context, id types.ID, onChange func(shipment.Patch)) (func(), error)
}

// RouteInfo is replaced as a whole on every successful refresh so ETA and
// progress always describe the same computation.
type RouteInfo struct {
	DistanceRemainingMeters int           `json:"distanceRemainingMeters"`
	TotalDistanceMeters     int           `json:"totalDistanceMeters"`
	ETA                     time.Time     `json:"eta"`
	Progress                float64       `json:"progress"`
	Path                    []types.Point `json:"path,omitempty"`
	ComputedAt              time.Time     `json:"computedAt"`
}

type View struct {
	SessionID          string             `json:"sessionId,omitempty"`
	State              State              `json:"state"`
	ShipmentID         types.ID           `json:"shipmentId,omitempty"`
	Shipment           *shipment.Shipment `json:"shipment,omitempty"`
	Route              *RouteInfo         `json:"route,omitempty"`
	StraightLineMeters *float64           `json:"straightLineMeters,omitempty"`
	CooldownSeconds    int                `json:"cooldownSeconds"`
	Error              string             `json:"error,omitempty"`
}

// Progress is the share of the total route already covered, in percent,
// clamped to [0, 100].
func Progress(remainingMeters, totalMeters int) float64 {
	if totalMeters <= 0 {
		if remainingMeters <= 0 {
			return 100
		}
		return 0
	}
	p := (1 - float64(remainingMeters)/float64(totalMeters)) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
