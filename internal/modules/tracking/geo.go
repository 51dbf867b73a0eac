package tracking

import (
	"math"

	"porter/internal/modules/shipment"
	"porter/internal/types"
)

const earthRadiusMeters = 6371000.0

// haversineMeters returns the great-circle distance between two points.
func haversineMeters(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// straightLine is the as-the-crow-flies hint from the courier (or the pickup
// before the courier reports a position) to the drop-off.
func straightLine(sh *shipment.Shipment) *float64 {
	if sh == nil || sh.Dropoff == nil {
		return nil
	}
	from := sh.CurrentLocation
	if from == nil {
		from = sh.Pickup
	}
	if from == nil {
		return nil
	}
	d := haversineMeters(*from, *sh.Dropoff)
	return &d
}
