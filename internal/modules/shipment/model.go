// README: Shipment record, status definitions and the partial-update patch.
package shipment

import (
	"errors"
	"time"

	"porter/internal/types"
)

var (
	ErrNotFound     = errors.New("shipment not found")
	ErrDuplicateID  = errors.New("shipment id already exists")
	ErrInvalidState = errors.New("invalid state transition")
	ErrConflict     = errors.New("shipment state conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrNoFeed       = errors.New("shipment change feed not configured")
)

type Status string

const (
	StatusAvailable      Status = "available"
	StatusCancelled      Status = "cancelled"
	StatusAccepted       Status = "accepted"
	StatusInTransit      Status = "in_transit"
	StatusDelivered      Status = "delivered"
	StatusDeliveryFailed Status = "delivery_failed"
)

// AllowedTransitions is the shipment lifecycle as code. A courier dropping
// an accepted shipment puts it back to available.
var AllowedTransitions = map[Status][]Status{
	StatusAvailable: {StatusAccepted, StatusCancelled},
	StatusAccepted:  {StatusInTransit, StatusCancelled, StatusAvailable},
	StatusInTransit: {StatusDelivered, StatusDeliveryFailed},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusCancelled, StatusAccepted, StatusInTransit, StatusDelivered, StatusDeliveryFailed:
		return true
	}
	return false
}

// Active reports whether a courier can still move the shipment.
func (s Status) Active() bool {
	return s == StatusAccepted || s == StatusInTransit
}

// Shipment is one passenger's luggage delivery. Charges are fixed at
// creation.
type Shipment struct {
	ID        types.ID  `json:"id"`
	OwnerID   types.ID  `json:"ownerId"`
	CourierID *types.ID `json:"courierId"`
	Status    Status    `json:"status"`

	FirstName           string   `json:"firstName"`
	MiddleName          string   `json:"middleName"`
	LastName            string   `json:"lastName"`
	Suffix              string   `json:"suffix"`
	FlightNumber        string   `json:"flightNumber"`
	ContactNumber       string   `json:"contactNumber"`
	LuggageQuantity     int      `json:"luggageQuantity"`
	LuggageDescriptions []string `json:"luggageDescriptions"`

	PickupTerminal string       `json:"pickupTerminal"`
	PickupBay      string       `json:"pickupBay"`
	Pickup         *types.Point `json:"pickup"`

	DropoffLocation string       `json:"dropoffLocation"`
	Dropoff         *types.Point `json:"dropoff"`
	Region          string       `json:"region"`
	Province        string       `json:"province"`
	City            string       `json:"city"`
	Barangay        string       `json:"barangay"`
	PostalCode      string       `json:"postalCode"`
	AddressLine1    string       `json:"addressLine1"`
	AddressLine2    string       `json:"addressLine2"`

	CurrentLocation *types.Point `json:"currentLocation"`

	DeliveryCharge    types.Money `json:"deliveryCharge"`
	DeliverySurcharge types.Money `json:"deliverySurcharge"`

	CreatedAt   time.Time  `json:"createdAt"`
	AcceptedAt  *time.Time `json:"acceptedAt"`
	PickupAt    *time.Time `json:"pickupAt"`
	DeliveredAt *time.Time `json:"deliveredAt"`
	CancelledAt *time.Time `json:"cancelledAt"`
}

func (s Shipment) Total() types.Money {
	return s.DeliveryCharge.Add(s.DeliverySurcharge)
}

// Patch carries the mutable fields of a shipment. Nil fields are left
// untouched; ClearCourier removes the courier and ClearAccepted the
// acceptance time.
type Patch struct {
	Status          *Status      `json:"status,omitempty"`
	CourierID       *types.ID    `json:"courierId,omitempty"`
	ClearCourier    bool         `json:"clearCourier,omitempty"`
	ClearAccepted   bool         `json:"clearAccepted,omitempty"`
	CurrentLocation *types.Point `json:"currentLocation,omitempty"`
	AcceptedAt      *time.Time   `json:"acceptedAt,omitempty"`
	PickupAt        *time.Time   `json:"pickupAt,omitempty"`
	DeliveredAt     *time.Time   `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time   `json:"cancelledAt,omitempty"`
}

func (p Patch) Empty() bool {
	return p == Patch{}
}

// Apply returns s with p shallow-merged over it. Applying the same patch
// twice gives the same result as applying it once.
func (p Patch) Apply(s Shipment) Shipment {
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.ClearCourier {
		s.CourierID = nil
	}
	if p.CourierID != nil {
		id := *p.CourierID
		s.CourierID = &id
	}
	if p.CurrentLocation != nil {
		loc := *p.CurrentLocation
		s.CurrentLocation = &loc
	}
	if p.ClearAccepted {
		s.AcceptedAt = nil
	}
	s.AcceptedAt = mergeTime(s.AcceptedAt, p.AcceptedAt)
	s.PickupAt = mergeTime(s.PickupAt, p.PickupAt)
	s.DeliveredAt = mergeTime(s.DeliveredAt, p.DeliveredAt)
	s.CancelledAt = mergeTime(s.CancelledAt, p.CancelledAt)
	return s
}

// FullPatch describes every mutable field of s, so applying it to an older
// copy brings that copy up to date.
func FullPatch(s Shipment) Patch {
	status := s.Status
	p := Patch{
		Status:          &status,
		CourierID:       s.CourierID,
		ClearCourier:    s.CourierID == nil,
		ClearAccepted:   s.AcceptedAt == nil,
		CurrentLocation: s.CurrentLocation,
		AcceptedAt:      s.AcceptedAt,
		PickupAt:        s.PickupAt,
		DeliveredAt:     s.DeliveredAt,
		CancelledAt:     s.CancelledAt,
	}
	return p
}

func mergeTime(cur, next *time.Time) *time.Time {
	if next == nil {
		return cur
	}
	t := *next
	return &t
}
