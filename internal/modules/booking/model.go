// README: In-progress booking: shared pickup/drop-off plus 1..15 passengers.
package booking

import (
	"errors"
	"fmt"

	"porter/internal/modules/address"
	"porter/internal/types"
)

const (
	MaxPassengers  = 15
	MinLuggage     = 1
	MaxLuggage     = 15
	MaxAddressLine = 200
)

var (
	ErrTooManyPassengers = errors.New("booking: passenger limit reached")
	ErrLastPassenger     = errors.New("booking: cannot remove the only passenger")
	ErrPassengerIndex    = errors.New("booking: passenger index out of range")
	ErrLuggageQuantity   = errors.New("booking: luggage quantity out of range")
)

type Passenger struct {
	FirstName           string   `json:"firstName"`
	MiddleName          string   `json:"middleName"`
	LastName            string   `json:"lastName"`
	Suffix              string   `json:"suffix"`
	FlightNumber        string   `json:"flightNumber"`
	ContactNumber       string   `json:"contactNumber"`
	LuggageQuantity     int      `json:"luggageQuantity"`
	LuggageDescriptions []string `json:"luggageDescriptions"`
}

func blankPassenger() Passenger {
	return Passenger{LuggageQuantity: MinLuggage, LuggageDescriptions: make([]string, MinLuggage)}
}

type Pickup struct {
	Terminal    string       `json:"terminal"`
	Bay         string       `json:"bay"`
	Coordinates *types.Point `json:"coordinates"`
}

type Dropoff struct {
	Location     string       `json:"location"`
	Coordinates  *types.Point `json:"coordinates"`
	Region       string       `json:"region"`
	Province     string       `json:"province"`
	City         string       `json:"city"`
	Barangay     string       `json:"barangay"`
	PostalCode   string       `json:"postalCode"`
	AddressLine1 string       `json:"addressLine1"`
	AddressLine2 string       `json:"addressLine2"`
}

type Booking struct {
	Pickup     Pickup      `json:"pickup"`
	Dropoff    Dropoff     `json:"dropoff"`
	Passengers []Passenger `json:"passengers"`
}

// New starts a booking with one blank passenger carrying one bag.
func New() *Booking {
	return &Booking{Passengers: []Passenger{blankPassenger()}}
}

func (b *Booking) AddPassenger() error {
	if len(b.Passengers) >= MaxPassengers {
		return ErrTooManyPassengers
	}
	b.Passengers = append(b.Passengers, blankPassenger())
	return nil
}

func (b *Booking) RemovePassenger(i int) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}
	if len(b.Passengers) == 1 {
		return ErrLastPassenger
	}
	b.Passengers = append(b.Passengers[:i], b.Passengers[i+1:]...)
	return nil
}

// ClearPassenger resets one passenger to the blank state.
func (b *Booking) ClearPassenger(i int) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}
	b.Passengers[i] = blankPassenger()
	return nil
}

// SetLuggageQuantity resizes the description list to q, keeping the
// descriptions already entered.
func (b *Booking) SetLuggageQuantity(i, q int) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}
	if q < MinLuggage || q > MaxLuggage {
		return fmt.Errorf("%w: %d", ErrLuggageQuantity, q)
	}
	p := &b.Passengers[i]
	descs := make([]string, q)
	copy(descs, p.LuggageDescriptions)
	p.LuggageQuantity = q
	p.LuggageDescriptions = descs
	return nil
}

// ApplyAddress copies a resolution into the drop-off. Unresolved levels are
// cleared so stale values from an earlier pin never survive.
func (b *Booking) ApplyAddress(r address.Resolution) {
	d := &b.Dropoff
	a := r.Address
	d.Location = r.FormattedAddress
	d.Coordinates = nil
	if r.Location != nil {
		loc := *r.Location
		d.Coordinates = &loc
	}
	d.Region, d.Province, d.City, d.Barangay = "", "", "", ""
	if a.Region != nil {
		d.Region = a.Region.Name
	}
	if a.Province != nil {
		d.Province = a.Province.Name
	}
	if a.City != nil {
		d.City = a.City.Name
	}
	if a.Barangay != nil {
		d.Barangay = a.Barangay.Name
	}
	d.PostalCode = a.PostalCode
}

// Quantities lists each passenger's luggage count, in order.
func (b *Booking) Quantities() []int {
	out := make([]int, len(b.Passengers))
	for i, p := range b.Passengers {
		out[i] = p.LuggageQuantity
	}
	return out
}

func (b *Booking) checkIndex(i int) error {
	if i < 0 || i >= len(b.Passengers) {
		return fmt.Errorf("%w: %d", ErrPassengerIndex, i)
	}
	return nil
}
