// README: Booking submission: validate, price once, write one shipment per passenger.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"porter/internal/modules/pricing"
	"porter/internal/modules/shipment"
	"porter/internal/types"
)

const maxIDAttempts = 3

var ErrNoOwner = errors.New("booking: owner id required")

type Quoter interface {
	Quote(ctx context.Context, city, region string) pricing.Quote
}

type ShipmentWriter interface {
	Insert(ctx context.Context, sh *shipment.Shipment) error
}

// SubmissionPartialFailure reports a submit that stopped part way. Written
// shipments are not rolled back.
type SubmissionPartialFailure struct {
	Written     []shipment.Shipment
	FailedIndex int
	Err         error
}

func (e *SubmissionPartialFailure) Error() string {
	return fmt.Sprintf("booking: passenger %d not saved after %d shipment(s) written: %v", e.FailedIndex, len(e.Written), e.Err)
}

func (e *SubmissionPartialFailure) Unwrap() error { return e.Err }

type Config struct {
	Facility string
}

type Service struct {
	quoter   Quoter
	writer   ShipmentWriter
	facility string
	log      *zap.Logger
	now      func() time.Time
}

func NewService(quoter Quoter, writer ShipmentWriter, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Facility == "" {
		cfg.Facility = shipment.DefaultFacility
	}
	return &Service{quoter: quoter, writer: writer, facility: cfg.Facility, log: log, now: time.Now}
}

// Preview is the validation and pricing state of a booking that has not
// been submitted.
type Preview struct {
	Valid      bool             `json:"valid"`
	Errors     ValidationResult `json:"errors"`
	Status     pricing.Status   `json:"pricingStatus"`
	Fee        types.Money      `json:"fee"`
	Surcharges []types.Money    `json:"surcharges"`
	Total      types.Money      `json:"total"`
}

func (s *Service) Preview(ctx context.Context, b Booking) Preview {
	res := Validate(b)
	p := Preview{Valid: res.Valid(), Errors: res, Status: pricing.StatusNoPricing}
	if strings.TrimSpace(b.Dropoff.City) == "" {
		return p
	}
	q := s.quoter.Quote(ctx, b.Dropoff.City, b.Dropoff.Region)
	p.Status = q.Status
	if q.Status != pricing.StatusOK {
		return p
	}
	p.Fee = q.Fee
	for _, n := range b.Quantities() {
		p.Surcharges = append(p.Surcharges, pricing.Surcharge(q.Fee, n))
	}
	p.Total = pricing.BookingTotal(q.Fee, b.Quantities())
	return p
}

// Submit writes one shipment per passenger in order. The writes are not
// transactional: on failure the shipments already written are returned in a
// *SubmissionPartialFailure.
func (s *Service) Submit(ctx context.Context, ownerID types.ID, b Booking) ([]shipment.Shipment, error) {
	if ownerID == "" {
		return nil, ErrNoOwner
	}
	if res := Validate(b); !res.Valid() {
		return nil, &ValidationError{Result: res}
	}
	q := s.quoter.Quote(ctx, b.Dropoff.City, b.Dropoff.Region)
	if err := q.Status.Err(); err != nil {
		return nil, err
	}

	pickup := b.Pickup.Coordinates
	if pickup == nil {
		if loc, ok := TerminalLocation(b.Pickup.Terminal); ok {
			pickup = &loc
		}
	}

	now := s.now()
	written := make([]shipment.Shipment, 0, len(b.Passengers))
	for i, p := range b.Passengers {
		sh := s.build(ownerID, b, pickup, p, q.Fee, now)
		if err := s.insert(ctx, &sh, now); err != nil {
			s.log.Error("booking submission stopped",
				zap.String("owner_id", string(ownerID)),
				zap.Int("failed_index", i),
				zap.Int("written", len(written)),
				zap.Error(err),
			)
			return written, &SubmissionPartialFailure{Written: written, FailedIndex: i, Err: err}
		}
		written = append(written, sh)
	}
	s.log.Info("booking submitted", zap.String("owner_id", string(ownerID)), zap.Int("shipments", len(written)))
	return written, nil
}

// insert retries with a fresh id when the generated one is already taken.
func (s *Service) insert(ctx context.Context, sh *shipment.Shipment, now time.Time) error {
	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		sh.ID, err = shipment.NewID(now, s.facility)
		if err != nil {
			return err
		}
		err = s.writer.Insert(ctx, sh)
		if !errors.Is(err, shipment.ErrDuplicateID) {
			return err
		}
	}
	return err
}

func (s *Service) build(ownerID types.ID, b Booking, pickup *types.Point, p Passenger, base types.Money, now time.Time) shipment.Shipment {
	d := b.Dropoff
	var dropoff *types.Point
	if d.Coordinates != nil {
		loc := *d.Coordinates
		dropoff = &loc
	}
	return shipment.Shipment{
		OwnerID:             ownerID,
		Status:              shipment.StatusAvailable,
		FirstName:           strings.TrimSpace(p.FirstName),
		MiddleName:          strings.TrimSpace(p.MiddleName),
		LastName:            strings.TrimSpace(p.LastName),
		Suffix:              strings.TrimSpace(p.Suffix),
		FlightNumber:        strings.ToUpper(strings.TrimSpace(p.FlightNumber)),
		ContactNumber:       p.ContactNumber,
		LuggageQuantity:     p.LuggageQuantity,
		LuggageDescriptions: append([]string(nil), p.LuggageDescriptions...),
		PickupTerminal:      b.Pickup.Terminal,
		PickupBay:           b.Pickup.Bay,
		Pickup:              pickup,
		DropoffLocation:     d.Location,
		Dropoff:             dropoff,
		Region:              d.Region,
		Province:            d.Province,
		City:                d.City,
		Barangay:            d.Barangay,
		PostalCode:          d.PostalCode,
		AddressLine1:        strings.TrimSpace(d.AddressLine1),
		AddressLine2:        strings.TrimSpace(d.AddressLine2),
		DeliveryCharge:      base,
		DeliverySurcharge:   pricing.Surcharge(base, p.LuggageQuantity),
		CreatedAt:           now,
	}
}
