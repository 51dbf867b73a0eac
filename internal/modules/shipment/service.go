// README: Shipment service: record access, status transitions and change notifications.
package shipment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"porter/internal/types"
)

// Repository is the persistence side of the record store.
type Repository interface {
	Insert(ctx context.Context, sh *Shipment) error
	Get(ctx context.Context, id types.ID) (*Shipment, error)
	Update(ctx context.Context, id types.ID, p Patch) error
	Transition(ctx context.Context, id types.ID, from, to Status, p Patch) (bool, error)
	ListByOwner(ctx context.Context, ownerID types.ID) ([]Shipment, error)
}

// Notifier is the push side of the record store.
type Notifier interface {
	Publish(ctx context.Context, id types.ID, p Patch) error
	Subscribe(ctx context.Context, id types.ID, onChange func(Patch)) (func(), error)
}

type Service struct {
	store Repository
	feed  Notifier
	log   *zap.Logger
}

func NewService(store Repository, feed Notifier, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, feed: feed, log: log}
}

type StatusCommand struct {
	ShipmentID types.ID
	To         Status
	CourierID  types.ID
}

type LocationCommand struct {
	ShipmentID types.ID
	CourierID  types.ID
	Location   types.Point
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Shipment, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Insert(ctx context.Context, sh *Shipment) error {
	if sh.ID == "" || sh.OwnerID == "" || !sh.Status.Valid() {
		return ErrBadRequest
	}
	if sh.CreatedAt.IsZero() {
		sh.CreatedAt = time.Now()
	}
	return s.store.Insert(ctx, sh)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID types.ID) ([]Shipment, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// Update persists p and then notifies subscribers. A failed notification is
// only logged; polling subscribers still converge.
func (s *Service) Update(ctx context.Context, id types.ID, p Patch) error {
	if err := s.store.Update(ctx, id, p); err != nil {
		return err
	}
	s.publish(ctx, id, p)
	return nil
}

func (s *Service) Subscribe(ctx context.Context, id types.ID, onChange func(Patch)) (func(), error) {
	if s.feed == nil {
		return nil, ErrNoFeed
	}
	return s.feed.Subscribe(ctx, id, onChange)
}

// UpdateStatus moves a shipment along the lifecycle. Accepting assigns the
// calling courier; only the assigned courier may move it afterwards.
func (s *Service) UpdateStatus(ctx context.Context, cmd StatusCommand) (*Shipment, error) {
	if cmd.ShipmentID == "" || cmd.CourierID == "" || !cmd.To.Valid() {
		return nil, ErrBadRequest
	}
	sh, err := s.store.Get(ctx, cmd.ShipmentID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(sh.Status, cmd.To) {
		return nil, ErrInvalidState
	}

	var p Patch
	switch {
	case cmd.To == StatusAccepted:
		courier := cmd.CourierID
		p.CourierID = &courier
	case !assignedTo(sh, cmd.CourierID):
		return nil, ErrInvalidState
	case cmd.To == StatusAvailable:
		p.ClearCourier, p.ClearAccepted = true, true
	}

	ok, err := s.store.Transition(ctx, sh.ID, sh.Status, cmd.To, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}

	updated, err := s.store.Get(ctx, sh.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sh.ID, FullPatch(*updated))
	return updated, nil
}

// Cancel lets the owner withdraw a shipment before it is picked up.
func (s *Service) Cancel(ctx context.Context, id, ownerID types.ID) (*Shipment, error) {
	if id == "" || ownerID == "" {
		return nil, ErrBadRequest
	}
	sh, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	if !CanTransition(sh.Status, StatusCancelled) {
		return nil, ErrInvalidState
	}
	ok, err := s.store.Transition(ctx, sh.ID, sh.Status, StatusCancelled, Patch{})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	updated, err := s.store.Get(ctx, sh.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sh.ID, FullPatch(*updated))
	return updated, nil
}

// UpdateLocation records the assigned courier's position while the
// shipment is accepted or in transit.
func (s *Service) UpdateLocation(ctx context.Context, cmd LocationCommand) error {
	if cmd.ShipmentID == "" || !cmd.Location.Valid() {
		return ErrBadRequest
	}
	sh, err := s.store.Get(ctx, cmd.ShipmentID)
	if err != nil {
		return err
	}
	if !sh.Status.Active() || !assignedTo(sh, cmd.CourierID) {
		return ErrInvalidState
	}
	loc := cmd.Location
	return s.Update(ctx, sh.ID, Patch{CurrentLocation: &loc})
}

func (s *Service) publish(ctx context.Context, id types.ID, p Patch) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(ctx, id, p); err != nil {
		s.log.Warn("shipment change not published", zap.String("shipment_id", string(id)), zap.Error(err))
	}
}

func assignedTo(sh *Shipment, courier types.ID) bool {
	return sh.CourierID != nil && *sh.CourierID == courier
}
