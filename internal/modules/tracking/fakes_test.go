package tracking

import (
	"context"
	"sync"
	"time"

	"porter/internal/modules/shipment"
	"porter/internal/types"
)

type fakeRecords struct {
	mu           sync.Mutex
	rows         map[types.ID]shipment.Shipment
	getErr       error
	subErr       error
	listeners    map[types.ID]func(shipment.Patch)
	unsubscribed int
}

func newFakeRecords(rows ...shipment.Shipment) *fakeRecords {
	f := &fakeRecords{rows: make(map[types.ID]shipment.Shipment), listeners: make(map[types.ID]func(shipment.Patch))}
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	return f
}

func (f *fakeRecords) Get(_ context.Context, id types.ID) (*shipment.Shipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	sh, ok := f.rows[id]
	if !ok {
		return nil, shipment.ErrNotFound
	}
	return &sh, nil
}

func (f *fakeRecords) Subscribe(_ context.Context, id types.ID, onChange func(shipment.Patch)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subErr != nil {
		return nil, f.subErr
	}
	f.listeners[id] = onChange
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
		f.unsubscribed++
	}, nil
}

// push delivers p to the subscriber of id, as the change feed would.
func (f *fakeRecords) push(id types.ID, p shipment.Patch) bool {
	f.mu.Lock()
	fn := f.listeners[id]
	f.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(p)
	return true
}

func (f *fakeRecords) set(sh shipment.Shipment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[sh.ID] = sh
}

func (f *fakeRecords) unsubscribeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unsubscribed
}

type fakeRoutes struct {
	mu      sync.Mutex
	calls   []RouteOptions
	results map[bool]RouteResult
	err     error
	// block, when set, holds every call until it is closed.
	block   chan struct{}
	entered chan struct{}
}

func newFakeRoutes() *fakeRoutes {
	return &fakeRoutes{results: map[bool]RouteResult{
		true:  {DistanceMeters: 3000, Duration: 10 * time.Minute, DurationInTraffic: 15 * time.Minute},
		false: {DistanceMeters: 10000, Duration: 25 * time.Minute},
	}}
}

func (f *fakeRoutes) Route(_ context.Context, _, _ types.Point, opts RouteOptions) (RouteResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, opts)
	block, entered := f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		<-block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results[opts.TrafficAware], f.err
}

func (f *fakeRoutes) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func trackedShipment(id types.ID) shipment.Shipment {
	courier := types.ID("courier-1")
	return shipment.Shipment{
		ID:              id,
		OwnerID:         "owner-1",
		CourierID:       &courier,
		Status:          shipment.StatusInTransit,
		FirstName:       "Maria",
		Pickup:          &types.Point{Lat: 14.5204, Lng: 121.0166},
		Dropoff:         &types.Point{Lat: 14.5614, Lng: 121.0296},
		CurrentLocation: &types.Point{Lat: 14.5400, Lng: 121.0200},
	}
}
