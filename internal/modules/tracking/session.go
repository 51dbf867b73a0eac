// README: Live tracking session: push + poll merged into one view, route refresh under a cooldown.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"porter/internal/modules/shipment"
	"porter/internal/types"
)

const (
	DefaultPollInterval  = 15 * time.Second
	DefaultRouteCooldown = 60 * time.Second
)

type Config struct {
	PollInterval  time.Duration
	RouteCooldown time.Duration
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.RouteCooldown <= 0 {
		c.RouteCooldown = DefaultRouteCooldown
	}
	return c
}

// Session tracks one shipment at a time. The change feed and the poller
// are two producers into apply; every result is tagged with the generation
// it was started under and dropped if the session has since been stopped or
// restarted.
type Session struct {
	records Records
	routes  RouteProvider
	cfg     Config
	log     *zap.Logger
	now     func() time.Time

	// life serializes Start and Stop.
	life sync.Mutex

	mu            sync.Mutex
	gen           uint64
	state         State
	id            types.ID
	snap          *shipment.Shipment
	route         *RouteInfo
	hint          *float64
	err           error
	lastRouteAt   time.Time
	routeInFlight bool
	runCtx        context.Context
	cancel        context.CancelFunc
	unsubscribe   func()
	wg            sync.WaitGroup
}

func NewSession(records Records, routes RouteProvider, cfg Config, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		records: records,
		routes:  routes,
		cfg:     cfg.withDefaults(),
		log:     log,
		now:     time.Now,
		state:   StateIdle,
	}
}

// Start begins tracking id from a clean Loading state, stopping whatever was
// tracked before. A fetch failure before the first snapshot leaves the
// session in Error and is returned.
func (s *Session) Start(ctx context.Context, id types.ID) error {
	s.life.Lock()
	defer s.life.Unlock()
	s.stopLocked()

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = StateLoading
	s.id = id
	s.mu.Unlock()

	sh, err := s.records.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shipment.ErrNotFound) {
			err = fmt.Errorf("%w: %w", ErrTrackingNotFound, err)
		} else {
			err = fmt.Errorf("load shipment %s: %w", id, err)
		}
		s.mu.Lock()
		s.state = StateError
		s.err = err
		s.mu.Unlock()
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.mu.Lock()
	s.snap = sh
	s.hint = straightLine(sh)
	s.state = StateTracking
	s.runCtx = runCtx
	s.cancel = cancel
	s.mu.Unlock()

	unsubscribe, err := s.records.Subscribe(runCtx, id, func(p shipment.Patch) { s.apply(gen, p) })
	if err != nil {
		s.log.Warn("change feed unavailable, relying on polling", zap.String("shipment_id", string(id)), zap.Error(err))
	}
	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	s.wg.Add(1)
	go s.poll(runCtx, gen, id)
	return nil
}

// Stop releases the feed subscription and the poller before returning and
// resets the view to Idle. Route results still in flight are discarded.
func (s *Session) Stop() {
	s.life.Lock()
	defer s.life.Unlock()
	s.stopLocked()
}

func (s *Session) stopLocked() {
	s.mu.Lock()
	s.gen++
	cancel, unsubscribe := s.cancel, s.unsubscribe
	s.cancel, s.unsubscribe, s.runCtx = nil, nil, nil
	s.state = StateIdle
	s.id = ""
	s.snap, s.route, s.hint, s.err = nil, nil, nil, nil
	s.routeInFlight = false
	s.lastRouteAt = time.Time{}
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// RefreshRoute recomputes distance remaining, ETA, total distance and
// progress. Calls less than the cooldown after the start of the last
// successful request, or while one is in flight, are rejected with a
// *RateLimitedError.
func (s *Session) RefreshRoute(ctx context.Context) (View, error) {
	s.mu.Lock()
	if s.state != StateTracking || s.snap == nil {
		s.mu.Unlock()
		return s.View(), ErrNotTracking
	}
	sh := *s.snap
	if sh.CurrentLocation == nil || sh.Dropoff == nil || sh.Pickup == nil {
		v := s.viewLocked()
		s.mu.Unlock()
		return v, ErrMissingCoordinates
	}
	started := s.now()
	if s.routeInFlight || s.coolingDown(started) {
		remaining := s.cfg.RouteCooldown - started.Sub(s.lastRouteAt)
		v := s.viewLocked()
		s.mu.Unlock()
		return v, &RateLimitedError{RemainingSeconds: ceilSeconds(remaining)}
	}
	gen := s.gen
	prevRouteAt := s.lastRouteAt
	s.lastRouteAt = started
	s.routeInFlight = true
	runCtx := s.runCtx
	s.mu.Unlock()

	rctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopWatch := context.AfterFunc(runCtx, cancel)
	defer stopWatch()

	info, err := s.computeRoute(rctx, sh)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return s.viewLocked(), ErrSessionStopped
	}
	s.routeInFlight = false
	if err != nil {
		s.lastRouteAt = prevRouteAt
		s.log.Warn("route refresh failed", zap.String("shipment_id", string(sh.ID)), zap.Error(err))
		return s.viewLocked(), fmt.Errorf("%w: %w", ErrRouteUnavailable, err)
	}
	s.route = &info
	return s.viewLocked(), nil
}

func (s *Session) computeRoute(ctx context.Context, sh shipment.Shipment) (RouteInfo, error) {
	var remaining, total RouteResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.routes.Route(gctx, *sh.CurrentLocation, *sh.Dropoff, RouteOptions{TrafficAware: true})
		remaining = r
		return err
	})
	g.Go(func() error {
		r, err := s.routes.Route(gctx, *sh.Pickup, *sh.Dropoff, RouteOptions{})
		total = r
		return err
	})
	if err := g.Wait(); err != nil {
		return RouteInfo{}, err
	}

	eta := remaining.DurationInTraffic
	if eta <= 0 {
		eta = remaining.Duration
	}
	now := s.now()
	return RouteInfo{
		DistanceRemainingMeters: remaining.DistanceMeters,
		TotalDistanceMeters:     total.DistanceMeters,
		ETA:                     now.Add(eta),
		Progress:                Progress(remaining.DistanceMeters, total.DistanceMeters),
		Path:                    remaining.Path,
		ComputedAt:              now,
	}, nil
}

// apply is the single merge point for pushed and polled updates.
func (s *Session) apply(gen uint64, p shipment.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.snap == nil {
		return
	}
	next := p.Apply(*s.snap)
	s.snap = &next
	s.hint = straightLine(&next)
}

func (s *Session) poll(ctx context.Context, gen uint64, id types.ID) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sh, err := s.records.Get(ctx, id)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.log.Debug("tracking poll failed", zap.String("shipment_id", string(id)), zap.Error(err))
				continue
			}
			s.apply(gen, shipment.FullPatch(*sh))
		}
	}
}

func (s *Session) coolingDown(now time.Time) bool {
	return !s.lastRouteAt.IsZero() && now.Sub(s.lastRouteAt) < s.cfg.RouteCooldown
}

func (s *Session) viewLocked() View {
	v := View{State: s.state, ShipmentID: s.id}
	if s.snap != nil {
		sh := *s.snap
		v.Shipment = &sh
	}
	if s.route != nil {
		r := *s.route
		v.Route = &r
	}
	if s.hint != nil {
		h := *s.hint
		v.StraightLineMeters = &h
	}
	if s.err != nil {
		v.Error = s.err.Error()
	}
	if s.routeInFlight || s.coolingDown(s.now()) {
		v.CooldownSeconds = ceilSeconds(s.cfg.RouteCooldown - s.now().Sub(s.lastRouteAt))
	}
	return v
}
