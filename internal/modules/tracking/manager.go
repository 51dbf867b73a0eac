// README: Session registry used by the HTTP layer; idle sessions are reaped on a ticker.
package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"porter/internal/modules/shipment"
	"porter/internal/types"
)

const DefaultIdleTTL = 10 * time.Minute

type managed struct {
	session    *Session
	caller     types.ID
	lastActive time.Time
}

type Manager struct {
	records Records
	routes  RouteProvider
	cfg     Config
	idleTTL time.Duration
	log     *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*managed
}

func NewManager(records Records, routes RouteProvider, cfg Config, idleTTL time.Duration, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Manager{
		records:  records,
		routes:   routes,
		cfg:      cfg,
		idleTTL:  idleTTL,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*managed),
	}
}

// Open starts a session for caller on shipmentID. Only the shipment's owner
// or its assigned courier may track it.
func (m *Manager) Open(ctx context.Context, caller, shipmentID types.ID) (View, error) {
	s := NewSession(m.records, m.routes, m.cfg, m.log)
	if err := s.Start(ctx, shipmentID); err != nil {
		return s.View(), err
	}
	v := s.View()
	if !canTrack(v.Shipment, caller) {
		s.Stop()
		return View{State: StateIdle}, ErrForbidden
	}

	sid := uuid.NewString()
	m.mu.Lock()
	m.sessions[sid] = &managed{session: s, caller: caller, lastActive: m.now()}
	m.mu.Unlock()

	m.log.Info("tracking session opened", zap.String("session_id", sid), zap.String("shipment_id", string(shipmentID)))
	v.SessionID = sid
	return v, nil
}

func (m *Manager) View(sid string, caller types.ID) (View, error) {
	s, err := m.lookup(sid, caller)
	if err != nil {
		return View{}, err
	}
	v := s.View()
	v.SessionID = sid
	return v, nil
}

func (m *Manager) RefreshRoute(ctx context.Context, sid string, caller types.ID) (View, error) {
	s, err := m.lookup(sid, caller)
	if err != nil {
		return View{}, err
	}
	v, err := s.RefreshRoute(ctx)
	v.SessionID = sid
	return v, err
}

func (m *Manager) Close(sid string, caller types.ID) error {
	m.mu.Lock()
	e, ok := m.sessions[sid]
	if !ok || e.caller != caller {
		m.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(m.sessions, sid)
	m.mu.Unlock()

	e.session.Stop()
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// RunReaper stops sessions nobody has looked at for the idle TTL.
func (m *Manager) RunReaper(ctx context.Context) {
	ticker := time.NewTicker(m.idleTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.reap(m.now()); n > 0 {
				m.log.Info("reaped idle tracking sessions", zap.Int("count", n))
			}
		}
	}
}

// Shutdown stops every session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*managed)
	m.mu.Unlock()

	for _, e := range all {
		e.session.Stop()
	}
}

func (m *Manager) reap(now time.Time) int {
	var idle []*Session
	m.mu.Lock()
	for sid, e := range m.sessions {
		if now.Sub(e.lastActive) >= m.idleTTL {
			idle = append(idle, e.session)
			delete(m.sessions, sid)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.Stop()
	}
	return len(idle)
}

func (m *Manager) lookup(sid string, caller types.ID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sid]
	if !ok || e.caller != caller {
		return nil, ErrSessionNotFound
	}
	e.lastActive = m.now()
	return e.session, nil
}

func canTrack(sh *shipment.Shipment, caller types.ID) bool {
	if sh == nil || caller == "" {
		return false
	}
	return sh.OwnerID == caller || (sh.CourierID != nil && *sh.CourierID == caller)
}
