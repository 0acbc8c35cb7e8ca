package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSessionIdleTTL is how long a session survives without requests.
const DefaultSessionIdleTTL = 2 * time.Hour

// SessionService keeps one in-memory booking flow per visitor session.
type SessionService interface {
	Open() (string, BookingService)
	Get(id string) (BookingService, error)
	Close(id string) error
	// Sweep drops sessions idle for longer than the idle TTL and returns how many went.
	Sweep() int
	// StartSweeper runs Sweep every interval until ctx is done.
	StartSweeper(ctx context.Context, interval time.Duration)
}

type session struct {
	flow     BookingService
	lastSeen time.Time
}

type sessionService struct {
	mu       sync.Mutex
	sessions map[string]*session
	deps     Dependencies
}

func NewSessionService(deps Dependencies) SessionService {
	return &sessionService{
		sessions: make(map[string]*session),
		deps:     deps.withDefaults(),
	}
}

func (s *sessionService) Open() (string, BookingService) {
	id := uuid.NewString()
	flow := NewBookingService(s.deps)

	s.mu.Lock()
	s.sessions[id] = &session{flow: flow, lastSeen: s.deps.Now()}
	s.mu.Unlock()

	s.deps.Logger.Debug("booking session opened", zap.String("session_id", id))
	return id, flow
}

// Get returns the session's flow and marks the session as used.
func (s *sessionService) Get(id string) (BookingService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.deps.Now()
	return sess.flow, nil
}

func (s *sessionService) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.deps.Logger.Debug("booking session closed", zap.String("session_id", id))
	return nil
}

func (s *sessionService) Sweep() int {
	cutoff := s.deps.Now().Add(-s.deps.SessionIdleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.deps.Logger.Info("expired idle booking sessions",
			zap.Int("removed", removed),
			zap.Int("remaining", len(s.sessions)))
	}
	return removed
}

func (s *sessionService) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}
