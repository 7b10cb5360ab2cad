package controller

import (
	"sync"
	"time"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/generator"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type session struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Sessions maps browser session IDs to controllers. Sessions idle for longer
// than the TTL are dropped on the next access unless a generation is running.
type Sessions struct {
	gen    generator.Generator
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*session
}

func NewSessions(gen generator.Generator, ttl time.Duration, logger *zap.Logger) *Sessions {
	return &Sessions{
		gen:     gen,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]*session),
	}
}

// Get returns the controller for id, creating a session under a fresh ID when
// id is empty or unknown. The returned ID is the one to hand back to the client.
func (s *Sessions) Get(id string) (string, *Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.prune(now)

	if e, ok := s.entries[id]; ok && id != "" {
		e.lastSeen = now
		return id, e.ctrl
	}

	id = uuid.NewString()
	ctrl := New(s.gen, s.logger.With(zap.String("session_id", id)))
	ctrl.now = s.now
	ctrl.snap.UpdatedAt = now
	s.entries[id] = &session{ctrl: ctrl, lastSeen: now}
	return id, ctrl
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Sessions) prune(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) <= s.ttl {
			continue
		}
		if e.ctrl.Snapshot().State == StateLoading {
			continue
		}
		delete(s.entries, id)
		s.logger.Debug("session expired", zap.String("session_id", id))
	}
}
