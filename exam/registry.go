package exam

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"mcq-server/models"
)

type entry struct {
	mu       sync.Mutex
	session  *Session
	lastSeen time.Time
	removed  bool // set by Sweep under mu
}

// Registry keeps one Session per browser session id, in memory only.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
	log     *zap.Logger
}

func NewRegistry(ttl time.Duration, log *zap.Logger) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
		log:     log,
	}
}

// Do runs fn on the session for id while holding that session's lock.
// A new session over questions is created the first time id is seen.
func (r *Registry) Do(id string, questions []models.Question, fn func(*Session) error) error {
	for {
		e, err := r.acquire(id, questions)
		if err != nil {
			return err
		}
		e.mu.Lock()
		if e.removed {
			// Swept between acquire and Lock; look id up again.
			e.mu.Unlock()
			continue
		}
		defer e.mu.Unlock()
		return fn(e.session)
	}
}

func (r *Registry) acquire(id string, questions []models.Question) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		s, err := NewSession(questions)
		if err != nil {
			return nil, err
		}
		e = &entry{session: s}
		r.entries[id] = e
		r.log.Debug("exam session created", zap.String("session_id", id), zap.Int("questions", s.Total()))
	}
	e.lastSeen = r.now()
	return e, nil
}

// Sweep drops sessions idle for longer than the ttl and reports how many went.
// Sessions in use by Do are left for the next sweep.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.entries {
		if !e.lastSeen.Before(cutoff) || !e.mu.TryLock() {
			continue
		}
		e.removed = true
		e.mu.Unlock()
		delete(r.entries, id)
		removed++
	}
	if removed > 0 {
		r.log.Info("expired exam sessions swept", zap.Int("removed", removed), zap.Int("remaining", len(r.entries)))
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
