package usecases

import (
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/infrastructure/metrics"
	"github.com/patrickmn/go-cache"
)

// SessionRegistry holds the live funnel sessions. An entry expires after ttl
// without activity.
type SessionRegistry struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	c := cache.New(ttl, ttl/2)
	c.OnEvicted(func(string, interface{}) {
		metrics.ActiveSessions.Dec()
	})
	return &SessionRegistry{cache: c, ttl: ttl}
}

// Start opens a new session for the visitor, ending the one it replaces.
func (r *SessionRegistry) Start(visitorID, previousID string) *entities.FunnelSession {
	if previousID != "" {
		r.cache.Delete(previousID)
	}
	session := entities.NewFunnelSession(visitorID)
	if err := r.cache.Add(session.ID.String(), session, r.ttl); err == nil {
		metrics.ActiveSessions.Inc()
	}
	return session
}

// Get returns a session owned by visitorID and extends its lifetime.
func (r *SessionRegistry) Get(sessionID, visitorID string) (*entities.FunnelSession, bool) {
	cached, found := r.cache.Get(sessionID)
	if !found {
		return nil, false
	}
	session := cached.(*entities.FunnelSession)
	if session.VisitorID != visitorID {
		return nil, false
	}
	r.cache.Set(sessionID, session, r.ttl)
	return session, true
}

// Resume returns the visitor's session or starts a new one when it expired or
// never existed. The bool is true for a newly created session.
func (r *SessionRegistry) Resume(sessionID, visitorID string) (*entities.FunnelSession, bool) {
	if session, ok := r.Get(sessionID, visitorID); ok {
		return session, false
	}
	return r.Start(visitorID, ""), true
}

func (r *SessionRegistry) End(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRegistry) Len() int {
	return r.cache.ItemCount()
}
