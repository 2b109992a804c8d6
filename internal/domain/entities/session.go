package entities

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// FunnelSession correlates every event emitted during one visit. It is shared
// by the requests of that visit, so all access goes through its methods.
type FunnelSession struct {
	ID        uuid.UUID
	VisitorID string

	mu              sync.Mutex
	userID          string
	startedAt       time.Time
	questionStarted time.Time
	identified      bool
	answers         map[int]Answer
}

func NewFunnelSession(visitorID string) *FunnelSession {
	return &FunnelSession{
		ID:        uuid.New(),
		VisitorID: visitorID,
	}
}

// Start captures the funnel clock. Later calls keep the first value.
func (s *FunnelSession) Start(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startedAt.IsZero() {
		s.startedAt = now
	}
}

func (s *FunnelSession) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// Elapsed is the time since Start, zero when the clock never started.
func (s *FunnelSession) Elapsed(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startedAt.IsZero() {
		return 0
	}
	return now.Sub(s.startedAt)
}

func (s *FunnelSession) StartQuestion(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questionStarted = now
}

func (s *FunnelSession) QuestionElapsed(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.questionStarted.IsZero() {
		return 0
	}
	return now.Sub(s.questionStarted)
}

// MarkIdentified records the user id and reports whether this call was the
// first identification of the session.
func (s *FunnelSession) MarkIdentified(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identified {
		return false
	}
	s.identified = true
	s.userID = userID
	return true
}

func (s *FunnelSession) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// KeepAnswer holds the working answer of a question for the rest of the
// visit, whether or not storage accepted it.
func (s *FunnelSession) KeepAnswer(questionID int, answer Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answers == nil {
		s.answers = make(map[int]Answer)
	}
	answer.Values = append([]string(nil), answer.Values...)
	s.answers[questionID] = answer
}

// KeptAnswer returns the working answer recorded by KeepAnswer.
func (s *FunnelSession) KeptAnswer(questionID int) (Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	answer, ok := s.answers[questionID]
	if !ok {
		return Answer{}, false
	}
	answer.Values = append([]string(nil), answer.Values...)
	return answer, true
}
