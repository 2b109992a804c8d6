package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/repositories"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/utils"
	"github.com/rs/zerolog/log"
)

// Storage keys, shared with the web client.
const (
	KeyQuizAnswers       = "quizAnswers"
	KeyAnalyticsUserID   = "analytics_user_id"
	KeyFirstVisit        = "first_visit"
	KeyUserSegmentAnswer = "user_segment_answer"
	KeyQuestionsSkipped  = "questions_skipped"
)

// AnswerStore persists quiz answers and identity values for one visitor.
// Storage failures never reach the caller: reads degrade to "no data" and
// writes become no-ops, both logged.
type AnswerStore struct {
	kv    repositories.KeyValueStore
	scope string
	now   func() time.Time
}

func NewAnswerStore(kv repositories.KeyValueStore, visitorID string) *AnswerStore {
	return &AnswerStore{kv: kv, scope: visitorID, now: time.Now}
}

func (s *AnswerStore) VisitorID() string {
	return s.scope
}

// SaveSingleAnswer upserts the answer for questionID.
func (s *AnswerStore) SaveSingleAnswer(ctx context.Context, questionID int, answer string) {
	s.saveAnswer(ctx, questionID, entities.SingleAnswer(answer))
}

// SaveMultipleAnswers replaces the full selection for questionID.
func (s *AnswerStore) SaveMultipleAnswers(ctx context.Context, questionID int, answers []string) {
	s.saveAnswer(ctx, questionID, entities.MultipleAnswer(answers))
}

// saveAnswer reports whether the answer reached storage.
func (s *AnswerStore) saveAnswer(ctx context.Context, questionID int, answer entities.Answer) bool {
	answers, err := s.loadAnswers(ctx)
	if err != nil {
		log.Warn().Err(err).Str("visitor_id", s.scope).Int("question_id", questionID).Msg("Skipping answer save, storage unreadable")
		return false
	}
	answers[questionID] = answer

	data, err := json.Marshal(answers)
	if err != nil {
		log.Error().Err(err).Int("question_id", questionID).Msg("Failed to encode quiz answers")
		return false
	}
	return s.set(ctx, KeyQuizAnswers, string(data))
}

// GetAllAnswers returns every stored answer; empty when nothing is stored or
// storage is unavailable or corrupt.
func (s *AnswerStore) GetAllAnswers(ctx context.Context) entities.Answers {
	answers, err := s.loadAnswers(ctx)
	if err != nil {
		return entities.Answers{}
	}
	return answers
}

// GetAnswer returns the stored answer for one question.
func (s *AnswerStore) GetAnswer(ctx context.Context, questionID int) (entities.Answer, bool) {
	answer, ok := s.GetAllAnswers(ctx)[questionID]
	return answer, ok
}

// loadAnswers returns an error only when storage itself failed; a corrupt
// blob is logged and treated as empty so the next write repairs it.
func (s *AnswerStore) loadAnswers(ctx context.Context) (entities.Answers, error) {
	raw, found, err := s.kv.Get(ctx, s.scope, KeyQuizAnswers)
	if err != nil {
		log.Warn().Err(err).Str("visitor_id", s.scope).Msg("Failed to read quiz answers")
		return nil, err
	}
	answers := entities.Answers{}
	if !found || raw == "" {
		return answers, nil
	}
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		log.Warn().Err(err).Str("visitor_id", s.scope).Msg("Discarding corrupt quiz answers")
		return entities.Answers{}, nil
	}
	return answers, nil
}

// GetOrCreateUserID returns the persisted analytics user id, creating one on
// first use. With storage down a fresh id is returned on every call.
func (s *AnswerStore) GetOrCreateUserID(ctx context.Context) string {
	if id, ok := s.get(ctx, KeyAnalyticsUserID); ok && id != "" {
		return id
	}
	id := utils.NewUserID(s.now())
	s.set(ctx, KeyAnalyticsUserID, id)
	return id
}

// GetOrCreateFirstVisit returns the ISO-8601 first visit timestamp.
func (s *AnswerStore) GetOrCreateFirstVisit(ctx context.Context) string {
	if ts, ok := s.get(ctx, KeyFirstVisit); ok && ts != "" {
		return ts
	}
	ts := utils.ISO8601(s.now())
	s.set(ctx, KeyFirstVisit, ts)
	return ts
}

// SaveSegmentAnswer snapshots the answer used for segmentation.
func (s *AnswerStore) SaveSegmentAnswer(ctx context.Context, answer entities.Answer) {
	data, err := json.Marshal(answer)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode segment answer")
		return
	}
	s.set(ctx, KeyUserSegmentAnswer, string(data))
}

func (s *AnswerStore) GetSegmentAnswer(ctx context.Context) (entities.Answer, bool) {
	raw, ok := s.get(ctx, KeyUserSegmentAnswer)
	if !ok || raw == "" {
		return entities.Answer{}, false
	}
	var answer entities.Answer
	if err := json.Unmarshal([]byte(raw), &answer); err != nil {
		log.Warn().Err(err).Str("visitor_id", s.scope).Msg("Discarding corrupt segment answer")
		return entities.Answer{}, false
	}
	return answer, true
}

// IncrementSkipped bumps the skipped-question counter and returns the new
// value.
func (s *AnswerStore) IncrementSkipped(ctx context.Context) int {
	next := s.SkippedCount(ctx) + 1
	s.set(ctx, KeyQuestionsSkipped, strconv.Itoa(next))
	return next
}

func (s *AnswerStore) SkippedCount(ctx context.Context) int {
	raw, ok := s.get(ctx, KeyQuestionsSkipped)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// Reset clears the quiz progress but keeps the visitor's identity.
func (s *AnswerStore) Reset(ctx context.Context) {
	for _, key := range []string{KeyQuizAnswers, KeyUserSegmentAnswer, KeyQuestionsSkipped} {
		if err := s.kv.Delete(ctx, s.scope, key); err != nil {
			log.Warn().Err(err).Str("visitor_id", s.scope).Str("key", key).Msg("Failed to clear storage key")
		}
	}
}

func (s *AnswerStore) get(ctx context.Context, key string) (string, bool) {
	value, found, err := s.kv.Get(ctx, s.scope, key)
	if err != nil {
		log.Warn().Err(err).Str("visitor_id", s.scope).Str("key", key).Msg("Failed to read storage key")
		return "", false
	}
	return value, found
}

func (s *AnswerStore) set(ctx context.Context, key, value string) bool {
	if err := s.kv.Set(ctx, s.scope, key, value); err != nil {
		event := log.Warn()
		if !errors.Is(err, repositories.ErrStorageUnavailable) {
			event = log.Error()
		}
		event.Err(err).Str("visitor_id", s.scope).Str("key", key).Msg("Failed to write storage key")
		return false
	}
	return true
}
