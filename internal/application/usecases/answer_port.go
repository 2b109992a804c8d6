package usecases

import (
	"context"
	"errors"
	"slices"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/quiz"
)

// Answers to this question decide the user segment.
const segmentationQuestion = 1

var (
	ErrInvalidOption     = errors.New("option is not offered by this question")
	ErrWrongQuestionType = errors.New("question does not accept this kind of answer")
	ErrEmptySelection    = errors.New("at least one option must be selected")
	ErrSelectionNotSaved = errors.New("selection could not be saved")
)

// QuizAnswerPort is the single entry point screens use to record answers:
// it validates, persists, tracks and resolves the next route, in that order.
type QuizAnswerPort struct {
	resolver *quiz.Resolver
	store    *AnswerStore
	session  *entities.FunnelSession
	tracker  *Tracker
}

func NewQuizAnswerPort(resolver *quiz.Resolver, store *AnswerStore, session *entities.FunnelSession, tracker *Tracker) *QuizAnswerPort {
	return &QuizAnswerPort{resolver: resolver, store: store, session: session, tracker: tracker}
}

// SelectSingle records the answer of a single-choice question.
func (p *QuizAnswerPort) SelectSingle(ctx context.Context, q *entities.QuizQuestion, value string) (quiz.Route, error) {
	if !quiz.IsSingleChoice(q) {
		return quiz.Route{}, ErrWrongQuestionType
	}
	if !q.HasOption(value) {
		return quiz.Route{}, ErrInvalidOption
	}

	answer := entities.SingleAnswer(value)
	p.persist(ctx, q, answer)
	p.tracker.TrackAnswerSelected(ctx, q, answer)
	return p.resolver.Next(q), nil
}

// SelectMultiple replaces the whole selection of a multiple-choice question.
func (p *QuizAnswerPort) SelectMultiple(ctx context.Context, q *entities.QuizQuestion, values []string) (quiz.Route, error) {
	if !quiz.IsMultipleChoice(q) {
		return quiz.Route{}, ErrWrongQuestionType
	}
	answer := entities.MultipleAnswer(values)
	if answer.IsEmpty() {
		return quiz.Route{}, ErrEmptySelection
	}
	for _, v := range answer.Values {
		if !q.HasOption(v) {
			return quiz.Route{}, ErrInvalidOption
		}
	}

	p.persist(ctx, q, answer)
	p.tracker.TrackAnswerSelected(ctx, q, answer)
	return p.resolver.Next(q), nil
}

// Toggle adds or removes one option of a multiple-choice selection and
// returns the new selection. Selecting an option that is already selected
// changes nothing. When storage rejects the write the selection is still
// kept for the session and returned together with ErrSelectionNotSaved.
func (p *QuizAnswerPort) Toggle(ctx context.Context, q *entities.QuizQuestion, option string, selected bool) ([]string, error) {
	if !quiz.IsMultipleChoice(q) {
		return nil, ErrWrongQuestionType
	}
	if !q.HasOption(option) {
		return nil, ErrInvalidOption
	}

	current := p.GetSelection(ctx, q).Values
	if selected == slices.Contains(current, option) {
		return current, nil
	}

	next := make([]string, 0, len(current)+1)
	for _, v := range current {
		if v != option {
			next = append(next, v)
		}
	}
	if selected {
		next = append(next, option)
	}

	answer := entities.MultipleAnswer(next)
	p.keep(q, answer)
	saved := p.store.saveAnswer(ctx, q.ID, answer)
	if saved && q.ID == segmentationQuestion {
		p.store.SaveSegmentAnswer(ctx, answer)
	}
	if selected {
		p.tracker.TrackAnswerSelected(ctx, q, answer)
	}
	if !saved {
		return answer.Values, ErrSelectionNotSaved
	}
	return answer.Values, nil
}

// GetSelection returns the answer for q given during this session, falling
// back to the stored one. It is empty when neither exists.
func (p *QuizAnswerPort) GetSelection(ctx context.Context, q *entities.QuizQuestion) entities.Answer {
	if p.session != nil {
		if answer, ok := p.session.KeptAnswer(q.ID); ok {
			return answer
		}
	}
	answer, ok := p.store.GetAnswer(ctx, q.ID)
	if !ok {
		return entities.Answer{Multiple: quiz.IsMultipleChoice(q)}
	}
	return answer
}

func (p *QuizAnswerPort) keep(q *entities.QuizQuestion, answer entities.Answer) {
	if p.session != nil {
		p.session.KeepAnswer(q.ID, answer)
	}
}

func (p *QuizAnswerPort) persist(ctx context.Context, q *entities.QuizQuestion, answer entities.Answer) {
	p.keep(q, answer)
	if answer.Multiple {
		p.store.SaveMultipleAnswers(ctx, q.ID, answer.Values)
	} else {
		p.store.SaveSingleAnswer(ctx, q.ID, answer.First())
	}
	if q.ID == segmentationQuestion {
		p.store.SaveSegmentAnswer(ctx, answer)
	}
}
