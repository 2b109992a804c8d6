package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/quiz"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/infrastructure/metrics"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type LandingAction string

const (
	LandingTestimonialViewed LandingAction = "testimonial_viewed"
	LandingContinueClicked   LandingAction = "continue_clicked"
	LandingLogoClicked       LandingAction = "logo_clicked"
)

func (a LandingAction) Valid() bool {
	switch a {
	case LandingTestimonialViewed, LandingContinueClicked, LandingLogoClicked:
		return true
	}
	return false
}

type NavigationAction string

const (
	ActionContinue NavigationAction = "continue"
	ActionBack     NavigationAction = "back"
	ActionSkip     NavigationAction = "skip"
)

// TrackerFactory builds request-scoped trackers sharing one collector.
type TrackerFactory struct {
	collector Collector
	now       func() time.Time
}

func NewTrackerFactory(collector Collector) *TrackerFactory {
	return &TrackerFactory{collector: collector, now: time.Now}
}

// For binds a tracker to a visitor's store and funnel session. A nil session
// yields a tracker whose methods do nothing, which is what prerendering and
// other requests outside a visit get.
func (f *TrackerFactory) For(store *AnswerStore, session *entities.FunnelSession, client entities.ClientInfo) *Tracker {
	return &Tracker{
		collector: f.collector,
		store:     store,
		session:   session,
		client:    client,
		now:       f.now,
	}
}

// Tracker reports funnel transitions for one visitor. No method returns an
// error or panics: collector failures are logged and counted.
type Tracker struct {
	collector Collector
	store     *AnswerStore
	session   *entities.FunnelSession
	client    entities.ClientInfo
	now       func() time.Time
}

func (t *Tracker) active() bool {
	return t != nil && t.collector != nil && t.store != nil && t.session != nil
}

// identify associates the visitor's user id with the session the first time
// an event is tracked, and writes the initial profile.
func (t *Tracker) identify(ctx context.Context) string {
	if id := t.session.UserID(); id != "" {
		return id
	}

	userID := t.store.GetOrCreateUserID(ctx)
	if !t.session.MarkIdentified(userID) {
		return t.session.UserID()
	}

	referrer := t.client.Referrer
	if referrer == "" {
		referrer = "direct"
	}
	props := map[string]interface{}{
		"first_visit": t.store.GetOrCreateFirstVisit(ctx),
		"last_active": utils.ISO8601(t.now()),
		"user_agent":  t.client.UserAgent,
		"referrer":    referrer,
	}
	for key, value := range map[string]string{
		"utm_source":   t.client.UtmSource,
		"utm_medium":   t.client.UtmMedium,
		"utm_campaign": t.client.UtmCampaign,
	} {
		if value != "" {
			props[key] = value
		}
	}

	t.call("set_profile", func() error { return t.collector.SetProfile(ctx, userID, props) })
	return userID
}

func (t *Tracker) emit(ctx context.Context, name, page string, props map[string]interface{}) {
	if !t.active() {
		return
	}
	defer t.recoverPanic("emit")

	userID := t.identify(ctx)
	if props == nil {
		props = map[string]interface{}{}
	}
	event := &entities.Event{
		EventID:    uuid.New(),
		EventName:  name,
		SessionID:  t.session.ID,
		UserID:     userID,
		VisitorID:  t.session.VisitorID,
		EventTime:  t.now(),
		Page:       page,
		Path:       t.client.Path,
		Properties: datatypes.JSONMap(props),
	}

	t.call("track", func() error { return t.collector.Track(ctx, event) })
	metrics.EventsTracked.WithLabelValues(name).Inc()
}

func (t *Tracker) setProfile(ctx context.Context, props map[string]interface{}) {
	if !t.active() {
		return
	}
	defer t.recoverPanic("set_profile")

	userID := t.identify(ctx)
	t.call("set_profile", func() error { return t.collector.SetProfile(ctx, userID, props) })
}

func (t *Tracker) increment(ctx context.Context, property string, by int64) {
	if !t.active() {
		return
	}
	defer t.recoverPanic("increment_profile")

	userID := t.identify(ctx)
	t.call("increment_profile", func() error { return t.collector.IncrementProfile(ctx, userID, property, by) })
}

func (t *Tracker) call(operation string, fn func() error) {
	defer t.recoverPanic(operation)
	if err := fn(); err != nil {
		metrics.CollectorFailures.WithLabelValues(operation).Inc()
		log.Error().Err(err).Str("operation", operation).Str("session_id", t.session.ID.String()).Msg("Analytics collector call failed")
	}
}

func (t *Tracker) recoverPanic(operation string) {
	if r := recover(); r != nil {
		metrics.CollectorFailures.WithLabelValues(operation).Inc()
		log.Error().Interface("panic", r).Str("operation", operation).Msg("Analytics collector panicked")
	}
}

func (t *Tracker) elapsedMillis() int64 {
	return utils.Millis(t.session.Elapsed(t.now()))
}

// TrackPageView reports a screen render.
func (t *Tracker) TrackPageView(ctx context.Context, page string, props map[string]interface{}) {
	if !t.active() {
		return
	}
	payload := map[string]interface{}{
		"url":  t.client.URL,
		"path": t.client.Path,
	}
	for k, v := range props {
		payload[k] = v
	}
	t.emit(ctx, entities.EventPageViewed, page, payload)
}

// TrackLandingPageLoad starts the funnel clock for the session.
func (t *Tracker) TrackLandingPageLoad(ctx context.Context) {
	if !t.active() {
		return
	}
	t.session.Start(t.now())

	t.TrackPageView(ctx, "Landing Page", map[string]interface{}{"event_type": "funnel_start"})
	t.emit(ctx, entities.EventLandingPageLoaded, "Landing Page", nil)
}

func (t *Tracker) TrackLandingPageEngagement(ctx context.Context, action LandingAction) {
	if !t.active() {
		return
	}
	t.emit(ctx, entities.EventLandingPageInteraction, "Landing Page", map[string]interface{}{
		"action":       string(action),
		"time_on_page": t.elapsedMillis(),
	})
}

func (t *Tracker) TrackQuizStarted(ctx context.Context) {
	if !t.active() {
		return
	}
	t.TrackPageView(ctx, "Quiz Started", nil)
	t.emit(ctx, entities.EventQuizStarted, "Quiz Started", map[string]interface{}{
		"time_to_start": t.elapsedMillis(),
	})
	t.setProfile(ctx, map[string]interface{}{
		"quiz_started":    true,
		"quiz_start_date": utils.ISO8601(t.now()),
	})
}

// TrackQuestionViewed also starts the per-question timer.
func (t *Tracker) TrackQuestionViewed(ctx context.Context, q *entities.QuizQuestion) {
	if !t.active() {
		return
	}
	t.session.StartQuestion(t.now())

	t.TrackPageView(ctx, "Quiz Question", map[string]interface{}{
		"question_id":   q.ID,
		"question_type": string(q.Type),
	})
	t.emit(ctx, entities.EventQuestionViewed, "Quiz Question", map[string]interface{}{
		"question_id":    q.ID,
		"question_text":  q.Prompt,
		"question_type":  string(q.Type),
		"answers_so_far": len(t.store.GetAllAnswers(ctx)),
	})
}

// TrackAnswerSelected reports an answer and mirrors it onto the profile as
// question_<id>_answer. Call it after the answer was saved.
func (t *Tracker) TrackAnswerSelected(ctx context.Context, q *entities.QuizQuestion, answer entities.Answer) {
	if !t.active() {
		return
	}
	answers := t.store.GetAllAnswers(ctx)
	total := len(answers)
	if _, saved := answers[q.ID]; !saved {
		total++
	}

	t.emit(ctx, entities.EventAnswerSelected, "Quiz Question", map[string]interface{}{
		"question_id":            q.ID,
		"question_text":          q.Prompt,
		"question_type":          string(q.Type),
		"answer":                 answer.Value(),
		"time_spent_on_question": utils.Millis(t.session.QuestionElapsed(t.now())),
		"total_answers":          total,
	})
	t.setProfile(ctx, map[string]interface{}{
		fmt.Sprintf("question_%d_answer", q.ID): answer.Value(),
		"total_questions_answered":              total,
		"last_question_answered":                q.ID,
	})
}

func (t *Tracker) TrackQuestionSkipped(ctx context.Context, q *entities.QuizQuestion) {
	t.trackSkip(ctx, q, nil)
}

func (t *Tracker) trackSkip(ctx context.Context, q *entities.QuizQuestion, extra map[string]interface{}) {
	if !t.active() {
		return
	}
	props := map[string]interface{}{
		"question_id":            q.ID,
		"question_text":          q.Prompt,
		"time_spent_on_question": utils.Millis(t.session.QuestionElapsed(t.now())),
	}
	for k, v := range extra {
		props[k] = v
	}
	t.emit(ctx, entities.EventQuestionSkipped, "Quiz Question", props)

	skipped := t.store.IncrementSkipped(ctx)
	t.setProfile(ctx, map[string]interface{}{"questions_skipped": skipped})
}

// TrackNavigation reports a continue, back or skip action between two
// screens. q may be nil for screens outside the quiz.
func (t *Tracker) TrackNavigation(ctx context.Context, action NavigationAction, q *entities.QuizQuestion, from, to quiz.Route) {
	if !t.active() {
		return
	}
	props := map[string]interface{}{
		"action":    string(action),
		"from_page": from.Label(),
		"to_page":   to.Label(),
	}
	if q != nil {
		props["question_id"] = q.ID
		props["question_text"] = q.Prompt
	}

	switch action {
	case ActionSkip:
		if q != nil {
			t.trackSkip(ctx, q, props)
			return
		}
		t.emit(ctx, entities.EventQuestionSkipped, from.Label(), props)
	case ActionBack:
		if from.QuestionID > 0 {
			props["from_question"] = from.QuestionID
		}
		if to.QuestionID > 0 {
			props["to_question"] = to.QuestionID
		}
		t.emit(ctx, entities.EventBackNavigation, from.Label(), props)
	default:
		t.emit(ctx, entities.EventContinueClicked, from.Label(), props)
	}
}

func (t *Tracker) TrackInfoPageViewed(ctx context.Context, q *entities.QuizQuestion) {
	if !t.active() || !q.HasInfo() {
		return
	}
	t.TrackPageView(ctx, "Quiz Info Page", map[string]interface{}{
		"question_id": q.ID,
		"info_title":  q.Info.Title,
	})
	t.emit(ctx, entities.EventInfoPageViewed, "Quiz Info Page", map[string]interface{}{
		"question_id": q.ID,
		"info_title":  q.Info.Title,
	})
}

// TrackQuizCompleted reports the answered/skipped totals of the visit.
func (t *Tracker) TrackQuizCompleted(ctx context.Context) {
	if !t.active() {
		return
	}
	answers := t.store.GetAllAnswers(ctx)
	skipped := t.store.SkippedCount(ctx)
	completed := len(answers)

	completionRate := 0.0
	if completed+skipped > 0 {
		completionRate = float64(completed) / float64(completed+skipped) * 100
	}
	totalTime := t.elapsedMillis()

	t.TrackPageView(ctx, "Quiz Completed", nil)
	t.emit(ctx, entities.EventQuizCompleted, "Quiz Completed", map[string]interface{}{
		"total_time_spent":   totalTime,
		"questions_answered": completed,
		"questions_skipped":  skipped,
		"completion_rate":    completionRate,
		"all_answers":        answers.Values(),
	})
	t.setProfile(ctx, map[string]interface{}{
		"quiz_completed":        true,
		"quiz_completion_date":  utils.ISO8601(t.now()),
		"time_to_complete_quiz": totalTime,
		"final_completion_rate": completionRate,
	})
}

func (t *Tracker) TrackAnalysisStarted(ctx context.Context) {
	if !t.active() {
		return
	}
	t.TrackPageView(ctx, "Analysis Started", nil)
	t.emit(ctx, entities.EventAnalysisStarted, "Analysis", nil)
}

// TrackAnalysisProgress only reports the 25% milestones and completion.
func (t *Tracker) TrackAnalysisProgress(ctx context.Context, percent int, step string) {
	if !t.active() {
		return
	}
	if percent%25 != 0 && percent != 100 {
		return
	}
	t.emit(ctx, entities.EventAnalysisProgress, "Analysis", map[string]interface{}{
		"percentage":   percent,
		"current_step": step,
	})
}

func (t *Tracker) TrackPricingPageViewed(ctx context.Context) {
	if !t.active() {
		return
	}
	t.TrackPageView(ctx, "Pricing Page", nil)
	t.emit(ctx, entities.EventPricingPageViewed, "Pricing Page", map[string]interface{}{
		"total_funnel_time": t.elapsedMillis(),
	})
	t.setProfile(ctx, map[string]interface{}{"reached_pricing": true})
	t.increment(ctx, "pricing_page_views", 1)
}

func (t *Tracker) TrackPlanSelected(ctx context.Context, plan entities.PlanType) {
	if !t.active() {
		return
	}
	t.emit(ctx, entities.EventPlanSelected, "Pricing Page", map[string]interface{}{
		"plan_type": string(plan),
	})
}

func (t *Tracker) TrackCheckoutStarted(ctx context.Context, plan entities.Plan) {
	if !t.active() {
		return
	}
	t.emit(ctx, entities.EventCheckoutStarted, "Pricing Page", map[string]interface{}{
		"plan_type":         string(plan.Type),
		"plan_price":        plan.Price.InexactFloat64(),
		"total_funnel_time": t.elapsedMillis(),
	})
}

func (t *Tracker) TrackFreeTrialStarted(ctx context.Context, plan entities.Plan) {
	if !t.active() {
		return
	}
	t.emit(ctx, entities.EventFreeTrialStarted, "Pricing Page", map[string]interface{}{
		"plan_type":         string(plan.Type),
		"plan_price":        plan.Price.InexactFloat64(),
		"trial_days":        entities.TrialDays,
		"total_funnel_time": t.elapsedMillis(),
	})
	t.setProfile(ctx, map[string]interface{}{
		"trial_started":      true,
		"trial_plan":         string(plan.Type),
		"trial_started_date": utils.ISO8601(t.now()),
	})
}

func (t *Tracker) TrackDropoff(ctx context.Context, page, reason string) {
	if !t.active() {
		return
	}
	t.emit(ctx, entities.EventUserDroppedOff, page, map[string]interface{}{
		"page":                      page,
		"reason":                    reason,
		"time_spent_before_dropout": t.elapsedMillis(),
		"answers_collected":         len(t.store.GetAllAnswers(ctx)),
	})
}

func (t *Tracker) TrackError(ctx context.Context, err error, where string) {
	if !t.active() || err == nil {
		return
	}
	t.emit(ctx, entities.EventErrorOccurred, where, map[string]interface{}{
		"error_message": err.Error(),
		"error_type":    fmt.Sprintf("%T", err),
		"context":       where,
	})
}

// TrackUserSegment classifies the visitor from the first question's answer
// and stores the segment on the profile.
func (t *Tracker) TrackUserSegment(ctx context.Context) {
	if !t.active() {
		return
	}
	answer, ok := t.store.GetAllAnswers(ctx)[1]
	if !ok {
		answer, _ = t.store.GetSegmentAnswer(ctx)
	}
	segment, motivation := IdentifySegment(answer.First())

	t.setProfile(ctx, map[string]interface{}{
		"user_segment":       string(segment),
		"primary_motivation": string(motivation),
	})
	t.emit(ctx, entities.EventUserSegmentIdentified, "Quiz Completed", map[string]interface{}{
		"user_segment":       string(segment),
		"primary_motivation": string(motivation),
	})
}
