package handlers

import (
	"errors"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/application/usecases"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/quiz"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// QuizRoutes lists every question and interstitial path, for static
// prerendering. Nothing is tracked.
func (h *ScreenHandler) QuizRoutes(c *fiber.Ctx) error {
	routes := make([]string, 0, h.catalog.TotalQuestions()*2)
	for _, q := range h.catalog.Questions() {
		routes = append(routes, quiz.QuestionRoute(q.ID).Path())
	}
	for _, q := range h.catalog.QuestionsWithInfo() {
		routes = append(routes, quiz.InfoRoute(q.ID).Path())
	}
	return c.JSON(fiber.Map{"routes": routes})
}

func (h *ScreenHandler) Question(c *fiber.Ctx) error {
	q, err := h.question(c)
	if err != nil {
		return err
	}
	v := h.resume(c, quiz.QuestionRoute(q.ID))
	ctx := c.UserContext()

	if q.ID == 1 {
		v.tracker.TrackQuizStarted(ctx)
	}
	v.tracker.TrackQuestionViewed(ctx, q)

	dto, err := toQuestionDTO(q)
	if err != nil {
		return err
	}
	selection := v.port.GetSelection(ctx, q)
	screen := QuestionScreen{
		Question:       dto,
		TotalQuestions: h.catalog.TotalQuestions(),
		Progress:       h.catalog.Progress(q.ID),
		Skip:           h.resolver.Skip(q).Path(),
	}
	if !selection.IsEmpty() {
		screen.Selection = selection.Value()
	}
	if quiz.IsMultipleChoice(q) {
		screen.Hint = "Select all that apply"
		screen.ContinueEnabled = !selection.IsEmpty()
	}
	if back, ok := h.resolver.Back(q); ok {
		path := back.Path()
		screen.Back = &path
	}
	return c.JSON(screen)
}

// Answer records a complete answer: {"answer": "..."} for single-choice,
// {"answers": [...]} for multiple-choice questions.
func (h *ScreenHandler) Answer(c *fiber.Ctx) error {
	q, err := h.question(c)
	if err != nil {
		return err
	}
	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	v := h.resume(c, quiz.QuestionRoute(q.ID))
	ctx := c.UserContext()

	var next quiz.Route
	if quiz.IsMultipleChoice(q) {
		next, err = v.port.SelectMultiple(ctx, q, req.Answers)
	} else {
		if req.Answer == nil {
			return fiber.NewError(fiber.StatusBadRequest, "answer is required")
		}
		next, err = v.port.SelectSingle(ctx, q, *req.Answer)
	}
	if err != nil {
		return answerError(err)
	}

	if quiz.IsMultipleChoice(q) {
		v.tracker.TrackNavigation(ctx, usecases.ActionContinue, q, quiz.QuestionRoute(q.ID), next)
	}
	return c.JSON(Navigation{Next: next.Path(), Selection: v.port.GetSelection(ctx, q).Value()})
}

// Select toggles one option of a multiple-choice question.
func (h *ScreenHandler) Select(c *fiber.Ctx) error {
	q, err := h.question(c)
	if err != nil {
		return err
	}
	var req ToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	v := h.resume(c, quiz.QuestionRoute(q.ID))
	selection, err := v.port.Toggle(c.UserContext(), q, req.Option, req.Selected)
	if errors.Is(err, usecases.ErrSelectionNotSaved) {
		log.Warn().Err(err).Str("visitor_id", v.session.VisitorID).Int("question_id", q.ID).Msg("Selection kept for session only")
		v.tracker.TrackError(c.UserContext(), err, quiz.QuestionRoute(q.ID).Label())
		err = nil
	}
	if err != nil {
		return answerError(err)
	}
	if selection == nil {
		selection = []string{}
	}
	return c.JSON(fiber.Map{
		"selection":        selection,
		"continue_enabled": len(selection) > 0,
	})
}

// Continue advances a multiple-choice question using the current selection.
func (h *ScreenHandler) Continue(c *fiber.Ctx) error {
	q, err := h.question(c)
	if err != nil {
		return err
	}
	v := h.resume(c, quiz.QuestionRoute(q.ID))
	ctx := c.UserContext()

	if v.port.GetSelection(ctx, q).IsEmpty() {
		return answerError(usecases.ErrEmptySelection)
	}
	next := h.resolver.Next(q)
	v.tracker.TrackNavigation(ctx, usecases.ActionContinue, q, quiz.QuestionRoute(q.ID), next)
	return c.JSON(Navigation{Next: next.Path()})
}

func (h *ScreenHandler) Skip(c *fiber.Ctx) error {
	q, err := h.question(c)
	if err != nil {
		return err
	}
	v := h.resume(c, quiz.QuestionRoute(q.ID))
	next := h.resolver.Skip(q)
	v.tracker.TrackNavigation(c.UserContext(), usecases.ActionSkip, q, quiz.QuestionRoute(q.ID), next)
	return c.JSON(Navigation{Next: next.Path()})
}

func (h *ScreenHandler) Back(c *fiber.Ctx) error {
	q, err := h.question(c)
	if err != nil {
		return err
	}
	back, ok := h.resolver.Back(q)
	if !ok {
		return fiber.NewError(fiber.StatusConflict, "first question has no previous screen")
	}
	v := h.resume(c, quiz.QuestionRoute(q.ID))
	v.tracker.TrackNavigation(c.UserContext(), usecases.ActionBack, q, quiz.QuestionRoute(q.ID), back)
	return c.JSON(Navigation{Next: back.Path()})
}

// infoQuestion resolves :id to a question that has an interstitial.
func (h *ScreenHandler) infoQuestion(c *fiber.Ctx) (*entities.QuizQuestion, error) {
	q, err := h.question(c)
	if err != nil {
		return nil, err
	}
	if !q.HasInfo() {
		return nil, fiber.ErrNotFound
	}
	return q, nil
}

func (h *ScreenHandler) Info(c *fiber.Ctx) error {
	q, err := h.infoQuestion(c)
	if err != nil {
		return err
	}
	v := h.resume(c, quiz.InfoRoute(q.ID))
	v.tracker.TrackInfoPageViewed(c.UserContext(), q)

	screen := InfoScreen{
		QuestionID: q.ID,
		Title:      q.Info.Title,
		Text:       q.Info.Text,
		Progress:   h.catalog.Progress(q.ID),
		Next:       h.resolver.AfterInfo(q).Path(),
		Back:       h.resolver.BackFromInfo(q).Path(),
	}
	if content, ok := h.catalog.InfoContent(q.Info.Title); ok {
		screen.Content = &content
	}
	return c.JSON(screen)
}

func (h *ScreenHandler) InfoContinue(c *fiber.Ctx) error {
	q, err := h.infoQuestion(c)
	if err != nil {
		return err
	}
	v := h.resume(c, quiz.InfoRoute(q.ID))
	next := h.resolver.AfterInfo(q)
	v.tracker.TrackNavigation(c.UserContext(), usecases.ActionContinue, q, quiz.InfoRoute(q.ID), next)
	return c.JSON(Navigation{Next: next.Path()})
}

func (h *ScreenHandler) InfoBack(c *fiber.Ctx) error {
	q, err := h.infoQuestion(c)
	if err != nil {
		return err
	}
	v := h.resume(c, quiz.InfoRoute(q.ID))
	back := h.resolver.BackFromInfo(q)
	v.tracker.TrackNavigation(c.UserContext(), usecases.ActionBack, q, quiz.InfoRoute(q.ID), back)
	return c.JSON(Navigation{Next: back.Path()})
}

var quizEndEmojis = []string{
	"🍽️", "🍷", "🥗",
	"🥘", "🍜", "🌭",
	"🍓", "🍗", "🥑",
}

func (h *ScreenHandler) QuizEnd(c *fiber.Ctx) error {
	v := h.resume(c, quiz.QuizEndRoute)
	v.tracker.TrackQuizCompleted(c.UserContext())
	v.tracker.TrackUserSegment(c.UserContext())

	return c.JSON(QuizEndScreen{
		Title:    "Great choices!",
		Subtitle: "New places are added daily",
		Emojis:   quizEndEmojis,
		Next:     quiz.LoaderRoute.Path(),
	})
}

func answerError(err error) error {
	switch {
	case errors.Is(err, usecases.ErrEmptySelection):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, usecases.ErrInvalidOption), errors.Is(err, usecases.ErrWrongQuestionType):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
