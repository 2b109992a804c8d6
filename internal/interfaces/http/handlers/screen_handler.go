package handlers

import (
	"strconv"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/application/usecases"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/quiz"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/repositories"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/interfaces/http/middleware"
	"github.com/gofiber/fiber/v2"
)

const SessionCookie = "atly_session"

// ScreenHandler serves the funnel screens. Every screen reads the catalog and
// the visitor's store, and reports to the visitor's tracker.
type ScreenHandler struct {
	catalog          *quiz.Catalog
	resolver         *quiz.Resolver
	kv               repositories.KeyValueStore
	sessions         *usecases.SessionRegistry
	trackers         *usecases.TrackerFactory
	analysisDuration time.Duration
	now              func() time.Time
}

func NewScreenHandler(
	catalog *quiz.Catalog,
	kv repositories.KeyValueStore,
	sessions *usecases.SessionRegistry,
	trackers *usecases.TrackerFactory,
	analysisDuration time.Duration,
) *ScreenHandler {
	if analysisDuration <= 0 {
		analysisDuration = usecases.DefaultAnalysisDuration
	}
	return &ScreenHandler{
		catalog:          catalog,
		resolver:         quiz.NewResolver(catalog),
		kv:               kv,
		sessions:         sessions,
		trackers:         trackers,
		analysisDuration: analysisDuration,
		now:              time.Now,
	}
}

// visit is the per-request view of one visitor's funnel state.
type visit struct {
	store   *usecases.AnswerStore
	session *entities.FunnelSession
	tracker *usecases.Tracker
	port    *usecases.QuizAnswerPort
}

// resume binds the request to the visitor's current session, opening one
// when the cookie is missing or expired.
func (h *ScreenHandler) resume(c *fiber.Ctx, screen quiz.Route) *visit {
	visitorID := middleware.VisitorID(c)
	session, created := h.sessions.Resume(c.Cookies(SessionCookie), visitorID)
	if created {
		h.setSessionCookie(c, session)
	}
	return h.bind(c, session, screen)
}

// start opens a new session for the visitor, ending the previous one.
func (h *ScreenHandler) start(c *fiber.Ctx, screen quiz.Route) *visit {
	visitorID := middleware.VisitorID(c)
	session := h.sessions.Start(visitorID, c.Cookies(SessionCookie))
	h.setSessionCookie(c, session)
	return h.bind(c, session, screen)
}

func (h *ScreenHandler) bind(c *fiber.Ctx, session *entities.FunnelSession, screen quiz.Route) *visit {
	store := usecases.NewAnswerStore(h.kv, session.VisitorID)
	tracker := h.trackers.For(store, session, clientInfo(c, screen))
	return &visit{
		store:   store,
		session: session,
		tracker: tracker,
		port:    usecases.NewQuizAnswerPort(h.resolver, store, session, tracker),
	}
}

func (h *ScreenHandler) setSessionCookie(c *fiber.Ctx, session *entities.FunnelSession) {
	// no Expires: the cookie lives as long as the browser session
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    session.ID.String(),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clientInfo(c *fiber.Ctx, screen quiz.Route) entities.ClientInfo {
	return entities.ClientInfo{
		URL:         c.BaseURL() + screen.Path(),
		Path:        screen.Path(),
		UserAgent:   c.Get(fiber.HeaderUserAgent),
		Referrer:    c.Get(fiber.HeaderReferer),
		UtmSource:   c.Query("utm_source"),
		UtmMedium:   c.Query("utm_medium"),
		UtmCampaign: c.Query("utm_campaign"),
	}
}

// question resolves the :id parameter; unknown or malformed ids are a 404.
func (h *ScreenHandler) question(c *fiber.Ctx) (*entities.QuizQuestion, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, fiber.ErrNotFound
	}
	q, ok := h.catalog.GetQuestionByID(id)
	if !ok {
		return nil, fiber.ErrNotFound
	}
	return q, nil
}
