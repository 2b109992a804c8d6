package routes

import (
	"strings"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/interfaces/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
)

// Handlers groups everything SetupRoutes mounts. Events and Funnel are nil
// when the service runs without a database.
type Handlers struct {
	Screens *handlers.ScreenHandler
	Events  *handlers.EventHandler
	Funnel  *handlers.FunnelHandler
	Health  *handlers.HealthHandler
}

// streaming responses must reach the client unbuffered
func isStream(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/loader") && c.Path() != "/loader/schedule"
}

func SetupRoutes(app *fiber.App, h Handlers, visitorSecret string) {
	// Add performance middleware
	app.Use(compress.New(compress.Config{
		Next:  isStream,
		Level: compress.LevelBestSpeed,
	}))

	// Add ETag support for efficient caching
	app.Use(etag.New(etag.Config{Next: isStream}))

	app.Get("/health", h.Health.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if h.Events != nil {
		app.Get("/events", h.Events.GetEvents)
	}
	if h.Funnel != nil {
		app.Get("/funnel/report", h.Funnel.GetReport)
	}

	setupScreenRoutes(app, h.Screens, middleware.Visitor(visitorSecret))
}

func setupScreenRoutes(app *fiber.App, s *handlers.ScreenHandler, visitor fiber.Handler) {
	app.Get("/quiz/routes", s.QuizRoutes)

	screens := app.Group("/", visitor)

	screens.Get("/", s.Landing)
	screens.Post("/landing/interaction", s.LandingInteraction)

	quiz := screens.Group("/quiz/:id")
	quiz.Get("/", s.Question)
	quiz.Post("/answer", s.Answer)
	quiz.Post("/select", s.Select)
	quiz.Post("/continue", s.Continue)
	quiz.Post("/skip", s.Skip)
	quiz.Post("/back", s.Back)
	quiz.Get("/info", s.Info)
	quiz.Post("/info/continue", s.InfoContinue)
	quiz.Post("/info/back", s.InfoBack)

	screens.Get("/quiz-end", s.QuizEnd)
	screens.Get("/loader", s.Loader)
	screens.Get("/loader/schedule", s.LoaderSchedule)

	pricing := screens.Group("/pricing")
	pricing.Get("/", s.Pricing)
	pricing.Post("/plan", s.SelectPlan)
	pricing.Post("/checkout", s.Checkout)
	pricing.Post("/trial", s.StartTrial)

	beacons := screens.Group("/events")
	beacons.Post("/dropoff", s.Dropoff)
	beacons.Post("/error", s.ReportError)
}
