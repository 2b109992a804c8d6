package handlers

import (
	"github.com/PavaniTiago/atly-quiz-funnel/internal/application/usecases"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/quiz"
	"github.com/gofiber/fiber/v2"
)

var landingTestimonials = []Testimonial{
	{
		Quote:  "Atly made traveling so much easier. I found safe places everywhere I went!",
		Name:   "Maria S.",
		Avatar: "https://i.pravatar.cc/40?img=47",
		Stars:  5,
	},
	{
		Quote:  "I love the community tips. I finally feel confident eating out again.",
		Name:   "Alex P.",
		Avatar: "https://i.pravatar.cc/40?u=alex",
		Stars:  5,
	},
}

var landingProofItems = []string{
	"Gluten-Free Guarantee",
	"#1 Dietitian's Choice",
	"Most Reliable Celiac Map",
}

// Landing starts a new funnel session and the funnel clock.
func (h *ScreenHandler) Landing(c *fiber.Ctx) error {
	v := h.start(c, quiz.LandingRoute)
	v.tracker.TrackLandingPageLoad(c.UserContext())

	return c.JSON(LandingScreen{
		Headline:     "Quickly find safe gluten-free places",
		Testimonials: landingTestimonials,
		ProofItems:   landingProofItems,
		CTA:          "CONTINUE",
		Next:         quiz.QuestionRoute(1).Path(),
	})
}

func (h *ScreenHandler) LandingInteraction(c *fiber.Ctx) error {
	var req LandingInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	action := usecases.LandingAction(req.Action)
	if !action.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "unknown landing action")
	}

	v := h.resume(c, quiz.LandingRoute)
	v.tracker.TrackLandingPageEngagement(c.UserContext(), action)

	if action == usecases.LandingContinueClicked {
		return c.JSON(Navigation{Next: quiz.QuestionRoute(1).Path()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
