package handlers

import (
	"errors"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/quiz"
	"github.com/gofiber/fiber/v2"
)

// pageLabel turns a client path into its analytics label, keeping unknown
// values as sent.
func pageLabel(page string) (string, quiz.Route) {
	route, err := quiz.ParseRoute(page)
	if err != nil {
		return page, quiz.LandingRoute
	}
	return route.Label(), route
}

// Dropoff records a visitor leaving the funnel, typically sent as a beacon
// on page hide.
func (h *ScreenHandler) Dropoff(c *fiber.Ctx) error {
	var req DropoffRequest
	if err := c.BodyParser(&req); err != nil || req.Page == "" {
		return fiber.NewError(fiber.StatusBadRequest, "page is required")
	}
	if req.Reason == "" {
		req.Reason = "unknown"
	}

	label, route := pageLabel(req.Page)
	v := h.resume(c, route)
	v.tracker.TrackDropoff(c.UserContext(), label, req.Reason)
	return c.SendStatus(fiber.StatusNoContent)
}

// ReportError records a client-side error.
func (h *ScreenHandler) ReportError(c *fiber.Ctx) error {
	var req ErrorReportRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	label, route := pageLabel(req.Context)
	v := h.resume(c, route)
	v.tracker.TrackError(c.UserContext(), errors.New(req.Message), label)
	return c.SendStatus(fiber.StatusNoContent)
}
