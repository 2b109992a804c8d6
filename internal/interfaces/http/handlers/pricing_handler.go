package handlers

import (
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/quiz"
	"github.com/gofiber/fiber/v2"
)

const trialEndLayout = "January 2, 2006"

func (h *ScreenHandler) trialEnds() string {
	return h.now().AddDate(0, 0, entities.TrialDays).Format(trialEndLayout)
}

func (h *ScreenHandler) Pricing(c *fiber.Ctx) error {
	v := h.resume(c, quiz.PricingRoute)
	v.tracker.TrackPricingPageViewed(c.UserContext())

	plans, err := toPlanDTOs(entities.Plans())
	if err != nil {
		return err
	}
	return c.JSON(PricingScreen{
		Plans:     plans,
		Selected:  entities.PlanAnnual,
		TrialDays: entities.TrialDays,
		TrialEnds: h.trialEnds(),
		CTA:       "START MY FREE TRIAL",
	})
}

// planFromBody parses {"plan_type": "..."}; an empty plan type means annual,
// the preselected plan.
func planFromBody(c *fiber.Ctx) (entities.Plan, error) {
	var req PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return entities.Plan{}, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	planType := entities.PlanType(req.PlanType)
	if planType == "" {
		planType = entities.PlanAnnual
	}
	plan, err := entities.PlanByType(planType)
	if err != nil {
		return entities.Plan{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return plan, nil
}

func (h *ScreenHandler) SelectPlan(c *fiber.Ctx) error {
	plan, err := planFromBody(c)
	if err != nil {
		return err
	}
	v := h.resume(c, quiz.PricingRoute)
	v.tracker.TrackPlanSelected(c.UserContext(), plan.Type)
	return c.JSON(fiber.Map{"selected": plan.Type})
}

// Checkout only reports intent: payment is handled by an external provider.
func (h *ScreenHandler) Checkout(c *fiber.Ctx) error {
	plan, err := planFromBody(c)
	if err != nil {
		return err
	}
	v := h.resume(c, quiz.PricingRoute)
	v.tracker.TrackCheckoutStarted(c.UserContext(), plan)

	dtos, err := toPlanDTOs([]entities.Plan{plan})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "checkout_started",
		"plan":   dtos[0],
	})
}

func (h *ScreenHandler) StartTrial(c *fiber.Ctx) error {
	plan, err := planFromBody(c)
	if err != nil {
		return err
	}
	v := h.resume(c, quiz.PricingRoute)
	v.tracker.TrackFreeTrialStarted(c.UserContext(), plan)

	return c.JSON(fiber.Map{
		"status":     "trial_started",
		"plan_type":  plan.Type,
		"trial_days": entities.TrialDays,
		"trial_ends": h.trialEnds(),
		"started_at": h.now().UTC().Format(time.RFC3339),
	})
}
