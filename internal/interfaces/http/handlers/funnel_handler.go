package handlers

import (
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/application/usecases"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type FunnelHandler struct {
	funnelUseCase usecases.FunnelUseCase
	now           func() time.Time
}

func NewFunnelHandler(funnelUseCase usecases.FunnelUseCase) *FunnelHandler {
	return &FunnelHandler{funnelUseCase: funnelUseCase, now: time.Now}
}

// GetReport returns per-step session counts and conversion between from and to.
func (h *FunnelHandler) GetReport(c *fiber.Ctx) error {
	from, to, err := dateRange(c, h.now())
	if err != nil {
		return err
	}

	report, err := h.funnelUseCase.GetReport(c.UserContext(), from, to)
	if err != nil {
		log.Error().Err(err).Msg("Error building funnel report")
		return err
	}
	return c.JSON(report)
}
