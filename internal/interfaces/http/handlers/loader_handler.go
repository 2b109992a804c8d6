package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/application/usecases"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/quiz"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// LoaderSchedule returns the analysis frames for clients that animate the
// loader themselves.
func (h *ScreenHandler) LoaderSchedule(c *fiber.Ctx) error {
	schedule := usecases.AnalysisSchedule(h.analysisDuration)
	frames := make([]AnalysisFrameDTO, len(schedule))
	for i, f := range schedule {
		frames[i] = toFrameDTO(f)
	}
	return c.JSON(LoaderSchedule{
		Frames:     frames,
		RedirectMs: (h.analysisDuration + usecases.AnalysisRedirectDelay).Milliseconds(),
		Next:       quiz.PricingRoute.Path(),
	})
}

// Loader streams the analysis as server-sent events: one "progress" event
// per frame, then a "redirect" event pointing at the pricing screen. A client
// that disconnects cancels the run.
func (h *ScreenHandler) Loader(c *fiber.Ctx) error {
	v := h.resume(c, quiz.LoaderRoute)
	tracker := v.tracker
	duration := h.analysisDuration
	// the fiber context is recycled once the handler returns
	ctx := context.WithoutCancel(c.UserContext())

	tracker.TrackAnalysisStarted(ctx)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		frames := make(chan usecases.AnalysisFrame, len(usecases.AnalysisSchedule(duration)))
		finished := make(chan struct{})
		runner := usecases.NewAnalysisRunner(duration,
			func(f usecases.AnalysisFrame) { frames <- f },
			func() { close(finished) },
		)
		runner.Start()

		send := func(f usecases.AnalysisFrame) bool {
			tracker.TrackAnalysisProgress(ctx, f.Percent, f.Step)
			if err := writeEvent(w, "progress", toFrameDTO(f)); err != nil {
				log.Debug().Err(err).Msg("Loader client disconnected")
				runner.Cancel()
				tracker.TrackDropoff(ctx, quiz.LoaderRoute.Label(), "loader_disconnected")
				return false
			}
			return true
		}

		for {
			select {
			case f := <-frames:
				if !send(f) {
					return
				}
			case <-finished:
				for len(frames) > 0 {
					if !send(<-frames) {
						return
					}
				}
				_ = writeEvent(w, "redirect", Navigation{Next: quiz.PricingRoute.Path()})
				return
			}
		}
	})
	return nil
}

func writeEvent(w *bufio.Writer, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	return w.Flush()
}
