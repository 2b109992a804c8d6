package handlers

import (
	"strings"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/application/usecases"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const maxEventsLimit = 500

var eventSortFields = map[string]string{
	"event_time": "event_time",
	"event_name": "event_name",
	"session_id": "session_id",
	"user_id":    "user_id",
}

type EventHandler struct {
	eventUseCase usecases.EventUseCase
	now          func() time.Time
}

func NewEventHandler(eventUseCase usecases.EventUseCase) *EventHandler {
	return &EventHandler{eventUseCase: eventUseCase, now: time.Now}
}

// eventNames collects event_name filters, repeated or comma separated.
func eventNames(c *fiber.Ctx) []string {
	var names []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("event_name") {
		for _, name := range strings.Split(string(raw), ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

func (h *EventHandler) GetEvents(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxEventsLimit {
		limit = 10
	}

	sortBy := c.Query("sortBy", "event_time")
	sortDirection := c.Query("sortDirection", "desc")
	if sortDirection != "asc" && sortDirection != "desc" {
		sortDirection = "desc"
	}
	field, ok := eventSortFields[sortBy]
	if !ok {
		sortBy, field = "event_time", "event_time"
	}

	from, to, err := dateRange(c, h.now())
	if err != nil {
		return err
	}
	names := eventNames(c)

	events, total, err := h.eventUseCase.GetEvents(c.UserContext(), page, limit, field+" "+sortDirection, from, to, names)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching events")
		return err
	}

	return c.JSON(fiber.Map{
		"data": events,
		"meta": fiber.Map{
			"total":          total,
			"page":           page,
			"limit":          limit,
			"last_page":      (total + int64(limit) - 1) / int64(limit),
			"from":           from.Format(time.RFC3339),
			"to":             to.Format(time.RFC3339),
			"sort_by":        sortBy,
			"sort_direction": sortDirection,
			"event_names":    names,
		},
	})
}
