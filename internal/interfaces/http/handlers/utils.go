package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// parseDateParam accepts RFC3339 or a bare date. A bare date covers the
// whole day: endOfDay selects its last instant instead of its first.
func parseDateParam(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location()), nil
	}
	return t, nil
}

// dateRange reads the from/to query parameters, defaulting to the last 30
// days.
func dateRange(c *fiber.Ctx, now time.Time) (time.Time, time.Time, error) {
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		t, err := parseDateParam(raw, false)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid from date format. Use YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ")
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDateParam(raw, true)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid to date format. Use YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ")
		}
		to = t
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from must not be after to")
	}
	return from, to, nil
}
