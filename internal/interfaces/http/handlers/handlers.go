package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/application/usecases"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrorHandler renders every error as {"error": message}. Errors that are not
// *fiber.Error are logged and reported as 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
		if code == fiber.StatusNotFound {
			message = "not found"
		}
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}

type HealthHandler struct {
	db       *gorm.DB
	sessions *usecases.SessionRegistry
}

// NewHealthHandler accepts a nil db when the service runs without Postgres.
func NewHealthHandler(db *gorm.DB, sessions *usecases.SessionRegistry) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessions}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := "healthy"
	database := "disabled"

	if h.db != nil {
		database = "up"
		if err := h.pingDB(c.UserContext()); err != nil {
			log.Warn().Err(err).Msg("Health check: database unreachable")
			status = "degraded"
			database = "down"
		}
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":          status,
		"version":         "1.0.0",
		"database":        database,
		"active_sessions": h.sessions.Len(),
	})
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
