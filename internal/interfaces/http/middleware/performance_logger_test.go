package middleware

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestResponseStatus(t *testing.T) {
	var got int
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		got = responseStatus(c, err)
		return err
	})
	app.Use(PerformanceLogger())
	app.Get("/quiz/ok", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusCreated).SendString("ok")
	})
	app.Get("/quiz/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	app.Get("/quiz/wrapped", func(c *fiber.Ctx) error {
		return fmt.Errorf("toggle: %w", fiber.ErrConflict)
	})
	app.Get("/quiz/boom", func(c *fiber.Ctx) error {
		return errors.New("storage exploded")
	})

	tests := []struct {
		path   string
		status int
	}{
		{"/quiz/ok", fiber.StatusCreated},
		{"/quiz/missing", fiber.StatusNotFound},
		{"/quiz/wrapped", fiber.StatusConflict},
		{"/quiz/boom", fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil), -1)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.status {
				t.Errorf("Expected recorded status %d, got %d", tt.status, got)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("Expected response status %d, got %d", tt.status, resp.StatusCode)
			}
		})
	}
}
