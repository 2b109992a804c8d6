package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func SetupMiddlewares(app *fiber.App, allowOrigins string) {
	app.Use(recover.New())

	// CORS configuration; credentials are needed for the visitor and
	// session cookies
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: allowOrigins != "*",
		MaxAge:           300, // 5 minutes
	}))

	app.Use(PerformanceLogger())
}
