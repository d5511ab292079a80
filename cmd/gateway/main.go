package main

import (
	"fmt"
	"log"
	"time"

	"smartcart/internal/common/config"
	"smartcart/internal/common/middleware"
	"smartcart/internal/gateway/handlers"
	"smartcart/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Smart Cart Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe)
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Smart Cart Gateway v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	// Map Service: floors, graph editing, images, indoor/outdoor routing.
	api.All("/map/*", func(c fiber.Ctx) error {
		target := fmt.Sprintf("%s/%s", cfg.MapURL, c.Params("*"))
		if qs := c.Request().URI().QueryString(); len(qs) > 0 {
			target = fmt.Sprintf("%s?%s", target, qs)
		}
		return proxy.Forward(c, target)
	})

	// Vision Service: product detection on cart camera frames.
	api.Post("/detect", proxy.ProxyTo(cfg.DetectURL))

	// Recommendation Service
	api.Post("/recommend", proxy.ProxyTo(cfg.RecommendURL))

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Smart Cart Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /map to %s", cfg.MapURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
