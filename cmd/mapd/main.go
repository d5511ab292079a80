package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"smartcart/internal/common/config"
	"smartcart/internal/common/middleware"
	"smartcart/internal/mapd/geo"
	"smartcart/internal/mapd/handlers"
	"smartcart/internal/mapd/repository"
	"smartcart/internal/mapd/storage"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Map Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), cfg.MigrationsPath); err != nil {
		log.Fatalf("init db: %v", err)
	}

	images := storage.New(cfg.StorageRoot, cfg.PublicBaseURL)
	router := loadGeoRouter(cfg)
	mapHandler := handlers.NewMapHandler(repo, images, router)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Map Service",
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

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Floor & Graph Routes
	// ============================================================

	app.Get("/floors", mapHandler.GetFloors)
	app.Post("/floors", mapHandler.AddFloor)
	app.Put("/floors", mapHandler.UpdateFloor)
	app.Delete("/floors", mapHandler.DeleteFloor)

	app.Get("/points", mapHandler.GetPoints)
	app.Post("/points", mapHandler.AddPoint)
	app.Put("/points", mapHandler.UpdatePoint)
	app.Delete("/points", mapHandler.DeletePoint)

	app.Post("/edges", mapHandler.AddEdge)
	app.Delete("/edges", mapHandler.DeleteEdge)

	// ============================================================
	// Image Routes
	// ============================================================

	app.Post("/image", mapHandler.UploadImage)
	app.Delete("/image", mapHandler.DeleteImage)
	app.Get("/maps/*", mapHandler.ServeImage)

	// ============================================================
	// Routing Routes
	// ============================================================

	app.Get("/route/indoor", mapHandler.IndoorRoute)
	app.Post("/route/outdoor", mapHandler.OutdoorRoute)
	app.Get("/campus/entrances", mapHandler.Entrances)

	// ============================================================
	// Editor Routes
	// ============================================================

	app.Get("/editor/:floor", mapHandler.EditorState)
	app.Post("/editor/:floor/canvas", mapHandler.EditorClickCanvas)
	app.Post("/editor/:floor/vertex/:id", mapHandler.EditorClickVertex)
	app.Post("/editor/:floor/connect", mapHandler.EditorToggleConnect)
	app.Post("/editor/:floor/bidirectional", mapHandler.EditorToggleBidirectional)
	app.Post("/editor/:floor/name", mapHandler.EditorSaveName)
	app.Post("/editor/:floor/cancel", mapHandler.EditorCancel)
	app.Post("/editor/:floor/edge/:id", mapHandler.EditorSelectEdge)
	app.Delete("/editor/:floor/selected", mapHandler.EditorDeleteSelected)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Map Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadGeoRouter builds the campus router. Missing or broken GeoJSON
// files degrade outdoor routing instead of failing startup.
func loadGeoRouter(cfg *config.Config) *geo.Router {
	campus, err := geo.LoadCampus(cfg.CampusGeoJSON)
	if err != nil {
		log.Printf("[GEO] campus layer unavailable: %v", err)
	}

	walkways, err := geo.LoadWalkways(cfg.PathwaysGeoJSON)
	if err != nil {
		log.Printf("[GEO] walkway layer unavailable: %v", err)
	}

	router := geo.NewRouter(campus, walkways)
	if !router.Ready() {
		log.Printf("[GEO] outdoor routing disabled")
	}
	return router
}
