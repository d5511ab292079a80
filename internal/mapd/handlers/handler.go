package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"smartcart/internal/mapd/editor"
	"smartcart/internal/mapd/geo"
	"smartcart/internal/mapd/models"
	"smartcart/internal/mapd/repository"
	"smartcart/internal/mapd/storage"
)

// ============================================================
// Map Service Handlers
// ============================================================

// MapHandler owns the HTTP surface of the map service: floor/point/edge
// CRUD, floor image upload, indoor and outdoor routing, and the
// authoring sessions.
type MapHandler struct {
	repo     *repository.Repository
	images   *storage.ImageStore
	router   *geo.Router
	sessions *editor.SessionManager
}

func NewMapHandler(repo *repository.Repository, images *storage.ImageStore, router *geo.Router) *MapHandler {
	return &MapHandler{
		repo:     repo,
		images:   images,
		router:   router,
		sessions: editor.NewSessionManager(),
	}
}

// fail maps domain errors onto HTTP statuses.
func fail(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrInvalidReference),
		errors.Is(err, models.ErrDuplicateEdge),
		errors.Is(err, storage.ErrInvalidType),
		errors.Is(err, storage.ErrBadPath):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}
