package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"smartcart/internal/mapd/models"
)

// ============================================================
// Floors
// ============================================================

// GetFloors lists floor metadata.
func (h *MapHandler) GetFloors(c fiber.Ctx) error {
	floors, err := h.repo.ListFloors(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"data": floors})
}

// AddFloor creates a floor record.
func (h *MapHandler) AddFloor(c fiber.Ctx) error {
	var f models.Floor
	if err := c.Bind().Body(&f); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if f.ID == 0 || f.Name == "" {
		return fail(c, models.ErrValidation)
	}

	if err := h.repo.InsertFloor(c.Context(), f); err != nil {
		log.Printf("[MAP] insert floor %d: %v", f.ID, err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "floor added successfully!", "floor": f})
}

// UpdateFloor updates floor metadata by the id query parameter.
func (h *MapHandler) UpdateFloor(c fiber.Ctx) error {
	id, err := floorIDQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Floor ID is required"})
	}

	var f models.Floor
	if err := c.Bind().Body(&f); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	f.ID = id

	if err := h.repo.UpdateFloor(c.Context(), f); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "floor updated successfully!"})
}

// DeleteFloor removes the floor, its whole graph and its stored image.
func (h *MapHandler) DeleteFloor(c fiber.Ctx) error {
	id, err := floorIDQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Floor ID is required"})
	}

	object, err := h.repo.DeleteFloor(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	h.sessions.Close(id)

	// The image goes with the floor. A failed object delete is logged,
	// not surfaced: the floor itself is already gone.
	if object != "" {
		if err := h.images.Delete(object); err != nil {
			log.Printf("[MAP] delete floor image %s: %v", object, err)
		}
	}
	return c.JSON(fiber.Map{"message": "floor deleted successfully!"})
}

func floorIDQuery(c fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Query("id"))
}
