package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"smartcart/internal/mapd/models"
)

// ============================================================
// Points
// ============================================================

// GetPoints returns the floor record with its assembled graph, wrapped
// in a single-element array the way the map client expects.
func (h *MapHandler) GetPoints(c fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"error": "ID is required"})
	}
	floorID, err := strconv.Atoi(id)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "ID must be numeric"})
	}

	f, err := h.repo.GetFloor(c.Context(), floorID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON([]models.Floor{f})
}

// AddPoint inserts one vertex.
func (h *MapHandler) AddPoint(c fiber.Ctx) error {
	var v models.Vertex
	if err := c.Bind().Body(&v); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if v.ID == "" || v.FloorID == 0 {
		return fail(c, models.ErrValidation)
	}

	if err := h.repo.InsertVertex(c.Context(), v); err != nil {
		log.Printf("[MAP] insert vertex %s: %v", v.ID, err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "point added successfully!", "point": v})
}

// UpdatePoint updates one vertex, scoped by id and floor.
func (h *MapHandler) UpdatePoint(c fiber.Ctx) error {
	var v models.Vertex
	if err := c.Bind().Body(&v); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if v.ID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Point ID is required"})
	}

	if err := h.repo.UpdateVertex(c.Context(), v); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "point updated successfully!", "point": v})
}

// DeletePoint deletes one vertex, scoped by id and floor. Cascading the
// referencing edges is the authoring flow's job.
func (h *MapHandler) DeletePoint(c fiber.Ctx) error {
	var req struct {
		FloorID int    `json:"floor_id"`
		PointID string `json:"pointId"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if req.PointID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Point ID is required"})
	}

	if err := h.repo.DeleteVertex(c.Context(), req.FloorID, req.PointID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "point deleted successfully!"})
}
