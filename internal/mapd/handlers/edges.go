package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"smartcart/internal/mapd/models"
)

// ============================================================
// Edges
// ============================================================

// AddEdge inserts one directed edge.
func (h *MapHandler) AddEdge(c fiber.Ctx) error {
	var e models.Edge
	if err := c.Bind().Body(&e); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if e.From == "" || e.To == "" || e.FloorID == 0 {
		return fail(c, models.ErrValidation)
	}
	if e.ID == "" {
		e.ID = models.EdgeID(e.From, e.To)
	}

	if err := h.repo.InsertEdge(c.Context(), e); err != nil {
		log.Printf("[MAP] insert edge %s: %v", e.ID, err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "edge added successfully!", "edge": e})
}

// DeleteEdge deletes one edge, scoped by id and floor.
func (h *MapHandler) DeleteEdge(c fiber.Ctx) error {
	var req struct {
		FloorID int    `json:"floor_id"`
		ID      string `json:"id"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if req.ID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Edge ID is required"})
	}

	if err := h.repo.DeleteEdge(c.Context(), req.FloorID, req.ID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "edge deleted successfully!"})
}
