package handlers

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"smartcart/internal/mapd/geo"
	"smartcart/internal/mapd/graph"
	"smartcart/internal/mapd/models"
)

// ============================================================
// Routing
// ============================================================

// IndoorRoute runs the floor Dijkstra between two vertices. "No route"
// is a normal 200 response with an empty path, not an error.
func (h *MapHandler) IndoorRoute(c fiber.Ctx) error {
	floorID, err := strconv.Atoi(c.Query("floor"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "floor is required"})
	}
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		return c.Status(400).JSON(fiber.Map{"error": "from and to are required"})
	}

	f, err := h.repo.GetFloor(c.Context(), floorID)
	if err != nil {
		return fail(c, err)
	}
	g, err := graph.Load(floorID, f.GraphData)
	if err != nil {
		return fail(c, err)
	}

	path, dist := graph.ShortestPath(g, from, to)
	if len(path) < 2 {
		return c.JSON(fiber.Map{"path": []models.Vertex{}, "distance": 0})
	}
	return c.JSON(fiber.Map{"path": path, "distance": math.Round(dist)})
}

// latlng is the [lat, lng] pair the map client draws with.
type latlng [2]float64

func fromCoord(c geo.Coord) latlng { return latlng{c.Lat, c.Lng} }

// OutdoorRoute snaps the two points onto the campus walkway network
// and returns the route plus its connector legs. A null path means no
// route exists (or the campus layers are not loaded).
func (h *MapHandler) OutdoorRoute(c fiber.Ctx) error {
	var req struct {
		User        latlng `json:"user"`
		Destination latlng `json:"destination"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}

	route := h.router.FindPath(
		geo.Coord{Lat: req.User[0], Lng: req.User[1]},
		geo.Coord{Lat: req.Destination[0], Lng: req.Destination[1]},
	)
	if route == nil {
		return c.JSON(fiber.Map{"path": nil})
	}

	path := make([]latlng, len(route.Path))
	for i, p := range route.Path {
		path[i] = fromCoord(p)
	}
	return c.JSON(fiber.Map{
		"path": path,
		"connections": fiber.Map{
			"start": fromCoord(route.Connections.Start),
			"end":   fromCoord(route.Connections.End),
		},
		"distance": route.Distance,
	})
}

// Entrances lists the campus entrance markers.
func (h *MapHandler) Entrances(c fiber.Ctx) error {
	type entrance struct {
		Name string `json:"name"`
		Type string `json:"entrance_type"`
		At   latlng `json:"at"`
	}
	out := []entrance{}
	for _, e := range h.router.Entrances() {
		out = append(out, entrance{Name: e.Name, Type: e.Type, At: fromCoord(e.At)})
	}
	return c.JSON(fiber.Map{"entrances": out})
}
