package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"smartcart/internal/mapd/editor"
	"smartcart/internal/mapd/models"
)

// ============================================================
// Authoring sessions
// ============================================================

// session resolves the floor's authoring editor, loading its graph
// from the repository on first use.
func (h *MapHandler) session(c fiber.Ctx) (*editor.Editor, error) {
	floorID, err := strconv.Atoi(c.Params("floor"))
	if err != nil {
		return nil, models.ErrValidation
	}
	return h.sessions.Session(c.Context(), floorID, h.repo, h.repo)
}

func editorState(ed *editor.Editor) fiber.Map {
	return fiber.Map{
		"mode":          int(ed.Mode()),
		"bidirectional": ed.Bidirectional(),
		"editing":       ed.Editing(),
		"graphData": fiber.Map{
			"vertices": ed.Graph().Vertices(),
			"edges":    ed.Graph().Edges(),
		},
	}
}

// EditorState returns the session's mode and current graph.
func (h *MapHandler) EditorState(c fiber.Ctx) error {
	ed, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(editorState(ed))
}

// EditorClickCanvas places a vertex at the clicked floor coordinate.
func (h *MapHandler) EditorClickCanvas(c fiber.Ctx) error {
	ed, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		CX float64 `json:"cx"`
		CY float64 `json:"cy"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}

	v, err := ed.ClickCanvas(c.Context(), req.CX, req.CY)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"point": v, "state": editorState(ed)})
}

// EditorClickVertex forwards a vertex click: endpoint selection in
// connect mode, otherwise opening the name editor.
func (h *MapHandler) EditorClickVertex(c fiber.Ctx) error {
	ed, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	if err := ed.ClickVertex(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(editorState(ed))
}

// EditorToggleConnect flips connect mode.
func (h *MapHandler) EditorToggleConnect(c fiber.Ctx) error {
	ed, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	ed.ToggleConnectMode()
	return c.JSON(editorState(ed))
}

// EditorToggleBidirectional flips reverse-edge creation.
func (h *MapHandler) EditorToggleBidirectional(c fiber.Ctx) error {
	ed, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	ed.ToggleBidirectional()
	return c.JSON(editorState(ed))
}

// EditorSaveName saves the pending vertex name.
func (h *MapHandler) EditorSaveName(c fiber.Ctx) error {
	ed, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}

	if err := ed.SaveName(c.Context(), req.Name); err != nil {
		return fail(c, err)
	}
	return c.JSON(editorState(ed))
}

// EditorCancel closes the name editor without saving.
func (h *MapHandler) EditorCancel(c fiber.Ctx) error {
	ed, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	ed.CancelEdit()
	return c.JSON(editorState(ed))
}

// EditorSelectEdge marks a connection for deletion.
func (h *MapHandler) EditorSelectEdge(c fiber.Ctx) error {
	ed, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	ed.SelectEdge(req.ID)
	return c.JSON(editorState(ed))
}

// EditorDeleteSelected removes the current selection, cascading edges
// when a vertex is selected.
func (h *MapHandler) EditorDeleteSelected(c fiber.Ctx) error {
	ed, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	if err := ed.DeleteSelected(c.Context()); err != nil {
		return fail(c, err)
	}
	return c.JSON(editorState(ed))
}
