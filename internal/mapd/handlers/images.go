package handlers

import (
	"io"
	"log"

	"github.com/gofiber/fiber/v3"

	"smartcart/internal/mapd/svgutil"
)

// ============================================================
// Floor images
// ============================================================

// UploadImage stores one floor plan image from multipart form data and
// returns its public URL. SVG uploads also report the drawing canvas
// parsed from their viewBox, which the editor uses as its coordinate
// space.
func (h *MapHandler) UploadImage(c fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No file provided"})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to read file"})
	}

	contentType := file.Header.Get("Content-Type")
	floorID := c.FormValue("floorId")

	url, object, err := h.images.Save(floorID, contentType, data)
	if err != nil {
		log.Printf("[MAP] upload image (%s): %v", contentType, err)
		return fail(c, err)
	}

	resp := fiber.Map{
		"success":  true,
		"imageUrl": url,
		"filePath": object,
	}
	if contentType == "image/svg+xml" {
		if canvas, err := svgutil.ParseCanvas(data); err == nil {
			resp["width"] = canvas.Width
			resp["height"] = canvas.Height
		}
	}
	return c.JSON(resp)
}

// DeleteImage removes a stored image by its object path.
func (h *MapHandler) DeleteImage(c fiber.Ctx) error {
	var req struct {
		FilePath string `json:"filePath"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if req.FilePath == "" {
		return c.Status(400).JSON(fiber.Map{"error": "No file path provided"})
	}

	if err := h.images.Delete(req.FilePath); err != nil {
		log.Printf("[MAP] delete image %s: %v", req.FilePath, err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ServeImage serves a stored object.
func (h *MapHandler) ServeImage(c fiber.Ctx) error {
	full, err := h.images.FilePath(c.Params("*"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "bad object path"})
	}
	return c.SendFile(full)
}
