package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Jeevagan-dev/attendance/repository"
)

type FileHandler struct {
	photos repository.PhotoRepository
}

func NewFileHandler(photos repository.PhotoRepository) *FileHandler {
	return &FileHandler{photos: photos}
}

// GetPhoto godoc
// @Summary Fetch a proof photo
// @Description Streams a stored arrival/leaving photo by its handle
// @Tags Files
// @Produce png
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 200 {file} binary
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /files/{id} [get]
func (h *FileHandler) GetPhoto(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid photo ID format"})
	}

	data, filename, err := h.photos.Load(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Photo not found"})
	}

	c.Set("Content-Type", http.DetectContentType(data))
	c.Set("Content-Disposition", "inline; filename=\""+filename+"\"")
	return c.Send(data)
}
