package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Jeevagan-dev/attendance/models"
	util "github.com/Jeevagan-dev/attendance/pkg/utils"
	"github.com/Jeevagan-dev/attendance/repository"
)

type SettingsHandler struct {
	repo repository.SettingsRepository
}

func NewSettingsHandler(repo repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

// GetLocationPolicy godoc
// @Summary Get the location restriction flag
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.LocationPolicyResponse
// @Router /admin/settings/location-restriction [get]
func (h *SettingsHandler) GetLocationPolicy(c *fiber.Ctx) error {
	enabled, err := h.repo.GetLocationRestriction(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read location restriction"})
	}

	return c.Status(fiber.StatusOK).JSON(models.LocationPolicyResponse{Enabled: enabled})
}

// SetLocationPolicy godoc
// @Summary Toggle the location restriction flag
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param policy body models.LocationPolicyPayload true "New policy"
// @Success 200 {object} models.LocationPolicyResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Router /admin/settings/location-restriction [put]
func (h *SettingsHandler) SetLocationPolicy(c *fiber.Ctx) error {
	var payload models.LocationPolicyPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	if err := h.repo.SetLocationRestriction(c.Context(), *payload.Enabled); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update location restriction"})
	}

	return c.Status(fiber.StatusOK).JSON(models.LocationPolicyResponse{Enabled: *payload.Enabled})
}
