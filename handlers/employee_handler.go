package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Jeevagan-dev/attendance/models"
	"github.com/Jeevagan-dev/attendance/pkg/password"
	util "github.com/Jeevagan-dev/attendance/pkg/utils"
	"github.com/Jeevagan-dev/attendance/repository"
)

type EmployeeHandler struct {
	repo *repository.EmployeeRepository
}

func NewEmployeeHandler(repo *repository.EmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{repo: repo}
}

// Register godoc
// @Summary Add an employee
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee body models.EmployeeRegisterPayload true "New employee"
// @Success 201 {object} models.RegisterSuccessResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/employees [post]
func (h *EmployeeHandler) Register(c *fiber.Ctx) error {
	var payload models.EmployeeRegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	hashed, err := password.HashPassword(payload.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	employee := &models.Employee{
		EmployeeID: payload.EmployeeID,
		Name:       payload.Name,
		Password:   hashed,
	}

	if _, err := h.repo.CreateEmployee(c.Context(), employee); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmployee) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Employee ID already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add employee"})
	}

	return c.Status(fiber.StatusCreated).JSON(models.RegisterSuccessResponse{
		Message:    "Employee added successfully.",
		EmployeeID: employee.EmployeeID,
	})
}

// GetAllEmployees godoc
// @Summary List employees
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Employee
// @Router /admin/employees [get]
func (h *EmployeeHandler) GetAllEmployees(c *fiber.Ctx) error {
	employees, err := h.repo.GetAllEmployees(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list employees"})
	}

	return c.Status(fiber.StatusOK).JSON(employees)
}

// DeleteEmployee godoc
// @Summary Remove an employee
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /admin/employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	employeeID := c.Params("id")

	result, err := h.repo.DeleteEmployee(c.Context(), employeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove employee"})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee ID not found."})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Removed employee: " + employeeID})
}
