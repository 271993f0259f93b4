package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/Jeevagan-dev/attendance/config"
	"github.com/Jeevagan-dev/attendance/models"
	"github.com/Jeevagan-dev/attendance/pkg/paseto"
	"github.com/Jeevagan-dev/attendance/pkg/password"
	util "github.com/Jeevagan-dev/attendance/pkg/utils"
	"github.com/Jeevagan-dev/attendance/repository"
)

type AuthHandler struct {
	employeeRepo *repository.EmployeeRepository
	cfg          *config.AppConfig
}

func NewAuthHandler(employeeRepo *repository.EmployeeRepository, cfg *config.AppConfig) *AuthHandler {
	return &AuthHandler{
		employeeRepo: employeeRepo,
		cfg:          cfg,
	}
}

// Login godoc
// @Summary Employee login
// @Description Authenticates an employee by ID and password, returns a PASETO token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.EmployeeLoginPayload true "Employee credentials"
// @Success 200 {object} models.LoginSuccessResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload models.EmployeeLoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	employee, err := h.employeeRepo.FindByEmployeeID(c.Context(), payload.EmployeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up employee"})
	}
	if employee == nil || !password.CheckPassword(employee.Password, payload.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid ID or password."})
	}

	token, err := paseto.GenerateToken(employee.EmployeeID, employee.Name, paseto.RoleEmployee)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.Status(fiber.StatusOK).JSON(models.LoginSuccessResponse{
		Message:    "Login successful",
		Token:      token,
		EmployeeID: employee.EmployeeID,
		Name:       employee.Name,
		Role:       paseto.RoleEmployee,
	})
}

// AdminLogin godoc
// @Summary Admin login
// @Description Authenticates the administrator against the configured credentials
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.AdminLoginPayload true "Admin credentials"
// @Success 200 {object} models.LoginSuccessResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var payload models.AdminLoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	if h.cfg.AdminPassword == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Admin login is not configured"})
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(payload.Username), []byte(h.cfg.AdminUsername)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(payload.Password), []byte(h.cfg.AdminPassword)) == 1
	if !usernameOK || !passwordOK {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid admin credentials"})
	}

	token, err := paseto.GenerateToken(h.cfg.AdminUsername, "Administrator", paseto.RoleAdmin)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.Status(fiber.StatusOK).JSON(models.LoginSuccessResponse{
		Message:    "Login successful",
		Token:      token,
		EmployeeID: h.cfg.AdminUsername,
		Name:       "Administrator",
		Role:       paseto.RoleAdmin,
	})
}
