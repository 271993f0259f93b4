package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Jeevagan-dev/attendance/models"
	"github.com/Jeevagan-dev/attendance/pkg/geo"
	"github.com/Jeevagan-dev/attendance/pkg/paseto"
	util "github.com/Jeevagan-dev/attendance/pkg/utils"
	"github.com/Jeevagan-dev/attendance/repository"
	"github.com/Jeevagan-dev/attendance/services"
)

const maxPhotoBytes = 5 << 20

type AttendanceHandler struct {
	service *services.AttendanceService
	repo    repository.AttendanceRepository
}

func NewAttendanceHandler(service *services.AttendanceService, repo repository.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{service: service, repo: repo}
}

// LogArrival godoc
// @Summary Log arrival
// @Description Logs the authenticated employee's arrival for today, with a selfie and optional device coordinates
// @Tags Attendance
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Arrival selfie"
// @Param latitude formData number false "Device latitude"
// @Param longitude formData number false "Device longitude"
// @Success 201 {object} models.AttendanceRecord
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /attendance/arrival [post]
func (h *AttendanceHandler) LogArrival(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated or token claims invalid"})
	}

	photo, err := readPhoto(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	point, err := formPoint(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := h.service.LogArrival(c.Context(), claims.EmployeeID, claims.Name, point, photo)
	if err != nil {
		return attendanceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Arrival logged successfully.",
		"record":  record,
	})
}

// LogLeaving godoc
// @Summary Log leaving
// @Description Logs the authenticated employee's leaving for today and computes hours present
// @Tags Attendance
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Leaving selfie"
// @Param latitude formData number false "Device latitude"
// @Param longitude formData number false "Device longitude"
// @Success 200 {object} models.AttendanceRecord
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /attendance/leaving [post]
func (h *AttendanceHandler) LogLeaving(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated or token claims invalid"})
	}

	photo, err := readPhoto(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	point, err := formPoint(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := h.service.LogLeaving(c.Context(), claims.EmployeeID, point, photo)
	if err != nil {
		return attendanceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Leaving time logged successfully.",
		"record":  record,
	})
}

// CheckGeofence godoc
// @Summary Check geofence
// @Description Reports whether the given coordinate would currently be admitted for attendance logging
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param latitude query number false "Device latitude"
// @Param longitude query number false "Device longitude"
// @Success 200 {object} models.GeofenceResponse
// @Router /attendance/geofence [get]
func (h *AttendanceHandler) CheckGeofence(c *fiber.Ctx) error {
	point, err := queryPoint(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.CheckGeofence(c.Context(), point); err != nil {
		if errors.Is(err, services.ErrGeoRejected) || errors.Is(err, services.ErrAwaitingLocation) {
			return c.Status(fiber.StatusOK).JSON(models.GeofenceResponse{Admitted: false, Reason: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check geofence"})
	}

	return c.Status(fiber.StatusOK).JSON(models.GeofenceResponse{Admitted: true})
}

// GetMyHistory godoc
// @Summary My attendance history
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AttendanceRecord
// @Router /attendance/my-history [get]
func (h *AttendanceHandler) GetMyHistory(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated or token claims invalid"})
	}

	history, err := h.service.Records(c.Context(), claims.EmployeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance history"})
	}

	return c.Status(fiber.StatusOK).JSON(history)
}

// ListAttendance godoc
// @Summary List attendance records
// @Description Admin view of all records, optionally filtered by employee, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param employee_id query string false "Filter by employee ID"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} models.AttendanceListResponse
// @Router /admin/attendance [get]
func (h *AttendanceHandler) ListAttendance(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	if page < 1 {
		page = 1
	}

	filter := bson.M{}
	if employeeID := c.Query("employee_id"); employeeID != "" {
		filter["employee_id"] = employeeID
	}

	records, total, err := h.repo.List(c.Context(), filter, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list attendance records"})
	}

	return c.Status(fiber.StatusOK).JSON(models.AttendanceListResponse{Records: records, Total: total})
}

// UpdateAttendance godoc
// @Summary Edit an attendance record
// @Description Admin escape hatch: overwrites arrival/leaving times directly and recomputes hours
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Param record body models.AttendanceUpdatePayload true "New times"
// @Success 200 {object} models.AttendanceRecord
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /admin/attendance/{id} [put]
func (h *AttendanceHandler) UpdateAttendance(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid record ID format"})
	}

	var payload models.AttendanceUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	record, err := h.service.AdminEdit(c.Context(), id, &payload)
	if err != nil {
		return attendanceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Record updated successfully.",
		"record":  record,
	})
}

func readPhoto(c *fiber.Ctx) ([]byte, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return nil, errors.New("a photo is required to log attendance")
	}
	if fileHeader.Size > maxPhotoBytes {
		return nil, errors.New("photo is too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("failed to open uploaded photo")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("failed to read uploaded photo")
	}
	return data, nil
}

func formPoint(c *fiber.Ctx) (*geo.Point, error) {
	return parsePoint(c.FormValue("latitude"), c.FormValue("longitude"))
}

func queryPoint(c *fiber.Ctx) (*geo.Point, error) {
	return parsePoint(c.Query("latitude"), c.Query("longitude"))
}

// parsePoint returns nil when no coordinate was submitted at all; the
// geofence gate distinguishes "no fix yet" from "outside the radius".
func parsePoint(latStr, lonStr string) (*geo.Point, error) {
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("latitude and longitude must be provided together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.New("latitude must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, errors.New("longitude must be a number")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, errors.New("coordinate is out of range")
	}

	return &geo.Point{Lat: lat, Lon: lon}, nil
}

func attendanceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDuplicateLog),
		errors.Is(err, services.ErrAlreadyCompleted),
		errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNoArrival),
		errors.Is(err, services.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrGeoRejected):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAwaitingLocation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}
}
