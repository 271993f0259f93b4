package handlers

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Jeevagan-dev/attendance/repository"
	"github.com/Jeevagan-dev/attendance/services"
)

type ReportHandler struct {
	repo    repository.AttendanceRepository
	service *services.AttendanceService
}

func NewReportHandler(repo repository.AttendanceRepository, service *services.AttendanceService) *ReportHandler {
	return &ReportHandler{repo: repo, service: service}
}

// DailyPresence godoc
// @Summary Employees present per date
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.DailyPresence
// @Router /admin/reports/daily-presence [get]
func (h *ReportHandler) DailyPresence(c *fiber.Ctx) error {
	rows, err := h.repo.DailyPresence(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to aggregate daily presence"})
	}
	return c.Status(fiber.StatusOK).JSON(rows)
}

// HoursByEmployee godoc
// @Summary Total hours per employee
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.EmployeeHours
// @Router /admin/reports/hours [get]
func (h *ReportHandler) HoursByEmployee(c *fiber.Ctx) error {
	rows, err := h.repo.HoursByEmployee(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to aggregate hours"})
	}
	return c.Status(fiber.StatusOK).JSON(rows)
}

// ExportCSV godoc
// @Summary Download all attendance records as CSV
// @Tags Admin
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /admin/reports/export.csv [get]
func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	records, err := h.service.Records(c.Context(), c.Query("employee_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance records"})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"Employee ID", "Name", "Date", "Arrival Time", "Leaving Time", "Hours Present"})
	for _, r := range records {
		hours := ""
		if r.HoursPresent != nil {
			hours = strconv.FormatFloat(*r.HoursPresent, 'f', 2, 64)
		}
		_ = w.Write([]string{r.EmployeeID, r.EmployeeName, r.Date, r.ArrivalTime, r.LeavingTime, hours})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build CSV"})
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=\"attendance.csv\"")
	return c.Send(buf.Bytes())
}
