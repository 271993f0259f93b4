package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"github.com/Jeevagan-dev/attendance/config"
	"github.com/Jeevagan-dev/attendance/config/middleware"
	_ "github.com/Jeevagan-dev/attendance/docs"
	"github.com/Jeevagan-dev/attendance/handlers"
	"github.com/Jeevagan-dev/attendance/pkg/geo"
	"github.com/Jeevagan-dev/attendance/pkg/timeutil"
	"github.com/Jeevagan-dev/attendance/repository"
	"github.com/Jeevagan-dev/attendance/services"
)

func SetupRoutes(app *fiber.App, cfg *config.AppConfig) {
	log.Println("Registering application routes...")

	clock, err := timeutil.NewClock(cfg.Timezone)
	if err != nil {
		log.Fatalf("Failed to initialize clock: %v", err)
	}

	// Repositories
	employeeRepo := repository.NewEmployeeRepository()
	attendanceRepo := repository.NewAttendanceRepository()
	settingsRepo := repository.NewSettingsRepository()
	photoRepo := repository.NewPhotoRepository()

	// Core service
	attendanceService := services.NewAttendanceService(
		attendanceRepo,
		settingsRepo,
		photoRepo,
		clock,
		geo.Point{Lat: cfg.AllowedLat, Lon: cfg.AllowedLon},
		cfg.MaxDistanceKm,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(employeeRepo, cfg)
	employeeHandler := handlers.NewEmployeeHandler(employeeRepo)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, attendanceRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	fileHandler := handlers.NewFileHandler(photoRepo)
	reportHandler := handlers.NewReportHandler(attendanceRepo, attendanceService)

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Attendance Tracker API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	// API v1 group
	api := app.Group("/api/v1")

	// Authentication routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/admin/login", authHandler.AdminLogin)

	// Attendance routes (any authenticated user)
	attendanceGroup := api.Group("/attendance", middleware.AuthMiddleware())
	attendanceGroup.Post("/arrival", attendanceHandler.LogArrival)
	attendanceGroup.Post("/leaving", attendanceHandler.LogLeaving)
	attendanceGroup.Get("/geofence", attendanceHandler.CheckGeofence)
	attendanceGroup.Get("/my-history", attendanceHandler.GetMyHistory)

	// Photo proof
	api.Get("/files/:id", middleware.AuthMiddleware(), fileHandler.GetPhoto)

	// Admin routes
	adminGroup := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	adminGroup.Get("/attendance", attendanceHandler.ListAttendance)
	adminGroup.Put("/attendance/:id", attendanceHandler.UpdateAttendance)
	adminGroup.Post("/employees", employeeHandler.Register)
	adminGroup.Get("/employees", employeeHandler.GetAllEmployees)
	adminGroup.Delete("/employees/:id", employeeHandler.DeleteEmployee)
	adminGroup.Get("/settings/location-restriction", settingsHandler.GetLocationPolicy)
	adminGroup.Put("/settings/location-restriction", settingsHandler.SetLocationPolicy)
	adminGroup.Get("/reports/daily-presence", reportHandler.DailyPresence)
	adminGroup.Get("/reports/hours", reportHandler.HoursByEmployee)
	adminGroup.Get("/reports/export.csv", reportHandler.ExportCSV)

	log.Println("All application routes registered.")
	log.Println("Available routes:")
	log.Println("- POST /api/v1/auth/login")
	log.Println("- POST /api/v1/auth/admin/login")
	log.Println("- POST /api/v1/attendance/arrival (protected)")
	log.Println("- POST /api/v1/attendance/leaving (protected)")
	log.Println("- GET /api/v1/attendance/geofence (protected)")
	log.Println("- GET /api/v1/attendance/my-history (protected)")
	log.Println("- GET /api/v1/files/:id (protected)")
	log.Println("- GET /api/v1/admin/attendance (admin only)")
	log.Println("- PUT /api/v1/admin/attendance/:id (admin only)")
	log.Println("- POST /api/v1/admin/employees (admin only)")
	log.Println("- GET /api/v1/admin/employees (admin only)")
	log.Println("- DELETE /api/v1/admin/employees/:id (admin only)")
	log.Println("- GET /api/v1/admin/settings/location-restriction (admin only)")
	log.Println("- PUT /api/v1/admin/settings/location-restriction (admin only)")
	log.Println("- GET /api/v1/admin/reports/daily-presence (admin only)")
	log.Println("- GET /api/v1/admin/reports/hours (admin only)")
	log.Println("- GET /api/v1/admin/reports/export.csv (admin only)")
	log.Println("Swagger documentation available at: /docs/index.html")
}
