package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/Jeevagan-dev/attendance/config"
	_ "github.com/Jeevagan-dev/attendance/docs"
	"github.com/Jeevagan-dev/attendance/repository"
	"github.com/Jeevagan-dev/attendance/router"
	"github.com/Jeevagan-dev/attendance/seeder"
	_ "time/tzdata"
)

// @title Attendance Tracker API
// @version 1.0
// @description Employee attendance tracking with geofenced check-in/check-out, photo proof, and admin oversight
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
//
// @tag.name Auth
// @tag.description Authentication endpoints
//
// @tag.name Attendance
// @tag.description Attendance logging and geofence endpoints
//
// @tag.name Admin
// @tag.description Admin only endpoints
//
// @tag.name Files
// @tag.description Photo proof endpoints
func main() {

	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.LoadConfig()

	config.MongoConnect()
	config.InitDatabase()

	defer config.DisconnectDB()

	if os.Getenv("SEED") == "true" {
		seeder.SeedEmployees(repository.NewEmployeeRepository())
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 << 20, // photo uploads
	})

	config.SetupCORS(app)

	app.Use(logger.New())

	router.SetupRoutes(app, cfg)

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Printf("CORS enabled for origins: %v", config.GetAllowedOrigins())
	log.Fatal(app.Listen(":" + cfg.Port))
}
