package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Jeevagan-dev/attendance/models"
	"github.com/Jeevagan-dev/attendance/pkg/password"
	"github.com/Jeevagan-dev/attendance/repository"
)

// SeedEmployees inserts a handful of demo employees so a fresh deployment
// can be exercised immediately. Existing IDs are skipped, so reruns are safe.
func SeedEmployees(employeeRepo *repository.EmployeeRepository) {
	log.Println("Seeding employees...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashed, err := password.HashPassword("Password123")
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	demo := []struct {
		EmployeeID string
		Name       string
	}{
		{"EMP001", "Jeevagan"},
		{"EMP002", "Priya Raman"},
		{"EMP003", "Arun Kumar"},
		{"EMP004", "Divya Srinivasan"},
		{"EMP005", "Karthik Subramani"},
	}

	for _, d := range demo {
		existing, err := employeeRepo.FindByEmployeeID(ctx, d.EmployeeID)
		if err == nil && existing != nil {
			fmt.Printf("Skipping: employee %s already exists.\n", d.EmployeeID)
			continue
		}

		employee := &models.Employee{
			EmployeeID: d.EmployeeID,
			Name:       d.Name,
			Password:   hashed,
		}

		if _, err := employeeRepo.CreateEmployee(ctx, employee); err != nil {
			log.Printf("Failed to seed employee %s: %v\n", d.EmployeeID, err)
		} else {
			fmt.Printf("Employee %s (%s) added.\n", d.EmployeeID, d.Name)
		}
	}

	log.Println("Employee seeding complete.")
}
