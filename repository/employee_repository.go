package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Jeevagan-dev/attendance/config"
	"github.com/Jeevagan-dev/attendance/models"
)

var ErrDuplicateEmployee = errors.New("employee ID already exists")

type EmployeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{
		collection: config.GetCollection(config.EmployeeCollection),
	}
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee *models.Employee) (*mongo.InsertOneResult, error) {
	employee.ID = primitive.NewObjectID()
	employee.CreatedAt = time.Now()
	employee.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmployee
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return result, nil
}

func (r *EmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	var employee models.Employee
	filter := bson.M{"employee_id": employeeID}

	err := r.collection.FindOne(ctx, filter).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find employee by ID: %w", err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, employeeID string) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return nil, fmt.Errorf("failed to delete employee: %w", err)
	}
	return result, nil
}

func (r *EmployeeRepository) GetAllEmployees(ctx context.Context) ([]models.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "employee_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}

	if len(employees) == 0 {
		return []models.Employee{}, nil
	}
	return employees, nil
}
