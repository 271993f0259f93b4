package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employee struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID string             `json:"employee_id" bson:"employee_id"`
	Name       string             `json:"name" bson:"name"`
	Password   string             `json:"-" bson:"password"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

type EmployeeRegisterPayload struct {
	EmployeeID string `json:"employee_id" validate:"required,min=1,max=50"`
	Name       string `json:"name" validate:"required,min=3,max=100"`
	Password   string `json:"password" validate:"required,min=8,max=50,hasuppercase"`
}

type EmployeeLoginPayload struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type AdminLoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
