package models

type MessageResponse struct {
	Message string `json:"message" example:"Arrival logged successfully."`
}

type LoginSuccessResponse struct {
	Message    string `json:"message" example:"Login successful"`
	Token      string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	EmployeeID string `json:"employee_id" example:"EMP001"`
	Name       string `json:"name" example:"Jeeva"`
	Role       string `json:"role" example:"employee"`
}

type RegisterSuccessResponse struct {
	Message    string `json:"message" example:"Employee added successfully."`
	EmployeeID string `json:"employee_id" example:"EMP001"`
}

type GeofenceResponse struct {
	Admitted bool   `json:"admitted" example:"true"`
	Reason   string `json:"reason,omitempty" example:"Out of allowed location."`
}

type LocationPolicyResponse struct {
	Enabled bool `json:"enabled" example:"true"`
}

type AttendanceListResponse struct {
	Records []AttendanceRecord `json:"records"`
	Total   int64              `json:"total" example:"42"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

type ValidationErrorResponse struct {
	Errors interface{} `json:"errors"`
}

type UnauthorizedErrorResponse struct {
	Error string `json:"error" example:"Invalid or expired token"`
}

type ForbiddenErrorResponse struct {
	Error string `json:"error" example:"Admin access required"`
}

type NotFoundErrorResponse struct {
	Error string `json:"error" example:"Record not found"`
}
