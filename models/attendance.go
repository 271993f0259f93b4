package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionState is the per-employee-day session lifecycle. A record moves
// NoSession -> ArrivalLogged -> Completed and never back; Completed is
// terminal and re-logging is rejected, not overwritten.
type SessionState int

const (
	NoSession SessionState = iota
	ArrivalLogged
	Completed
)

func (s SessionState) String() string {
	switch s {
	case ArrivalLogged:
		return "arrival_logged"
	case Completed:
		return "completed"
	default:
		return "no_session"
	}
}

// AttendanceRecord is one row per (employee_id, date). The pair carries a
// unique index, so a concurrent duplicate insert fails at the storage layer.
type AttendanceRecord struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID     string              `json:"employee_id" bson:"employee_id"`
	EmployeeName   string              `json:"employee_name" bson:"employee_name"`
	Date           string              `json:"date" bson:"date"`                 // 2006-01-02
	ArrivalTime    string              `json:"arrival_time" bson:"arrival_time"` // 03:04 PM
	LeavingTime    string              `json:"leaving_time,omitempty" bson:"leaving_time,omitempty"`
	HoursPresent   *float64            `json:"hours_present,omitempty" bson:"hours_present,omitempty"`
	ArrivalPhotoID *primitive.ObjectID `json:"arrival_photo_id,omitempty" bson:"arrival_photo_id,omitempty"`
	LeavingPhotoID *primitive.ObjectID `json:"leaving_photo_id,omitempty" bson:"leaving_photo_id,omitempty"`
	CreatedAt      time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at" bson:"updated_at"`
}

// State reports the session state encoded by the record. LeavingTime is
// non-empty iff HoursPresent is set, so it alone decides completion.
func (r *AttendanceRecord) State() SessionState {
	if r == nil {
		return NoSession
	}
	if r.LeavingTime == "" {
		return ArrivalLogged
	}
	return Completed
}

// AttendanceLogPayload carries the optional device coordinates submitted
// alongside the photo on an arrival or leaving log. Nil coordinates mean the
// device has not produced a fix yet.
type AttendanceLogPayload struct {
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
}

// AttendanceUpdatePayload is the admin direct-edit escape hatch. It bypasses
// the session state machine but not input validation: times must parse, and
// a leaving time without an arrival time is rejected upstream.
type AttendanceUpdatePayload struct {
	ArrivalTime string `json:"arrival_time" validate:"required,timeofday"`
	LeavingTime string `json:"leaving_time,omitempty" validate:"omitempty,timeofday"`
}

// DailyPresence is one aggregation row: distinct employees seen on a date.
type DailyPresence struct {
	Date             string `json:"date" bson:"_id"`
	EmployeesPresent int64  `json:"employees_present" bson:"employees_present"`
}

// EmployeeHours is one aggregation row: summed completed hours per employee.
type EmployeeHours struct {
	EmployeeID string  `json:"employee_id" bson:"_id"`
	TotalHours float64 `json:"total_hours" bson:"total_hours"`
}
