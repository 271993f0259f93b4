// Package services holds the attendance session state machine and the
// geofence gate in front of it. Handlers stay thin: they parse and
// authenticate, then call into here.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Jeevagan-dev/attendance/models"
	"github.com/Jeevagan-dev/attendance/pkg/geo"
	"github.com/Jeevagan-dev/attendance/pkg/timeutil"
	"github.com/Jeevagan-dev/attendance/repository"
)

type AttendanceService struct {
	records  repository.AttendanceRepository
	settings repository.SettingsRepository
	photos   repository.PhotoRepository
	clock    timeutil.Clock

	site        geo.Point
	maxRadiusKm float64
}

func NewAttendanceService(
	records repository.AttendanceRepository,
	settings repository.SettingsRepository,
	photos repository.PhotoRepository,
	clock timeutil.Clock,
	site geo.Point,
	maxRadiusKm float64,
) *AttendanceService {
	return &AttendanceService{
		records:     records,
		settings:    settings,
		photos:      photos,
		clock:       clock,
		site:        site,
		maxRadiusKm: maxRadiusKm,
	}
}

// CheckGeofence admits or rejects a logging attempt by location. With the
// restriction disabled everything is admitted, coordinate or not. With it
// enabled, a missing coordinate is ErrAwaitingLocation (the device has not
// produced a fix yet) and an out-of-radius one is ErrGeoRejected.
func (s *AttendanceService) CheckGeofence(ctx context.Context, point *geo.Point) error {
	enabled, err := s.settings.GetLocationRestriction(ctx)
	if err != nil {
		return fmt.Errorf("failed to read location policy: %w", err)
	}
	if !enabled {
		return nil
	}
	if point == nil {
		return ErrAwaitingLocation
	}
	if !geo.Admit(*point, s.site, s.maxRadiusKm) {
		return ErrGeoRejected
	}
	return nil
}

// LogArrival transitions NoSession -> ArrivalLogged for the employee's
// current day. Any existing record for the day, completed or not, rejects
// the attempt; a lost insert race surfaces as ErrConflict. Repeats are
// always errors, never silent no-ops, so photo evidence and timestamps
// survive accidental resubmission.
func (s *AttendanceService) LogArrival(ctx context.Context, employeeID, name string, point *geo.Point, photo []byte) (*models.AttendanceRecord, error) {
	if err := s.CheckGeofence(ctx, point); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	date := now.Format(timeutil.DateLayout)

	existing, err := s.records.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateLog
	}

	record := &models.AttendanceRecord{
		EmployeeID:   employeeID,
		EmployeeName: name,
		Date:         date,
		ArrivalTime:  now.Format(timeutil.TimeOfDayLayout),
	}

	if len(photo) > 0 {
		photoID, err := s.photos.Save(photoFilename(employeeID, date, "arrival"), photo)
		if err != nil {
			return nil, err
		}
		record.ArrivalPhotoID = &photoID
	}

	if err := s.records.Insert(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateRecord) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return record, nil
}

// LogLeaving transitions ArrivalLogged -> Completed, computing the elapsed
// hours from the stored arrival time and the current time of day. Completed
// is terminal.
func (s *AttendanceService) LogLeaving(ctx context.Context, employeeID string, point *geo.Point, photo []byte) (*models.AttendanceRecord, error) {
	if err := s.CheckGeofence(ctx, point); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	date := now.Format(timeutil.DateLayout)

	record, err := s.records.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	switch record.State() {
	case models.NoSession:
		return nil, ErrNoArrival
	case models.Completed:
		return nil, ErrAlreadyCompleted
	}

	recordDate, err := time.Parse(timeutil.DateLayout, record.Date)
	if err != nil {
		return nil, fmt.Errorf("stored record has a malformed date %q: %w", record.Date, err)
	}

	leavingTime := now.Format(timeutil.TimeOfDayLayout)
	hours, _, err := timeutil.ElapsedHours(recordDate, record.ArrivalTime, leavingTime)
	if err != nil {
		return nil, err
	}

	var leavingPhotoID *primitive.ObjectID
	if len(photo) > 0 {
		photoID, err := s.photos.Save(photoFilename(employeeID, date, "leaving"), photo)
		if err != nil {
			return nil, err
		}
		leavingPhotoID = &photoID
	}

	if err := s.records.Complete(ctx, record.ID, leavingTime, hours, leavingPhotoID); err != nil {
		if errors.Is(err, repository.ErrNotCompletable) {
			// A concurrent leaving log won the race.
			return nil, ErrAlreadyCompleted
		}
		return nil, err
	}

	record.LeavingTime = leavingTime
	record.HoursPresent = &hours
	record.LeavingPhotoID = leavingPhotoID
	return record, nil
}

// Records is the read-only projection for display and export. An empty
// employeeID returns every record.
func (s *AttendanceService) Records(ctx context.Context, employeeID string) ([]models.AttendanceRecord, error) {
	if employeeID != "" {
		return s.records.FindByEmployee(ctx, employeeID)
	}
	records, _, err := s.records.List(ctx, bson.M{}, 1, 0)
	return records, err
}

// AdminEdit is the deliberate escape hatch: it overwrites times directly,
// bypassing the one-transition rule, but still validates its inputs. A
// leaving time requires an arrival time (enforced by payload validation
// upstream plus the recompute below), and hours_present is recomputed with
// the same wrap-aware arithmetic the state machine uses. Clearing the
// leaving time reverts the session to ArrivalLogged.
func (s *AttendanceService) AdminEdit(ctx context.Context, id primitive.ObjectID, payload *models.AttendanceUpdatePayload) (*models.AttendanceRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	var hours *float64
	if payload.LeavingTime != "" {
		recordDate, err := time.Parse(timeutil.DateLayout, record.Date)
		if err != nil {
			return nil, fmt.Errorf("stored record has a malformed date %q: %w", record.Date, err)
		}
		h, _, err := timeutil.ElapsedHours(recordDate, payload.ArrivalTime, payload.LeavingTime)
		if err != nil {
			return nil, err
		}
		hours = &h
	}

	if err := s.records.AdminUpdate(ctx, id, payload.ArrivalTime, payload.LeavingTime, hours); err != nil {
		return nil, err
	}
	return s.records.FindByID(ctx, id)
}

func photoFilename(employeeID, date, kind string) string {
	return fmt.Sprintf("%s_%s_%s_%s.png", employeeID, date, kind, uuid.New().String())
}
