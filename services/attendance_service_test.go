package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Jeevagan-dev/attendance/models"
	"github.com/Jeevagan-dev/attendance/pkg/geo"
	"github.com/Jeevagan-dev/attendance/repository"
)

var testSite = geo.Point{Lat: 12.8324706, Lon: 80.2286148}

// fixedClock pins "now" so arrival and leaving times are deterministic.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fakeAttendanceRepo struct {
	byKey map[string]*models.AttendanceRecord
	byID  map[primitive.ObjectID]*models.AttendanceRecord

	// hideNextFind simulates the check-then-act race: the lookup misses even
	// though a concurrent request already inserted the record.
	hideNextFind bool
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		byKey: map[string]*models.AttendanceRecord{},
		byID:  map[primitive.ObjectID]*models.AttendanceRecord{},
	}
}

func key(employeeID, date string) string { return employeeID + "|" + date }

func (f *fakeAttendanceRepo) Insert(ctx context.Context, record *models.AttendanceRecord) error {
	k := key(record.EmployeeID, record.Date)
	if _, exists := f.byKey[k]; exists {
		return repository.ErrDuplicateRecord
	}
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	clone := *record
	f.byKey[k] = &clone
	f.byID[clone.ID] = &clone
	return nil
}

func (f *fakeAttendanceRepo) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*models.AttendanceRecord, error) {
	if f.hideNextFind {
		f.hideNextFind = false
		return nil, nil
	}
	record, ok := f.byKey[key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	clone := *record
	return &clone, nil
}

func (f *fakeAttendanceRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AttendanceRecord, error) {
	record, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *record
	return &clone, nil
}

func (f *fakeAttendanceRepo) Complete(ctx context.Context, id primitive.ObjectID, leavingTime string, hoursPresent float64, leavingPhotoID *primitive.ObjectID) error {
	record, ok := f.byID[id]
	if !ok || record.LeavingTime != "" {
		return repository.ErrNotCompletable
	}
	record.LeavingTime = leavingTime
	record.HoursPresent = &hoursPresent
	record.LeavingPhotoID = leavingPhotoID
	return nil
}

func (f *fakeAttendanceRepo) AdminUpdate(ctx context.Context, id primitive.ObjectID, arrivalTime, leavingTime string, hoursPresent *float64) error {
	record, ok := f.byID[id]
	if !ok {
		return nil
	}
	record.ArrivalTime = arrivalTime
	record.LeavingTime = leavingTime
	record.HoursPresent = hoursPresent
	return nil
}

func (f *fakeAttendanceRepo) FindByEmployee(ctx context.Context, employeeID string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, record := range f.byKey {
		if record.EmployeeID == employeeID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter bson.M, page, limit int64) ([]models.AttendanceRecord, int64, error) {
	var out []models.AttendanceRecord
	for _, record := range f.byKey {
		out = append(out, *record)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) DailyPresence(ctx context.Context) ([]models.DailyPresence, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) HoursByEmployee(ctx context.Context) ([]models.EmployeeHours, error) {
	return nil, nil
}

type fakeSettingsRepo struct {
	enabled bool
}

func (f *fakeSettingsRepo) GetLocationRestriction(ctx context.Context) (bool, error) {
	return f.enabled, nil
}

func (f *fakeSettingsRepo) SetLocationRestriction(ctx context.Context, enabled bool) error {
	f.enabled = enabled
	return nil
}

type fakePhotoRepo struct {
	saved map[primitive.ObjectID][]byte
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{saved: map[primitive.ObjectID][]byte{}}
}

func (f *fakePhotoRepo) Save(filename string, data []byte) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	f.saved[id] = data
	return id, nil
}

func (f *fakePhotoRepo) Load(id primitive.ObjectID) ([]byte, string, error) {
	return f.saved[id], "photo.png", nil
}

func newTestService(enabled bool, now time.Time) (*AttendanceService, *fakeAttendanceRepo, *fakePhotoRepo, *fixedClock) {
	records := newFakeAttendanceRepo()
	photos := newFakePhotoRepo()
	clock := &fixedClock{now: now}
	svc := NewAttendanceService(records, &fakeSettingsRepo{enabled: enabled}, photos, clock, testSite, 1.0)
	return svc, records, photos, clock
}

func nineAM() time.Time {
	return time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
}

func TestLogArrival(t *testing.T) {
	ctx := context.Background()
	svc, _, photos, _ := newTestService(false, nineAM())

	record, err := svc.LogArrival(ctx, "EMP001", "Jeeva", nil, []byte("selfie"))
	require.NoError(t, err)
	assert.Equal(t, "EMP001", record.EmployeeID)
	assert.Equal(t, "Jeeva", record.EmployeeName)
	assert.Equal(t, "2025-06-02", record.Date)
	assert.Equal(t, "09:00 AM", record.ArrivalTime)
	assert.Empty(t, record.LeavingTime)
	assert.Nil(t, record.HoursPresent)
	require.NotNil(t, record.ArrivalPhotoID)
	assert.Equal(t, []byte("selfie"), photos.saved[*record.ArrivalPhotoID])
	assert.Equal(t, models.ArrivalLogged, record.State())
}

func TestLogArrivalDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	svc, records, _, clock := newTestService(false, nineAM())

	first, err := svc.LogArrival(ctx, "EMP001", "Jeeva", nil, []byte("first"))
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Hour)
	_, err = svc.LogArrival(ctx, "EMP001", "Jeeva", nil, []byte("second"))
	assert.ErrorIs(t, err, ErrDuplicateLog)

	// the existing record is untouched
	stored, err := records.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ArrivalTime, stored.ArrivalTime)
	assert.Equal(t, first.ArrivalPhotoID, stored.ArrivalPhotoID)
}

func TestLogArrivalAfterCompletedStillRejected(t *testing.T) {
	ctx := context.Background()
	svc, _, _, clock := newTestService(false, nineAM())

	_, err := svc.LogArrival(ctx, "EMP001", "Jeeva", nil, nil)
	require.NoError(t, err)

	clock.now = clock.now.Add(8 * time.Hour)
	_, err = svc.LogLeaving(ctx, "EMP001", nil, nil)
	require.NoError(t, err)

	_, err = svc.LogArrival(ctx, "EMP001", "Jeeva", nil, nil)
	assert.ErrorIs(t, err, ErrDuplicateLog)
}

func TestLogArrivalConflictBackstop(t *testing.T) {
	ctx := context.Background()
	svc, records, _, _ := newTestService(false, nineAM())

	_, err := svc.LogArrival(ctx, "EMP001", "Jeeva", nil, nil)
	require.NoError(t, err)

	// the lookup misses but the unique index still holds
	records.hideNextFind = true
	_, err = svc.LogArrival(ctx, "EMP001", "Jeeva", nil, nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogLeaving(t *testing.T) {
	ctx := context.Background()
	svc, _, photos, clock := newTestService(false, nineAM())

	_, err := svc.LogArrival(ctx, "EMP001", "Jeeva", nil, nil)
	require.NoError(t, err)

	clock.now = time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC)
	record, err := svc.LogLeaving(ctx, "EMP001", nil, []byte("leaving selfie"))
	require.NoError(t, err)
	assert.Equal(t, "05:30 PM", record.LeavingTime)
	require.NotNil(t, record.HoursPresent)
	assert.Equal(t, 8.5, *record.HoursPresent)
	require.NotNil(t, record.LeavingPhotoID)
	assert.Equal(t, []byte("leaving selfie"), photos.saved[*record.LeavingPhotoID])
	assert.Equal(t, models.Completed, record.State())
}

func TestLogLeavingWithoutArrival(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(false, nineAM())

	_, err := svc.LogLeaving(ctx, "EMP001", nil, nil)
	assert.ErrorIs(t, err, ErrNoArrival)
}

func TestLogLeavingTwiceRejected(t *testing.T) {
	ctx := context.Background()
	svc, _, _, clock := newTestService(false, nineAM())

	_, err := svc.LogArrival(ctx, "EMP001", "Jeeva", nil, nil)
	require.NoError(t, err)

	clock.now = clock.now.Add(8 * time.Hour)
	_, err = svc.LogLeaving(ctx, "EMP001", nil, nil)
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Minute)
	_, err = svc.LogLeaving(ctx, "EMP001", nil, nil)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestLogLeavingOvernightWrap(t *testing.T) {
	ctx := context.Background()
	// 12:10 AM on the record's own date: the leaving time of day precedes
	// the stored arrival, so the wrap correction applies.
	svc, records, _, _ := newTestService(false, time.Date(2025, 6, 2, 0, 10, 0, 0, time.UTC))

	require.NoError(t, records.Insert(ctx, &models.AttendanceRecord{
		EmployeeID:   "EMP001",
		EmployeeName: "Jeeva",
		Date:         "2025-06-02",
		ArrivalTime:  "11:50 PM",
	}))

	record, err := svc.LogLeaving(ctx, "EMP001", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, record.HoursPresent)
	assert.Equal(t, 0.33, *record.HoursPresent)
}

func TestGeofenceGate(t *testing.T) {
	ctx := context.Background()
	inside := testSite
	outside := geo.Point{Lat: 13.0827, Lon: 80.2707}

	t.Run("restriction disabled admits anything", func(t *testing.T) {
		svc, _, _, _ := newTestService(false, nineAM())
		assert.NoError(t, svc.CheckGeofence(ctx, nil))
		assert.NoError(t, svc.CheckGeofence(ctx, &outside))

		_, err := svc.LogArrival(ctx, "EMP001", "Jeeva", &outside, nil)
		assert.NoError(t, err)
	})

	t.Run("restriction enabled requires a coordinate", func(t *testing.T) {
		svc, _, _, _ := newTestService(true, nineAM())
		assert.ErrorIs(t, svc.CheckGeofence(ctx, nil), ErrAwaitingLocation)

		_, err := svc.LogArrival(ctx, "EMP001", "Jeeva", nil, nil)
		assert.ErrorIs(t, err, ErrAwaitingLocation)
	})

	t.Run("restriction enabled rejects out of radius", func(t *testing.T) {
		svc, _, _, _ := newTestService(true, nineAM())
		assert.ErrorIs(t, svc.CheckGeofence(ctx, &outside), ErrGeoRejected)

		_, err := svc.LogArrival(ctx, "EMP001", "Jeeva", &outside, nil)
		assert.ErrorIs(t, err, ErrGeoRejected)
	})

	t.Run("restriction enabled admits within radius", func(t *testing.T) {
		svc, _, _, _ := newTestService(true, nineAM())
		assert.NoError(t, svc.CheckGeofence(ctx, &inside))

		_, err := svc.LogArrival(ctx, "EMP001", "Jeeva", &inside, nil)
		assert.NoError(t, err)
	})

	t.Run("leaving is gated too", func(t *testing.T) {
		svc, _, _, _ := newTestService(true, nineAM())
		_, err := svc.LogArrival(ctx, "EMP001", "Jeeva", &inside, nil)
		require.NoError(t, err)

		_, err = svc.LogLeaving(ctx, "EMP001", nil, nil)
		assert.ErrorIs(t, err, ErrAwaitingLocation)
	})
}

func TestRecordsProjection(t *testing.T) {
	ctx := context.Background()
	svc, records, _, _ := newTestService(false, nineAM())

	require.NoError(t, records.Insert(ctx, &models.AttendanceRecord{EmployeeID: "EMP001", Date: "2025-06-01", ArrivalTime: "09:00 AM"}))
	require.NoError(t, records.Insert(ctx, &models.AttendanceRecord{EmployeeID: "EMP002", Date: "2025-06-01", ArrivalTime: "09:10 AM"}))

	all, err := svc.Records(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.Records(ctx, "EMP001")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "EMP001", mine[0].EmployeeID)
}

func TestAdminEdit(t *testing.T) {
	ctx := context.Background()
	svc, records, _, _ := newTestService(false, nineAM())

	record := &models.AttendanceRecord{
		EmployeeID:   "EMP001",
		EmployeeName: "Jeeva",
		Date:         "2025-06-02",
		ArrivalTime:  "09:00 AM",
	}
	require.NoError(t, records.Insert(ctx, record))

	t.Run("recomputes hours wrap-aware", func(t *testing.T) {
		updated, err := svc.AdminEdit(ctx, record.ID, &models.AttendanceUpdatePayload{
			ArrivalTime: "11:50 PM",
			LeavingTime: "12:10 AM",
		})
		require.NoError(t, err)
		require.NotNil(t, updated.HoursPresent)
		assert.Equal(t, 0.33, *updated.HoursPresent)
	})

	t.Run("clearing leaving time clears hours", func(t *testing.T) {
		updated, err := svc.AdminEdit(ctx, record.ID, &models.AttendanceUpdatePayload{
			ArrivalTime: "09:15 AM",
		})
		require.NoError(t, err)
		assert.Equal(t, "09:15 AM", updated.ArrivalTime)
		assert.Empty(t, updated.LeavingTime)
		assert.Nil(t, updated.HoursPresent)
	})

	t.Run("unknown record", func(t *testing.T) {
		_, err := svc.AdminEdit(ctx, primitive.NewObjectID(), &models.AttendanceUpdatePayload{ArrivalTime: "09:00 AM"})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("malformed time rejected", func(t *testing.T) {
		_, err := svc.AdminEdit(ctx, record.ID, &models.AttendanceUpdatePayload{
			ArrivalTime: "09:00 AM",
			LeavingTime: "25:99",
		})
		assert.Error(t, err)
	})
}
