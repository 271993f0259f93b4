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

// ErrDuplicateRecord is returned when an insert hits the unique
// (employee_id, date) index. It is the storage-layer backstop behind the
// check-then-act sequence in the service: two concurrent arrival logs race,
// but only one insert wins.
var ErrDuplicateRecord = errors.New("attendance record already exists for this employee and date")

// ErrNotCompletable is returned when a completion update matches nothing:
// the record is gone or its leaving_time is already set.
var ErrNotCompletable = errors.New("attendance record is missing or already completed")

type AttendanceRepository interface {
	Insert(ctx context.Context, record *models.AttendanceRecord) error
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*models.AttendanceRecord, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AttendanceRecord, error)
	Complete(ctx context.Context, id primitive.ObjectID, leavingTime string, hoursPresent float64, leavingPhotoID *primitive.ObjectID) error
	AdminUpdate(ctx context.Context, id primitive.ObjectID, arrivalTime, leavingTime string, hoursPresent *float64) error
	FindByEmployee(ctx context.Context, employeeID string) ([]models.AttendanceRecord, error)
	List(ctx context.Context, filter bson.M, page, limit int64) ([]models.AttendanceRecord, int64, error)
	DailyPresence(ctx context.Context) ([]models.DailyPresence, error)
	HoursByEmployee(ctx context.Context) ([]models.EmployeeHours, error)
}

type attendanceRepository struct {
	collection *mongo.Collection
}

func NewAttendanceRepository() AttendanceRepository {
	return &attendanceRepository{
		collection: config.GetCollection(config.AttendanceCollection),
	}
}

func (r *attendanceRepository) Insert(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateRecord
		}
		return fmt.Errorf("failed to insert attendance record: %w", err)
	}
	return nil
}

func (r *attendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	filter := bson.M{"employee_id": employeeID, "date": date}

	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance by employee and date: %w", err)
	}
	return &record, nil
}

func (r *attendanceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance by id: %w", err)
	}
	return &record, nil
}

// Complete sets the leaving fields in a single update. Only a record whose
// leaving_time is still unset matches, so a repeated completion loses the
// race instead of overwriting the first one.
func (r *attendanceRepository) Complete(ctx context.Context, id primitive.ObjectID, leavingTime string, hoursPresent float64, leavingPhotoID *primitive.ObjectID) error {
	filter := bson.M{"_id": id, "leaving_time": bson.M{"$exists": false}}
	set := bson.M{
		"leaving_time":  leavingTime,
		"hours_present": hoursPresent,
		"updated_at":    time.Now(),
	}
	if leavingPhotoID != nil {
		set["leaving_photo_id"] = leavingPhotoID
	}

	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to complete attendance record: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotCompletable
	}
	return nil
}

func (r *attendanceRepository) AdminUpdate(ctx context.Context, id primitive.ObjectID, arrivalTime, leavingTime string, hoursPresent *float64) error {
	set := bson.M{
		"arrival_time": arrivalTime,
		"updated_at":   time.Now(),
	}
	unset := bson.M{}
	if leavingTime != "" {
		set["leaving_time"] = leavingTime
		set["hours_present"] = hoursPresent
	} else {
		unset["leaving_time"] = ""
		unset["hours_present"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	_, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	return nil
}

func (r *attendanceRepository) FindByEmployee(ctx context.Context, employeeID string) ([]models.AttendanceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance history: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AttendanceRecord
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode attendance history: %w", err)
	}

	if len(results) == 0 {
		return []models.AttendanceRecord{}, nil
	}
	return results, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter bson.M, page, limit int64) ([]models.AttendanceRecord, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetSkip((page - 1) * limit)
		findOptions.SetLimit(limit)
	}
	findOptions.SetSort(bson.D{{Key: "date", Value: -1}, {Key: "arrival_time", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AttendanceRecord
	if err = cursor.All(ctx, &results); err != nil {
		return nil, 0, fmt.Errorf("failed to decode attendance records: %w", err)
	}

	if len(results) == 0 {
		return []models.AttendanceRecord{}, total, nil
	}
	return results, total, nil
}

// DailyPresence counts distinct employees per calendar date.
func (r *attendanceRepository) DailyPresence(ctx context.Context) ([]models.DailyPresence, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$date"},
			{Key: "employees", Value: bson.D{{Key: "$addToSet", Value: "$employee_id"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "employees_present", Value: bson.D{{Key: "$size", Value: "$employees"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily presence: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.DailyPresence
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode daily presence: %w", err)
	}

	if len(results) == 0 {
		return []models.DailyPresence{}, nil
	}
	return results, nil
}

// HoursByEmployee sums hours_present per employee over completed sessions.
func (r *attendanceRepository) HoursByEmployee(ctx context.Context) ([]models.EmployeeHours, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "hours_present", Value: bson.D{{Key: "$ne", Value: nil}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$employee_id"},
			{Key: "total_hours", Value: bson.D{{Key: "$sum", Value: "$hours_present"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate hours by employee: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.EmployeeHours
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode hours by employee: %w", err)
	}

	if len(results) == 0 {
		return []models.EmployeeHours{}, nil
	}
	return results, nil
}
