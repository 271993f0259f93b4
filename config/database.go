package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var MongoConn *mongo.Client

var DBName string = "attendance_db"
var AttendanceCollection string = "attendance"
var EmployeeCollection string = "employees"
var SettingsCollection string = "settings"
var PhotoBucket string = "photos"

func MongoConnect() {

	mongoURI := os.Getenv("MONGOSTRING")

	if mongoURI == "" {
		log.Fatal("MONGOSTRING is not set in env")
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to create MongoDB client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB!")
	MongoConn = client
}

// InitDatabase creates the indexes the repositories rely on. The compound
// unique index on (employee_id, date) is the backstop against concurrent
// duplicate arrival logs: the insert itself fails, not just the
// check-then-act lookup in front of it.
func InitDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	attendanceIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := GetCollection(AttendanceCollection).Indexes().CreateMany(ctx, attendanceIndexes); err != nil {
		log.Fatalf("Failed to create attendance indexes: %v", err)
	}

	employeeIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "employee_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := GetCollection(EmployeeCollection).Indexes().CreateOne(ctx, employeeIndex); err != nil {
		log.Fatalf("Failed to create employee index: %v", err)
	}

	settingsIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "setting", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := GetCollection(SettingsCollection).Indexes().CreateOne(ctx, settingsIndex); err != nil {
		log.Fatalf("Failed to create settings index: %v", err)
	}

	log.Println("Database indexes ready")
}

func GetCollection(collectionName string) *mongo.Collection {
	if MongoConn == nil {
		log.Fatal("MongoDB client is not initialized. Call MongoConnect() first")
	}
	return MongoConn.Database(DBName).Collection(collectionName)
}

func GetGridFSBucket() (*gridfs.Bucket, error) {
	if MongoConn == nil {
		log.Fatal("MongoDB client is not initialized. Call MongoConnect() first")
	}
	return gridfs.NewBucket(
		MongoConn.Database(DBName),
		options.GridFSBucket().SetName(PhotoBucket),
	)
}

func DisconnectDB() {
	if MongoConn != nil {
		if err := MongoConn.Disconnect(context.Background()); err != nil {
			log.Fatalf("Error disconnecting from MongoDB: %v", err)
		}
		log.Println("Disconnect from MongoDB")
	}
}
