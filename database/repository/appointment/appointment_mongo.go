package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements Repository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() Repository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoAppointmentRepo{coll: db.Collection("appointments")}
}

// GetByID retrieves an appointment by ID.
func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointment models.Appointment
	if err := repo.coll.FindOne(ctx, bson.M{"id": appointmentID}).Decode(&appointment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment with id %s: %w", appointmentID, err)
	}
	return &appointment, nil
}

// Create inserts a new appointment document.
func (repo *MongoAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, appointment); err != nil {
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

// ListForStaffDate returns the staff member's non-cancelled appointments for
// a date, ordered by start minute.
func (repo *MongoAppointmentRepo) ListForStaffDate(ctx context.Context, staffID, date string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"staffId": staffID,
		"date":    date,
		"status":  bson.M{"$nin": bson.A{models.AppointmentCancelled, models.AppointmentNoShow}},
	}
	cursor, err := repo.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing appointments for staff %s on %s: %w", staffID, date, err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appointments, nil
}

// UpdateStatus transitions an appointment's status. Appointments are never
// deleted.
func (repo *MongoAppointmentRepo) UpdateStatus(ctx context.Context, appointmentID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": appointmentID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("error updating appointment %s: %w", appointmentID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
