package serviceRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoServiceRepo implements Repository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a new instance of MongoServiceRepo.
func NewMongoServiceRepo() Repository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoServiceRepo{coll: db.Collection("services")}
}

// GetByID retrieves a service by ID.
func (repo *MongoServiceRepo) GetByID(ctx context.Context, serviceID string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	if err := repo.coll.FindOne(ctx, bson.M{"id": serviceID}).Decode(&service); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching service with id %s: %w", serviceID, err)
	}
	return &service, nil
}

// GetByIDs retrieves all services for the given id set.
func (repo *MongoServiceRepo) GetByIDs(ctx context.Context, serviceIDs []string) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"id": bson.M{"$in": serviceIDs}})
	if err != nil {
		return nil, fmt.Errorf("error fetching services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}

// ListByVendor retrieves every service offered by a vendor.
func (repo *MongoServiceRepo) ListByVendor(ctx context.Context, vendorID string) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"vendorId": vendorID})
	if err != nil {
		return nil, fmt.Errorf("error listing services for vendor %s: %w", vendorID, err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}
