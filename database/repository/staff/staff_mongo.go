package staffRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStaffRepo implements Repository using MongoDB.
type MongoStaffRepo struct {
	coll *mongo.Collection
}

// NewMongoStaffRepo constructs a new instance of MongoStaffRepo.
func NewMongoStaffRepo() Repository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoStaffRepo{coll: db.Collection("staff")}
}

// GetByID retrieves a staff member by ID.
func (repo *MongoStaffRepo) GetByID(ctx context.Context, staffID string) (*models.StaffMember, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var staff models.StaffMember
	if err := repo.coll.FindOne(ctx, bson.M{"id": staffID}).Decode(&staff); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching staff member with id %s: %w", staffID, err)
	}
	return &staff, nil
}

// ListByVendor retrieves every staff member of a vendor.
func (repo *MongoStaffRepo) ListByVendor(ctx context.Context, vendorID string) ([]models.StaffMember, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"vendorId": vendorID})
	if err != nil {
		return nil, fmt.Errorf("error listing staff for vendor %s: %w", vendorID, err)
	}
	defer cursor.Close(ctx)

	var staff []models.StaffMember
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("error decoding staff members: %w", err)
	}
	return staff, nil
}

// BulkApplyWeek applies the weekday patches inside one Mongo transaction so
// a vendor's staff never observe a half-applied cascade.
func (repo *MongoStaffRepo) BulkApplyWeek(ctx context.Context, vendorID string, patches []WeekdayPatch) error {
	if len(patches) == 0 {
		return nil
	}

	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		for _, patch := range patches {
			set := bson.M{
				fmt.Sprintf("week.%d.available", patch.Weekday): patch.Available,
			}
			if !patch.KeepSlots {
				set[fmt.Sprintf("week.%d.slots", patch.Weekday)] = patch.Slots
			}
			if _, err := repo.coll.UpdateMany(sc, bson.M{"vendorId": vendorID}, bson.M{"$set": set}); err != nil {
				return fmt.Errorf("weekday %d update failed: %w", patch.Weekday, err)
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("staff availability transaction failed: %w", err)
	}
	return nil
}
