package lockRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoLockRepo implements Repository using MongoDB transactions for the
// check-and-insert paths.
type MongoLockRepo struct {
	lockColl        *mongo.Collection
	appointmentColl *mongo.Collection
}

// NewMongoLockRepo constructs a new instance of MongoLockRepo.
func NewMongoLockRepo() Repository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoLockRepo{
		lockColl:        db.Collection("slot_locks"),
		appointmentColl: db.Collection("appointments"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		fmt.Printf("failed to create lock indexes: %v\n", err)
	}
	return repo
}

// overlapFilter matches documents on the same staff/date whose range
// intersects [start, end).
func overlapFilter(staffID, date string, start, end int) bson.M {
	return bson.M{
		"staffId": staffID,
		"date":    date,
		"start":   bson.M{"$lt": end},
		"end":     bson.M{"$gt": start},
	}
}

// Acquire checks both the lock table and the appointment table inside one
// transaction and inserts the lock only when neither shows a conflict.
// Expired locks are filtered out rather than swept here.
func (repo *MongoLockRepo) Acquire(ctx context.Context, lock *models.SlotLock) error {
	client := repo.lockColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	txnFn := func(sc mongo.SessionContext) error {
		lockFilter := overlapFilter(lock.StaffID, lock.Date, lock.Start, lock.End)
		lockFilter["expiresAt"] = bson.M{"$gt": now}
		count, err := repo.lockColl.CountDocuments(sc, lockFilter)
		if err != nil {
			return fmt.Errorf("lock conflict check failed: %w", err)
		}
		if count > 0 {
			return ErrConflict
		}

		apptFilter := overlapFilter(lock.StaffID, lock.Date, lock.Start, lock.End)
		apptFilter["status"] = bson.M{"$in": bson.A{models.AppointmentPending, models.AppointmentConfirmed}}
		count, err = repo.appointmentColl.CountDocuments(sc, apptFilter)
		if err != nil {
			return fmt.Errorf("appointment conflict check failed: %w", err)
		}
		if count > 0 {
			return ErrConflict
		}

		if _, err := repo.lockColl.InsertOne(sc, lock); err != nil {
			return fmt.Errorf("insert lock failed: %w", err)
		}
		return nil
	}

	return repo.runTransaction(ctx, sess, txnFn)
}

// GetByID retrieves a lock by ID.
func (repo *MongoLockRepo) GetByID(ctx context.Context, lockID string) (*models.SlotLock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var lock models.SlotLock
	if err := repo.lockColl.FindOne(ctx, bson.M{"id": lockID}).Decode(&lock); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrLockNotFound
		}
		return nil, fmt.Errorf("error fetching lock with id %s: %w", lockID, err)
	}
	return &lock, nil
}

// Release deletes a holder-owned lock immediately.
func (repo *MongoLockRepo) Release(ctx context.Context, lockID, holderID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.lockColl.DeleteOne(ctx, bson.M{"id": lockID, "holderId": holderID})
	if err != nil {
		return fmt.Errorf("error releasing lock %s: %w", lockID, err)
	}
	if res.DeletedCount == 0 {
		return ErrLockNotFound
	}
	return nil
}

// ConsumeWithAppointment deletes the lock and inserts the appointment in one
// transaction. A missing, expired, or foreign lock aborts with
// ErrLockNotFound and leaves no appointment behind.
func (repo *MongoLockRepo) ConsumeWithAppointment(ctx context.Context, lockID, holderID string, appointment *models.Appointment) error {
	client := repo.lockColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"id":        lockID,
			"holderId":  holderID,
			"expiresAt": bson.M{"$gt": now},
		}
		res, err := repo.lockColl.DeleteOne(sc, filter)
		if err != nil {
			return fmt.Errorf("delete lock failed: %w", err)
		}
		if res.DeletedCount == 0 {
			return ErrLockNotFound
		}
		if _, err := repo.appointmentColl.InsertOne(sc, appointment); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	return repo.runTransaction(ctx, sess, txnFn)
}

// DeleteExpired sweeps locks whose expiry has passed.
func (repo *MongoLockRepo) DeleteExpired(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.lockColl.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lte": time.Now()}})
	if err != nil {
		return 0, fmt.Errorf("error sweeping expired locks: %w", err)
	}
	return res.DeletedCount, nil
}

func (repo *MongoLockRepo) runTransaction(ctx context.Context, sess mongo.Session, txnFn func(mongo.SessionContext) error) error {
	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}
