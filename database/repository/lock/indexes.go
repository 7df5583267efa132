package lockRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the lookup and sweep indexes for slot locks.
func (repo *MongoLockRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "staffId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "start", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "expiresAt", Value: 1}},
		},
	}
	if _, err := repo.lockColl.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create lock indexes: %w", err)
	}
	return nil
}
