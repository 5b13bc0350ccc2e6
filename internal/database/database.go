package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongoDB opens a client and verifies the server is reachable.
func ConnectMongoDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the domain invariants rely on:
// volunteer emails are unique, and at most one attendance row exists per
// (volunteer, activity) pair. The unique pair index is the last line of
// defense against double provisioning, regardless of application pre-checks.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("volunteers").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("volunteers email index: %w", err)
	}

	_, err = db.Collection("attendance").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "volunteer_id", Value: 1},
				{Key: "activity_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "activity_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("attendance indexes: %w", err)
	}

	_, err = db.Collection("activities").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "start_date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("activities start_date index: %w", err)
	}
	return nil
}
