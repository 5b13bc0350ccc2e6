package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/models"
)

type MongoActivityStore struct {
	coll *mongo.Collection
}

func NewMongoActivityStore(db *mongo.Database) *MongoActivityStore {
	return &MongoActivityStore{coll: db.Collection("activities")}
}

func (s *MongoActivityStore) List(ctx context.Context) ([]models.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return activities, nil
}

func (s *MongoActivityStore) Get(ctx context.Context, id primitive.ObjectID) (models.Activity, error) {
	var a models.Activity
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Activity{}, fmt.Errorf("activity %s: %w", id.Hex(), ErrNotFound)
	}
	if err != nil {
		return models.Activity{}, fmt.Errorf("get activity %s: %w", id.Hex(), err)
	}
	return a, nil
}

func (s *MongoActivityStore) Insert(ctx context.Context, a models.Activity) error {
	if _, err := s.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (s *MongoActivityStore) Update(ctx context.Context, id primitive.ObjectID, update ActivityUpdate) (models.Activity, error) {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Poster != nil {
		set["poster"] = *update.Poster
	}
	if update.StartDate != nil {
		set["start_date"] = *update.StartDate
	}
	if update.DurationHours != nil {
		set["duration_hours"] = *update.DurationHours
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a models.Activity
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Activity{}, fmt.Errorf("activity %s: %w", id.Hex(), ErrNotFound)
	}
	if err != nil {
		return models.Activity{}, fmt.Errorf("update activity %s: %w", id.Hex(), err)
	}
	return a, nil
}

func (s *MongoActivityStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete activity %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("activity %s: %w", id.Hex(), ErrNotFound)
	}
	return nil
}

// AddInterest relies on a guarded $addToSet: the filter only matches when
// userID is absent from the set, so the membership check and the write are a
// single atomic step on the server. No read-modify-write in here.
func (s *MongoActivityStore) AddInterest(ctx context.Context, id, userID primitive.ObjectID) (models.Activity, error) {
	filter := bson.M{"_id": id, "interested_users": bson.M{"$ne": userID}}
	update := bson.M{"$addToSet": bson.M{"interested_users": userID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a models.Activity
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Activity{}, fmt.Errorf("add interest on activity %s: %w", id.Hex(), ErrNotFound)
	}
	if err != nil {
		return models.Activity{}, fmt.Errorf("add interest on activity %s: %w", id.Hex(), err)
	}
	return a, nil
}

// RemoveInterest is the mirror: the filter only matches when userID is a
// current member, and $pull removes it in the same atomic step.
func (s *MongoActivityStore) RemoveInterest(ctx context.Context, id, userID primitive.ObjectID) (models.Activity, error) {
	filter := bson.M{"_id": id, "interested_users": userID}
	update := bson.M{"$pull": bson.M{"interested_users": userID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a models.Activity
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Activity{}, fmt.Errorf("remove interest on activity %s: %w", id.Hex(), ErrNotFound)
	}
	if err != nil {
		return models.Activity{}, fmt.Errorf("remove interest on activity %s: %w", id.Hex(), err)
	}
	return a, nil
}
