package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/models"
)

type MongoVolunteerStore struct {
	coll *mongo.Collection
}

func NewMongoVolunteerStore(db *mongo.Database) *MongoVolunteerStore {
	return &MongoVolunteerStore{coll: db.Collection("volunteers")}
}

func (s *MongoVolunteerStore) List(ctx context.Context) ([]models.Volunteer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list volunteers: %w", err)
	}
	defer cursor.Close(ctx)

	volunteers := []models.Volunteer{}
	if err := cursor.All(ctx, &volunteers); err != nil {
		return nil, fmt.Errorf("decode volunteers: %w", err)
	}
	return volunteers, nil
}

func (s *MongoVolunteerStore) ListIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list volunteer ids: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode volunteer ids: %w", err)
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (s *MongoVolunteerStore) Get(ctx context.Context, id primitive.ObjectID) (models.Volunteer, error) {
	var v models.Volunteer
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Volunteer{}, fmt.Errorf("volunteer %s: %w", id.Hex(), ErrNotFound)
	}
	if err != nil {
		return models.Volunteer{}, fmt.Errorf("get volunteer %s: %w", id.Hex(), err)
	}
	return v, nil
}

func (s *MongoVolunteerStore) GetByEmail(ctx context.Context, email string) (models.Volunteer, error) {
	var v models.Volunteer
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Volunteer{}, fmt.Errorf("volunteer email %q: %w", email, ErrNotFound)
	}
	if err != nil {
		return models.Volunteer{}, fmt.Errorf("get volunteer by email: %w", err)
	}
	return v, nil
}

func (s *MongoVolunteerStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Volunteer, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("volunteers by ids: %w", err)
	}
	defer cursor.Close(ctx)

	volunteers := []models.Volunteer{}
	if err := cursor.All(ctx, &volunteers); err != nil {
		return nil, fmt.Errorf("decode volunteers: %w", err)
	}
	return volunteers, nil
}

func (s *MongoVolunteerStore) Insert(ctx context.Context, v models.Volunteer) error {
	_, err := s.coll.InsertOne(ctx, v)
	if IsDuplicateKey(err) {
		return fmt.Errorf("volunteer email %q: %w", v.Email, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("insert volunteer: %w", err)
	}
	return nil
}

func (s *MongoVolunteerStore) Update(ctx context.Context, id primitive.ObjectID, update VolunteerUpdate) (models.Volunteer, error) {
	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Batch != nil {
		set["batch"] = *update.Batch
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}
	if update.DOB != nil {
		set["dob"] = *update.DOB
	}
	if update.ProfilePic != nil {
		set["profile_pic"] = *update.ProfilePic
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var v models.Volunteer
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Volunteer{}, fmt.Errorf("volunteer %s: %w", id.Hex(), ErrNotFound)
	}
	if IsDuplicateKey(err) {
		return models.Volunteer{}, fmt.Errorf("volunteer email: %w", ErrDuplicate)
	}
	if err != nil {
		return models.Volunteer{}, fmt.Errorf("update volunteer %s: %w", id.Hex(), err)
	}
	return v, nil
}

func (s *MongoVolunteerStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete volunteer %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("volunteer %s: %w", id.Hex(), ErrNotFound)
	}
	return nil
}
