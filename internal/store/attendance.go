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

type MongoAttendanceStore struct {
	coll *mongo.Collection
}

func NewMongoAttendanceStore(db *mongo.Database) *MongoAttendanceStore {
	return &MongoAttendanceStore{coll: db.Collection("attendance")}
}

func (s *MongoAttendanceStore) BulkInsert(ctx context.Context, activityID primitive.ObjectID, volunteerIDs []primitive.ObjectID) error {
	if len(volunteerIDs) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(volunteerIDs))
	for _, vid := range volunteerIDs {
		docs = append(docs, models.Attendance{
			ID:          primitive.NewObjectID(),
			VolunteerID: vid,
			ActivityID:  activityID,
			Status:      models.AttendanceAbsent,
		})
	}
	// Ordered insert: the first failure aborts the batch, so a partial write
	// is reported instead of silently skipped.
	_, err := s.coll.InsertMany(ctx, docs)
	if IsDuplicateKey(err) {
		return fmt.Errorf("attendance rows for activity %s: %w", activityID.Hex(), ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("bulk insert attendance for activity %s: %w", activityID.Hex(), err)
	}
	return nil
}

func (s *MongoAttendanceStore) SetStatus(ctx context.Context, volunteerID, activityID primitive.ObjectID, status models.AttendanceStatus) (models.Attendance, error) {
	filter := bson.M{"volunteer_id": volunteerID, "activity_id": activityID}
	update := bson.M{"$set": bson.M{"status": status, "marked_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec models.Attendance
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Attendance{}, fmt.Errorf("attendance for volunteer %s at activity %s: %w",
			volunteerID.Hex(), activityID.Hex(), ErrNotFound)
	}
	if err != nil {
		return models.Attendance{}, fmt.Errorf("set attendance status: %w", err)
	}
	return rec, nil
}

func (s *MongoAttendanceStore) ByActivity(ctx context.Context, activityID primitive.ObjectID) ([]models.ActivityAttendance, error) {
	pipeline := mongo.Pipeline{
		{
			{Key: "$match", Value: bson.D{{Key: "activity_id", Value: activityID}}},
		},
		{
			{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: "volunteers"},
				{Key: "localField", Value: "volunteer_id"},
				{Key: "foreignField", Value: "_id"},
				{Key: "as", Value: "volunteer"},
			}},
		},
		{
			{Key: "$unwind", Value: "$volunteer"},
		},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("attendance by activity %s: %w", activityID.Hex(), err)
	}
	defer cursor.Close(ctx)

	rows := []models.ActivityAttendance{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode attendance rows: %w", err)
	}
	return rows, nil
}

func (s *MongoAttendanceStore) ByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) ([]models.VolunteerAttendance, error) {
	pipeline := mongo.Pipeline{
		{
			{Key: "$match", Value: bson.D{{Key: "volunteer_id", Value: volunteerID}}},
		},
		{
			{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: "activities"},
				{Key: "localField", Value: "activity_id"},
				{Key: "foreignField", Value: "_id"},
				{Key: "as", Value: "activity"},
			}},
		},
		{
			{Key: "$unwind", Value: "$activity"},
		},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("attendance by volunteer %s: %w", volunteerID.Hex(), err)
	}
	defer cursor.Close(ctx)

	rows := []models.VolunteerAttendance{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode attendance rows: %w", err)
	}
	return rows, nil
}

func (s *MongoAttendanceStore) DeleteByActivity(ctx context.Context, activityID primitive.ObjectID) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"activity_id": activityID}); err != nil {
		return fmt.Errorf("delete attendance for activity %s: %w", activityID.Hex(), err)
	}
	return nil
}

func (s *MongoAttendanceStore) DeleteByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"volunteer_id": volunteerID}); err != nil {
		return fmt.Errorf("delete attendance for volunteer %s: %w", volunteerID.Hex(), err)
	}
	return nil
}
