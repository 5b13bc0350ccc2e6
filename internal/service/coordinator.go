package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/store"
)

// Coordinator keeps the volunteer, activity and attendance collections
// consistent with each other: it provisions attendance rows when an activity
// is created and purges dependent rows before either parent is deleted.
type Coordinator struct {
	volunteers store.VolunteerStore
	attendance store.AttendanceStore
	logger     *zap.Logger
}

func NewCoordinator(volunteers store.VolunteerStore, attendance store.AttendanceStore, logger *zap.Logger) *Coordinator {
	return &Coordinator{volunteers: volunteers, attendance: attendance, logger: logger}
}

// ProvisionAttendance inserts one absent row per volunteer registered at
// this moment. The id list is materialized once, so volunteers registering
// mid-provision are simply not in the snapshot and get no row. Invoked
// exactly once per activity, right after its creation; a duplicate-key
// failure here means it ran twice and the unique pair index refused the
// second run.
func (c *Coordinator) ProvisionAttendance(ctx context.Context, activityID primitive.ObjectID) error {
	ids, err := c.volunteers.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("provision attendance for activity %s: %w", activityID.Hex(), err)
	}
	if err := c.attendance.BulkInsert(ctx, activityID, ids); err != nil {
		return fmt.Errorf("provision attendance for activity %s: %w", activityID.Hex(), err)
	}
	c.logger.Info("provisioned attendance",
		zap.String("activity_id", activityID.Hex()),
		zap.Int("volunteers", len(ids)))
	return nil
}

// CascadeDeleteForActivity removes every attendance row referencing the
// activity. Callers must not report the activity delete as successful until
// this has returned nil.
func (c *Coordinator) CascadeDeleteForActivity(ctx context.Context, activityID primitive.ObjectID) error {
	if err := c.attendance.DeleteByActivity(ctx, activityID); err != nil {
		return fmt.Errorf("cascade delete for activity %s: %w", activityID.Hex(), err)
	}
	c.logger.Info("cascaded attendance delete", zap.String("activity_id", activityID.Hex()))
	return nil
}

// CascadeDeleteForVolunteer removes every attendance row referencing the
// volunteer, same contract as CascadeDeleteForActivity.
func (c *Coordinator) CascadeDeleteForVolunteer(ctx context.Context, volunteerID primitive.ObjectID) error {
	if err := c.attendance.DeleteByVolunteer(ctx, volunteerID); err != nil {
		return fmt.Errorf("cascade delete for volunteer %s: %w", volunteerID.Hex(), err)
	}
	c.logger.Info("cascaded attendance delete", zap.String("volunteer_id", volunteerID.Hex()))
	return nil
}
