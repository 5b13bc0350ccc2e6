package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/models"
)

// VolunteerUpdate holds the fields a partial update may set. Nil fields are
// left untouched.
type VolunteerUpdate struct {
	Name       *string
	Batch      *string
	Email      *string
	Password   *string // already hashed by the caller
	DOB        *time.Time
	ProfilePic *string
	Status     *models.VolunteerStatus
}

// ActivityUpdate holds the fields a partial update may set. Nil fields are
// left untouched. Interest membership is not updatable here; it only moves
// through AddInterest/RemoveInterest.
type ActivityUpdate struct {
	Title         *string
	Poster        *string
	StartDate     *time.Time
	DurationHours *float64
	Description   *string
}

type VolunteerStore interface {
	// List returns all volunteers, newest-created first.
	List(ctx context.Context) ([]models.Volunteer, error)
	// ListIDs returns the ids of all volunteers; the provisioning snapshot.
	ListIDs(ctx context.Context) ([]primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (models.Volunteer, error)
	GetByEmail(ctx context.Context, email string) (models.Volunteer, error)
	ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Volunteer, error)
	Insert(ctx context.Context, v models.Volunteer) error
	Update(ctx context.Context, id primitive.ObjectID, update VolunteerUpdate) (models.Volunteer, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ActivityStore interface {
	// List returns all activities ascending by start date.
	List(ctx context.Context) ([]models.Activity, error)
	Get(ctx context.Context, id primitive.ObjectID) (models.Activity, error)
	Insert(ctx context.Context, a models.Activity) error
	Update(ctx context.Context, id primitive.ObjectID, update ActivityUpdate) (models.Activity, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AddInterest atomically adds userID to the interested set, but only when
	// it is not already a member; otherwise ErrNotFound. Returns the
	// post-update activity.
	AddInterest(ctx context.Context, id, userID primitive.ObjectID) (models.Activity, error)
	// RemoveInterest is the mirror of AddInterest: it only applies when
	// userID is currently a member.
	RemoveInterest(ctx context.Context, id, userID primitive.ObjectID) (models.Activity, error)
}

type AttendanceStore interface {
	// BulkInsert creates one absent row per volunteer id for the activity.
	// The unique pair index turns a re-run into ErrDuplicate.
	BulkInsert(ctx context.Context, activityID primitive.ObjectID, volunteerIDs []primitive.ObjectID) error
	// SetStatus overwrites the status of the existing pair row; ErrNotFound
	// when the pair was never provisioned. It never inserts.
	SetStatus(ctx context.Context, volunteerID, activityID primitive.ObjectID, status models.AttendanceStatus) (models.Attendance, error)
	ByActivity(ctx context.Context, activityID primitive.ObjectID) ([]models.ActivityAttendance, error)
	ByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) ([]models.VolunteerAttendance, error)
	DeleteByActivity(ctx context.Context, activityID primitive.ObjectID) error
	DeleteByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) error
}
