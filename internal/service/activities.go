package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/auth"
	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/models"
	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/store"
)

type CreateActivityInput struct {
	Title         string    `json:"title" validate:"required"`
	Poster        string    `json:"poster" validate:"required"`
	StartDate     time.Time `json:"start_date" validate:"required"`
	DurationHours float64   `json:"duration_hours" validate:"required,gt=0"`
	Description   string    `json:"description"`
}

type UpdateActivityInput struct {
	Title         *string    `json:"title"`
	Poster        *string    `json:"poster"`
	StartDate     *time.Time `json:"start_date"`
	DurationHours *float64   `json:"duration_hours" validate:"omitempty,gt=0"`
	Description   *string    `json:"description"`
}

// ActivityFeed partitions the catalog by the derived completed rule. Both
// slices are ascending by start date.
type ActivityFeed struct {
	Upcoming  []models.Activity `json:"upcoming"`
	Completed []models.Activity `json:"completed"`
}

type InterestResult struct {
	InterestedCount int  `json:"interested_count"`
	IsInterested    bool `json:"is_interested"`
}

type ActivityService struct {
	activities store.ActivityStore
	volunteers store.VolunteerStore
	coord      *Coordinator
	logger     *zap.Logger
	validate   *validator.Validate
	now        func() time.Time
}

func NewActivityService(activities store.ActivityStore, volunteers store.VolunteerStore, coord *Coordinator, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activities: activities,
		volunteers: volunteers,
		coord:      coord,
		logger:     logger,
		validate:   validator.New(),
		now:        time.Now,
	}
}

// Create inserts the activity and provisions one absent attendance row per
// current volunteer before returning, so the caller always observes a fully
// provisioned activity. A provisioning failure is surfaced, never swallowed:
// the ledger invariant is broken at that point and the caller must know.
func (s *ActivityService) Create(ctx context.Context, input CreateActivityInput, ident auth.Identity) (models.Activity, error) {
	if !ident.CanManage() {
		return models.Activity{}, fmt.Errorf("create activity: %w", ErrForbidden)
	}
	if err := s.validate.Struct(input); err != nil {
		return models.Activity{}, fmt.Errorf("create activity: %w: %v", ErrInvalidInput, err)
	}
	creator, err := parseID(ident.UserID)
	if err != nil {
		return models.Activity{}, fmt.Errorf("create activity: caller: %w", err)
	}

	a := models.Activity{
		ID:              primitive.NewObjectID(),
		Title:           input.Title,
		Poster:          input.Poster,
		StartDate:       input.StartDate,
		DurationHours:   input.DurationHours,
		Description:     input.Description,
		CreatedBy:       creator,
		InterestedUsers: []primitive.ObjectID{},
		CreatedAt:       s.now(),
	}
	if err := s.activities.Insert(ctx, a); err != nil {
		return models.Activity{}, fmt.Errorf("create activity: %w", err)
	}
	if err := s.coord.ProvisionAttendance(ctx, a.ID); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

// List partitions all activities into upcoming and completed.
func (s *ActivityService) List(ctx context.Context) (ActivityFeed, error) {
	all, err := s.activities.List(ctx)
	if err != nil {
		return ActivityFeed{}, err
	}
	feed := ActivityFeed{
		Upcoming:  []models.Activity{},
		Completed: []models.Activity{},
	}
	now := s.now()
	for _, a := range all {
		if a.CompletedBy(now) {
			feed.Completed = append(feed.Completed, a)
		} else {
			feed.Upcoming = append(feed.Upcoming, a)
		}
	}
	return feed, nil
}

func (s *ActivityService) Get(ctx context.Context, id string) (models.Activity, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Activity{}, err
	}
	return s.activities.Get(ctx, oid)
}

// Update overwrites only the supplied metadata fields. It never touches
// attendance: provisioning happens once, at creation.
func (s *ActivityService) Update(ctx context.Context, id string, input UpdateActivityInput, ident auth.Identity) (models.Activity, error) {
	if !ident.CanManage() {
		return models.Activity{}, fmt.Errorf("update activity: %w", ErrForbidden)
	}
	oid, err := parseID(id)
	if err != nil {
		return models.Activity{}, err
	}
	if err := s.validate.Struct(input); err != nil {
		return models.Activity{}, fmt.Errorf("update activity: %w: %v", ErrInvalidInput, err)
	}
	return s.activities.Update(ctx, oid, store.ActivityUpdate{
		Title:         input.Title,
		Poster:        input.Poster,
		StartDate:     input.StartDate,
		DurationHours: input.DurationHours,
		Description:   input.Description,
	})
}

// Delete removes an activity and, first, every attendance row referencing
// it. Success is only reported once both are gone.
func (s *ActivityService) Delete(ctx context.Context, id string, ident auth.Identity) error {
	if !ident.CanManage() {
		return fmt.Errorf("delete activity: %w", ErrForbidden)
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if _, err := s.activities.Get(ctx, oid); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if err := s.coord.CascadeDeleteForActivity(ctx, oid); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if err := s.activities.Delete(ctx, oid); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}

const toggleAttempts = 3

// ToggleInterest flips the caller's membership in the interested set. Each
// branch is a single guarded server-side update, so concurrent toggles can
// never duplicate a membership; when both guards miss (the other branch won
// a race, or the activity is gone) it re-checks and retries a bounded number
// of times.
func (s *ActivityService) ToggleInterest(ctx context.Context, id, callerID string) (InterestResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return InterestResult{}, err
	}
	uid, err := parseID(callerID)
	if err != nil {
		return InterestResult{}, err
	}

	for attempt := 0; attempt < toggleAttempts; attempt++ {
		a, err := s.activities.AddInterest(ctx, oid, uid)
		if err == nil {
			return InterestResult{InterestedCount: len(a.InterestedUsers), IsInterested: true}, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return InterestResult{}, fmt.Errorf("toggle interest: %w", err)
		}

		a, err = s.activities.RemoveInterest(ctx, oid, uid)
		if err == nil {
			return InterestResult{InterestedCount: len(a.InterestedUsers), IsInterested: false}, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return InterestResult{}, fmt.Errorf("toggle interest: %w", err)
		}

		if _, err := s.activities.Get(ctx, oid); err != nil {
			return InterestResult{}, fmt.Errorf("toggle interest: %w", err)
		}
	}
	return InterestResult{}, fmt.Errorf("toggle interest on activity %s: contended: %w", id, ErrConflict)
}

// InterestedUsers resolves the interested set to volunteer records. Admin
// only.
func (s *ActivityService) InterestedUsers(ctx context.Context, id string, ident auth.Identity) ([]models.Volunteer, error) {
	if !ident.CanManage() {
		return nil, fmt.Errorf("interested users: %w", ErrForbidden)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	a, err := s.activities.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if len(a.InterestedUsers) == 0 {
		return []models.Volunteer{}, nil
	}
	return s.volunteers.ByIDs(ctx, a.InterestedUsers)
}
