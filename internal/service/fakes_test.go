package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/auth"
	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/models"
	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/store"
)

// In-memory stores mirroring the Mongo implementations' contracts, including
// the guarded add/remove interest semantics and the unique pair rule.

type fakeVolunteerStore struct {
	mu         sync.Mutex
	volunteers map[primitive.ObjectID]models.Volunteer
	order      []primitive.ObjectID
}

var _ store.VolunteerStore = (*fakeVolunteerStore)(nil)

func newFakeVolunteerStore() *fakeVolunteerStore {
	return &fakeVolunteerStore{volunteers: map[primitive.ObjectID]models.Volunteer{}}
}

func (s *fakeVolunteerStore) List(ctx context.Context) ([]models.Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Volunteer, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.volunteers[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeVolunteerStore) ListIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]primitive.ObjectID{}, s.order...), nil
}

func (s *fakeVolunteerStore) Get(ctx context.Context, id primitive.ObjectID) (models.Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.volunteers[id]
	if !ok {
		return models.Volunteer{}, fmt.Errorf("volunteer %s: %w", id.Hex(), store.ErrNotFound)
	}
	return v, nil
}

func (s *fakeVolunteerStore) GetByEmail(ctx context.Context, email string) (models.Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.volunteers {
		if v.Email == email {
			return v, nil
		}
	}
	return models.Volunteer{}, fmt.Errorf("volunteer email %q: %w", email, store.ErrNotFound)
}

func (s *fakeVolunteerStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Volunteer{}
	for _, id := range ids {
		if v, ok := s.volunteers[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *fakeVolunteerStore) Insert(ctx context.Context, v models.Volunteer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.volunteers {
		if existing.Email == v.Email {
			return fmt.Errorf("volunteer email %q: %w", v.Email, store.ErrDuplicate)
		}
	}
	s.volunteers[v.ID] = v
	s.order = append(s.order, v.ID)
	return nil
}

func (s *fakeVolunteerStore) Update(ctx context.Context, id primitive.ObjectID, update store.VolunteerUpdate) (models.Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.volunteers[id]
	if !ok {
		return models.Volunteer{}, fmt.Errorf("volunteer %s: %w", id.Hex(), store.ErrNotFound)
	}
	if update.Name != nil {
		v.Name = *update.Name
	}
	if update.Batch != nil {
		v.Batch = *update.Batch
	}
	if update.Email != nil {
		v.Email = *update.Email
	}
	if update.Password != nil {
		v.Password = *update.Password
	}
	if update.DOB != nil {
		v.DOB = *update.DOB
	}
	if update.ProfilePic != nil {
		v.ProfilePic = *update.ProfilePic
	}
	if update.Status != nil {
		v.Status = *update.Status
	}
	v.UpdatedAt = time.Now()
	s.volunteers[id] = v
	return v, nil
}

func (s *fakeVolunteerStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.volunteers[id]; !ok {
		return fmt.Errorf("volunteer %s: %w", id.Hex(), store.ErrNotFound)
	}
	delete(s.volunteers, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeActivityStore struct {
	mu         sync.Mutex
	activities map[primitive.ObjectID]models.Activity
	order      []primitive.ObjectID
}

var _ store.ActivityStore = (*fakeActivityStore)(nil)

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{activities: map[primitive.ObjectID]models.Activity{}}
}

func (s *fakeActivityStore) List(ctx context.Context) ([]models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Activity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.activities[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s *fakeActivityStore) Get(ctx context.Context, id primitive.ObjectID) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[id]
	if !ok {
		return models.Activity{}, fmt.Errorf("activity %s: %w", id.Hex(), store.ErrNotFound)
	}
	return a, nil
}

func (s *fakeActivityStore) Insert(ctx context.Context, a models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities[a.ID] = a
	s.order = append(s.order, a.ID)
	return nil
}

func (s *fakeActivityStore) Update(ctx context.Context, id primitive.ObjectID, update store.ActivityUpdate) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[id]
	if !ok {
		return models.Activity{}, fmt.Errorf("activity %s: %w", id.Hex(), store.ErrNotFound)
	}
	if update.Title != nil {
		a.Title = *update.Title
	}
	if update.Poster != nil {
		a.Poster = *update.Poster
	}
	if update.StartDate != nil {
		a.StartDate = *update.StartDate
	}
	if update.DurationHours != nil {
		a.DurationHours = *update.DurationHours
	}
	if update.Description != nil {
		a.Description = *update.Description
	}
	s.activities[id] = a
	return a, nil
}

func (s *fakeActivityStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.activities[id]; !ok {
		return fmt.Errorf("activity %s: %w", id.Hex(), store.ErrNotFound)
	}
	delete(s.activities, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeActivityStore) AddInterest(ctx context.Context, id, userID primitive.ObjectID) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[id]
	if !ok {
		return models.Activity{}, fmt.Errorf("add interest on activity %s: %w", id.Hex(), store.ErrNotFound)
	}
	for _, uid := range a.InterestedUsers {
		if uid == userID {
			// Guard miss: already a member.
			return models.Activity{}, fmt.Errorf("add interest on activity %s: %w", id.Hex(), store.ErrNotFound)
		}
	}
	a.InterestedUsers = append(append([]primitive.ObjectID{}, a.InterestedUsers...), userID)
	s.activities[id] = a
	return a, nil
}

func (s *fakeActivityStore) RemoveInterest(ctx context.Context, id, userID primitive.ObjectID) (models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[id]
	if !ok {
		return models.Activity{}, fmt.Errorf("remove interest on activity %s: %w", id.Hex(), store.ErrNotFound)
	}
	for i, uid := range a.InterestedUsers {
		if uid == userID {
			members := append([]primitive.ObjectID{}, a.InterestedUsers...)
			a.InterestedUsers = append(members[:i], members[i+1:]...)
			s.activities[id] = a
			return a, nil
		}
	}
	return models.Activity{}, fmt.Errorf("remove interest on activity %s: %w", id.Hex(), store.ErrNotFound)
}

type fakeAttendanceStore struct {
	mu         sync.Mutex
	rows       []models.Attendance
	volunteers *fakeVolunteerStore
	activities *fakeActivityStore
}

var _ store.AttendanceStore = (*fakeAttendanceStore)(nil)

func (s *fakeAttendanceStore) BulkInsert(ctx context.Context, activityID primitive.ObjectID, volunteerIDs []primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, vid := range volunteerIDs {
		for _, row := range s.rows {
			if row.VolunteerID == vid && row.ActivityID == activityID {
				return fmt.Errorf("attendance rows for activity %s: %w", activityID.Hex(), store.ErrDuplicate)
			}
		}
	}
	for _, vid := range volunteerIDs {
		s.rows = append(s.rows, models.Attendance{
			ID:          primitive.NewObjectID(),
			VolunteerID: vid,
			ActivityID:  activityID,
			Status:      models.AttendanceAbsent,
		})
	}
	return nil
}

func (s *fakeAttendanceStore) SetStatus(ctx context.Context, volunteerID, activityID primitive.ObjectID, status models.AttendanceStatus) (models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, row := range s.rows {
		if row.VolunteerID == volunteerID && row.ActivityID == activityID {
			s.rows[i].Status = status
			s.rows[i].MarkedAt = time.Now()
			return s.rows[i], nil
		}
	}
	return models.Attendance{}, fmt.Errorf("attendance for volunteer %s at activity %s: %w",
		volunteerID.Hex(), activityID.Hex(), store.ErrNotFound)
}

func (s *fakeAttendanceStore) ByActivity(ctx context.Context, activityID primitive.ObjectID) ([]models.ActivityAttendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.ActivityAttendance{}
	for _, row := range s.rows {
		if row.ActivityID != activityID {
			continue
		}
		v := s.volunteers.volunteers[row.VolunteerID]
		out = append(out, models.ActivityAttendance{
			ID:          row.ID,
			VolunteerID: row.VolunteerID,
			ActivityID:  row.ActivityID,
			Status:      row.Status,
			Volunteer:   models.VolunteerSummary{ID: v.ID, Name: v.Name, Batch: v.Batch, ProfilePic: v.ProfilePic},
		})
	}
	return out, nil
}

func (s *fakeAttendanceStore) ByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) ([]models.VolunteerAttendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.VolunteerAttendance{}
	for _, row := range s.rows {
		if row.VolunteerID != volunteerID {
			continue
		}
		a := s.activities.activities[row.ActivityID]
		out = append(out, models.VolunteerAttendance{
			ID:          row.ID,
			VolunteerID: row.VolunteerID,
			ActivityID:  row.ActivityID,
			Status:      row.Status,
			Activity:    models.ActivitySummary{ID: a.ID, Title: a.Title, StartDate: a.StartDate},
		})
	}
	return out, nil
}

func (s *fakeAttendanceStore) DeleteByActivity(ctx context.Context, activityID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.ActivityID != activityID {
			kept = append(kept, row)
		}
	}
	s.rows = kept
	return nil
}

func (s *fakeAttendanceStore) DeleteByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.VolunteerID != volunteerID {
			kept = append(kept, row)
		}
	}
	s.rows = kept
	return nil
}

// fixture wires the services over the fakes with a controllable clock.
type fixture struct {
	volunteers    *fakeVolunteerStore
	activities    *fakeActivityStore
	attendance    *fakeAttendanceStore
	coord         *Coordinator
	volunteerSvc  *VolunteerService
	activitySvc   *ActivityService
	attendanceSvc *AttendanceService
	now           time.Time
}

func newFixture() *fixture {
	f := &fixture{now: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	f.volunteers = newFakeVolunteerStore()
	f.activities = newFakeActivityStore()
	f.attendance = &fakeAttendanceStore{volunteers: f.volunteers, activities: f.activities}

	logger := zap.NewNop()
	f.coord = NewCoordinator(f.volunteers, f.attendance, logger)
	f.volunteerSvc = NewVolunteerService(f.volunteers, f.coord, nil, logger)
	f.activitySvc = NewActivityService(f.activities, f.volunteers, f.coord, logger)
	f.attendanceSvc = NewAttendanceService(f.attendance, logger)

	clock := func() time.Time { return f.now }
	f.volunteerSvc.now = clock
	f.activitySvc.now = clock
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func adminIdentity() auth.Identity {
	return auth.Identity{UserID: primitive.NewObjectID().Hex(), IsAdmin: true}
}

func memberIdentity(id primitive.ObjectID) auth.Identity {
	return auth.Identity{UserID: id.Hex()}
}

func (f *fixture) addVolunteer(t *testing.T, name, email string) models.Volunteer {
	t.Helper()
	v, err := f.volunteerSvc.Create(context.Background(), CreateVolunteerInput{
		Name:     name,
		Batch:    "2024",
		Email:    email,
		Password: "correct-horse",
		DOB:      time.Date(2003, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return v
}

func (f *fixture) addActivity(t *testing.T, title string, start time.Time, hours float64) models.Activity {
	t.Helper()
	a, err := f.activitySvc.Create(context.Background(), CreateActivityInput{
		Title:         title,
		Poster:        "poster.png",
		StartDate:     start,
		DurationHours: hours,
	}, adminIdentity())
	require.NoError(t, err)
	return a
}
