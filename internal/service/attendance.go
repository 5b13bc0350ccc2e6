package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/models"
	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/store"
)

type AttendanceService struct {
	attendance store.AttendanceStore
	logger     *zap.Logger
}

func NewAttendanceService(attendance store.AttendanceStore, logger *zap.Logger) *AttendanceService {
	return &AttendanceService{attendance: attendance, logger: logger}
}

// Mark overwrites the status of an existing (volunteer, activity) row.
// Marking never creates: a missing row means the pair was never provisioned
// (the volunteer registered after the activity was created, or the ids are
// wrong) and is reported as not found.
func (s *AttendanceService) Mark(ctx context.Context, volunteerID, activityID string, status models.AttendanceStatus) (models.Attendance, error) {
	if !status.Valid() {
		return models.Attendance{}, fmt.Errorf("mark attendance: status %q: %w", status, ErrInvalidInput)
	}
	vid, err := parseID(volunteerID)
	if err != nil {
		return models.Attendance{}, err
	}
	aid, err := parseID(activityID)
	if err != nil {
		return models.Attendance{}, err
	}
	rec, err := s.attendance.SetStatus(ctx, vid, aid, status)
	if err != nil {
		return models.Attendance{}, fmt.Errorf("mark attendance: %w", err)
	}
	return rec, nil
}

// ByActivity returns every row for one activity, resolved with volunteer
// display fields.
func (s *AttendanceService) ByActivity(ctx context.Context, activityID string) ([]models.ActivityAttendance, error) {
	aid, err := parseID(activityID)
	if err != nil {
		return nil, err
	}
	return s.attendance.ByActivity(ctx, aid)
}

// ByVolunteer returns one volunteer's history, resolved with activity title
// and start date.
func (s *AttendanceService) ByVolunteer(ctx context.Context, volunteerID string) ([]models.VolunteerAttendance, error) {
	vid, err := parseID(volunteerID)
	if err != nil {
		return nil, err
	}
	return s.attendance.ByVolunteer(ctx, vid)
}
