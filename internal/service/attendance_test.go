package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/models"
)

func TestMarkAttendance_UpdatesExistingRow(t *testing.T) {
	f := newFixture()
	v := f.addVolunteer(t, "Asha", "asha@example.com")
	a := f.addActivity(t, "Tree Drive", f.now.Add(time.Hour), 2)

	rec, err := f.attendanceSvc.Mark(context.Background(), v.ID.Hex(), a.ID.Hex(), models.AttendancePresent)
	require.NoError(t, err)
	assert.Equal(t, models.AttendancePresent, rec.Status)
	assert.Equal(t, v.ID, rec.VolunteerID)
	assert.Equal(t, a.ID, rec.ActivityID)

	rows, err := f.attendanceSvc.ByActivity(context.Background(), a.ID.Hex())
	require.NoError(t, err)
	require.Len(t, rows, 1, "marking must never create rows")
}

func TestMarkAttendance_InvalidStatus(t *testing.T) {
	f := newFixture()
	v := f.addVolunteer(t, "Asha", "asha@example.com")
	a := f.addActivity(t, "Tree Drive", f.now.Add(time.Hour), 2)

	_, err := f.attendanceSvc.Mark(context.Background(), v.ID.Hex(), a.ID.Hex(), "late")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkAttendance_WithoutProvisionedRow(t *testing.T) {
	f := newFixture()
	a := f.addActivity(t, "Tree Drive", f.now.Add(time.Hour), 2)
	// Registered after the activity was created, so no row was provisioned.
	late := f.addVolunteer(t, "Ravi", "ravi@example.com")

	_, err := f.attendanceSvc.Mark(context.Background(), late.ID.Hex(), a.ID.Hex(), models.AttendancePresent)
	require.ErrorIs(t, err, ErrNotFound)

	rows, err := f.attendanceSvc.ByActivity(context.Background(), a.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, rows, "a failed mark must not create a row")
}

func TestAttendanceByActivity_ResolvesVolunteerFields(t *testing.T) {
	f := newFixture()
	v := f.addVolunteer(t, "Asha", "asha@example.com")
	a := f.addActivity(t, "Tree Drive", f.now.Add(time.Hour), 2)

	rows, err := f.attendanceSvc.ByActivity(context.Background(), a.ID.Hex())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, v.ID, rows[0].VolunteerID)
	assert.Equal(t, "Asha", rows[0].Volunteer.Name)
	assert.Equal(t, "2024", rows[0].Volunteer.Batch)
}

func TestAttendanceByVolunteer_ResolvesActivityFields(t *testing.T) {
	f := newFixture()
	v := f.addVolunteer(t, "Asha", "asha@example.com")
	start := f.now.Add(time.Hour)
	f.addActivity(t, "Tree Drive", start, 2)

	rows, err := f.attendanceSvc.ByVolunteer(context.Background(), v.ID.Hex())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tree Drive", rows[0].Activity.Title)
	assert.True(t, rows[0].Activity.StartDate.Equal(start))
}

// The end-to-end scenario: provision, mark, complete, cascade.
func TestActivityAttendanceLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	v1 := f.addVolunteer(t, "Asha", "asha@example.com")
	v2 := f.addVolunteer(t, "Ravi", "ravi@example.com")

	// Started an hour ago, runs for two: still ongoing.
	a := f.addActivity(t, "Tree Drive", f.now.Add(-time.Hour), 2)
	other := f.addActivity(t, "Blood Camp", f.now.Add(24*time.Hour), 4)

	rows, err := f.attendanceSvc.ByActivity(ctx, a.ID.Hex())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, models.AttendanceAbsent, row.Status)
	}

	feed, err := f.activitySvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, feed.Upcoming, 2)
	assert.Empty(t, feed.Completed)

	_, err = f.attendanceSvc.Mark(ctx, v1.ID.Hex(), a.ID.Hex(), models.AttendancePresent)
	require.NoError(t, err)

	rows, err = f.attendanceSvc.ByActivity(ctx, a.ID.Hex())
	require.NoError(t, err)
	byVolunteer := map[string]models.AttendanceStatus{}
	for _, row := range rows {
		byVolunteer[row.VolunteerID.Hex()] = row.Status
	}
	assert.Equal(t, models.AttendancePresent, byVolunteer[v1.ID.Hex()])
	assert.Equal(t, models.AttendanceAbsent, byVolunteer[v2.ID.Hex()])

	// Past start + duration: the activity flips to completed.
	f.advance(2*time.Hour + time.Minute)
	feed, err = f.activitySvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, feed.Completed, 1)
	assert.Equal(t, a.ID, feed.Completed[0].ID)

	require.NoError(t, f.activitySvc.Delete(ctx, a.ID.Hex(), adminIdentity()))

	rows, err = f.attendanceSvc.ByActivity(ctx, a.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, rows)

	// History for the other activity survives.
	history, err := f.attendanceSvc.ByVolunteer(ctx, v1.ID.Hex())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, other.ID, history[0].ActivityID)
}
