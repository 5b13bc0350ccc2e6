package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Valid reports whether s is one of the two permitted statuses.
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// Attendance is the presence record for one volunteer at one activity.
// The (volunteer_id, activity_id) pair is unique; the compound index in
// internal/database enforces it.
type Attendance struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VolunteerID primitive.ObjectID `json:"volunteer_id" bson:"volunteer_id"`
	ActivityID  primitive.ObjectID `json:"activity_id" bson:"activity_id"`
	Status      AttendanceStatus   `json:"status" bson:"status"`
	MarkedAt    time.Time          `json:"marked_at,omitempty" bson:"marked_at,omitempty"`
}

// ActivityAttendance is an attendance row resolved with volunteer display
// fields, for listing who attended one activity.
type ActivityAttendance struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	VolunteerID primitive.ObjectID `json:"volunteer_id" bson:"volunteer_id"`
	ActivityID  primitive.ObjectID `json:"activity_id" bson:"activity_id"`
	Status      AttendanceStatus   `json:"status" bson:"status"`
	Volunteer   VolunteerSummary   `json:"volunteer" bson:"volunteer"`
}

// VolunteerAttendance is an attendance row resolved with activity display
// fields, for rendering one volunteer's history even when the activity has
// since been edited.
type VolunteerAttendance struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	VolunteerID primitive.ObjectID `json:"volunteer_id" bson:"volunteer_id"`
	ActivityID  primitive.ObjectID `json:"activity_id" bson:"activity_id"`
	Status      AttendanceStatus   `json:"status" bson:"status"`
	Activity    ActivitySummary    `json:"activity" bson:"activity"`
}
