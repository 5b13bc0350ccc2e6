package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VolunteerStatus string

const (
	StatusActive      VolunteerStatus = "active"
	StatusRetired     VolunteerStatus = "retired"
	StatusBanned      VolunteerStatus = "banned"
	StatusBlacklisted VolunteerStatus = "blacklisted"
	StatusNotListed   VolunteerStatus = "not-listed"
)

type Volunteer struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Batch      string             `json:"batch" bson:"batch"`
	Email      string             `json:"email" bson:"email"`
	Password   string             `json:"-" bson:"password"` // bcrypt hash, never serialized
	DOB        time.Time          `json:"dob" bson:"dob"`
	ProfilePic string             `json:"profile_pic,omitempty" bson:"profile_pic,omitempty"`
	Status     VolunteerStatus    `json:"status" bson:"status"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// VolunteerSummary carries the display fields attached to attendance rows
// and interested-user listings.
type VolunteerSummary struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Name       string             `json:"name" bson:"name"`
	Batch      string             `json:"batch" bson:"batch"`
	ProfilePic string             `json:"profile_pic,omitempty" bson:"profile_pic,omitempty"`
}
