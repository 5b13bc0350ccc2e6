package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Activity struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title           string               `json:"title" bson:"title"`
	Poster          string               `json:"poster" bson:"poster"`
	StartDate       time.Time            `json:"start_date" bson:"start_date"`
	DurationHours   float64              `json:"duration_hours" bson:"duration_hours"`
	Description     string               `json:"description" bson:"description"`
	CreatedBy       primitive.ObjectID   `json:"created_by" bson:"created_by"`
	InterestedUsers []primitive.ObjectID `json:"interested_users" bson:"interested_users"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
}

// CompletedBy reports whether the activity has finished as of now, i.e. now
// is strictly past start date plus expected duration. An activity with no
// start date or no duration is never considered completed. This is the only
// place the rule lives; it is never stored.
func (a Activity) CompletedBy(now time.Time) bool {
	if a.StartDate.IsZero() || a.DurationHours <= 0 {
		return false
	}
	end := a.StartDate.Add(time.Duration(a.DurationHours * float64(time.Hour)))
	return now.After(end)
}

// ActivitySummary carries the display fields attached to a volunteer's
// attendance history.
type ActivitySummary struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	StartDate time.Time          `json:"start_date" bson:"start_date"`
}
