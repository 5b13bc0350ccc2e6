package service

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/store"
)

// The four business-error kinds every operation may surface. Anything not
// matching one of these is an infrastructure failure and should be treated
// as retryable by the caller.
var (
	ErrNotFound     = store.ErrNotFound
	ErrConflict     = store.ErrDuplicate
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("id %q: %w", id, ErrInvalidInput)
	}
	return oid, nil
}
