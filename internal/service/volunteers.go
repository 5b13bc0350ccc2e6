package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/models"
	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/store"
)

// Mailer is the outbound-mail seam; nil disables mail entirely.
type Mailer interface {
	Send(to, subject, body string) error
}

type CreateVolunteerInput struct {
	Name       string                 `json:"name" validate:"required"`
	Batch      string                 `json:"batch" validate:"required"`
	Email      string                 `json:"email" validate:"required,email"`
	Password   string                 `json:"password" validate:"required,min=8"`
	DOB        time.Time              `json:"dob" validate:"required"`
	ProfilePic string                 `json:"profile_pic"`
	Status     models.VolunteerStatus `json:"status" validate:"omitempty,oneof=active retired banned blacklisted not-listed"`
}

type UpdateVolunteerInput struct {
	Name       *string                 `json:"name"`
	Batch      *string                 `json:"batch"`
	Email      *string                 `json:"email" validate:"omitempty,email"`
	Password   *string                 `json:"password" validate:"omitempty,min=8"`
	DOB        *time.Time              `json:"dob"`
	ProfilePic *string                 `json:"profile_pic"`
	Status     *models.VolunteerStatus `json:"status" validate:"omitempty,oneof=active retired banned blacklisted not-listed"`
}

type VolunteerService struct {
	volunteers store.VolunteerStore
	coord      *Coordinator
	mailer     Mailer
	logger     *zap.Logger
	validate   *validator.Validate
	now        func() time.Time
}

func NewVolunteerService(volunteers store.VolunteerStore, coord *Coordinator, mailer Mailer, logger *zap.Logger) *VolunteerService {
	return &VolunteerService{
		volunteers: volunteers,
		coord:      coord,
		mailer:     mailer,
		logger:     logger,
		validate:   validator.New(),
		now:        time.Now,
	}
}

// List returns all volunteers, newest-created first.
func (s *VolunteerService) List(ctx context.Context) ([]models.Volunteer, error) {
	return s.volunteers.List(ctx)
}

func (s *VolunteerService) Get(ctx context.Context, id string) (models.Volunteer, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Volunteer{}, err
	}
	return s.volunteers.Get(ctx, oid)
}

// Create registers a volunteer with a bcrypt-hashed password. The email
// pre-check gives a friendly conflict error; the unique index remains the
// real guard when two registrations race.
func (s *VolunteerService) Create(ctx context.Context, input CreateVolunteerInput) (models.Volunteer, error) {
	if err := s.validate.Struct(input); err != nil {
		return models.Volunteer{}, fmt.Errorf("create volunteer: %w: %v", ErrInvalidInput, err)
	}

	if _, err := s.volunteers.GetByEmail(ctx, input.Email); err == nil {
		return models.Volunteer{}, fmt.Errorf("create volunteer: email %q: %w", input.Email, ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return models.Volunteer{}, fmt.Errorf("create volunteer: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Volunteer{}, fmt.Errorf("create volunteer: hash password: %w", err)
	}

	status := input.Status
	if status == "" {
		status = models.StatusActive
	}
	now := s.now()
	v := models.Volunteer{
		ID:         primitive.NewObjectID(),
		Name:       input.Name,
		Batch:      input.Batch,
		Email:      input.Email,
		Password:   string(hash),
		DOB:        input.DOB,
		ProfilePic: input.ProfilePic,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.volunteers.Insert(ctx, v); err != nil {
		return models.Volunteer{}, fmt.Errorf("create volunteer: %w", err)
	}

	if s.mailer != nil {
		go func() {
			body := "<p>Hi " + v.Name + ",</p><p>Welcome to the NSS unit! Your volunteer account is ready.</p>"
			if err := s.mailer.Send(v.Email, "Welcome to NSS", body); err != nil {
				s.logger.Warn("welcome email failed",
					zap.String("email", v.Email), zap.Error(err))
			}
		}()
	}
	return v, nil
}

// Update overwrites only the supplied fields and re-hashes the password only
// when a new one is given.
func (s *VolunteerService) Update(ctx context.Context, id string, input UpdateVolunteerInput) (models.Volunteer, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Volunteer{}, err
	}
	if err := s.validate.Struct(input); err != nil {
		return models.Volunteer{}, fmt.Errorf("update volunteer: %w: %v", ErrInvalidInput, err)
	}

	update := store.VolunteerUpdate{
		Name:       input.Name,
		Batch:      input.Batch,
		Email:      input.Email,
		DOB:        input.DOB,
		ProfilePic: input.ProfilePic,
		Status:     input.Status,
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.Volunteer{}, fmt.Errorf("update volunteer: hash password: %w", err)
		}
		hashed := string(hash)
		update.Password = &hashed
	}
	return s.volunteers.Update(ctx, oid, update)
}

// Delete removes a volunteer and, first, every attendance row referencing
// them. A re-registration under a new id starts with a clean history; the
// cascaded rows are gone for good.
func (s *VolunteerService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if _, err := s.volunteers.Get(ctx, oid); err != nil {
		return fmt.Errorf("delete volunteer: %w", err)
	}
	// Dependents first, so a cascade failure aborts the whole delete and no
	// orphaned rows can outlive their parent.
	if err := s.coord.CascadeDeleteForVolunteer(ctx, oid); err != nil {
		return fmt.Errorf("delete volunteer: %w", err)
	}
	if err := s.volunteers.Delete(ctx, oid); err != nil {
		return fmt.Errorf("delete volunteer: %w", err)
	}
	return nil
}
