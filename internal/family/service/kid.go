package service

import (
	"context"
	"errors"
	"fmt"

	familyerrors "camplan/internal/family/errors"
	"camplan/internal/family/repository"
	"camplan/internal/family/validator"
	"camplan/pkg/config"
	apperrors "camplan/pkg/errors"
	"camplan/pkg/model"
	"camplan/pkg/sanitizer"
)

type KidService interface {
	Create(ctx context.Context, familyID string, kid *model.Kid) error
	GetByID(ctx context.Context, familyID, id string) (*model.Kid, error)
	GetAll(ctx context.Context, familyID string) ([]*model.Kid, error)
	Update(ctx context.Context, familyID, id string, update *model.KidUpdate) (*model.Kid, error)
	Delete(ctx context.Context, familyID, id string) error
}

type kidService struct {
	repo      repository.KidRepository
	validator *validator.FamilyValidator
	cfg       *config.Config
}

func NewKidService(repo repository.KidRepository, v *validator.FamilyValidator, cfg *config.Config) KidService {
	return &kidService{
		repo:      repo,
		validator: v,
		cfg:       cfg,
	}
}

func (s *kidService) Create(ctx context.Context, familyID string, kid *model.Kid) error {
	kid.ID = ""
	kid.FamilyID = familyID
	s.sanitize(kid)

	if err := s.validator.ValidateKid(kid); err != nil {
		s.cfg.Log.Warn("Kid validation failed",
			"family_id", familyID,
			"name", kid.Name,
			"error", err,
		)
		return apperrors.Validation("Kid validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, kid); err != nil {
		s.cfg.Log.Error("Failed to create kid", "family_id", familyID, "error", err)
		return apperrors.Internal("Failed to create kid", err)
	}

	s.cfg.Log.Info("Kid created", "family_id", familyID, "kid_id", kid.ID)
	return nil
}

func (s *kidService) GetByID(ctx context.Context, familyID, id string) (*model.Kid, error) {
	kid, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, translateLookupErr(err, "Kid", id)
	}
	return kid, nil
}

func (s *kidService) GetAll(ctx context.Context, familyID string) ([]*model.Kid, error) {
	kids, err := s.repo.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list kids", err)
	}
	return kids, nil
}

func (s *kidService) Update(ctx context.Context, familyID, id string, update *model.KidUpdate) (*model.Kid, error) {
	kid, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, translateLookupErr(err, "Kid", id)
	}

	if update.Name != "" {
		kid.Name = sanitizer.NormalizeName(update.Name)
	}
	if update.Birthday != nil {
		kid.Birthday = *update.Birthday
	}
	if update.Grade != nil {
		kid.Grade = *update.Grade
	}
	if update.FirstDayOfSchool != nil {
		kid.FirstDayOfSchool = *update.FirstDayOfSchool
	}
	if update.LastDayOfSchool != nil {
		kid.LastDayOfSchool = *update.LastDayOfSchool
	}
	if update.Friends != nil {
		kid.Friends = sanitizer.NormalizeFriends(*update.Friends)
	}

	if err := s.validator.ValidateKid(kid); err != nil {
		return nil, apperrors.Validation("Kid validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Update(ctx, familyID, id, kid); err != nil {
		return nil, translateLookupErr(err, "Kid", id)
	}

	s.cfg.Log.Info("Kid updated", "family_id", familyID, "kid_id", id)
	return kid, nil
}

func (s *kidService) Delete(ctx context.Context, familyID, id string) error {
	if err := s.repo.Delete(ctx, familyID, id); err != nil {
		return translateLookupErr(err, "Kid", id)
	}

	s.cfg.Log.Info("Kid deleted", "family_id", familyID, "kid_id", id)
	return nil
}

func (s *kidService) sanitize(kid *model.Kid) {
	kid.Name = sanitizer.NormalizeName(kid.Name)
	kid.Friends = sanitizer.NormalizeFriends(kid.Friends)
}

func translateLookupErr(err error, entity, id string) error {
	if errors.Is(err, familyerrors.ErrNotFound) {
		return apperrors.NotFoundWithID(entity, id)
	}
	if errors.Is(err, familyerrors.ErrInvalidID) {
		return apperrors.InvalidInput(fmt.Sprintf("Invalid %s ID format", entity))
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	return apperrors.Internal(fmt.Sprintf("Failed to load %s", entity), err)
}
