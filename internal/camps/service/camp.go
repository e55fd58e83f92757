package service

import (
	"context"
	"errors"
	"fmt"

	campserrors "camplan/internal/camps/errors"
	"camplan/internal/camps/repository"
	"camplan/internal/camps/validator"
	"camplan/pkg/config"
	apperrors "camplan/pkg/errors"
	"camplan/pkg/model"
	"camplan/pkg/sanitizer"
)

type CampService interface {
	Create(ctx context.Context, familyID string, camp *model.Camp) error
	GetByID(ctx context.Context, familyID, id string) (*model.Camp, error)
	GetAll(ctx context.Context, familyID string) ([]*model.Camp, error)
	Update(ctx context.Context, familyID, id string, update *model.CampUpdate) (*model.Camp, error)
	// Delete removes the camp and every session under it. Sessions
	// referenced by bookings block the delete.
	Delete(ctx context.Context, familyID, id string) error
}

// BookingCounter reports how many bookings reference any of the given
// sessions. The schedule repository satisfies it.
type BookingCounter interface {
	CountBySessions(ctx context.Context, familyID string, sessionIDs []string) (int64, error)
}

type campService struct {
	repo        repository.CampRepository
	sessionRepo repository.SessionRepository
	bookings    BookingCounter
	validator   *validator.CampValidator
	cfg         *config.Config
}

func NewCampService(
	repo repository.CampRepository,
	sessionRepo repository.SessionRepository,
	bookings BookingCounter,
	v *validator.CampValidator,
	cfg *config.Config,
) CampService {
	return &campService{
		repo:        repo,
		sessionRepo: sessionRepo,
		bookings:    bookings,
		validator:   v,
		cfg:         cfg,
	}
}

func (s *campService) Create(ctx context.Context, familyID string, camp *model.Camp) error {
	camp.ID = ""
	camp.FamilyID = familyID
	s.sanitize(camp)

	if err := s.validator.ValidateCamp(camp); err != nil {
		s.cfg.Log.Warn("Camp validation failed",
			"family_id", familyID,
			"name", camp.Name,
			"error", err,
		)
		return apperrors.Validation("Camp validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, camp); err != nil {
		s.cfg.Log.Error("Failed to create camp", "family_id", familyID, "error", err)
		return apperrors.Internal("Failed to create camp", err)
	}

	s.cfg.Log.Info("Camp created", "family_id", familyID, "camp_id", camp.ID)
	return nil
}

func (s *campService) GetByID(ctx context.Context, familyID, id string) (*model.Camp, error) {
	camp, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, translateLookupErr(err, "Camp", id)
	}
	return camp, nil
}

func (s *campService) GetAll(ctx context.Context, familyID string) ([]*model.Camp, error) {
	camps, err := s.repo.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list camps", err)
	}
	return camps, nil
}

func (s *campService) Update(ctx context.Context, familyID, id string, update *model.CampUpdate) (*model.Camp, error) {
	camp, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, translateLookupErr(err, "Camp", id)
	}

	if update.Name != "" {
		camp.Name = sanitizer.NormalizeName(update.Name)
	}
	if update.Location != nil {
		camp.Location = sanitizer.TrimAndNormalize(*update.Location)
	}
	if update.URL != nil {
		camp.URL = sanitizer.TrimAndNormalize(*update.URL)
	}
	if update.Notes != nil {
		camp.Notes = sanitizer.NormalizeNotes(*update.Notes)
	}

	if err := s.validator.ValidateCamp(camp); err != nil {
		return nil, apperrors.Validation("Camp validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Update(ctx, familyID, id, camp); err != nil {
		return nil, translateLookupErr(err, "Camp", id)
	}

	s.cfg.Log.Info("Camp updated", "family_id", familyID, "camp_id", id)
	return camp, nil
}

func (s *campService) Delete(ctx context.Context, familyID, id string) error {
	sessions, err := s.sessionRepo.FindByCamp(ctx, familyID, id)
	if err != nil {
		return apperrors.Internal("Failed to load camp sessions", err)
	}

	if len(sessions) > 0 {
		sessionIDs := make([]string, 0, len(sessions))
		for _, session := range sessions {
			sessionIDs = append(sessionIDs, session.ID)
		}
		count, err := s.bookings.CountBySessions(ctx, familyID, sessionIDs)
		if err != nil {
			return apperrors.Internal("Failed to check session bookings", err)
		}
		if count > 0 {
			return apperrors.ConflictWithReason(
				"Camp has sessions with bookings. Delete the bookings first.",
				apperrors.ReasonHasBookings,
				map[string]any{"booking_count": count},
			)
		}
	}

	if err := s.repo.Delete(ctx, familyID, id); err != nil {
		return translateLookupErr(err, "Camp", id)
	}

	deleted, err := s.sessionRepo.DeleteByCamp(ctx, familyID, id)
	if err != nil {
		s.cfg.Log.Error("Failed to delete camp sessions", "family_id", familyID, "camp_id", id, "error", err)
		return apperrors.Internal("Failed to delete camp sessions", err)
	}

	s.cfg.Log.Info("Camp deleted", "family_id", familyID, "camp_id", id, "sessions_deleted", deleted)
	return nil
}

func (s *campService) sanitize(camp *model.Camp) {
	camp.Name = sanitizer.NormalizeName(camp.Name)
	camp.Location = sanitizer.TrimAndNormalize(camp.Location)
	camp.URL = sanitizer.TrimAndNormalize(camp.URL)
	camp.Notes = sanitizer.NormalizeNotes(camp.Notes)
}

func translateLookupErr(err error, entity, id string) error {
	if errors.Is(err, campserrors.ErrNotFound) {
		return apperrors.NotFoundWithID(entity, id)
	}
	if errors.Is(err, campserrors.ErrInvalidID) {
		return apperrors.InvalidInput(fmt.Sprintf("Invalid %s ID format", entity))
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	return apperrors.Internal(fmt.Sprintf("Failed to load %s", entity), err)
}
