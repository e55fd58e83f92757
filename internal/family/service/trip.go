package service

import (
	"context"

	"camplan/internal/family/repository"
	"camplan/internal/family/validator"
	"camplan/pkg/config"
	apperrors "camplan/pkg/errors"
	"camplan/pkg/model"
	"camplan/pkg/sanitizer"

	scheduleservice "camplan/internal/schedule/service"
)

// WeekReblocker is satisfied by the schedule week service. Trip mutations
// change which weeks are blocked, so every write here ends with a
// reblocking pass.
type WeekReblocker interface {
	Reblock(ctx context.Context, familyID string) (*scheduleservice.ReblockResult, error)
}

type TripService interface {
	Create(ctx context.Context, familyID string, trip *model.Trip) error
	GetByID(ctx context.Context, familyID, id string) (*model.Trip, error)
	GetAll(ctx context.Context, familyID string) ([]*model.Trip, error)
	Update(ctx context.Context, familyID, id string, update *model.TripUpdate) (*model.Trip, error)
	Delete(ctx context.Context, familyID, id string) error
}

type tripService struct {
	repo      repository.TripRepository
	weeks     WeekReblocker
	validator *validator.FamilyValidator
	cfg       *config.Config
}

func NewTripService(repo repository.TripRepository, weeks WeekReblocker, v *validator.FamilyValidator, cfg *config.Config) TripService {
	return &tripService{
		repo:      repo,
		weeks:     weeks,
		validator: v,
		cfg:       cfg,
	}
}

func (s *tripService) Create(ctx context.Context, familyID string, trip *model.Trip) error {
	trip.ID = ""
	trip.FamilyID = familyID
	s.sanitize(trip)

	if err := s.validator.ValidateTrip(trip); err != nil {
		s.cfg.Log.Warn("Trip validation failed",
			"family_id", familyID,
			"name", trip.Name,
			"error", err,
		)
		return apperrors.Validation("Trip validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, trip); err != nil {
		s.cfg.Log.Error("Failed to create trip", "family_id", familyID, "error", err)
		return apperrors.Internal("Failed to create trip", err)
	}

	s.reblock(ctx, familyID)
	s.cfg.Log.Info("Trip created", "family_id", familyID, "trip_id", trip.ID)
	return nil
}

func (s *tripService) GetByID(ctx context.Context, familyID, id string) (*model.Trip, error) {
	trip, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, translateLookupErr(err, "Trip", id)
	}
	return trip, nil
}

func (s *tripService) GetAll(ctx context.Context, familyID string) ([]*model.Trip, error) {
	trips, err := s.repo.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list trips", err)
	}
	return trips, nil
}

func (s *tripService) Update(ctx context.Context, familyID, id string, update *model.TripUpdate) (*model.Trip, error) {
	trip, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, translateLookupErr(err, "Trip", id)
	}

	if update.Name != "" {
		trip.Name = sanitizer.NormalizeName(update.Name)
	}
	if update.StartDate != nil {
		trip.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		trip.EndDate = *update.EndDate
	}
	if update.Notes != nil {
		trip.Notes = sanitizer.NormalizeNotes(*update.Notes)
	}

	if err := s.validator.ValidateTrip(trip); err != nil {
		return nil, apperrors.Validation("Trip validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Update(ctx, familyID, id, trip); err != nil {
		return nil, translateLookupErr(err, "Trip", id)
	}

	s.reblock(ctx, familyID)
	s.cfg.Log.Info("Trip updated", "family_id", familyID, "trip_id", id)
	return trip, nil
}

func (s *tripService) Delete(ctx context.Context, familyID, id string) error {
	if err := s.repo.Delete(ctx, familyID, id); err != nil {
		return translateLookupErr(err, "Trip", id)
	}

	s.reblock(ctx, familyID)
	s.cfg.Log.Info("Trip deleted", "family_id", familyID, "trip_id", id)
	return nil
}

// reblock keeps week blocking in sync with the trips. A failure here
// leaves stale flags behind, which the next recalculation or reblock
// fixes, so it only warns.
func (s *tripService) reblock(ctx context.Context, familyID string) {
	result, err := s.weeks.Reblock(ctx, familyID)
	if err != nil {
		s.cfg.Log.Warn("Week reblocking after trip change failed", "family_id", familyID, "error", err)
		return
	}
	if result.UpdatedWeeks > 0 {
		s.cfg.Log.Info("Weeks reblocked after trip change",
			"family_id", familyID,
			"updated", result.UpdatedWeeks,
		)
	}
}

func (s *tripService) sanitize(trip *model.Trip) {
	trip.Name = sanitizer.NormalizeName(trip.Name)
	trip.Notes = sanitizer.NormalizeNotes(trip.Notes)
}
