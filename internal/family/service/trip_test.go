package service

import (
	"context"
	"errors"
	"testing"
	"time"

	scheduleservice "camplan/internal/schedule/service"
	"camplan/pkg/dates"
	apperrors "camplan/pkg/errors"
	"camplan/pkg/model"
)

func newTripService(repo *mockTripRepository, weeks *mockWeekReblocker) TripService {
	return NewTripService(repo, weeks, testValidator(), testConfig())
}

func validTrip() *model.Trip {
	return &model.Trip{
		Name:      "Lake house",
		StartDate: dates.New(2026, time.July, 3),
		EndDate:   dates.New(2026, time.July, 12),
	}
}

func TestTripCreate_TriggersReblocking(t *testing.T) {
	weeks := &mockWeekReblocker{result: &scheduleservice.ReblockResult{TotalWeeks: 10, UpdatedWeeks: 2}}
	svc := newTripService(&mockTripRepository{}, weeks)

	if err := svc.Create(context.Background(), testFamily, validTrip()); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if weeks.calls != 1 {
		t.Errorf("expected one reblocking pass, got %d", weeks.calls)
	}
}

func TestTripCreate_SucceedsWhenReblockingFails(t *testing.T) {
	weeks := &mockWeekReblocker{err: errors.New("mongo down")}
	svc := newTripService(&mockTripRepository{}, weeks)

	if err := svc.Create(context.Background(), testFamily, validTrip()); err != nil {
		t.Fatalf("expected create to survive reblock failure, got %v", err)
	}
}

func TestTripCreate_RejectsEndBeforeStart(t *testing.T) {
	weeks := &mockWeekReblocker{}
	svc := newTripService(&mockTripRepository{}, weeks)

	trip := validTrip()
	trip.EndDate = dates.New(2026, time.July, 1)
	err := svc.Create(context.Background(), testFamily, trip)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if weeks.calls != 0 {
		t.Errorf("expected no reblocking on rejected trip, got %d calls", weeks.calls)
	}
}

func TestTripUpdate_MergesAndReblocks(t *testing.T) {
	existing := validTrip()
	existing.ID = "507f1f77bcf86cd799439021"
	existing.FamilyID = testFamily

	var updated *model.Trip
	repo := &mockTripRepository{
		findByIDFunc: func(ctx context.Context, familyID, id string) (*model.Trip, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, familyID, id string, trip *model.Trip) error {
			updated = trip
			return nil
		},
	}
	weeks := &mockWeekReblocker{}
	svc := newTripService(repo, weeks)

	newEnd := dates.New(2026, time.July, 19)
	_, err := svc.Update(context.Background(), testFamily, existing.ID, &model.TripUpdate{EndDate: &newEnd})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if !updated.EndDate.Equal(newEnd) {
		t.Errorf("expected end date %v, got %v", newEnd, updated.EndDate)
	}
	if !updated.StartDate.Equal(dates.New(2026, time.July, 3)) {
		t.Errorf("expected start date untouched, got %v", updated.StartDate)
	}
	if weeks.calls != 1 {
		t.Errorf("expected one reblocking pass, got %d", weeks.calls)
	}
}

func TestTripDelete_Reblocks(t *testing.T) {
	weeks := &mockWeekReblocker{}
	svc := newTripService(&mockTripRepository{}, weeks)

	if err := svc.Delete(context.Background(), testFamily, "507f1f77bcf86cd799439021"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if weeks.calls != 1 {
		t.Errorf("expected one reblocking pass, got %d", weeks.calls)
	}
}
