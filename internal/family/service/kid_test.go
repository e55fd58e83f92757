package service

import (
	"context"
	"testing"
	"time"

	familyerrors "camplan/internal/family/errors"
	"camplan/pkg/dates"
	apperrors "camplan/pkg/errors"
	"camplan/pkg/model"
)

const testFamily = "fam-1"

func newKidService(repo *mockKidRepository) KidService {
	return NewKidService(repo, testValidator(), testConfig())
}

func TestKidCreate_SanitizesInput(t *testing.T) {
	var created *model.Kid
	repo := &mockKidRepository{
		createFunc: func(ctx context.Context, kid *model.Kid) error {
			kid.ID = "507f1f77bcf86cd799439011"
			created = kid
			return nil
		},
	}
	svc := newKidService(repo)

	kid := &model.Kid{
		ID:      "should-be-cleared",
		Name:    "  maya   rose ",
		Grade:   3,
		Friends: []string{" Ella ", "Ella", "", "Noor"},
	}
	if err := svc.Create(context.Background(), testFamily, kid); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.FamilyID != testFamily {
		t.Errorf("expected family %q, got %q", testFamily, created.FamilyID)
	}
	if created.Name != "maya rose" {
		t.Errorf("expected normalized name, got %q", created.Name)
	}
	if len(created.Friends) != 2 || created.Friends[0] != "Ella" || created.Friends[1] != "Noor" {
		t.Errorf("expected deduplicated friends, got %v", created.Friends)
	}
}

func TestKidCreate_RejectsSingleSchoolDate(t *testing.T) {
	svc := newKidService(&mockKidRepository{})

	kid := &model.Kid{
		Name:            "Maya",
		Grade:           3,
		LastDayOfSchool: dates.New(2026, time.June, 12),
	}
	err := svc.Create(context.Background(), testFamily, kid)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestKidCreate_RejectsSchoolYearEndingBeforeItStarts(t *testing.T) {
	svc := newKidService(&mockKidRepository{})

	kid := &model.Kid{
		Name:             "Maya",
		Grade:            3,
		FirstDayOfSchool: dates.New(2026, time.June, 1),
		LastDayOfSchool:  dates.New(2026, time.August, 26),
	}
	err := svc.Create(context.Background(), testFamily, kid)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestKidUpdate_MergesOnlyProvidedFields(t *testing.T) {
	existing := &model.Kid{
		ID:               "507f1f77bcf86cd799439011",
		FamilyID:         testFamily,
		Name:             "Maya",
		Grade:            3,
		FirstDayOfSchool: dates.New(2026, time.August, 26),
		LastDayOfSchool:  dates.New(2026, time.June, 12),
	}
	var updated *model.Kid
	repo := &mockKidRepository{
		findByIDFunc: func(ctx context.Context, familyID, id string) (*model.Kid, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, familyID, id string, kid *model.Kid) error {
			updated = kid
			return nil
		},
	}
	svc := newKidService(repo)

	grade := 4
	result, err := svc.Update(context.Background(), testFamily, existing.ID, &model.KidUpdate{Grade: &grade})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Grade != 4 {
		t.Errorf("expected grade 4, got %d", updated.Grade)
	}
	if updated.Name != "Maya" {
		t.Errorf("expected name untouched, got %q", updated.Name)
	}
	if !updated.LastDayOfSchool.Equal(dates.New(2026, time.June, 12)) {
		t.Errorf("expected school dates untouched, got %v", updated.LastDayOfSchool)
	}
	if result.Grade != 4 {
		t.Errorf("expected returned kid to carry the merge, got %d", result.Grade)
	}
}

func TestKidGetByID_TranslatesNotFound(t *testing.T) {
	repo := &mockKidRepository{
		findByIDFunc: func(ctx context.Context, familyID, id string) (*model.Kid, error) {
			return nil, familyerrors.ErrNotFound
		},
	}
	svc := newKidService(repo)

	_, err := svc.GetByID(context.Background(), testFamily, "507f1f77bcf86cd799439011")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestKidGetByID_TranslatesInvalidID(t *testing.T) {
	repo := &mockKidRepository{
		findByIDFunc: func(ctx context.Context, familyID, id string) (*model.Kid, error) {
			return nil, familyerrors.ErrInvalidID
		},
	}
	svc := newKidService(repo)

	_, err := svc.GetByID(context.Background(), testFamily, "not-an-id")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}
