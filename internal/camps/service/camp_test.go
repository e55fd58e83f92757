package service

import (
	"context"
	"testing"

	campserrors "camplan/internal/camps/errors"
	apperrors "camplan/pkg/errors"
	"camplan/pkg/model"
)

const testFamily = "fam-1"

func newCampService(campRepo *mockCampRepository, sessionRepo *mockSessionRepository, bookings *mockBookingCounter) CampService {
	return NewCampService(campRepo, sessionRepo, bookings, testValidator(), testConfig())
}

func TestCampCreate_SanitizesInput(t *testing.T) {
	var created *model.Camp
	campRepo := &mockCampRepository{
		createFunc: func(ctx context.Context, camp *model.Camp) error {
			camp.ID = "507f1f77bcf86cd799439031"
			created = camp
			return nil
		},
	}
	svc := newCampService(campRepo, &mockSessionRepository{}, &mockBookingCounter{})

	camp := &model.Camp{
		Name:     "  Rec   Center ",
		Location: " Downtown ",
		URL:      "https://reccenter.example.com/camps",
	}
	if err := svc.Create(context.Background(), testFamily, camp); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.FamilyID != testFamily {
		t.Errorf("expected family %q, got %q", testFamily, created.FamilyID)
	}
	if created.Name != "Rec Center" {
		t.Errorf("expected normalized name, got %q", created.Name)
	}
}

func TestCampCreate_RejectsBadURL(t *testing.T) {
	svc := newCampService(&mockCampRepository{}, &mockSessionRepository{}, &mockBookingCounter{})

	camp := &model.Camp{Name: "Rec Center", URL: "not a url"}
	err := svc.Create(context.Background(), testFamily, camp)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCampDelete_CascadesToSessions(t *testing.T) {
	sessions := []*model.Session{
		{ID: "507f1f77bcf86cd799439041", CampID: "507f1f77bcf86cd799439031"},
		{ID: "507f1f77bcf86cd799439042", CampID: "507f1f77bcf86cd799439031"},
	}
	bookings := &mockBookingCounter{}
	var cascaded bool
	sessionRepo := &mockSessionRepository{
		findByCampFunc: func(ctx context.Context, familyID, campID string) ([]*model.Session, error) {
			return sessions, nil
		},
		deleteByCampFunc: func(ctx context.Context, familyID, campID string) (int64, error) {
			cascaded = true
			return 2, nil
		},
	}
	svc := newCampService(&mockCampRepository{}, sessionRepo, bookings)

	if err := svc.Delete(context.Background(), testFamily, "507f1f77bcf86cd799439031"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if !cascaded {
		t.Error("expected sessions to be deleted with the camp")
	}
	if len(bookings.calls) != 1 || len(bookings.calls[0]) != 2 {
		t.Errorf("expected booking check over both sessions, got %v", bookings.calls)
	}
}

func TestCampDelete_BlockedByBookings(t *testing.T) {
	sessionRepo := &mockSessionRepository{
		findByCampFunc: func(ctx context.Context, familyID, campID string) ([]*model.Session, error) {
			return []*model.Session{{ID: "507f1f77bcf86cd799439041"}}, nil
		},
	}
	campRepo := &mockCampRepository{
		deleteFunc: func(ctx context.Context, familyID, id string) error {
			t.Fatal("camp must not be deleted while bookings exist")
			return nil
		},
	}
	svc := newCampService(campRepo, sessionRepo, &mockBookingCounter{count: 3})

	err := svc.Delete(context.Background(), testFamily, "507f1f77bcf86cd799439031")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if appErr.Details["reason"] != apperrors.ReasonHasBookings {
		t.Errorf("expected reason %q, got %v", apperrors.ReasonHasBookings, appErr.Details["reason"])
	}
	if appErr.Details["booking_count"] != int64(3) {
		t.Errorf("expected booking count 3, got %v", appErr.Details["booking_count"])
	}
}

func TestCampGetByID_TranslatesNotFound(t *testing.T) {
	campRepo := &mockCampRepository{
		findByIDFunc: func(ctx context.Context, familyID, id string) (*model.Camp, error) {
			return nil, campserrors.ErrNotFound
		},
	}
	svc := newCampService(campRepo, &mockSessionRepository{}, &mockBookingCounter{})

	_, err := svc.GetByID(context.Background(), testFamily, "507f1f77bcf86cd799439031")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
