package service

import (
	"context"
	"testing"
	"time"

	campserrors "camplan/internal/camps/errors"
	"camplan/pkg/dates"
	apperrors "camplan/pkg/errors"
	"camplan/pkg/model"
)

const testCamp = "507f1f77bcf86cd799439031"

func newSessionService(sessionRepo *mockSessionRepository, campRepo *mockCampRepository, bookings *mockBookingCounter) SessionService {
	return NewSessionService(sessionRepo, campRepo, bookings, testValidator(), testConfig())
}

func TestSessionCreate_DerivesDurationFromDates(t *testing.T) {
	var created *model.Session
	sessionRepo := &mockSessionRepository{
		createFunc: func(ctx context.Context, session *model.Session) error {
			session.ID = "507f1f77bcf86cd799439041"
			created = session
			return nil
		},
	}
	svc := newSessionService(sessionRepo, &mockCampRepository{}, &mockBookingCounter{})

	session := &model.Session{
		Name:          "Robotics",
		StartDate:     dates.New(2026, time.June, 15),
		EndDate:       dates.New(2026, time.June, 26),
		DurationWeeks: 7,
	}
	if err := svc.Create(context.Background(), testFamily, testCamp, session); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.DurationWeeks != 2 {
		t.Errorf("expected dates to override duration with 2 weeks, got %d", created.DurationWeeks)
	}
	if created.CampID != testCamp {
		t.Errorf("expected camp %q, got %q", testCamp, created.CampID)
	}
}

func TestSessionCreate_DefaultsToOneWeek(t *testing.T) {
	var created *model.Session
	sessionRepo := &mockSessionRepository{
		createFunc: func(ctx context.Context, session *model.Session) error {
			created = session
			return nil
		},
	}
	svc := newSessionService(sessionRepo, &mockCampRepository{}, &mockBookingCounter{})

	if err := svc.Create(context.Background(), testFamily, testCamp, &model.Session{Name: "Art"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.DurationWeeks != 1 {
		t.Errorf("expected default duration of 1 week, got %d", created.DurationWeeks)
	}
}

func TestSessionCreate_KeepsExplicitDurationWithoutDates(t *testing.T) {
	var created *model.Session
	sessionRepo := &mockSessionRepository{
		createFunc: func(ctx context.Context, session *model.Session) error {
			created = session
			return nil
		},
	}
	svc := newSessionService(sessionRepo, &mockCampRepository{}, &mockBookingCounter{})

	session := &model.Session{Name: "Theater Intensive", DurationWeeks: 3}
	if err := svc.Create(context.Background(), testFamily, testCamp, session); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.DurationWeeks != 3 {
		t.Errorf("expected duration 3, got %d", created.DurationWeeks)
	}
}

func TestSessionCreate_RejectsBadStartTime(t *testing.T) {
	svc := newSessionService(&mockSessionRepository{}, &mockCampRepository{}, &mockBookingCounter{})

	session := &model.Session{Name: "Robotics", StartTime: "9am"}
	err := svc.Create(context.Background(), testFamily, testCamp, session)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSessionCreate_UnknownCamp(t *testing.T) {
	campRepo := &mockCampRepository{
		findByIDFunc: func(ctx context.Context, familyID, id string) (*model.Camp, error) {
			return nil, campserrors.ErrNotFound
		},
	}
	svc := newSessionService(&mockSessionRepository{}, campRepo, &mockBookingCounter{})

	err := svc.Create(context.Background(), testFamily, testCamp, &model.Session{Name: "Robotics"})
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestSessionCreateBulk_PartialSuccess(t *testing.T) {
	var inserted []*model.Session
	sessionRepo := &mockSessionRepository{
		createManyFunc: func(ctx context.Context, sessions []*model.Session) error {
			inserted = sessions
			return nil
		},
	}
	svc := newSessionService(sessionRepo, &mockCampRepository{}, &mockBookingCounter{})

	rows := []*model.Session{
		{Name: "Robotics", StartTime: "09:00", EndTime: "15:30"},
		{Name: ""},
		{Name: "Art", StartTime: "late morning"},
		{Name: "Swim"},
	}
	result, err := svc.CreateBulk(context.Background(), testFamily, testCamp, rows)
	if err != nil {
		t.Fatalf("CreateBulk returned error: %v", err)
	}

	if len(result.Created) != 2 {
		t.Fatalf("expected 2 created, got %d", len(result.Created))
	}
	if len(inserted) != 2 {
		t.Fatalf("expected 2 inserted, got %d", len(inserted))
	}
	if len(result.Rejected) != 2 {
		t.Fatalf("expected 2 rejected, got %d", len(result.Rejected))
	}
	if result.Rejected[0].Index != 1 || result.Rejected[1].Index != 2 {
		t.Errorf("expected rejection indexes 1 and 2, got %v", result.Rejected)
	}
}

func TestSessionCreateBulk_EmptyInput(t *testing.T) {
	svc := newSessionService(&mockSessionRepository{}, &mockCampRepository{}, &mockBookingCounter{})

	_, err := svc.CreateBulk(context.Background(), testFamily, testCamp, nil)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestSessionUpdate_RederivesDuration(t *testing.T) {
	existing := &model.Session{
		ID:            "507f1f77bcf86cd799439041",
		FamilyID:      testFamily,
		CampID:        testCamp,
		Name:          "Robotics",
		StartDate:     dates.New(2026, time.June, 15),
		EndDate:       dates.New(2026, time.June, 19),
		DurationWeeks: 1,
	}
	var updated *model.Session
	sessionRepo := &mockSessionRepository{
		findByIDFunc: func(ctx context.Context, familyID, id string) (*model.Session, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, familyID, id string, session *model.Session) error {
			updated = session
			return nil
		},
	}
	svc := newSessionService(sessionRepo, &mockCampRepository{}, &mockBookingCounter{})

	newEnd := dates.New(2026, time.July, 3)
	_, err := svc.Update(context.Background(), testFamily, existing.ID, &model.SessionUpdate{EndDate: &newEnd})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.DurationWeeks != 3 {
		t.Errorf("expected duration rederived to 3 weeks, got %d", updated.DurationWeeks)
	}
}

func TestSessionDelete_BlockedByBookings(t *testing.T) {
	svc := newSessionService(&mockSessionRepository{}, &mockCampRepository{}, &mockBookingCounter{count: 1})

	err := svc.Delete(context.Background(), testFamily, "507f1f77bcf86cd799439041")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if appErr.Details["reason"] != apperrors.ReasonHasBookings {
		t.Errorf("expected reason %q, got %v", apperrors.ReasonHasBookings, appErr.Details["reason"])
	}
}

func TestSessionDelete_AllowedWithoutBookings(t *testing.T) {
	var deleted bool
	sessionRepo := &mockSessionRepository{
		deleteFunc: func(ctx context.Context, familyID, id string) error {
			deleted = true
			return nil
		},
	}
	svc := newSessionService(sessionRepo, &mockCampRepository{}, &mockBookingCounter{})

	if err := svc.Delete(context.Background(), testFamily, "507f1f77bcf86cd799439041"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Error("expected session to be deleted")
	}
}
