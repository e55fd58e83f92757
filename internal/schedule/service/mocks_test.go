package service

import (
	"context"

	"camplan/internal/schedule/repository"
	"camplan/pkg/calendar"
	"camplan/pkg/config"
	"camplan/pkg/events"
	"camplan/pkg/logger"
	"camplan/pkg/model"

	mongotx "camplan/pkg/db/mongo"

	"go.mongodb.org/mongo-driver/mongo"
)

func testConfig() *config.Config {
	return &config.Config{
		Log:          logger.Discard(),
		CalendarName: "Test Calendar",
	}
}

type mockWeekRepository struct {
	createFunc        func(ctx context.Context, week *model.Week) error
	findByIDFunc      func(ctx context.Context, familyID, id string) (*model.Week, error)
	findByFamilyFunc  func(ctx context.Context, familyID string) ([]*model.Week, error)
	updateBlockedFunc func(ctx context.Context, familyID, id string, blocked bool) error
	deleteByFamFunc   func(ctx context.Context, familyID string) (int64, error)
}

func (m *mockWeekRepository) Create(ctx context.Context, week *model.Week) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, week)
	}
	return nil
}

func (m *mockWeekRepository) FindByID(ctx context.Context, familyID, id string) (*model.Week, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, familyID, id)
	}
	return nil, mongotx.ErrNotFound
}

func (m *mockWeekRepository) FindByFamily(ctx context.Context, familyID string) ([]*model.Week, error) {
	if m.findByFamilyFunc != nil {
		return m.findByFamilyFunc(ctx, familyID)
	}
	return []*model.Week{}, nil
}

func (m *mockWeekRepository) UpdateBlocked(ctx context.Context, familyID, id string, blocked bool) error {
	if m.updateBlockedFunc != nil {
		return m.updateBlockedFunc(ctx, familyID, id, blocked)
	}
	return nil
}

func (m *mockWeekRepository) DeleteByFamily(ctx context.Context, familyID string) (int64, error) {
	if m.deleteByFamFunc != nil {
		return m.deleteByFamFunc(ctx, familyID)
	}
	return 0, nil
}

func (m *mockWeekRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockBookingRepository struct {
	createFunc          func(ctx context.Context, booking *model.Booking) error
	findByIDFunc        func(ctx context.Context, familyID, id string) (*model.Booking, error)
	findByFamilyFunc    func(ctx context.Context, familyID string, limit int, offset int64) ([]*model.Booking, error)
	countByFamilyFunc   func(ctx context.Context, familyID string) (int64, error)
	countBySessionsFunc func(ctx context.Context, familyID string, sessionIDs []string) (int64, error)
	findByGroupFunc     func(ctx context.Context, familyID, groupID string) ([]*model.Booking, error)
	findBySlotFunc      func(ctx context.Context, familyID, kidID, weekID string) ([]*model.Booking, error)
	updateDetailsFunc   func(ctx context.Context, familyID, id string, booking *model.Booking) error
	updateStateFunc     func(ctx context.Context, familyID, id, state string) error
	setCalendarIDFunc   func(ctx context.Context, familyID, id, eventID string) error
	updateGroupMetaFunc func(ctx context.Context, familyID, id string, meta repository.GroupMetaUpdate) error
	deleteFunc          func(ctx context.Context, familyID, id string) error
	deleteByFamFunc     func(ctx context.Context, familyID string) (int64, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, familyID, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, familyID, id)
	}
	return nil, mongotx.ErrNotFound
}

func (m *mockBookingRepository) FindByFamily(ctx context.Context, familyID string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findByFamilyFunc != nil {
		return m.findByFamilyFunc(ctx, familyID, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CountByFamily(ctx context.Context, familyID string) (int64, error) {
	if m.countByFamilyFunc != nil {
		return m.countByFamilyFunc(ctx, familyID)
	}
	return 0, nil
}

func (m *mockBookingRepository) CountBySessions(ctx context.Context, familyID string, sessionIDs []string) (int64, error) {
	if m.countBySessionsFunc != nil {
		return m.countBySessionsFunc(ctx, familyID, sessionIDs)
	}
	return 0, nil
}

func (m *mockBookingRepository) FindByGroup(ctx context.Context, familyID, groupID string) ([]*model.Booking, error) {
	if m.findByGroupFunc != nil {
		return m.findByGroupFunc(ctx, familyID, groupID)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindBySlot(ctx context.Context, familyID, kidID, weekID string) ([]*model.Booking, error) {
	if m.findBySlotFunc != nil {
		return m.findBySlotFunc(ctx, familyID, kidID, weekID)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) UpdateDetails(ctx context.Context, familyID, id string, booking *model.Booking) error {
	if m.updateDetailsFunc != nil {
		return m.updateDetailsFunc(ctx, familyID, id, booking)
	}
	return nil
}

func (m *mockBookingRepository) UpdateState(ctx context.Context, familyID, id, state string) error {
	if m.updateStateFunc != nil {
		return m.updateStateFunc(ctx, familyID, id, state)
	}
	return nil
}

func (m *mockBookingRepository) SetCalendarEventID(ctx context.Context, familyID, id, eventID string) error {
	if m.setCalendarIDFunc != nil {
		return m.setCalendarIDFunc(ctx, familyID, id, eventID)
	}
	return nil
}

func (m *mockBookingRepository) UpdateGroupMeta(ctx context.Context, familyID, id string, meta repository.GroupMetaUpdate) error {
	if m.updateGroupMetaFunc != nil {
		return m.updateGroupMetaFunc(ctx, familyID, id, meta)
	}
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, familyID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, familyID, id)
	}
	return nil
}

func (m *mockBookingRepository) DeleteByFamily(ctx context.Context, familyID string) (int64, error) {
	if m.deleteByFamFunc != nil {
		return m.deleteByFamFunc(ctx, familyID)
	}
	return 0, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockKidSource struct {
	findByIDFunc     func(ctx context.Context, familyID, id string) (*model.Kid, error)
	findByFamilyFunc func(ctx context.Context, familyID string) ([]*model.Kid, error)
}

func (m *mockKidSource) FindByID(ctx context.Context, familyID, id string) (*model.Kid, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, familyID, id)
	}
	return nil, mongotx.ErrNotFound
}

func (m *mockKidSource) FindByFamily(ctx context.Context, familyID string) ([]*model.Kid, error) {
	if m.findByFamilyFunc != nil {
		return m.findByFamilyFunc(ctx, familyID)
	}
	return []*model.Kid{}, nil
}

type mockTripSource struct {
	findByFamilyFunc func(ctx context.Context, familyID string) ([]*model.Trip, error)
}

func (m *mockTripSource) FindByFamily(ctx context.Context, familyID string) ([]*model.Trip, error) {
	if m.findByFamilyFunc != nil {
		return m.findByFamilyFunc(ctx, familyID)
	}
	return []*model.Trip{}, nil
}

type mockSessionSource struct {
	findByIDFunc     func(ctx context.Context, familyID, id string) (*model.Session, error)
	findByFamilyFunc func(ctx context.Context, familyID string) ([]*model.Session, error)
}

func (m *mockSessionSource) FindByID(ctx context.Context, familyID, id string) (*model.Session, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, familyID, id)
	}
	return nil, mongotx.ErrNotFound
}

func (m *mockSessionSource) FindByFamily(ctx context.Context, familyID string) ([]*model.Session, error) {
	if m.findByFamilyFunc != nil {
		return m.findByFamilyFunc(ctx, familyID)
	}
	return []*model.Session{}, nil
}

type mockCampSource struct {
	findByIDFunc func(ctx context.Context, familyID, id string) (*model.Camp, error)
}

func (m *mockCampSource) FindByID(ctx context.Context, familyID, id string) (*model.Camp, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, familyID, id)
	}
	return nil, mongotx.ErrNotFound
}

type mockCalendarStore struct {
	putFunc    func(ctx context.Context, event *calendar.Event) error
	deleteFunc func(ctx context.Context, familyID, uid string) error
	listFunc   func(ctx context.Context, familyID string) ([]*calendar.Event, error)
}

func (m *mockCalendarStore) Put(ctx context.Context, event *calendar.Event) error {
	if m.putFunc != nil {
		return m.putFunc(ctx, event)
	}
	return nil
}

func (m *mockCalendarStore) Delete(ctx context.Context, familyID, uid string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, familyID, uid)
	}
	return nil
}

func (m *mockCalendarStore) ListByFamily(ctx context.Context, familyID string) ([]*calendar.Event, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, familyID)
	}
	return []*calendar.Event{}, nil
}

type mockBookingValidator struct {
	validateCreateFunc func(req *CreateBookingRequest) error
	validateUpdateFunc func(update *model.BookingUpdate) error
}

func (m *mockBookingValidator) ValidateCreate(req *CreateBookingRequest) error {
	if m.validateCreateFunc != nil {
		return m.validateCreateFunc(req)
	}
	return nil
}

func (m *mockBookingValidator) ValidateUpdate(update *model.BookingUpdate) error {
	if m.validateUpdateFunc != nil {
		return m.validateUpdateFunc(update)
	}
	return nil
}

// recordingPublisher captures published events in order.
type recordingPublisher struct {
	events []events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.BookingEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
