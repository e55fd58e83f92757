package service

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"camplan/internal/camps/validator"
	"camplan/pkg/config"
	mongotx "camplan/pkg/db/mongo"
	"camplan/pkg/logger"
	"camplan/pkg/model"
)

type mockCampRepository struct {
	createFunc       func(ctx context.Context, camp *model.Camp) error
	findByIDFunc     func(ctx context.Context, familyID, id string) (*model.Camp, error)
	findByFamilyFunc func(ctx context.Context, familyID string) ([]*model.Camp, error)
	updateFunc       func(ctx context.Context, familyID, id string, camp *model.Camp) error
	deleteFunc       func(ctx context.Context, familyID, id string) error
}

func (m *mockCampRepository) Create(ctx context.Context, camp *model.Camp) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, camp)
	}
	camp.ID = "507f1f77bcf86cd799439031"
	return nil
}

func (m *mockCampRepository) FindByID(ctx context.Context, familyID, id string) (*model.Camp, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, familyID, id)
	}
	return &model.Camp{ID: id, FamilyID: familyID, Name: "Rec Center"}, nil
}

func (m *mockCampRepository) FindByFamily(ctx context.Context, familyID string) ([]*model.Camp, error) {
	return m.findByFamilyFunc(ctx, familyID)
}

func (m *mockCampRepository) Update(ctx context.Context, familyID, id string, camp *model.Camp) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, familyID, id, camp)
	}
	return nil
}

func (m *mockCampRepository) Delete(ctx context.Context, familyID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, familyID, id)
	}
	return nil
}

func (m *mockCampRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockSessionRepository struct {
	createFunc       func(ctx context.Context, session *model.Session) error
	createManyFunc   func(ctx context.Context, sessions []*model.Session) error
	findByIDFunc     func(ctx context.Context, familyID, id string) (*model.Session, error)
	findByFamilyFunc func(ctx context.Context, familyID string) ([]*model.Session, error)
	findByCampFunc   func(ctx context.Context, familyID, campID string) ([]*model.Session, error)
	updateFunc       func(ctx context.Context, familyID, id string, session *model.Session) error
	deleteFunc       func(ctx context.Context, familyID, id string) error
	deleteByCampFunc func(ctx context.Context, familyID, campID string) (int64, error)
}

func (m *mockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, session)
	}
	session.ID = "507f1f77bcf86cd799439041"
	return nil
}

func (m *mockSessionRepository) CreateMany(ctx context.Context, sessions []*model.Session) error {
	if m.createManyFunc != nil {
		return m.createManyFunc(ctx, sessions)
	}
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, familyID, id string) (*model.Session, error) {
	return m.findByIDFunc(ctx, familyID, id)
}

func (m *mockSessionRepository) FindByFamily(ctx context.Context, familyID string) ([]*model.Session, error) {
	return m.findByFamilyFunc(ctx, familyID)
}

func (m *mockSessionRepository) FindByCamp(ctx context.Context, familyID, campID string) ([]*model.Session, error) {
	if m.findByCampFunc != nil {
		return m.findByCampFunc(ctx, familyID, campID)
	}
	return nil, nil
}

func (m *mockSessionRepository) Update(ctx context.Context, familyID, id string, session *model.Session) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, familyID, id, session)
	}
	return nil
}

func (m *mockSessionRepository) Delete(ctx context.Context, familyID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, familyID, id)
	}
	return nil
}

func (m *mockSessionRepository) DeleteByCamp(ctx context.Context, familyID, campID string) (int64, error) {
	if m.deleteByCampFunc != nil {
		return m.deleteByCampFunc(ctx, familyID, campID)
	}
	return 0, nil
}

type mockBookingCounter struct {
	count int64
	err   error
	calls [][]string
}

func (m *mockBookingCounter) CountBySessions(ctx context.Context, familyID string, sessionIDs []string) (int64, error) {
	m.calls = append(m.calls, sessionIDs)
	return m.count, m.err
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.Discard(),
	}
}

func testValidator() *validator.CampValidator {
	return validator.NewCampValidator(logger.Discard())
}
