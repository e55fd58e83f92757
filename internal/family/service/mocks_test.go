package service

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"camplan/internal/family/validator"
	scheduleservice "camplan/internal/schedule/service"
	"camplan/pkg/config"
	mongotx "camplan/pkg/db/mongo"
	"camplan/pkg/logger"
	"camplan/pkg/model"
)

type mockKidRepository struct {
	createFunc       func(ctx context.Context, kid *model.Kid) error
	findByIDFunc     func(ctx context.Context, familyID, id string) (*model.Kid, error)
	findByFamilyFunc func(ctx context.Context, familyID string) ([]*model.Kid, error)
	updateFunc       func(ctx context.Context, familyID, id string, kid *model.Kid) error
	deleteFunc       func(ctx context.Context, familyID, id string) error
}

func (m *mockKidRepository) Create(ctx context.Context, kid *model.Kid) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, kid)
	}
	kid.ID = "507f1f77bcf86cd799439011"
	return nil
}

func (m *mockKidRepository) FindByID(ctx context.Context, familyID, id string) (*model.Kid, error) {
	return m.findByIDFunc(ctx, familyID, id)
}

func (m *mockKidRepository) FindByFamily(ctx context.Context, familyID string) ([]*model.Kid, error) {
	return m.findByFamilyFunc(ctx, familyID)
}

func (m *mockKidRepository) Update(ctx context.Context, familyID, id string, kid *model.Kid) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, familyID, id, kid)
	}
	return nil
}

func (m *mockKidRepository) Delete(ctx context.Context, familyID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, familyID, id)
	}
	return nil
}

func (m *mockKidRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockTripRepository struct {
	createFunc       func(ctx context.Context, trip *model.Trip) error
	findByIDFunc     func(ctx context.Context, familyID, id string) (*model.Trip, error)
	findByFamilyFunc func(ctx context.Context, familyID string) ([]*model.Trip, error)
	updateFunc       func(ctx context.Context, familyID, id string, trip *model.Trip) error
	deleteFunc       func(ctx context.Context, familyID, id string) error
}

func (m *mockTripRepository) Create(ctx context.Context, trip *model.Trip) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, trip)
	}
	trip.ID = "507f1f77bcf86cd799439021"
	return nil
}

func (m *mockTripRepository) FindByID(ctx context.Context, familyID, id string) (*model.Trip, error) {
	return m.findByIDFunc(ctx, familyID, id)
}

func (m *mockTripRepository) FindByFamily(ctx context.Context, familyID string) ([]*model.Trip, error) {
	return m.findByFamilyFunc(ctx, familyID)
}

func (m *mockTripRepository) Update(ctx context.Context, familyID, id string, trip *model.Trip) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, familyID, id, trip)
	}
	return nil
}

func (m *mockTripRepository) Delete(ctx context.Context, familyID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, familyID, id)
	}
	return nil
}

type mockWeekReblocker struct {
	calls  int
	result *scheduleservice.ReblockResult
	err    error
}

func (m *mockWeekReblocker) Reblock(ctx context.Context, familyID string) (*scheduleservice.ReblockResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &scheduleservice.ReblockResult{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.Discard(),
	}
}

func testValidator() *validator.FamilyValidator {
	return validator.NewFamilyValidator(logger.Discard())
}
