package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"camplan/pkg/config"
	"camplan/pkg/model"

	campserrors "camplan/internal/camps/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SessionCollection = "Sessions"

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	// CreateMany inserts a batch of sessions. All rows get ids assigned.
	CreateMany(ctx context.Context, sessions []*model.Session) error
	FindByID(ctx context.Context, familyID, id string) (*model.Session, error)
	// FindByFamily returns the family's sessions ordered by start date,
	// undated sessions last.
	FindByFamily(ctx context.Context, familyID string) ([]*model.Session, error)
	FindByCamp(ctx context.Context, familyID, campID string) ([]*model.Session, error)
	Update(ctx context.Context, familyID, id string, session *model.Session) error
	Delete(ctx context.Context, familyID, id string) error
	DeleteByCamp(ctx context.Context, familyID, campID string) (int64, error)
}

type mongoSessionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSessionRepository(cfg *config.Config) SessionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSessionRepository{
		cfg:        cfg,
		collection: db.Collection(SessionCollection),
	}
}

func (r *mongoSessionRepository) Create(ctx context.Context, session *model.Session) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	session.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid.Hex()
	}
	return nil
}

func (r *mongoSessionRepository) CreateMany(ctx context.Context, sessions []*model.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]interface{}, 0, len(sessions))
	for _, session := range sessions {
		session.CreatedAt = now
		docs = append(docs, session)
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to create sessions: %w", err)
	}

	for i, insertedID := range result.InsertedIDs {
		if oid, ok := insertedID.(primitive.ObjectID); ok && i < len(sessions) {
			sessions[i].ID = oid.Hex()
		}
	}
	return nil
}

func (r *mongoSessionRepository) FindByID(ctx context.Context, familyID, id string) (*model.Session, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", campserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "family_id": familyID}

	var session model.Session
	err = r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, campserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return &session, nil
}

func (r *mongoSessionRepository) FindByFamily(ctx context.Context, familyID string) ([]*model.Session, error) {
	return r.findAll(ctx, bson.M{"family_id": familyID})
}

func (r *mongoSessionRepository) FindByCamp(ctx context.Context, familyID, campID string) ([]*model.Session, error) {
	return r.findAll(ctx, bson.M{"family_id": familyID, "camp_id": campID})
}

func (r *mongoSessionRepository) findAll(ctx context.Context, filter bson.M) ([]*model.Session, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "session_start_date", Value: 1},
		{Key: "name", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}

	return sessions, nil
}

func (r *mongoSessionRepository) Update(ctx context.Context, familyID, id string, session *model.Session) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", campserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "family_id": familyID}
	update := bson.M{"$set": bson.M{
		"name":                   session.Name,
		"session_start_date":     session.StartDate,
		"session_end_date":       session.EndDate,
		"duration_weeks":         session.DurationWeeks,
		"age_min":                session.AgeMin,
		"age_max":                session.AgeMax,
		"grade_min":              session.GradeMin,
		"grade_max":              session.GradeMax,
		"start_time":             session.StartTime,
		"end_time":               session.EndTime,
		"cost":                   session.Cost,
		"early_care_available":   session.EarlyCareAvailable,
		"early_care_cost":        session.EarlyCareCost,
		"late_care_available":    session.LateCareAvailable,
		"late_care_cost":         session.LateCareCost,
		"url":                    session.URL,
		"registration_open_date": session.RegistrationOpenDate,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if result.MatchedCount == 0 {
		return campserrors.ErrNotFound
	}
	return nil
}

func (r *mongoSessionRepository) Delete(ctx context.Context, familyID, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", campserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID, "family_id": familyID})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.DeletedCount == 0 {
		return campserrors.ErrNotFound
	}
	return nil
}

func (r *mongoSessionRepository) DeleteByCamp(ctx context.Context, familyID, campID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"family_id": familyID, "camp_id": campID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}
	return result.DeletedCount, nil
}
