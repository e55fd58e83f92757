package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"camplan/pkg/config"
	mongotx "camplan/pkg/db/mongo"
	"camplan/pkg/model"

	scheduleerrors "camplan/internal/schedule/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const WeekCollection = "Weeks"

type WeekRepository interface {
	Create(ctx context.Context, week *model.Week) error
	FindByID(ctx context.Context, familyID, id string) (*model.Week, error)
	// FindByFamily returns the family's weeks ordered by week number.
	FindByFamily(ctx context.Context, familyID string) ([]*model.Week, error)
	UpdateBlocked(ctx context.Context, familyID, id string, blocked bool) error
	DeleteByFamily(ctx context.Context, familyID string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoWeekRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoWeekRepository(cfg *config.Config) WeekRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoWeekRepository{
		cfg:        cfg,
		collection: db.Collection(WeekCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction; a SessionContext cannot be wrapped without breaking
// transaction semantics.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoWeekRepository) Create(ctx context.Context, week *model.Week) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	week.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, week)
	if err != nil {
		return fmt.Errorf("failed to create week: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		week.ID = oid.Hex()
	}
	return nil
}

func (r *mongoWeekRepository) FindByID(ctx context.Context, familyID, id string) (*model.Week, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", scheduleerrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "family_id": familyID}

	var week model.Week
	err = r.collection.FindOne(ctx, filter).Decode(&week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, scheduleerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find week: %w", err)
	}

	return &week, nil
}

func (r *mongoWeekRepository) FindByFamily(ctx context.Context, familyID string) ([]*model.Week, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "week_number", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"family_id": familyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find weeks: %w", err)
	}
	defer cursor.Close(ctx)

	var weeks []*model.Week
	if err = cursor.All(ctx, &weeks); err != nil {
		return nil, fmt.Errorf("failed to decode weeks: %w", err)
	}

	return weeks, nil
}

func (r *mongoWeekRepository) UpdateBlocked(ctx context.Context, familyID, id string, blocked bool) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", scheduleerrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "family_id": familyID}
	update := bson.M{"$set": bson.M{"is_blocked": blocked}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update week: %w", err)
	}
	if result.MatchedCount == 0 {
		return scheduleerrors.ErrNotFound
	}
	return nil
}

func (r *mongoWeekRepository) DeleteByFamily(ctx context.Context, familyID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"family_id": familyID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete weeks: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoWeekRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
