package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"camplan/pkg/config"
	mongotx "camplan/pkg/db/mongo"
	"camplan/pkg/model"

	campserrors "camplan/internal/camps/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CampCollection = "Camps"

type CampRepository interface {
	Create(ctx context.Context, camp *model.Camp) error
	FindByID(ctx context.Context, familyID, id string) (*model.Camp, error)
	// FindByFamily returns the family's camps ordered by name.
	FindByFamily(ctx context.Context, familyID string) ([]*model.Camp, error)
	Update(ctx context.Context, familyID, id string, camp *model.Camp) error
	Delete(ctx context.Context, familyID, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoCampRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoCampRepository(cfg *config.Config) CampRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCampRepository{
		cfg:        cfg,
		collection: db.Collection(CampCollection),
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

func (r *mongoCampRepository) Create(ctx context.Context, camp *model.Camp) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	camp.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, camp)
	if err != nil {
		return fmt.Errorf("failed to create camp: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		camp.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCampRepository) FindByID(ctx context.Context, familyID, id string) (*model.Camp, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", campserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "family_id": familyID}

	var camp model.Camp
	err = r.collection.FindOne(ctx, filter).Decode(&camp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, campserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find camp: %w", err)
	}

	return &camp, nil
}

func (r *mongoCampRepository) FindByFamily(ctx context.Context, familyID string) ([]*model.Camp, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"family_id": familyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find camps: %w", err)
	}
	defer cursor.Close(ctx)

	var camps []*model.Camp
	if err = cursor.All(ctx, &camps); err != nil {
		return nil, fmt.Errorf("failed to decode camps: %w", err)
	}

	return camps, nil
}

func (r *mongoCampRepository) Update(ctx context.Context, familyID, id string, camp *model.Camp) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", campserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "family_id": familyID}
	update := bson.M{"$set": bson.M{
		"name":     camp.Name,
		"location": camp.Location,
		"url":      camp.URL,
		"notes":    camp.Notes,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update camp: %w", err)
	}
	if result.MatchedCount == 0 {
		return campserrors.ErrNotFound
	}
	return nil
}

func (r *mongoCampRepository) Delete(ctx context.Context, familyID, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", campserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID, "family_id": familyID})
	if err != nil {
		return fmt.Errorf("failed to delete camp: %w", err)
	}
	if result.DeletedCount == 0 {
		return campserrors.ErrNotFound
	}
	return nil
}

func (r *mongoCampRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
