package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"camplan/pkg/config"
	mongotx "camplan/pkg/db/mongo"
	"camplan/pkg/model"

	familyerrors "camplan/internal/family/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const KidCollection = "Kids"

type KidRepository interface {
	Create(ctx context.Context, kid *model.Kid) error
	FindByID(ctx context.Context, familyID, id string) (*model.Kid, error)
	// FindByFamily returns the family's kids ordered by name.
	FindByFamily(ctx context.Context, familyID string) ([]*model.Kid, error)
	Update(ctx context.Context, familyID, id string, kid *model.Kid) error
	Delete(ctx context.Context, familyID, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoKidRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoKidRepository(cfg *config.Config) KidRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoKidRepository{
		cfg:        cfg,
		collection: db.Collection(KidCollection),
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

func (r *mongoKidRepository) Create(ctx context.Context, kid *model.Kid) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	kid.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, kid)
	if err != nil {
		return fmt.Errorf("failed to create kid: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		kid.ID = oid.Hex()
	}
	return nil
}

func (r *mongoKidRepository) FindByID(ctx context.Context, familyID, id string) (*model.Kid, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", familyerrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "family_id": familyID}

	var kid model.Kid
	err = r.collection.FindOne(ctx, filter).Decode(&kid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, familyerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find kid: %w", err)
	}

	return &kid, nil
}

func (r *mongoKidRepository) FindByFamily(ctx context.Context, familyID string) ([]*model.Kid, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"family_id": familyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find kids: %w", err)
	}
	defer cursor.Close(ctx)

	var kids []*model.Kid
	if err = cursor.All(ctx, &kids); err != nil {
		return nil, fmt.Errorf("failed to decode kids: %w", err)
	}

	return kids, nil
}

func (r *mongoKidRepository) Update(ctx context.Context, familyID, id string, kid *model.Kid) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", familyerrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "family_id": familyID}
	update := bson.M{"$set": bson.M{
		"name":                kid.Name,
		"birthday":            kid.Birthday,
		"grade":               kid.Grade,
		"first_day_of_school": kid.FirstDayOfSchool,
		"last_day_of_school":  kid.LastDayOfSchool,
		"friends":             kid.Friends,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update kid: %w", err)
	}
	if result.MatchedCount == 0 {
		return familyerrors.ErrNotFound
	}
	return nil
}

func (r *mongoKidRepository) Delete(ctx context.Context, familyID, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", familyerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID, "family_id": familyID})
	if err != nil {
		return fmt.Errorf("failed to delete kid: %w", err)
	}
	if result.DeletedCount == 0 {
		return familyerrors.ErrNotFound
	}
	return nil
}

func (r *mongoKidRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
