package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"camplan/pkg/config"
	"camplan/pkg/model"

	familyerrors "camplan/internal/family/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const TripCollection = "Trips"

type TripRepository interface {
	Create(ctx context.Context, trip *model.Trip) error
	FindByID(ctx context.Context, familyID, id string) (*model.Trip, error)
	// FindByFamily returns the family's trips ordered by start date.
	FindByFamily(ctx context.Context, familyID string) ([]*model.Trip, error)
	Update(ctx context.Context, familyID, id string, trip *model.Trip) error
	Delete(ctx context.Context, familyID, id string) error
}

type mongoTripRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTripRepository(cfg *config.Config) TripRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTripRepository{
		cfg:        cfg,
		collection: db.Collection(TripCollection),
	}
}

func (r *mongoTripRepository) Create(ctx context.Context, trip *model.Trip) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	trip.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, trip)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		trip.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTripRepository) FindByID(ctx context.Context, familyID, id string) (*model.Trip, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", familyerrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "family_id": familyID}

	var trip model.Trip
	err = r.collection.FindOne(ctx, filter).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, familyerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}

	return &trip, nil
}

func (r *mongoTripRepository) FindByFamily(ctx context.Context, familyID string) ([]*model.Trip, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"family_id": familyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find trips: %w", err)
	}
	defer cursor.Close(ctx)

	var trips []*model.Trip
	if err = cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}

	return trips, nil
}

func (r *mongoTripRepository) Update(ctx context.Context, familyID, id string, trip *model.Trip) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", familyerrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "family_id": familyID}
	update := bson.M{"$set": bson.M{
		"name":       trip.Name,
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate,
		"notes":      trip.Notes,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if result.MatchedCount == 0 {
		return familyerrors.ErrNotFound
	}
	return nil
}

func (r *mongoTripRepository) Delete(ctx context.Context, familyID, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", familyerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID, "family_id": familyID})
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if result.DeletedCount == 0 {
		return familyerrors.ErrNotFound
	}
	return nil
}
