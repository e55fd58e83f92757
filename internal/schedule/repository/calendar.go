package repository

import (
	"context"
	"fmt"
	"time"

	"camplan/pkg/calendar"
	"camplan/pkg/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CalendarEventCollection = "CalendarEvents"

type mongoCalendarStore struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCalendarStore(cfg *config.Config) calendar.Store {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCalendarStore{
		cfg:        cfg,
		collection: db.Collection(CalendarEventCollection),
	}
}

func (r *mongoCalendarStore) Put(ctx context.Context, event *calendar.Event) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": event.UID}, event, opts)
	if err != nil {
		return fmt.Errorf("failed to store calendar event: %w", err)
	}
	return nil
}

func (r *mongoCalendarStore) Delete(ctx context.Context, familyID, uid string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": uid, "family_id": familyID})
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}

func (r *mongoCalendarStore) ListByFamily(ctx context.Context, familyID string) ([]*calendar.Event, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"family_id": familyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*calendar.Event
	if err = cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode calendar events: %w", err)
	}
	return events, nil
}
