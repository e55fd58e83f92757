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

const BookingCollection = "Bookings"

// GroupMetaUpdate carries the legacy-repair fields. Only non-nil fields
// are written, which keeps the repair pass idempotent.
type GroupMetaUpdate struct {
	BookingGroupID *string
	WeekOfSession  *int
	TotalWeeks     *int
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, familyID, id string) (*model.Booking, error)
	FindByFamily(ctx context.Context, familyID string, limit int, offset int64) ([]*model.Booking, error)
	CountByFamily(ctx context.Context, familyID string) (int64, error)
	// CountBySessions counts bookings referencing any of the sessions,
	// used to guard camp and session deletion.
	CountBySessions(ctx context.Context, familyID string, sessionIDs []string) (int64, error)
	FindByGroup(ctx context.Context, familyID, groupID string) ([]*model.Booking, error)
	// FindBySlot returns every booking for one kid in one week,
	// regardless of state or group.
	FindBySlot(ctx context.Context, familyID, kidID, weekID string) ([]*model.Booking, error)
	UpdateDetails(ctx context.Context, familyID, id string, booking *model.Booking) error
	UpdateState(ctx context.Context, familyID, id, state string) error
	SetCalendarEventID(ctx context.Context, familyID, id, eventID string) error
	UpdateGroupMeta(ctx context.Context, familyID, id string, meta GroupMetaUpdate) error
	Delete(ctx context.Context, familyID, id string) error
	DeleteByFamily(ctx context.Context, familyID string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(BookingCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, familyID, id string) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", scheduleerrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID, "family_id": familyID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, scheduleerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindByFamily(ctx context.Context, familyID string, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"family_id": familyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) CountByFamily(ctx context.Context, familyID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"family_id": familyID})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *mongoBookingRepository) CountBySessions(ctx context.Context, familyID string, sessionIDs []string) (int64, error) {
	if len(sessionIDs) == 0 {
		return 0, nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"family_id":  familyID,
		"session_id": bson.M{"$in": sessionIDs},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *mongoBookingRepository) FindByGroup(ctx context.Context, familyID, groupID string) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"family_id": familyID, "booking_group_id": groupID}
	opts := options.Find().SetSort(bson.D{{Key: "week_of_session", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking group: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode booking group: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) FindBySlot(ctx context.Context, familyID, kidID, weekID string) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"family_id": familyID,
		"kid_id":    kidID,
		"week_id":   weekID,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings for slot: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode slot bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) UpdateDetails(ctx context.Context, familyID, id string, booking *model.Booking) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", scheduleerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"preference_order":  booking.PreferenceOrder,
			"friends_attending": booking.Friends,
			"uses_early_care":   booking.UsesEarlyCare,
			"uses_late_care":    booking.UsesLateCare,
			"notes":             booking.Notes,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID, "family_id": familyID}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return scheduleerrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) UpdateState(ctx context.Context, familyID, id, state string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", scheduleerrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "family_id": familyID},
		bson.M{"$set": bson.M{"state": state}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking state: %w", err)
	}
	if result.MatchedCount == 0 {
		return scheduleerrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) SetCalendarEventID(ctx context.Context, familyID, id, eventID string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", scheduleerrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{"calendar_event_id": eventID}}
	if eventID == "" {
		update = bson.M{"$unset": bson.M{"calendar_event_id": ""}}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID, "family_id": familyID}, update)
	if err != nil {
		return fmt.Errorf("failed to set calendar event id: %w", err)
	}
	if result.MatchedCount == 0 {
		return scheduleerrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) UpdateGroupMeta(ctx context.Context, familyID, id string, meta GroupMetaUpdate) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", scheduleerrors.ErrInvalidID, id)
	}

	set := bson.M{}
	if meta.BookingGroupID != nil {
		set["booking_group_id"] = *meta.BookingGroupID
	}
	if meta.WeekOfSession != nil {
		set["week_of_session"] = *meta.WeekOfSession
	}
	if meta.TotalWeeks != nil {
		set["total_weeks"] = *meta.TotalWeeks
	}
	if len(set) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID, "family_id": familyID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking group metadata: %w", err)
	}
	if result.MatchedCount == 0 {
		return scheduleerrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, familyID, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", scheduleerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID, "family_id": familyID})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return scheduleerrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) DeleteByFamily(ctx context.Context, familyID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"family_id": familyID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
