package service

import (
	"context"
	"errors"
	"time"

	scheduleerrors "camplan/internal/schedule/errors"
	"camplan/internal/schedule/repository"
	"camplan/pkg/calendar"
	"camplan/pkg/config"
	"camplan/pkg/dates"
	apperrors "camplan/pkg/errors"
	"camplan/pkg/events"
	"camplan/pkg/model"
)

const insufficientDataWarning = "Kids must have school dates set to calculate weeks."

// RecalculationResult reports a full week regeneration. An empty Weeks
// slice with a warning means there was not enough school-date data; that
// is not an error.
type RecalculationResult struct {
	Weeks           []*model.Week `json:"weeks"`
	DeletedBookings int64         `json:"deleted_bookings,omitempty"`
	Warnings        []string      `json:"warnings,omitempty"`
}

type ReblockResult struct {
	TotalWeeks   int `json:"total_weeks"`
	UpdatedWeeks int `json:"updated_weeks"`
}

type WeekService interface {
	List(ctx context.Context, familyID string) ([]*model.Week, error)
	// Recalculate deletes and regenerates the family's weeks from kid
	// school dates. It refuses to orphan bookings: when bookings exist
	// the call fails with a conflict unless force is set, in which case
	// every booking group is deleted first.
	Recalculate(ctx context.Context, familyID string, force bool) (*RecalculationResult, error)
	// Reblock recomputes is_blocked in place from the current trips,
	// preserving week identity and every referencing booking.
	Reblock(ctx context.Context, familyID string) (*ReblockResult, error)
	// SessionsForWeek lists the sessions whose date span makes them
	// relevant to the given week.
	SessionsForWeek(ctx context.Context, familyID, weekID string) ([]*model.Session, error)
}

type weekService struct {
	weekRepo    repository.WeekRepository
	bookingRepo repository.BookingRepository
	kids        KidSource
	trips       TripSource
	sessions    SessionSource
	calendars   calendar.Store
	publisher   events.Publisher
	cfg         *config.Config
}

func NewWeekService(
	weekRepo repository.WeekRepository,
	bookingRepo repository.BookingRepository,
	kids KidSource,
	trips TripSource,
	sessions SessionSource,
	calendars calendar.Store,
	publisher events.Publisher,
	cfg *config.Config,
) WeekService {
	return &weekService{
		weekRepo:    weekRepo,
		bookingRepo: bookingRepo,
		kids:        kids,
		trips:       trips,
		sessions:    sessions,
		calendars:   calendars,
		publisher:   publisher,
		cfg:         cfg,
	}
}

func (s *weekService) List(ctx context.Context, familyID string) ([]*model.Week, error) {
	weeks, err := s.weekRepo.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list weeks", err)
	}
	return weeks, nil
}

func (s *weekService) Recalculate(ctx context.Context, familyID string, force bool) (*RecalculationResult, error) {
	kids, err := s.kids.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load kids", err)
	}

	summerStart, summerEnd, ok := summerBounds(kids)
	if !ok {
		s.cfg.Log.Warn("Week recalculation skipped, school dates missing", "family_id", familyID)
		return &RecalculationResult{Weeks: []*model.Week{}, Warnings: []string{insufficientDataWarning}}, nil
	}

	bookingCount, err := s.bookingRepo.CountByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to count bookings", err)
	}

	result := &RecalculationResult{}

	if bookingCount > 0 {
		if !force {
			return nil, apperrors.ConflictWithReason(
				"Recalculating weeks would orphan existing bookings. Delete them first or pass force=true.",
				apperrors.ReasonHasBookings,
				map[string]any{"booking_count": bookingCount},
			)
		}
		deleted, err := s.deleteAllBookings(ctx, familyID)
		if err != nil {
			return nil, err
		}
		result.DeletedBookings = deleted
	}

	trips, err := s.trips.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load trips", err)
	}

	if _, err := s.weekRepo.DeleteByFamily(ctx, familyID); err != nil {
		return nil, apperrors.Internal("Failed to delete existing weeks", err)
	}

	weeks := generateWeeks(familyID, summerStart, summerEnd, trips)
	for _, week := range weeks {
		if err := s.weekRepo.Create(ctx, week); err != nil {
			return nil, apperrors.Internal("Failed to create week", err)
		}
	}
	result.Weeks = weeks

	s.publishRecalculated(ctx, familyID, len(weeks))

	s.cfg.Log.Info("Weeks recalculated",
		"family_id", familyID,
		"weeks", len(weeks),
		"deleted_bookings", result.DeletedBookings,
	)
	return result, nil
}

func (s *weekService) Reblock(ctx context.Context, familyID string) (*ReblockResult, error) {
	weeks, err := s.weekRepo.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list weeks", err)
	}

	trips, err := s.trips.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load trips", err)
	}

	result := &ReblockResult{TotalWeeks: len(weeks)}
	for _, week := range weeks {
		blocked := anyTripBlocks(trips, week)
		if blocked == week.IsBlocked {
			continue
		}
		if err := s.weekRepo.UpdateBlocked(ctx, familyID, week.ID, blocked); err != nil {
			return nil, apperrors.Internal("Failed to update week blocking", err)
		}
		week.IsBlocked = blocked
		result.UpdatedWeeks++
	}

	if result.UpdatedWeeks > 0 {
		s.cfg.Log.Info("Week blocking updated",
			"family_id", familyID,
			"updated", result.UpdatedWeeks,
		)
	}
	return result, nil
}

func (s *weekService) SessionsForWeek(ctx context.Context, familyID, weekID string) ([]*model.Session, error) {
	week, err := s.weekRepo.FindByID(ctx, familyID, weekID)
	if err != nil {
		if errors.Is(err, scheduleerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Week", weekID)
		}
		if errors.Is(err, scheduleerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid week ID format")
		}
		return nil, apperrors.Internal("Failed to load week", err)
	}

	sessions, err := s.sessions.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load sessions", err)
	}

	relevant := make([]*model.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.OverlapsWeek(week) {
			relevant = append(relevant, session)
		}
	}
	return relevant, nil
}

// deleteAllBookings removes every booking for the family along with their
// calendar events. Calendar failures do not stop the pass.
func (s *weekService) deleteAllBookings(ctx context.Context, familyID string) (int64, error) {
	bookings, err := s.bookingRepo.FindByFamily(ctx, familyID, 0, 0)
	if err != nil {
		return 0, apperrors.Internal("Failed to load bookings", err)
	}

	for _, booking := range bookings {
		if booking.CalendarEventID == "" {
			continue
		}
		if err := s.calendars.Delete(ctx, familyID, booking.CalendarEventID); err != nil {
			s.cfg.Log.Warn("Failed to delete calendar event during recalculation",
				"family_id", familyID,
				"booking_id", booking.ID,
				"event_id", booking.CalendarEventID,
				"error", err,
			)
		}
	}

	deleted, err := s.bookingRepo.DeleteByFamily(ctx, familyID)
	if err != nil {
		return 0, apperrors.Internal("Failed to delete bookings", err)
	}
	return deleted, nil
}

func (s *weekService) publishRecalculated(ctx context.Context, familyID string, weekCount int) {
	err := s.publisher.Publish(ctx, events.BookingEvent{
		Type:       events.TypeWeeksRecalculated,
		FamilyID:   familyID,
		TotalWeeks: weekCount,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish recalculation event", "family_id", familyID, "error", err)
	}
}

// summerBounds derives the summer window from the kids' school years:
// summer opens after the earliest last day of school and closes at the
// latest first day. Kids without dates don't contribute.
func summerBounds(kids []*model.Kid) (start, end dates.Date, ok bool) {
	for _, kid := range kids {
		if !kid.LastDayOfSchool.IsZero() {
			if start.IsZero() || kid.LastDayOfSchool.Before(start) {
				start = kid.LastDayOfSchool
			}
		}
		if !kid.FirstDayOfSchool.IsZero() {
			if end.IsZero() || kid.FirstDayOfSchool.After(end) {
				end = kid.FirstDayOfSchool
			}
		}
	}
	if start.IsZero() || end.IsZero() {
		return dates.Date{}, dates.Date{}, false
	}
	return start, end, true
}

// generateWeeks lays out consecutive Monday-to-Friday weeks starting at
// the first Monday strictly after the summer start, stopping before any
// week whose Friday reaches the first day of school.
func generateWeeks(familyID string, summerStart, summerEnd dates.Date, trips []*model.Trip) []*model.Week {
	weeks := []*model.Week{}
	weekNumber := 1

	for monday := dates.NextMonday(summerStart); ; monday = monday.AddDays(7) {
		friday := monday.AddDays(4)
		if !friday.Before(summerEnd) {
			break
		}

		week := &model.Week{
			FamilyID:   familyID,
			WeekNumber: weekNumber,
			StartDate:  monday,
			EndDate:    friday,
		}
		week.IsBlocked = anyTripBlocks(trips, week)

		weeks = append(weeks, week)
		weekNumber++
	}

	return weeks
}

func anyTripBlocks(trips []*model.Trip, week *model.Week) bool {
	for _, trip := range trips {
		if trip.Blocks(week.StartDate, week.EndDate) {
			return true
		}
	}
	return false
}
