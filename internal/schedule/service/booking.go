package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	scheduleerrors "camplan/internal/schedule/errors"
	"camplan/internal/schedule/repository"
	"camplan/pkg/calendar"
	"camplan/pkg/config"
	apperrors "camplan/pkg/errors"
	"camplan/pkg/events"
	"camplan/pkg/model"
	"camplan/pkg/sanitizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateBookingRequest asks for a kid to attend a session starting at a
// given week. Multi-week sessions claim consecutive weeks automatically.
type CreateBookingRequest struct {
	KidID           string   `json:"kid_id" validate:"required,mongodb"`
	SessionID       string   `json:"session_id" validate:"required,mongodb"`
	WeekID          string   `json:"week_id" validate:"required,mongodb"`
	State           string   `json:"state" validate:"required,oneof=idea preferred booked"`
	PreferenceOrder int      `json:"preference_order" validate:"omitempty,min=0,max=100"`
	Friends         []string `json:"friends_attending,omitempty" validate:"omitempty,max=50,dive,min=1,max=100"`
	UsesEarlyCare   bool     `json:"uses_early_care"`
	UsesLateCare    bool     `json:"uses_late_care"`
	Notes           string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// SlotConflict names the other bookings already occupying a kid's week.
type SlotConflict struct {
	WeekID     string   `json:"week_id"`
	WeekNumber int      `json:"week_number"`
	BookingIDs []string `json:"booking_ids"`
}

// CreateBookingResult reports a created group. Contested lists weeks
// where other non-booked bookings already exist for the same kid; those
// are left for the user to resolve when one of them gets booked.
type CreateBookingResult struct {
	GroupID   string           `json:"booking_group_id"`
	Bookings  []*model.Booking `json:"bookings"`
	Contested []SlotConflict   `json:"contested,omitempty"`
	Warnings  []string         `json:"warnings,omitempty"`
}

type TransitionResult struct {
	GroupID  string           `json:"booking_group_id"`
	State    string           `json:"state"`
	Bookings []*model.Booking `json:"bookings"`
	Warnings []string         `json:"warnings,omitempty"`
}

type DeleteResult struct {
	Deleted  int      `json:"deleted"`
	Warnings []string `json:"warnings,omitempty"`
}

type RepairResult struct {
	Repaired int `json:"repaired"`
}

// GridCell holds every booking of one kid in one week, in all states.
type GridCell struct {
	Bookings []*model.Booking `json:"bookings"`
}

// ScheduleGrid is the kids-by-weeks planning view. Cells is keyed by kid
// id, then week id; empty slots are simply absent.
type ScheduleGrid struct {
	Kids  []*model.Kid                    `json:"kids"`
	Weeks []*model.Week                   `json:"weeks"`
	Cells map[string]map[string]*GridCell `json:"cells"`
}

// BookingValidator checks request payloads before they reach the
// allocator. The concrete implementation lives in the validator package.
type BookingValidator interface {
	ValidateCreate(req *CreateBookingRequest) error
	ValidateUpdate(update *model.BookingUpdate) error
}

type BookingService interface {
	// CreateGroup books a kid into a session starting at a week. For an
	// n-week session it claims n consecutive weeks atomically; if any of
	// them is blocked, out of range, or already booked, nothing is
	// created.
	CreateGroup(ctx context.Context, familyID string, req *CreateBookingRequest) (*CreateBookingResult, error)
	GetByID(ctx context.Context, familyID, id string) (*model.Booking, error)
	List(ctx context.Context, familyID string, limit int, offset int64) ([]*model.Booking, int64, error)
	UpdateDetails(ctx context.Context, familyID, id string, update *model.BookingUpdate) (*model.Booking, error)
	// TransitionGroup moves every booking in the group to the new state.
	// Moving to booked is exclusive: it fails if the kid has any other
	// booking, in any state, on any of the group's weeks.
	TransitionGroup(ctx context.Context, familyID, bookingID, newState string) (*TransitionResult, error)
	// DeleteGroup removes the whole group of the named booking.
	DeleteGroup(ctx context.Context, familyID, bookingID string) (*DeleteResult, error)
	// RepairGroups backfills group metadata on bookings written before
	// grouping existed. Safe to run repeatedly.
	RepairGroups(ctx context.Context, familyID string) (*RepairResult, error)
	Grid(ctx context.Context, familyID string) (*ScheduleGrid, error)
	// CalendarFeed renders the family's booked weeks as an iCalendar
	// document.
	CalendarFeed(ctx context.Context, familyID string) (string, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	weekRepo    repository.WeekRepository
	kids        KidSource
	sessions    SessionSource
	camps       CampSource
	calendars   calendar.Store
	publisher   events.Publisher
	validator   BookingValidator
	cfg         *config.Config
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	weekRepo repository.WeekRepository,
	kids KidSource,
	sessions SessionSource,
	camps CampSource,
	calendars calendar.Store,
	publisher events.Publisher,
	validator BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		weekRepo:    weekRepo,
		kids:        kids,
		sessions:    sessions,
		camps:       camps,
		calendars:   calendars,
		publisher:   publisher,
		validator:   validator,
		cfg:         cfg,
	}
}

func (s *bookingService) CreateGroup(ctx context.Context, familyID string, req *CreateBookingRequest) (*CreateBookingResult, error) {
	s.sanitizeCreateRequest(req)

	if err := s.validator.ValidateCreate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"family_id", familyID,
			"kid_id", req.KidID,
			"error", err,
		)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	kid, err := s.kids.FindByID(ctx, familyID, req.KidID)
	if err != nil {
		return nil, translateLookupErr(err, "Kid", req.KidID)
	}
	session, err := s.sessions.FindByID(ctx, familyID, req.SessionID)
	if err != nil {
		return nil, translateLookupErr(err, "Session", req.SessionID)
	}

	weeks, err := s.weekRepo.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list weeks", err)
	}

	target, err := allocateWeeks(weeks, req.WeekID, session.EffectiveDuration())
	if err != nil {
		return nil, err
	}

	groupID := uuid.NewString()
	result := &CreateBookingResult{GroupID: groupID}

	err = s.bookingRepo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		result.Bookings = nil
		result.Contested = nil

		for i, week := range target {
			existing, err := s.bookingRepo.FindBySlot(sessCtx, familyID, req.KidID, week.ID)
			if err != nil {
				return apperrors.Internal("Failed to check existing bookings", err)
			}
			if conflict := slotConflict(existing, week, model.StateBooked); conflict != nil {
				return apperrors.ConflictWithReason(
					fmt.Sprintf("Week %d is already booked for this kid", week.WeekNumber),
					apperrors.ReasonExclusivity,
					map[string]any{"conflicts": []SlotConflict{*conflict}},
				)
			}
			if conflict := slotConflict(existing, week, ""); conflict != nil {
				result.Contested = append(result.Contested, *conflict)
			}

			booking := &model.Booking{
				FamilyID:        familyID,
				KidID:           req.KidID,
				SessionID:       req.SessionID,
				WeekID:          week.ID,
				State:           req.State,
				BookingGroupID:  groupID,
				WeekOfSession:   i + 1,
				TotalWeeks:      len(target),
				PreferenceOrder: req.PreferenceOrder,
				Friends:         req.Friends,
				UsesEarlyCare:   req.UsesEarlyCare,
				UsesLateCare:    req.UsesLateCare,
				Notes:           req.Notes,
			}
			if err := s.bookingRepo.Create(sessCtx, booking); err != nil {
				return apperrors.Internal("Failed to create booking", err)
			}
			result.Bookings = append(result.Bookings, booking)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.State == model.StateBooked {
		result.Warnings = append(result.Warnings, s.syncCalendar(ctx, familyID, kid, session, result.Bookings, target)...)
	}
	s.publish(ctx, events.BookingEvent{
		Type:       events.TypeBookingCreated,
		FamilyID:   familyID,
		KidID:      req.KidID,
		SessionID:  req.SessionID,
		GroupID:    groupID,
		State:      req.State,
		WeekIDs:    weekIDs(result.Bookings),
		TotalWeeks: len(target),
		OccurredAt: time.Now().UTC(),
	})

	s.cfg.Log.Info("Booking group created",
		"family_id", familyID,
		"booking_group_id", groupID,
		"kid_id", req.KidID,
		"session_id", req.SessionID,
		"weeks", len(target),
		"state", req.State,
		"contested", len(result.Contested),
	)
	return result, nil
}

func (s *bookingService) GetByID(ctx context.Context, familyID, id string) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, translateLookupErr(err, "Booking", id)
	}
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, familyID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	bookings, err := s.bookingRepo.FindByFamily(ctx, familyID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list bookings", err)
	}
	total, err := s.bookingRepo.CountByFamily(ctx, familyID)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings", err)
	}
	return bookings, total, nil
}

func (s *bookingService) UpdateDetails(ctx context.Context, familyID, id string, update *model.BookingUpdate) (*model.Booking, error) {
	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, apperrors.Validation("Booking update validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	booking, err := s.bookingRepo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, translateLookupErr(err, "Booking", id)
	}

	if update.PreferenceOrder != nil {
		booking.PreferenceOrder = *update.PreferenceOrder
	}
	if update.Friends != nil {
		booking.Friends = sanitizer.NormalizeFriends(*update.Friends)
	}
	if update.UsesEarlyCare != nil {
		booking.UsesEarlyCare = *update.UsesEarlyCare
	}
	if update.UsesLateCare != nil {
		booking.UsesLateCare = *update.UsesLateCare
	}
	if update.Notes != nil {
		booking.Notes = sanitizer.NormalizeNotes(*update.Notes)
	}

	if err := s.bookingRepo.UpdateDetails(ctx, familyID, id, booking); err != nil {
		return nil, apperrors.Internal("Failed to update booking", err)
	}
	return booking, nil
}

func (s *bookingService) TransitionGroup(ctx context.Context, familyID, bookingID, newState string) (*TransitionResult, error) {
	if !model.IsValidState(newState) {
		return nil, apperrors.InvalidInput("Invalid booking state").
			WithDetails(map[string]any{"valid_states": model.ValidStates()})
	}

	booking, err := s.bookingRepo.FindByID(ctx, familyID, bookingID)
	if err != nil {
		return nil, translateLookupErr(err, "Booking", bookingID)
	}

	group, err := s.loadGroup(ctx, familyID, booking)
	if err != nil {
		return nil, err
	}

	previousState := booking.State
	result := &TransitionResult{GroupID: booking.GroupID(), State: newState, Bookings: group}
	if previousState == newState {
		return result, nil
	}

	err = s.bookingRepo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if newState == model.StateBooked {
			if err := s.checkExclusivity(sessCtx, familyID, group); err != nil {
				return err
			}
		}
		for _, member := range group {
			if err := s.bookingRepo.UpdateState(sessCtx, familyID, member.ID, newState); err != nil {
				return apperrors.Internal("Failed to update booking state", err)
			}
			member.State = newState
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case newState == model.StateBooked:
		result.Warnings = append(result.Warnings, s.syncCalendarForGroup(ctx, familyID, group)...)
	case previousState == model.StateBooked:
		result.Warnings = append(result.Warnings, s.clearCalendar(ctx, familyID, group)...)
	}

	s.publish(ctx, events.BookingEvent{
		Type:       events.TypeBookingStateChanged,
		FamilyID:   familyID,
		KidID:      booking.KidID,
		SessionID:  booking.SessionID,
		GroupID:    booking.GroupID(),
		State:      newState,
		WeekIDs:    weekIDs(group),
		TotalWeeks: len(group),
		OccurredAt: time.Now().UTC(),
	})

	s.cfg.Log.Info("Booking group transitioned",
		"family_id", familyID,
		"booking_group_id", booking.GroupID(),
		"from", previousState,
		"to", newState,
		"bookings", len(group),
	)
	return result, nil
}

func (s *bookingService) DeleteGroup(ctx context.Context, familyID, bookingID string) (*DeleteResult, error) {
	booking, err := s.bookingRepo.FindByID(ctx, familyID, bookingID)
	if err != nil {
		return nil, translateLookupErr(err, "Booking", bookingID)
	}

	group, err := s.loadGroup(ctx, familyID, booking)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{}
	for _, member := range group {
		if member.CalendarEventID != "" {
			if err := s.calendars.Delete(ctx, familyID, member.CalendarEventID); err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Failed to remove calendar event for booking %s", member.ID))
				s.cfg.Log.Warn("Failed to delete calendar event",
					"family_id", familyID,
					"booking_id", member.ID,
					"event_id", member.CalendarEventID,
					"error", err,
				)
			}
		}
		if err := s.bookingRepo.Delete(ctx, familyID, member.ID); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Failed to delete booking %s", member.ID))
			s.cfg.Log.Warn("Failed to delete booking",
				"family_id", familyID,
				"booking_id", member.ID,
				"error", err,
			)
			continue
		}
		result.Deleted++
	}

	s.publish(ctx, events.BookingEvent{
		Type:       events.TypeBookingDeleted,
		FamilyID:   familyID,
		KidID:      booking.KidID,
		SessionID:  booking.SessionID,
		GroupID:    booking.GroupID(),
		State:      booking.State,
		WeekIDs:    weekIDs(group),
		TotalWeeks: len(group),
		OccurredAt: time.Now().UTC(),
	})

	s.cfg.Log.Info("Booking group deleted",
		"family_id", familyID,
		"booking_group_id", booking.GroupID(),
		"deleted", result.Deleted,
	)
	return result, nil
}

func (s *bookingService) RepairGroups(ctx context.Context, familyID string) (*RepairResult, error) {
	bookings, err := s.bookingRepo.FindByFamily(ctx, familyID, 0, 0)
	if err != nil {
		return nil, apperrors.Internal("Failed to list bookings", err)
	}

	result := &RepairResult{}
	one := 1
	for _, booking := range bookings {
		meta := repository.GroupMetaUpdate{}
		if booking.BookingGroupID == "" {
			id := booking.ID
			meta.BookingGroupID = &id
		}
		if booking.WeekOfSession == 0 {
			meta.WeekOfSession = &one
		}
		if booking.TotalWeeks == 0 {
			meta.TotalWeeks = &one
		}
		if meta.BookingGroupID == nil && meta.WeekOfSession == nil && meta.TotalWeeks == nil {
			continue
		}
		if err := s.bookingRepo.UpdateGroupMeta(ctx, familyID, booking.ID, meta); err != nil {
			return nil, apperrors.Internal("Failed to repair booking", err)
		}
		result.Repaired++
	}

	if result.Repaired > 0 {
		s.cfg.Log.Info("Booking groups repaired", "family_id", familyID, "repaired", result.Repaired)
	}
	return result, nil
}

func (s *bookingService) Grid(ctx context.Context, familyID string) (*ScheduleGrid, error) {
	kids, err := s.kids.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load kids", err)
	}
	weeks, err := s.weekRepo.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list weeks", err)
	}
	bookings, err := s.bookingRepo.FindByFamily(ctx, familyID, 0, 0)
	if err != nil {
		return nil, apperrors.Internal("Failed to list bookings", err)
	}

	grid := &ScheduleGrid{
		Kids:  kids,
		Weeks: weeks,
		Cells: make(map[string]map[string]*GridCell),
	}
	for _, booking := range bookings {
		row, ok := grid.Cells[booking.KidID]
		if !ok {
			row = make(map[string]*GridCell)
			grid.Cells[booking.KidID] = row
		}
		cell, ok := row[booking.WeekID]
		if !ok {
			cell = &GridCell{}
			row[booking.WeekID] = cell
		}
		cell.Bookings = append(cell.Bookings, booking)
	}
	return grid, nil
}

func (s *bookingService) CalendarFeed(ctx context.Context, familyID string) (string, error) {
	calEvents, err := s.calendars.ListByFamily(ctx, familyID)
	if err != nil {
		return "", apperrors.Internal("Failed to list calendar events", err)
	}
	return calendar.Feed(s.cfg.CalendarName, calEvents), nil
}

// loadGroup resolves a booking to all members of its group. Bookings
// written before grouping existed form a group of one.
func (s *bookingService) loadGroup(ctx context.Context, familyID string, booking *model.Booking) ([]*model.Booking, error) {
	if booking.BookingGroupID == "" {
		return []*model.Booking{booking}, nil
	}
	group, err := s.bookingRepo.FindByGroup(ctx, familyID, booking.BookingGroupID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load booking group", err)
	}
	if len(group) == 0 {
		return []*model.Booking{booking}, nil
	}
	return group, nil
}

// checkExclusivity enforces the one-booked-activity-per-kid-per-week
// rule: every week the group claims must be free of any other booking
// for the same kid, whatever its state.
func (s *bookingService) checkExclusivity(ctx context.Context, familyID string, group []*model.Booking) error {
	groupIDs := make(map[string]bool, len(group))
	for _, member := range group {
		groupIDs[member.ID] = true
	}

	var conflicts []SlotConflict
	for _, member := range group {
		existing, err := s.bookingRepo.FindBySlot(ctx, familyID, member.KidID, member.WeekID)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		conflict := SlotConflict{WeekID: member.WeekID}
		for _, other := range existing {
			if groupIDs[other.ID] {
				continue
			}
			conflict.BookingIDs = append(conflict.BookingIDs, other.ID)
		}
		if len(conflict.BookingIDs) > 0 {
			conflicts = append(conflicts, conflict)
		}
	}

	if len(conflicts) > 0 {
		return apperrors.ConflictWithReason(
			"Other bookings exist on the group's weeks. Delete or move them before booking.",
			apperrors.ReasonExclusivity,
			map[string]any{"conflicts": conflicts},
		)
	}
	return nil
}

// syncCalendarForGroup loads the context needed to render calendar
// events for an already-persisted group.
func (s *bookingService) syncCalendarForGroup(ctx context.Context, familyID string, group []*model.Booking) []string {
	if len(group) == 0 {
		return nil
	}
	kid, err := s.kids.FindByID(ctx, familyID, group[0].KidID)
	if err != nil {
		s.cfg.Log.Warn("Calendar sync skipped, kid lookup failed", "family_id", familyID, "error", err)
		return []string{"Calendar sync skipped"}
	}
	session, err := s.sessions.FindByID(ctx, familyID, group[0].SessionID)
	if err != nil {
		s.cfg.Log.Warn("Calendar sync skipped, session lookup failed", "family_id", familyID, "error", err)
		return []string{"Calendar sync skipped"}
	}

	weeks := make([]*model.Week, 0, len(group))
	for _, member := range group {
		week, err := s.weekRepo.FindByID(ctx, familyID, member.WeekID)
		if err != nil {
			s.cfg.Log.Warn("Calendar sync skipped, week lookup failed",
				"family_id", familyID, "week_id", member.WeekID, "error", err)
			return []string{"Calendar sync skipped"}
		}
		weeks = append(weeks, week)
	}
	return s.syncCalendar(ctx, familyID, kid, session, group, weeks)
}

// syncCalendar writes one calendar event per booked week and records the
// event id on the booking. Failures degrade to warnings.
func (s *bookingService) syncCalendar(ctx context.Context, familyID string, kid *model.Kid, session *model.Session, group []*model.Booking, weeks []*model.Week) []string {
	location := ""
	if camp, err := s.camps.FindByID(ctx, familyID, session.CampID); err == nil {
		location = camp.Location
	}

	var warnings []string
	for i, member := range group {
		week := weeks[i]
		event := &calendar.Event{
			UID:      uuid.NewString(),
			FamilyID: familyID,
			Summary:  fmt.Sprintf("%s: %s", kid.Name, session.Name),
			Location: location,
			Start:    week.StartDate,
			End:      week.EndDate,
		}
		if member.TotalWeeks > 1 {
			event.Description = fmt.Sprintf("Week %d of %d", member.WeekOfSession, member.TotalWeeks)
		}

		if err := s.calendars.Put(ctx, event); err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to create calendar event for week %d", week.WeekNumber))
			s.cfg.Log.Warn("Failed to create calendar event",
				"family_id", familyID,
				"booking_id", member.ID,
				"error", err,
			)
			continue
		}
		if err := s.bookingRepo.SetCalendarEventID(ctx, familyID, member.ID, event.UID); err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to link calendar event for week %d", week.WeekNumber))
			s.cfg.Log.Warn("Failed to link calendar event",
				"family_id", familyID,
				"booking_id", member.ID,
				"error", err,
			)
			continue
		}
		member.CalendarEventID = event.UID
	}
	return warnings
}

// clearCalendar removes the group's calendar events when it leaves the
// booked state.
func (s *bookingService) clearCalendar(ctx context.Context, familyID string, group []*model.Booking) []string {
	var warnings []string
	for _, member := range group {
		if member.CalendarEventID == "" {
			continue
		}
		if err := s.calendars.Delete(ctx, familyID, member.CalendarEventID); err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to remove calendar event for booking %s", member.ID))
			s.cfg.Log.Warn("Failed to delete calendar event",
				"family_id", familyID,
				"booking_id", member.ID,
				"error", err,
			)
			continue
		}
		if err := s.bookingRepo.SetCalendarEventID(ctx, familyID, member.ID, ""); err != nil {
			s.cfg.Log.Warn("Failed to unlink calendar event",
				"family_id", familyID,
				"booking_id", member.ID,
				"error", err,
			)
			continue
		}
		member.CalendarEventID = ""
	}
	return warnings
}

func (s *bookingService) publish(ctx context.Context, event events.BookingEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"family_id", event.FamilyID,
			"event_type", event.Type,
			"error", err,
		)
	}
}

func (s *bookingService) sanitizeCreateRequest(req *CreateBookingRequest) {
	req.KidID = sanitizer.TrimAndNormalize(req.KidID)
	req.SessionID = sanitizer.TrimAndNormalize(req.SessionID)
	req.WeekID = sanitizer.TrimAndNormalize(req.WeekID)
	req.State = sanitizer.TrimAndNormalize(req.State)
	req.Friends = sanitizer.NormalizeFriends(req.Friends)
	req.Notes = sanitizer.NormalizeNotes(req.Notes)
}

// allocateWeeks picks the consecutive run of weeks a session occupies,
// starting at the requested week. The run must fit inside the summer and
// avoid blocked weeks entirely.
func allocateWeeks(weeks []*model.Week, startWeekID string, duration int) ([]*model.Week, error) {
	start := -1
	for i, week := range weeks {
		if week.ID == startWeekID {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, apperrors.NotFoundWithID("Week", startWeekID)
	}

	if start+duration > len(weeks) {
		return nil, apperrors.ConflictWithReason(
			fmt.Sprintf("Session needs %d weeks but only %d remain in the summer", duration, len(weeks)-start),
			apperrors.ReasonCapacity,
			map[string]any{"required_weeks": duration, "available_weeks": len(weeks) - start},
		)
	}

	target := weeks[start : start+duration]
	var blocked []int
	for _, week := range target {
		if week.IsBlocked {
			blocked = append(blocked, week.WeekNumber)
		}
	}
	if len(blocked) > 0 {
		return nil, apperrors.ConflictWithReason(
			"One or more requested weeks are blocked by a family trip",
			apperrors.ReasonBlockedWeek,
			map[string]any{"blocked_weeks": blocked},
		)
	}
	return target, nil
}

// slotConflict summarizes the existing bookings colliding with a new one.
// With state set, only bookings in that state count; empty state counts
// them all.
func slotConflict(existing []*model.Booking, week *model.Week, state string) *SlotConflict {
	conflict := &SlotConflict{WeekID: week.ID, WeekNumber: week.WeekNumber}
	for _, other := range existing {
		if state != "" && other.State != state {
			continue
		}
		conflict.BookingIDs = append(conflict.BookingIDs, other.ID)
	}
	if len(conflict.BookingIDs) == 0 {
		return nil
	}
	return conflict
}

func weekIDs(bookings []*model.Booking) []string {
	ids := make([]string, 0, len(bookings))
	for _, booking := range bookings {
		ids = append(ids, booking.WeekID)
	}
	return ids
}

func translateLookupErr(err error, entity, id string) error {
	if errors.Is(err, scheduleerrors.ErrNotFound) {
		return apperrors.NotFoundWithID(entity, id)
	}
	if errors.Is(err, scheduleerrors.ErrInvalidID) {
		return apperrors.InvalidInput(fmt.Sprintf("Invalid %s ID format", entity))
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	return apperrors.Internal(fmt.Sprintf("Failed to load %s", entity), err)
}
