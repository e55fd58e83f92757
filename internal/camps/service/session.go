package service

import (
	"context"

	"camplan/internal/camps/repository"
	"camplan/internal/camps/validator"
	"camplan/pkg/config"
	"camplan/pkg/dates"
	apperrors "camplan/pkg/errors"
	"camplan/pkg/model"
	"camplan/pkg/sanitizer"
)

// BulkCreateResult reports a batch insert. Rejected rows carry the
// failing index and the validation message; accepted rows are created
// even when others fail.
type BulkCreateResult struct {
	Created  []*model.Session `json:"created"`
	Rejected []BulkRejection  `json:"rejected,omitempty"`
}

type BulkRejection struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
	Error string `json:"error"`
}

type SessionService interface {
	Create(ctx context.Context, familyID, campID string, session *model.Session) error
	// CreateBulk inserts many sessions under one camp, typically the
	// output of an external camp-site import. Valid rows are kept even
	// when some rows fail validation.
	CreateBulk(ctx context.Context, familyID, campID string, sessions []*model.Session) (*BulkCreateResult, error)
	GetByID(ctx context.Context, familyID, id string) (*model.Session, error)
	GetByCamp(ctx context.Context, familyID, campID string) ([]*model.Session, error)
	GetAll(ctx context.Context, familyID string) ([]*model.Session, error)
	Update(ctx context.Context, familyID, id string, update *model.SessionUpdate) (*model.Session, error)
	// Delete removes the session unless bookings reference it.
	Delete(ctx context.Context, familyID, id string) error
}

type sessionService struct {
	repo      repository.SessionRepository
	campRepo  repository.CampRepository
	bookings  BookingCounter
	validator *validator.CampValidator
	cfg       *config.Config
}

func NewSessionService(
	repo repository.SessionRepository,
	campRepo repository.CampRepository,
	bookings BookingCounter,
	v *validator.CampValidator,
	cfg *config.Config,
) SessionService {
	return &sessionService{
		repo:      repo,
		campRepo:  campRepo,
		bookings:  bookings,
		validator: v,
		cfg:       cfg,
	}
}

func (s *sessionService) Create(ctx context.Context, familyID, campID string, session *model.Session) error {
	if _, err := s.campRepo.FindByID(ctx, familyID, campID); err != nil {
		return translateLookupErr(err, "Camp", campID)
	}

	session.ID = ""
	session.FamilyID = familyID
	session.CampID = campID
	s.prepare(session)

	if err := s.validator.ValidateSession(session); err != nil {
		s.cfg.Log.Warn("Session validation failed",
			"family_id", familyID,
			"camp_id", campID,
			"name", session.Name,
			"error", err,
		)
		return apperrors.Validation("Session validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, session); err != nil {
		s.cfg.Log.Error("Failed to create session", "family_id", familyID, "error", err)
		return apperrors.Internal("Failed to create session", err)
	}

	s.cfg.Log.Info("Session created",
		"family_id", familyID,
		"camp_id", campID,
		"session_id", session.ID,
		"duration_weeks", session.DurationWeeks,
	)
	return nil
}

func (s *sessionService) CreateBulk(ctx context.Context, familyID, campID string, sessions []*model.Session) (*BulkCreateResult, error) {
	if len(sessions) == 0 {
		return nil, apperrors.InvalidInput("At least one session is required")
	}

	if _, err := s.campRepo.FindByID(ctx, familyID, campID); err != nil {
		return nil, translateLookupErr(err, "Camp", campID)
	}

	result := &BulkCreateResult{}
	var accepted []*model.Session
	for i, session := range sessions {
		session.ID = ""
		session.FamilyID = familyID
		session.CampID = campID
		s.prepare(session)

		if err := s.validator.ValidateSession(session); err != nil {
			result.Rejected = append(result.Rejected, BulkRejection{
				Index: i,
				Name:  session.Name,
				Error: err.Error(),
			})
			continue
		}
		accepted = append(accepted, session)
	}

	if len(accepted) > 0 {
		if err := s.repo.CreateMany(ctx, accepted); err != nil {
			s.cfg.Log.Error("Failed to bulk create sessions", "family_id", familyID, "error", err)
			return nil, apperrors.Internal("Failed to create sessions", err)
		}
	}
	result.Created = accepted

	s.cfg.Log.Info("Sessions bulk created",
		"family_id", familyID,
		"camp_id", campID,
		"created", len(result.Created),
		"rejected", len(result.Rejected),
	)
	return result, nil
}

func (s *sessionService) GetByID(ctx context.Context, familyID, id string) (*model.Session, error) {
	session, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, translateLookupErr(err, "Session", id)
	}
	return session, nil
}

func (s *sessionService) GetByCamp(ctx context.Context, familyID, campID string) ([]*model.Session, error) {
	if _, err := s.campRepo.FindByID(ctx, familyID, campID); err != nil {
		return nil, translateLookupErr(err, "Camp", campID)
	}

	sessions, err := s.repo.FindByCamp(ctx, familyID, campID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list sessions", err)
	}
	return sessions, nil
}

func (s *sessionService) GetAll(ctx context.Context, familyID string) ([]*model.Session, error) {
	sessions, err := s.repo.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list sessions", err)
	}
	return sessions, nil
}

func (s *sessionService) Update(ctx context.Context, familyID, id string, update *model.SessionUpdate) (*model.Session, error) {
	session, err := s.repo.FindByID(ctx, familyID, id)
	if err != nil {
		return nil, translateLookupErr(err, "Session", id)
	}

	applySessionUpdate(session, update)
	s.prepare(session)

	if err := s.validator.ValidateSession(session); err != nil {
		return nil, apperrors.Validation("Session validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Update(ctx, familyID, id, session); err != nil {
		return nil, translateLookupErr(err, "Session", id)
	}

	s.cfg.Log.Info("Session updated", "family_id", familyID, "session_id", id)
	return session, nil
}

func (s *sessionService) Delete(ctx context.Context, familyID, id string) error {
	count, err := s.bookings.CountBySessions(ctx, familyID, []string{id})
	if err != nil {
		return apperrors.Internal("Failed to check session bookings", err)
	}
	if count > 0 {
		return apperrors.ConflictWithReason(
			"Session has bookings. Delete them first.",
			apperrors.ReasonHasBookings,
			map[string]any{"booking_count": count},
		)
	}

	if err := s.repo.Delete(ctx, familyID, id); err != nil {
		return translateLookupErr(err, "Session", id)
	}

	s.cfg.Log.Info("Session deleted", "family_id", familyID, "session_id", id)
	return nil
}

// prepare normalizes free-text fields and derives the week count. Dates
// win over a user-supplied duration; with no dates and no duration the
// session counts as one week.
func (s *sessionService) prepare(session *model.Session) {
	session.Name = sanitizer.NormalizeName(session.Name)
	session.StartTime = sanitizer.TrimAndNormalize(session.StartTime)
	session.EndTime = sanitizer.TrimAndNormalize(session.EndTime)
	session.URL = sanitizer.TrimAndNormalize(session.URL)

	if session.HasDates() {
		session.DurationWeeks = dates.DurationWeeks(session.StartDate, session.EndDate)
	} else if session.DurationWeeks < 1 {
		session.DurationWeeks = 1
	}
}

func applySessionUpdate(session *model.Session, update *model.SessionUpdate) {
	if update.Name != "" {
		session.Name = update.Name
	}
	if update.StartDate != nil {
		session.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		session.EndDate = *update.EndDate
	}
	if update.DurationWeeks != nil {
		session.DurationWeeks = *update.DurationWeeks
	}
	if update.AgeMin != nil {
		session.AgeMin = update.AgeMin
	}
	if update.AgeMax != nil {
		session.AgeMax = update.AgeMax
	}
	if update.GradeMin != nil {
		session.GradeMin = update.GradeMin
	}
	if update.GradeMax != nil {
		session.GradeMax = update.GradeMax
	}
	if update.StartTime != nil {
		session.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		session.EndTime = *update.EndTime
	}
	if update.Cost != nil {
		session.Cost = update.Cost
	}
	if update.EarlyCareAvailable != nil {
		session.EarlyCareAvailable = *update.EarlyCareAvailable
	}
	if update.EarlyCareCost != nil {
		session.EarlyCareCost = update.EarlyCareCost
	}
	if update.LateCareAvailable != nil {
		session.LateCareAvailable = *update.LateCareAvailable
	}
	if update.LateCareCost != nil {
		session.LateCareCost = update.LateCareCost
	}
	if update.URL != nil {
		session.URL = *update.URL
	}
	if update.RegistrationOpenDate != nil {
		session.RegistrationOpenDate = *update.RegistrationOpenDate
	}
}
