package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"camplan/pkg/logger"
	"camplan/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type CampValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCampValidator(log *logger.Logger) *CampValidator {
	v := validator.New()

	if err := v.RegisterValidation("valid_time", validateTimeOfDay); err != nil {
		log.Fatal("Failed to register 'valid_time' validator", "error", err)
	}
	v.RegisterStructValidation(validateSessionDates, model.Session{})

	return &CampValidator{
		validate: v,
		logger:   log,
	}
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

// Session dates come as a pair or not at all, and may not run backwards.
func validateSessionDates(sl validator.StructLevel) {
	session := sl.Current().Interface().(model.Session)

	if session.StartDate.IsZero() != session.EndDate.IsZero() {
		sl.ReportError(session.EndDate, "session_end_date", "EndDate", "session_dates_pair", "")
		return
	}
	if session.StartDate.IsZero() {
		return
	}
	if session.EndDate.Before(session.StartDate) {
		sl.ReportError(session.EndDate, "session_end_date", "EndDate", "session_dates_order", "")
	}
}

func (v *CampValidator) ValidateCamp(camp *model.Camp) error {
	return v.check(v.validate.Struct(camp))
}

func (v *CampValidator) ValidateSession(session *model.Session) error {
	return v.check(v.validate.Struct(session))
}

func (v *CampValidator) check(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return translateValidationErrors(validationErrs)
	}
	return err
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		case "valid_time":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
		case "session_dates_pair":
			message = "session_start_date and session_end_date must be set together"
		case "session_dates_order":
			message = "session_end_date must not be before session_start_date"
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
