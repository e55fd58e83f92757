package validator

import (
	"errors"
	"fmt"
	"strings"

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

type FamilyValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewFamilyValidator(log *logger.Logger) *FamilyValidator {
	v := validator.New()
	v.RegisterStructValidation(validateKidSchoolDates, model.Kid{})
	v.RegisterStructValidation(validateTripDates, model.Trip{})

	return &FamilyValidator{
		validate: v,
		logger:   log,
	}
}

// Both school dates must be present together and in school-year order:
// the last day of the spring term comes before the first day of fall.
func validateKidSchoolDates(sl validator.StructLevel) {
	kid := sl.Current().Interface().(model.Kid)

	if kid.LastDayOfSchool.IsZero() != kid.FirstDayOfSchool.IsZero() {
		sl.ReportError(kid.FirstDayOfSchool, "first_day_of_school", "FirstDayOfSchool", "school_dates_pair", "")
		return
	}
	if kid.LastDayOfSchool.IsZero() {
		return
	}
	if !kid.FirstDayOfSchool.After(kid.LastDayOfSchool) {
		sl.ReportError(kid.FirstDayOfSchool, "first_day_of_school", "FirstDayOfSchool", "school_dates_order", "")
	}
}

func validateTripDates(sl validator.StructLevel) {
	trip := sl.Current().Interface().(model.Trip)

	if trip.EndDate.Before(trip.StartDate) {
		sl.ReportError(trip.EndDate, "end_date", "EndDate", "trip_dates_order", "")
	}
}

func (v *FamilyValidator) ValidateKid(kid *model.Kid) error {
	return v.check(v.validate.Struct(kid))
}

func (v *FamilyValidator) ValidateTrip(trip *model.Trip) error {
	return v.check(v.validate.Struct(trip))
}

func (v *FamilyValidator) check(err error) error {
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
		case "school_dates_pair":
			message = "last_day_of_school and first_day_of_school must be set together"
		case "school_dates_order":
			message = "first_day_of_school must come after last_day_of_school"
		case "trip_dates_order":
			message = "end_date must not be before start_date"
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
