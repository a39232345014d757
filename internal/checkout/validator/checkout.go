package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"tripdesk/pkg/logger"
	"tripdesk/pkg/model"

	"github.com/go-playground/validator/v10"
)

var seatLabelRegex = regexp.MustCompile(`^[0-9]{1,3}[A-Z]$`)

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

type CheckoutValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCheckoutValidator(log *logger.Logger) *CheckoutValidator {
	return &CheckoutValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *CheckoutValidator) ValidateSession(session *model.CheckoutSession) error {
	if err := v.validate.Struct(session); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if session.Option.BaseFare <= 0 {
		return ValidationErrors{
			ValidationError{Field: "BaseFare", Message: "base fare must be positive"},
		}
	}

	if session.PaymentMethod == model.MethodWallet && session.BillingMode == model.BillingCorporate {
		return ValidationErrors{
			ValidationError{Field: "PaymentMethod", Message: "corporate bookings cannot pay from a personal wallet"},
		}
	}

	return nil
}

// ValidateSeats checks seat labels against the "12A" shape and bounds the
// selection by the passenger count.
func (v *CheckoutValidator) ValidateSeats(seats []string, passengers int) error {
	if len(seats) == 0 {
		return ValidationErrors{
			ValidationError{Field: "Seats", Message: "confirm requires at least one seat; use skip instead"},
		}
	}
	if len(seats) > passengers {
		return ValidationErrors{
			ValidationError{Field: "Seats", Message: fmt.Sprintf("seat count (%d) exceeds passenger count (%d)", len(seats), passengers)},
		}
	}

	for _, seat := range seats {
		if !seatLabelRegex.MatchString(seat) {
			return ValidationErrors{
				ValidationError{Field: "Seats", Message: fmt.Sprintf("invalid seat label %q", seat)},
			}
		}
	}
	return nil
}

func (v *CheckoutValidator) ValidateSpecialRequests(requests []string) error {
	if len(requests) == 0 {
		return ValidationErrors{
			ValidationError{Field: "SpecialRequests", Message: "confirm requires at least one request; use skip instead"},
		}
	}
	for _, req := range requests {
		if len(req) > 280 {
			return ValidationErrors{
				ValidationError{Field: "SpecialRequests", Message: "request text must be at most 280 characters"},
			}
		}
	}
	return nil
}

func (v *CheckoutValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +919876543210)", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
