package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"sales-dashboard/internal/entities"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterCustomValidations registers the domain rules on v.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"action_type": isActionType,
		"call_status": isTerminalStatus,
		"appt_status": isAppointmentStatus,
		"role":        isRole,
		"email":       isGoodEmailFormat,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func isActionType(fl validator.FieldLevel) bool {
	return entities.ActionType(fl.Field().String()).Valid()
}

func isTerminalStatus(fl validator.FieldLevel) bool {
	return entities.AppointmentStatus(fl.Field().String()).IsTerminal()
}

func isAppointmentStatus(fl validator.FieldLevel) bool {
	return entities.AppointmentStatus(fl.Field().String()).Valid()
}

func isRole(fl validator.FieldLevel) bool {
	return entities.Role(fl.Field().String()).Valid()
}
