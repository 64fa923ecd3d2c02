package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"munka_backend/internal/models"
)

// registerCustomRules installs the domain validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-payment-type", validatePaymentType)
	mustRegister("is-work-status", validateWorkStatus)
}

func validatePaymentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' covers emptiness
	}
	return models.PaymentType(value).Valid()
}

func validateWorkStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.WorkStatus(value).Valid()
}

