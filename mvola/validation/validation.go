package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"encore.app/mvola/model"
)

const (
	MinimumAmount = 100

	invalidAmountMessage = "Le montant doit être supérieur ou égal à 100 Ar"
	invalidPhoneMessage  = "Numéro MVola invalide (format attendu: 032/033/034/037/038 suivi de 7 chiffres)"
)

// msisdnPattern matches local MVola numbers: a Telma prefix followed by seven digits.
var msisdnPattern = regexp.MustCompile(`^(032|033|034|037|038)\d{7}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("mvola_msisdn", func(fl validator.FieldLevel) bool {
		return IsValidMSISDN(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// IsValidMSISDN reports whether msisdn is an accepted customer number.
func IsValidMSISDN(msisdn string) bool {
	return msisdnPattern.MatchString(msisdn)
}

// ValidatePayment checks the amount, then the customer number, and stops at the first failure.
func ValidatePayment(req *model.PaymentRequest) error {
	if req == nil {
		return &model.ValidationError{Reason: model.InvalidAmount, Field: "amount", Message: invalidAmountMessage}
	}

	if err := validate.StructPartial(req, "Amount"); err != nil {
		return &model.ValidationError{Reason: model.InvalidAmount, Field: "amount", Message: invalidAmountMessage}
	}

	if err := validate.StructPartial(req, "CustomerMSISDN"); err != nil {
		return &model.ValidationError{Reason: model.InvalidPhone, Field: "customerMSISDN", Message: invalidPhoneMessage}
	}

	return nil
}
