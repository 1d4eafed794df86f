package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// startSymbols are the values accepted by the start_symbol tag.
var startSymbols = map[string]bool{"X": true, "O": true, "random": true}

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())

	// start_symbol accepts a player symbol or "random".
	_ = validate.RegisterValidation("start_symbol", func(fl validator.FieldLevel) bool {
		return startSymbols[fl.Field().String()]
	})
}

func GetValidator() *validator.Validate {
	return validate
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}
