package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct tag validation on a request payload.
func Validate(payload any) error {
	return validate.Struct(payload)
}
