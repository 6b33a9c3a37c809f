package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"ai-docchat-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and turns the first failure
// into an INVALID_INPUT error with a readable message.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperror.NewInvalidInput("Invalid request body")
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case "required", "notblank":
		return apperror.NewInvalidInput(fmt.Sprintf("%s is required", fe.Field()))
	case "max":
		return apperror.NewInvalidInput(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	default:
		return apperror.NewInvalidInput(fmt.Sprintf("%s is invalid (%s)", fe.Field(), strings.ToLower(fe.Tag())))
	}
}

func init() {
	// "required" accepts "   " for strings; questions must carry actual text.
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
