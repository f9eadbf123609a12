package utils

import (
	"errors"
	"fmt"
	"strings"

	"noticeboard/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.IsCategory(fl.Field().String())
	})
	return v
}

// ValidateStruct checks the validate tags on s and returns a readable message for the first failure.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "max":
		return fmt.Errorf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Errorf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return fmt.Errorf("%s must be a valid email address", field)
	case "category":
		return fmt.Errorf("%q is not a valid category", fe.Value())
	}
	return fmt.Errorf("%s is invalid", field)
}
