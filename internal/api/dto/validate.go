package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

var validate = validator.New()

// ParseAndValidate decodes the request body into dst and runs struct
// validation, returning field-keyed details on failure.
func ParseAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("malformed request body", nil)
	}
	return Validate(dst)
}

// Validate runs struct validation on an already-decoded value.
func Validate(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	details := map[string]any{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[strings.ToLower(fe.Field())] = fe.Tag()
		}
	}
	return apperrors.NewValidationError("request validation failed", details)
}
