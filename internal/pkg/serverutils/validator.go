package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a parsed request body and
// converts failures into a 400 fiber error with a readable field list.
func ValidateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest,
			"validation failed: "+strings.Join(fields, ", "))
	}
	return nil
}

// IsValidEmail applies the validator's email rule to a single value.
func IsValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
