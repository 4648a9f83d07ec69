package middleware

import (
	"trackme/internal/dto"
	"trackme/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedRevisionNoKey = "validated_revision_no"
	ValidatedListFilterKey = "validated_list_filter"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateRevisionNo validates the :revisionNo path parameter
func (vm *ValidationMiddleware) ValidateRevisionNo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		no, err := vm.validator.ValidateRevisionNo(c.Params("revisionNo"))
		if err != nil {
			return err // This will be handled by ErrorHandler middleware
		}

		c.Locals(ValidatedRevisionNoKey, no)
		return c.Next()
	}
}

// ValidateListQuery validates the list filters. It must run after Protected
// so the filter is scoped to the current user.
func (vm *ValidationMiddleware) ValidateListQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q dto.ListUserProblemsQuery
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
		}

		filter, err := vm.validator.ValidateListQuery(CurrentUserID(c), q)
		if err != nil {
			return err
		}

		c.Locals(ValidatedListFilterKey, filter)
		return c.Next()
	}
}
