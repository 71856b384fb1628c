package api

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-playground/validator/v10"
)

// BindJSON decodes the request body into dst, applies gin's binding tags and,
// when dst implements validation.Validatable, its Validate rules. On failure
// a 400 response is written and false returned.
func BindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondWithValidationErrors(c, ValidationDetails(err))
		return false
	}
	if v, ok := dst.(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			RespondWithValidationErrors(c, ValidationDetails(err))
			return false
		}
	}
	return true
}

// ValidationDetails flattens binding and ozzo errors into readable messages.
func ValidationDetails(err error) []string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fieldMessage(fe))
		}
		return details
	}

	var ozzoErrs validation.Errors
	if errors.As(err, &ozzoErrs) {
		details := make([]string, 0, len(ozzoErrs))
		for field, fe := range ozzoErrs {
			details = append(details, field+": "+fe.Error())
		}
		sort.Strings(details)
		return details
	}

	return []string{err.Error()}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "gte":
		return fe.Field() + " must be greater than or equal to " + fe.Param()
	case "lte":
		return fe.Field() + " must be less than or equal to " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

func RespondWithValidationErrors(c *gin.Context, details []string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation failed",
		Details: details,
	})
}
