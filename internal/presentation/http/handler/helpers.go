package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/response"
	"github.com/sangkips/temple-api/pkg/apperror"
)

// bindError answers a failed bind. Validation failures list each field,
// anything else is a bad request.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperror.FieldError{
				Field:   snakeCase(fe.Field()),
				Message: fieldMessage(fe),
			})
		}
		response.ValidationError(c, fields)
		return
	}
	response.BadRequest(c, "Invalid request: "+err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	field := snakeCase(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "booking_status":
		return field + " must be one of PENDING, CONFIRMED, COMPLETED, CANCELLED, FAILED"
	case "date_preset":
		return field + " must be one of today, week, month, quarter, year, custom"
	default:
		return field + " is invalid"
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// showControls reports whether a document should carry Print/Close buttons
func showControls(c *gin.Context) bool {
	return c.DefaultQuery("controls", "true") != "false"
}
