package request

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/temple-api/internal/domain/enum"
)

// RegisterValidators adds the custom binding validators to Gin's engine
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return registerValidators(v)
}

func registerValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("booking_status", validateBookingStatus); err != nil {
		return err
	}
	return v.RegisterValidation("date_preset", validateDatePreset)
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	return enum.ParseBookingStatus(fl.Field().String()).IsValid()
}

func validateDatePreset(fl validator.FieldLevel) bool {
	return enum.DatePreset(strings.ToLower(strings.TrimSpace(fl.Field().String()))).IsValid()
}
