package api

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"weatherdash.app/pkg/errors"
	"weatherdash.app/pkg/validation"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// validateUnit accepts C, F, celsius or fahrenheit in any case
func validateUnit(fl validator.FieldLevel) bool {
	return validation.IsValidUnit(fl.Field().String())
}

// validateFinite rejects NaN and the infinities, which strconv happily parses
func validateFinite(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// formTagName reports fields by their query parameter name
func formTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// RegisterValidators installs the custom binding validators on gin's engine
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(formTagName)
		if registerErr = v.RegisterValidation("unit", validateUnit); registerErr != nil {
			return
		}
		registerErr = v.RegisterValidation("finite", validateFinite)
	})
	return registerErr
}

// bindQuery binds query parameters and converts failures into validation errors
func bindQuery(c *gin.Context, target interface{}) error {
	if err := c.ShouldBindQuery(target); err != nil {
		return errors.NewValidationError(describeBindError(err))
	}
	return nil
}

func describeBindError(err error) string {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid query parameters"
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s parameter is required", fe.Field()))
		case "unit":
			messages = append(messages, "unit must be C or F")
		case "finite":
			messages = append(messages, fmt.Sprintf("%s must be a finite number", fe.Field()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(messages, "; ")
}
