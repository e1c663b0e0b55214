package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

var registerOnce sync.Once

// RegisterValidators installs the domain binding tags on gin's validator:
// mealtype, calendardate and servingunit. Field errors report JSON names.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("unexpected binding validator engine")
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		validations := map[string]validator.Func{
			"mealtype": func(fl validator.FieldLevel) bool {
				_, parseErr := nutrition.ParseMealType(fl.Field().String())
				return parseErr == nil
			},
			"calendardate": func(fl validator.FieldLevel) bool {
				return nutrition.IsValidDate(fl.Field().String())
			},
			"servingunit": func(fl validator.FieldLevel) bool {
				return nutrition.IsValidServingUnit(fl.Field().String())
			},
		}
		for tag, fn := range validations {
			if regErr := v.RegisterValidation(tag, fn); regErr != nil {
				err = fmt.Errorf("failed to register %s validator: %w", tag, regErr)
				return
			}
		}
	})
	return err
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must not be negative"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "mealtype":
		return "must be one of breakfast, lunch, dinner, snacks"
	case "calendardate":
		return "must be a YYYY-MM-DD date"
	case "servingunit":
		return "must be one of " + strings.Join(nutrition.ServingUnits, ", ")
	default:
		return "is invalid"
	}
}

// bindingMessage turns a binding failure into a single client-facing line
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("%s: %s", fe.Field(), fieldMessage(fe))
	}
	return "invalid request body"
}
