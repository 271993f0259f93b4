package util

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/Jeevagan-dev/attendance/pkg/timeutil"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	Validate.RegisterValidation("hasuppercase", validateHasUppercase)
	Validate.RegisterValidation("timeofday", validateTimeOfDay)
}

func validateHasUppercase(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	return regexp.MustCompile(`[A-Z]`).MatchString(password)
}

// timeofday accepts the 12-hour clock strings stored on attendance records,
// e.g. "09:05 AM".
func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, err := timeutil.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

type ErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Msg   string `json:"message"`
}

func ValidateStruct(s interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := Validate.Struct(s)
	if err != nil {

		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.Field = err.Field()
			element.Tag = err.Tag()

			switch err.Tag() {
			case "required":
				element.Msg = fmt.Sprintf("Field '%s' is required.", element.Field)
			case "min":
				element.Msg = fmt.Sprintf("Field '%s' must have at least %s characters.", element.Field, err.Param())
			case "max":
				element.Msg = fmt.Sprintf("Field '%s' must have at most %s characters.", element.Field, err.Param())
			case "hasuppercase":
				element.Msg = "Password must contain at least one uppercase letter."
			case "timeofday":
				element.Msg = fmt.Sprintf("Field '%s' must be a time like '09:05 AM'.", element.Field)
			default:
				element.Msg = fmt.Sprintf("Field '%s' failed validation for tag '%s'.", element.Field, element.Tag)
			}
			errors = append(errors, &element)
		}
	}
	return errors
}
