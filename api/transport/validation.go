package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/fastygo/blog/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// report json names instead of Go field names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("login_format", validateLoginFormat); err != nil {
		panic(fmt.Sprintf("transport: register login_format: %v", err))
	}
}

// validateLoginFormat keeps logins distinguishable from emails.
func validateLoginFormat(fl validator.FieldLevel) bool {
	login := fl.Field().String()
	if login == "" {
		return false
	}
	for _, r := range login {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}

// Decode unmarshals body into dst and validates it. An empty body decodes as an empty object.
func Decode(body []byte, dst interface{}) error {
	if len(body) == 0 {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid JSON payload", err)
	}
	return Validate(dst)
}

// Validate runs struct validation and reports failures as an INVALID domain error.
func Validate(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid payload", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, formatFieldError(fe))
	}
	return domain.NewError(domain.ErrCodeInvalid, strings.Join(messages, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must contain valid ids", field)
	case "login_format":
		return fmt.Sprintf("%s can only contain letters, numbers, '.', '-' and '_'", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
