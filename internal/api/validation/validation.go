// Package validation checks decoded request bodies against their struct
// tags and reports every violated rule as an apperr.FieldError.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/rohits-web03/dealls/internal/apperr"
)

const passwordSpecials = "@$!%*?&"

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Messages per field and rule; "*" matches any rule for the field.
var messages = map[string]string{
	"email.*":               "Please enter a valid email",
	"username.*":            "Username must be 3-30 characters and can only contain letters, numbers and underscore",
	"password.strong":       "Password must be 8-20 characters and contain uppercase, lowercase, number and special character",
	"password.min":          "Password must be at least 8 characters long",
	"password.required":     "Password is required",
	"targetUserId.*":        "targetUserId must be a valid user id",
	"direction.*":           "Invalid direction. Must be 'left' or 'right'.",
	"contentType.*":         "contentType must be one of image/jpeg, image/png, image/webp",
	"key.*":                 "key is required",
	"targetUserId.required": "Missing targetUserId or direction.",
	"direction.required":    "Missing targetUserId or direction.",
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("strong", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct validates s and returns a VALIDATION_ERROR listing each violated
// field, or nil.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Invalid(apperr.FieldError{Field: "body", Message: "Invalid input"})
	}

	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe.Field(), fe.Tag()),
		})
	}
	return apperr.Invalid(fields...)
}

func messageFor(field, tag string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	if m, ok := messages[field+".*"]; ok {
		return m
	}
	return field + " is invalid"
}

// isStrongPassword requires a lowercase letter, an uppercase letter, a digit
// and one of @$!%*?&.
func isStrongPassword(p string) bool {
	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}
