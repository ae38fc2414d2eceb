// Package validation exposes the shared go-playground validator instance.
package validation

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// phonePattern accepts an optional leading + followed by 10 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// Validator returns the process-wide validator.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		_ = instance.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsPhone(fl.Field().String())
		})
	})
	return instance
}

// IsEmail reports whether s is a syntactically valid e-mail address.
func IsEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return Validator().Var(s, "email") == nil
}

// IsPhone reports whether s looks like a phone number once separators are removed.
func IsPhone(s string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
	return phonePattern.MatchString(cleaned)
}
