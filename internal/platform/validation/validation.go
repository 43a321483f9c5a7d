// Package validation runs struct-tag validation for domain models.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

// Struct validates item and flattens field errors into one message such as
// "shot: minute must be gte 0; outcome must be oneof goal saved".
func Struct(entity string, item any) error {
	err := Validator().Struct(item)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%s: %w", entity, err)
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, describe(fe))
	}
	return fmt.Errorf("%s: %s", entity, strings.Join(parts, "; "))
}

func describe(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	if fe.Tag() == "required" {
		return field + " is required"
	}
	if fe.Param() == "" {
		return fmt.Sprintf("%s must be %s", field, fe.Tag())
	}
	return fmt.Sprintf("%s must be %s %s", field, fe.Tag(), fe.Param())
}

func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
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
