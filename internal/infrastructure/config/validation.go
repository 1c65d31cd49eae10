package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/fueleu-go/internal/domain/fuel"
	"github.com/andrescamacho/fueleu-go/internal/domain/pooling"
)

// Validator checks config structs against their validate tags. Failures are
// reported with the config keys (pooling.min_members), not the Go field names.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the pool_strategy and fuel_name tags registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil functions
	_ = v.RegisterValidation("pool_strategy", func(fl validator.FieldLevel) bool {
		_, err := pooling.ParseStrategy(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("fuel_name", func(fl validator.FieldLevel) bool {
		_, ok := fuel.ParseType(fl.Field().String())
		return ok
	})

	return &Validator{validate: v}
}

// Validate checks s and joins every failing field into one error
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// describe renders one failure as "key: rule (value: v)"
func describe(fe validator.FieldError) string {
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}
	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}
	return fmt.Sprintf("%s: must satisfy %s (value: %v)", key, rule, fe.Value())
}

// ValidateConfig checks the tags, then that the regulation section converts into
// calculator inputs
func ValidateConfig(cfg *Config) error {
	if err := NewValidator().Validate(cfg); err != nil {
		return err
	}
	if _, err := cfg.Regulation.ToRegulation(); err != nil {
		return fmt.Errorf("regulation: %w", err)
	}
	if _, err := cfg.Regulation.ToFactorTable(); err != nil {
		return fmt.Errorf("regulation: %w", err)
	}
	return nil
}
