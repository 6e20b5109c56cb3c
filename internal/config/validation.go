package config

import (
	"errors"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with readable error messages.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks struct tags on i.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// FormatValidationError flattens validator errors into one message.
func FormatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, 0, len(validationErrs))
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s",
				e.Namespace(),
				e.Tag(),
			))
		}
		return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
	}
	return err
}

// ValidateConfig checks tags and the cross-field rules tags cannot express.
func ValidateConfig(cfg *Config) error {
	if err := NewValidator().Validate(cfg); err != nil {
		return err
	}

	if cfg.Database.Type == "postgres" && cfg.Database.URL == "" &&
		(cfg.Reference.Source == "sql" || cfg.RunStore.Backend == "sql") {
		return errors.New("database.url is required for postgres")
	}
	if cfg.Reference.Source == "yaml" && cfg.Reference.Path == "" {
		return errors.New("reference.path is required for the yaml source")
	}
	if cfg.Reference.Source == "http" && cfg.Reference.BaseURL == "" {
		return errors.New("reference.base_url is required for the http source")
	}
	if _, err := domain.NewTwinConfig(cfg.Engine.TwinRatios, false, nil, false); err != nil {
		return fmt.Errorf("engine.twin_ratios: %w", err)
	}

	return nil
}
