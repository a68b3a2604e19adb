package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/percolate/pkg/config"
)

// validate is a singleton validator instance, struct-tag driven.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateConfig checks a run Config against its struct tags (required
// paths, k >= 3, positive filter size) before the pipeline starts.
func ValidateConfig(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	if cfg.MaxK != 0 && cfg.MaxK < cfg.MinCliqueSize {
		return fmt.Errorf("MaxK: must be >= MinCliqueSize (%d), got %d", cfg.MinCliqueSize, cfg.MaxK)
	}
	return nil
}

// formatValidationError converts validator errors into a single
// user-friendly message naming the first offending field.
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "gte":
			return fmt.Errorf("%s: must be >= %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be > %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
