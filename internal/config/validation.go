// Package config provides configuration management for the Sportology API.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// knownSports is the fixed whitelist the API accepts in requests
var knownSports = map[string]bool{
	"tennis":       true,
	"table-tennis": true,
	"boxing":       true,
	"mma":          true,
	"basketball":   true,
	"football":     true,
}

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("sports", validateSports)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateSports validates the allowed sports list
func validateSports(fl validator.FieldLevel) bool {
	sports, ok := fl.Field().Interface().([]string)
	if !ok || len(sports) == 0 {
		return false
	}
	for _, s := range sports {
		if !knownSports[s] {
			return false
		}
	}
	return true
}

// validateCrossField performs validations that span multiple fields
func validateCrossField(cfg *Config) error {
	if cfg.Server.Port == cfg.Server.HealthPort {
		return fmt.Errorf("server.port and server.health_port must differ")
	}
	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("database.max_idle_connections cannot exceed database.max_connections")
	}
	return nil
}

// formatValidationErrors converts validator errors into a readable message
func formatValidationErrors(errs validator.ValidationErrors) error {
	msg := "configuration validation failed:"
	for _, e := range errs {
		msg += fmt.Sprintf("\n  - field '%s' failed rule '%s'", e.Namespace(), e.Tag())
	}
	return fmt.Errorf("%s", msg)
}
