// Package config provides configuration management for the Fairline application.
package config

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() (*CustomValidator, error) {
	v := validator.New()

	// Register custom validation functions
	if err := v.RegisterValidation("environment", validateEnvironment); err != nil {
		return nil, fmt.Errorf("failed to register environment validator: %w", err)
	}
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return nil, fmt.Errorf("failed to register loglevel validator: %w", err)
	}
	if err := v.RegisterValidation("markets", validateMarkets); err != nil {
		return nil, fmt.Errorf("failed to register markets validator: %w", err)
	}

	return &CustomValidator{validator: v}, nil
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv, err := NewValidator()
	if err != nil {
		return err
	}
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

// validateMarkets validates market key configuration
func validateMarkets(fl validator.FieldLevel) bool {
	markets, ok := fl.Field().Interface().([]string)
	if !ok || len(markets) == 0 {
		return false
	}

	validMarkets := map[string]bool{
		"moneyline":    true,
		"h2h":          true,
		"spread":       true,
		"spreads":      true,
		"total":        true,
		"totals":       true,
		"player_prop":  true,
		"player_props": true,
	}

	for _, market := range markets {
		if !validMarkets[market] {
			return false
		}
	}
	return true
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	// Consensus thresholds must be sane probabilities
	fo := cfg.Engine.FairOdds
	if fo.MaxConsensusSpread <= 0 || fo.MaxConsensusSpread > 1 {
		return fmt.Errorf("max_consensus_spread must be in (0, 1]")
	}
	if fo.SpreadMarketMaxSpread <= 0 || fo.SpreadMarketMaxSpread > fo.MaxConsensusSpread {
		return fmt.Errorf("spread_market_max_spread must be in (0, max_consensus_spread]")
	}

	// Sharp-book tiers must be ordered
	if fo.MinSharpBooksForHigh < fo.MinSharpBooksForMedium {
		return fmt.Errorf("min_sharp_books_for_high cannot be below min_sharp_books_for_medium")
	}
	if fo.MinCommonBooksForHigh < fo.MinCommonBooksForMedium {
		return fmt.Errorf("min_common_books_for_high cannot be below min_common_books_for_medium")
	}

	// Fee rates are fractions of winnings
	for book, profile := range cfg.Engine.Fees {
		if profile.Rate < 0 || profile.Rate >= 1 {
			return fmt.Errorf("fee rate for book %q must be in [0, 1)", book)
		}
	}

	// Validate production environment requirements
	if cfg.IsProduction() {
		if cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
		}
	}

	// Validate connection pool settings
	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("max_idle_connections cannot exceed max_connections")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "markets":
			errMsg += fmt.Sprintf("- Field '%s' contains an unsupported market key\n", field)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}

// ValidateEnvironment validates environment-specific requirements
func ValidateEnvironment(cfg *Config) error {
	if cfg.IsProduction() {
		// Production must have SSL enabled
		if cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires database SSL mode to be 'require' or 'verify-full'")
		}

		// Production should not run against placeholder feed credentials
		if isTestCredential(cfg.Feed.APIKey) {
			return fmt.Errorf("production environment should not use a placeholder feed API key")
		}
	}

	return nil
}

// isTestCredential checks if a credential looks like a test credential
func isTestCredential(credential string) bool {
	testPatterns := []string{
		"test", "demo", "example", "placeholder", "YOUR_",
	}

	for _, pattern := range testPatterns {
		if match, _ := regexp.MatchString("(?i)"+pattern, credential); match {
			return true
		}
	}

	return false
}
