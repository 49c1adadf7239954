// Package config provides configuration management for the Sportology API.
package config

import (
	"os"
	"strings"
	"testing"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	expansionConfigPath   = "testdata/expansion_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
	expectedNoErrorMsg    = "expected no error, got %v"
	expectedNonNilConfig  = "expected non-nil config"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != "sportology" {
		t.Errorf("expected app name 'sportology', got '%s'", cfg.App.Name)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("expected environment 'development', got '%s'", cfg.App.Environment)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("expected database host 'localhost', got '%s'", cfg.Database.Host)
	}

	if cfg.Database.Port != 5432 {
		t.Errorf("expected database port 5432, got %d", cfg.Database.Port)
	}

	if cfg.RateLimit.FreeTierDailyLimit != 10 {
		t.Errorf("expected free tier limit 10, got %d", cfg.RateLimit.FreeTierDailyLimit)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("unexpected error message: %v", err)
	}
}

// TestLoadConfigExpandsEnvironmentVariables tests ${VAR} expansion
func TestLoadConfigExpandsEnvironmentVariables(t *testing.T) {
	os.Setenv("TEST_DB_PASSWORD", "expanded_secret_value")
	defer os.Unsetenv("TEST_DB_PASSWORD")

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Database.Password != "expanded_secret_value" {
		t.Errorf("expected expanded password, got '%s'", cfg.Database.Password)
	}
}

// TestValidateValidConfig tests that a valid configuration passes validation
func TestValidateValidConfig(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config to pass validation, got %v", err)
	}
}

// TestValidateRejectsUnknownEnvironment tests the environment rule
func TestValidateRejectsUnknownEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.App.Environment = "invalid"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
}

// TestValidateRejectsUnknownSport tests the sports whitelist rule
func TestValidateRejectsUnknownSport(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.Server.AllowedSports = []string{"tennis", "curling"}
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for unknown sport")
	}
	if !strings.Contains(err.Error(), "sports") {
		t.Errorf("unexpected error message: %v", err)
	}
}

// TestValidateRejectsShortJWTSecret tests the secret length rule
func TestValidateRejectsShortJWTSecret(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.Auth.JWTSecret = "too-short"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for short jwt secret")
	}
}

// TestValidateCrossFieldPortClash tests the port cross-field rule
func TestValidateCrossFieldPortClash(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	cfg.Server.HealthPort = cfg.Server.Port
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for clashing ports")
	}
}

// TestTokenTTL tests the token TTL helper
func TestTokenTTL(t *testing.T) {
	a := AuthConfig{TokenTTLDays: 7}
	if got := a.TokenTTL().Hours(); got != 7*24 {
		t.Errorf("TokenTTL = %v hours, want %v", got, 7*24)
	}
}
