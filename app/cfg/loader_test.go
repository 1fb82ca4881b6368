package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		ConfigPath: "config/config.yaml",
		LogFile:    "logs/bot.log",
		DryRun:     true,
		UserAgent:  "Test Agent",
		Timezone:   "UTC",
		Debug:      true,
		Version:    "test-version",
	}

	if cfg.ConfigPath != "config/config.yaml" {
		t.Errorf("Expected config path 'config/config.yaml', got '%s'", cfg.ConfigPath)
	}
	if cfg.LogFile != "logs/bot.log" {
		t.Errorf("Expected log file 'logs/bot.log', got '%s'", cfg.LogFile)
	}
	if !cfg.DryRun {
		t.Error("Expected dry run to be enabled")
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Expected timezone 'UTC', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}

func TestApplyTimezone(t *testing.T) {
	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("Expected UTC to be a valid timezone, got error: %v", err)
	}

	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected error for invalid timezone")
	}
}
