package config

import (
	"os"
	"testing"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		envValue string
		fallback string
		expected string
	}{
		{"uses env value", "TEST_STR_1", "hello", "default", "hello"},
		{"uses fallback when unset", "TEST_STR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			if got := getEnv(tc.key, tc.fallback); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		envValue string
		fallback int
		expected int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"fallback for unset", "TEST_INT_2", "", 10, 10},
		{"fallback for non-numeric", "TEST_INT_3", "abc", 10, 10},
		{"fallback for non-positive", "TEST_INT_4", "0", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			if got := getEnvInt(tc.key, tc.fallback); got != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		envValue string
		fallback bool
		expected bool
	}{
		{"parses true", "TEST_BOOL_1", "true", false, true},
		{"parses false", "TEST_BOOL_2", "false", true, false},
		{"fallback for unset", "TEST_BOOL_3", "", true, true},
		{"fallback for garbage", "TEST_BOOL_4", "maybe", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			if got := getEnvBool(tc.key, tc.fallback); got != tc.expected {
				t.Errorf("expected %t, got %t", tc.expected, got)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort == "" || cfg.StorageBackend == "" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.HeartbeatSeconds <= 0 || cfg.EffectSweepSeconds <= 0 {
		t.Errorf("interval defaults must be positive: %+v", cfg)
	}
}
