package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Env:             "development",
		Port:            "8080",
		JWTSecret:       "secure-secret-at-least-32-chars-long",
		TokenTTLMinutes: 60,
		DBPassword:      "secure-password",
		DBSSLMode:       "disable",
	}
}

func TestConfig_ValidateRequiresSecret(t *testing.T) {
	c := validConfig()
	c.JWTSecret = ""
	assert.Error(t, c.Validate())
}

func TestConfig_ValidateRequiresPositiveTTL(t *testing.T) {
	c := validConfig()
	c.TokenTTLMinutes = 0
	assert.Error(t, c.Validate())
}

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"short secret rejected", func(c *Config) { c.JWTSecret = "short" }, true},
		{"default db password rejected", func(c *Config) { c.DBPassword = "password" }, true},
		{"disabled ssl rejected", func(c *Config) { c.DBSSLMode = "disable" }, true},
		{"hardened config accepted", func(c *Config) {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = "production"
			c.DBSSLMode = "require"
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_SecretFromEnv(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("JWT_SECRET")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("JWT_SECRET", "env-provided-secret")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "env-provided-secret", c.JWTSecret)
	assert.Equal(t, time.Hour, c.TokenTTL())
}

func TestLoadConfig_MissingSecretFails(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Unsetenv("JWT_SECRET")

	_, err := LoadConfig()
	assert.Error(t, err)
}
