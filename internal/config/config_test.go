package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromDefaults(t *testing.T) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFromDefaults(t)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "default", cfg.Namespace)
	assert.Equal(t, "https://api.mistral.ai", cfg.MistralBaseURL)
	assert.Equal(t, "mistral-small-latest", cfg.MistralModel)
	assert.Equal(t, 200, cfg.MistralMaxTokens)
	assert.Equal(t, 0.7, cfg.MistralTemperature)
	assert.Equal(t, "logs/agent.log", cfg.LogFile)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KUBEASK_PORT", "9090")
	t.Setenv("KUBEASK_NAMESPACE", "staging")
	t.Setenv("MISTRAL_API_KEY", "secret-from-env")

	cfg := loadFromDefaults(t)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "staging", cfg.Namespace)
	assert.Equal(t, "secret-from-env", cfg.MistralAPIKey)
}

func TestLoad_PrefixedAPIKeyEnv(t *testing.T) {
	t.Setenv("KUBEASK_MISTRAL_API_KEY", "prefixed-secret")

	cfg := loadFromDefaults(t)
	assert.Equal(t, "prefixed-secret", cfg.MistralAPIKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:               8000,
			MistralBaseURL:     "https://api.mistral.ai",
			MistralModel:       "mistral-small-latest",
			MistralTemperature: 0.7,
			Namespace:          "default",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"empty base url", func(c *Config) { c.MistralBaseURL = "" }, true},
		{"empty model", func(c *Config) { c.MistralModel = "" }, true},
		{"empty namespace", func(c *Config) { c.Namespace = "" }, true},
		{"temperature out of range", func(c *Config) { c.MistralTemperature = 2.5 }, true},
		{"temperature zero is allowed", func(c *Config) { c.MistralTemperature = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
