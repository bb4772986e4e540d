package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port               int      `mapstructure:"port"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`
	RequestTimeoutSec  int      `mapstructure:"request_timeout_sec"`  // HTTP read/write; 0 = use server default
	ShutdownTimeoutSec int      `mapstructure:"shutdown_timeout_sec"` // Graceful shutdown wait

	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
	LogMaxAgeDays int    `mapstructure:"log_max_age_days"`
	LogCompress   bool   `mapstructure:"log_compress"`

	// Completion service (Mistral chat completions API)
	MistralBaseURL     string  `mapstructure:"mistral_base_url"`
	MistralAPIKey      string  `mapstructure:"mistral_api_key"`
	MistralModel       string  `mapstructure:"mistral_model"`
	MistralMaxTokens   int     `mapstructure:"mistral_max_tokens"`
	MistralTemperature float64 `mapstructure:"mistral_temperature"`
	MistralTimeoutSec  int     `mapstructure:"mistral_timeout_sec"` // Timeout for completion calls; 0 = default

	// Cluster access
	KubeconfigPath     string  `mapstructure:"kubeconfig_path"`
	KubeContext        string  `mapstructure:"kube_context"`
	Namespace          string  `mapstructure:"namespace"`              // Default namespace for pod queries
	K8sTimeoutSec      int     `mapstructure:"k8s_timeout_sec"`        // Timeout for outbound K8s API calls; 0 = default
	K8sRateLimitPerSec float64 `mapstructure:"k8s_rate_limit_per_sec"` // Token bucket rate (req/s); 0 = no limit
	K8sRateLimitBurst  int     `mapstructure:"k8s_rate_limit_burst"`   // Token bucket burst; 0 = no limit
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/kubeask/")
	viper.AddConfigPath("$HOME/.kubeask")
	viper.AddConfigPath(".")

	// Defaults
	viper.SetDefault("port", 8000)
	viper.SetDefault("allowed_origins", []string{"*"})
	viper.SetDefault("request_timeout_sec", 30)
	viper.SetDefault("shutdown_timeout_sec", 15)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_file", "logs/agent.log")
	viper.SetDefault("log_max_size_mb", 100)
	viper.SetDefault("log_max_backups", 10)
	viper.SetDefault("log_max_age_days", 30)
	viper.SetDefault("log_compress", true)
	viper.SetDefault("mistral_base_url", "https://api.mistral.ai")
	viper.SetDefault("mistral_model", "mistral-small-latest")
	viper.SetDefault("mistral_max_tokens", 200)
	viper.SetDefault("mistral_temperature", 0.7)
	viper.SetDefault("mistral_timeout_sec", 60)
	viper.SetDefault("kubeconfig_path", "")
	viper.SetDefault("kube_context", "")
	viper.SetDefault("namespace", "default")
	viper.SetDefault("k8s_timeout_sec", 30)
	viper.SetDefault("k8s_rate_limit_per_sec", 0) // 0 = disabled
	viper.SetDefault("k8s_rate_limit_burst", 0)

	// Environment variables
	viper.SetEnvPrefix("KUBEASK")
	viper.AutomaticEnv()

	// The API key keeps its historical unprefixed name.
	_ = viper.BindEnv("mistral_api_key", "MISTRAL_API_KEY", "KUBEASK_MISTRAL_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; using defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks fields that have no workable zero value.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.MistralBaseURL == "" {
		return fmt.Errorf("mistral_base_url must not be empty")
	}
	if c.MistralModel == "" {
		return fmt.Errorf("mistral_model must not be empty")
	}
	if c.Namespace == "" {
		return fmt.Errorf("namespace must not be empty")
	}
	if c.MistralTemperature < 0 || c.MistralTemperature > 2 {
		return fmt.Errorf("mistral_temperature out of range: %v", c.MistralTemperature)
	}
	return nil
}
