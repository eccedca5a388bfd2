package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	Generative GenerativeConfig
	Engine     EngineConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds Open Food Facts client configuration
type CatalogConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Enabled bool          `mapstructure:"enabled"`
}

// GenerativeConfig holds the language-model fallback configuration.
// The API key is optional; without it the generative source is simply
// absent from every fallback chain.
type GenerativeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// EngineConfig holds tuning knobs for the sourcing engine
type EngineConfig struct {
	TopKRecipes         int     `mapstructure:"top_k_recipes"`
	TopKCatalog         int     `mapstructure:"top_k_catalog"`
	CalorieCeilingSlack float64 `mapstructure:"calorie_ceiling_slack"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/mealengine/")

	v.SetEnvPrefix("MEALENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults are enough to run.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("catalog.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("catalog.timeout", "5s")
	v.SetDefault("catalog.enabled", true)

	// Registered empty so MEALENGINE_GENERATIVE_API_KEY binds; the key
	// itself stays optional.
	v.SetDefault("generative.api_key", "")
	v.SetDefault("generative.model", "gemini-1.5-flash")

	v.SetDefault("engine.top_k_recipes", 3)
	v.SetDefault("engine.top_k_catalog", 5)
	v.SetDefault("engine.calorie_ceiling_slack", 150)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Enabled && config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required when the catalog is enabled")
	}

	if config.Catalog.Timeout < 0 {
		return fmt.Errorf("catalog timeout must be positive, got: %s", config.Catalog.Timeout)
	}

	if config.Engine.TopKRecipes < 1 || config.Engine.TopKCatalog < 1 {
		return fmt.Errorf("engine top-k values must be at least 1")
	}

	return nil
}
