package config

import (
	"strings"

	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/types"
	"github.com/spf13/viper"
)

// Configuration is the root configuration for the service, loaded from
// config files and environment variables via viper.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Stripe     StripeConfig     `mapstructure:"stripe"`
	ESIMGo     ESIMGoConfig     `mapstructure:"esimgo"`
	Email      EmailConfig      `mapstructure:"email"`
	Ads        AdsConfig        `mapstructure:"ads"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type DeploymentConfig struct {
	// Mode selects the payment provider field set (test vs live) and the
	// eSIM provisioning mode. Threaded explicitly into each component.
	Mode types.PaymentMode `mapstructure:"mode"`
	// BaseURL is the public storefront URL used to build checkout redirect
	// URLs, e.g. https://roamsim.example.
	BaseURL string `mapstructure:"base_url"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	// RetryAttempts bounds the backoff retry loop for transient failures
	// such as connection pool exhaustion.
	RetryAttempts int `mapstructure:"retry_attempts"`
	AutoMigrate   bool `mapstructure:"auto_migrate"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type ESIMGoConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type EmailConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	APIKey      string `mapstructure:"api_key"`
	FromAddress string `mapstructure:"from_address"`
}

type AdsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Google Ads server-side click conversion upload.
	GoogleConversionEndpoint string `mapstructure:"google_conversion_endpoint"`
	GoogleConversionAction   string `mapstructure:"google_conversion_action"`
	// GA4 Measurement Protocol.
	GA4MeasurementID string `mapstructure:"ga4_measurement_id"`
	GA4APISecret     string `mapstructure:"ga4_api_secret"`
}

type AuthConfig struct {
	// AdminSecret signs the bearer tokens accepted by the admin endpoints.
	AdminSecret string `mapstructure:"admin_secret"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// NewConfig loads configuration from ./config/config.yaml (optional) and the
// environment. Environment variables use the ROAMSIM_ prefix with
// underscores, e.g. ROAMSIM_STRIPE_SECRET_KEY.
func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("roamsim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env-only deployments are fine.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read configuration file").
				Mark(ierr.ErrConfiguration)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to parse configuration").
			Mark(ierr.ErrConfiguration)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.PaymentModeTest))
	v.SetDefault("deployment.base_url", "http://localhost:3000")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.retry_attempts", 3)
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("email.enabled", false)
	v.SetDefault("ads.enabled", false)
	v.SetDefault("ads.google_conversion_endpoint", "https://www.googleapis.com/ads/conversions:upload")
	v.SetDefault("logging.level", "info")
}

// Validate checks the configuration for obvious operator mistakes.
func (c *Configuration) Validate() error {
	switch c.Deployment.Mode {
	case types.PaymentModeTest, types.PaymentModeLive:
	default:
		return ierr.NewErrorf("invalid deployment mode: %s", c.Deployment.Mode).
			WithHint("Deployment mode must be 'test' or 'live'").
			Mark(ierr.ErrConfiguration)
	}

	if c.Email.Enabled && c.Email.APIKey == "" {
		return ierr.NewError("email is enabled but no API key is configured").
			WithHint("Set ROAMSIM_EMAIL_API_KEY or disable email").
			Mark(ierr.ErrConfiguration)
	}

	return nil
}

// GetDefaultConfig returns a test-mode configuration suitable for scripts
// and tests that do not load the full configuration.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{
			Mode:    types.PaymentModeTest,
			BaseURL: "http://localhost:3000",
		},
		Server: ServerConfig{Address: ":8080"},
		Database: DatabaseConfig{
			RetryAttempts: 3,
		},
		Logging: LoggingConfig{Level: "debug"},
	}
}
