package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProductionBaseURL = "https://api.mvola.mg"
	SandboxBaseURL    = "https://devapi.mvola.mg"
)

// Config holds everything the gateway reads from the environment.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	PartnerMSISDN  string
	PartnerName    string
	Environment    string
	BaseURL        string
	CallbackURL    string
	CallbackSecret string
	UserLanguage   string
	AllowedOrigins []string
	Port           string
	Version        string
	HTTPTimeout    time.Duration
}

// Load reads the configuration from environment variables, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		ConsumerKey:    v.GetString("MVOLA_CONSUMER_KEY"),
		ConsumerSecret: v.GetString("MVOLA_CONSUMER_SECRET"),
		PartnerMSISDN:  v.GetString("MVOLA_PARTNER_MSISDN"),
		PartnerName:    v.GetString("MVOLA_PARTNER_NAME"),
		Environment:    v.GetString("NODE_ENV"),
		BaseURL:        v.GetString("MVOLA_BASE_URL"),
		CallbackURL:    v.GetString("MVOLA_CALLBACK_URL"),
		CallbackSecret: v.GetString("MVOLA_CALLBACK_SECRET"),
		UserLanguage:   v.GetString("MVOLA_USER_LANGUAGE"),
		AllowedOrigins: splitOrigins(v.GetString("ALLOWED_ORIGINS")),
		Port:           v.GetString("PORT"),
		Version:        v.GetString("APP_VERSION"),
		HTTPTimeout:    v.GetDuration("MVOLA_HTTP_TIMEOUT"),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = SandboxBaseURL
		if cfg.IsProduction() {
			cfg.BaseURL = ProductionBaseURL
		}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("NODE_ENV", "development")
	v.SetDefault("MVOLA_USER_LANGUAGE", "FR")
	v.SetDefault("MVOLA_HTTP_TIMEOUT", 30*time.Second)
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_VERSION", "1.0.0")
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// HasCredentials reports whether a client-credentials exchange can be attempted at all.
func (c *Config) HasCredentials() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != ""
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
