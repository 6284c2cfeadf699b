// Package config loads runtime settings from the environment and an optional
// config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	JWTSecret     string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenTTL      time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
	LoginIdentity string        `mapstructure:"login_identity" validate:"required"`
	LoginLimit    int           `mapstructure:"login_limit_per_min" validate:"gte=0"`
	TrustProxy    bool          `mapstructure:"trust_proxy"`

	MetricsEnabled bool     `mapstructure:"metrics_enabled"`
	MetricsToken   string   `mapstructure:"metrics_token"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
}

var defaults = map[string]any{
	"port":                3000,
	"log_level":           "info",
	"shutdown_timeout":    "10s",
	"jwt_secret":          "",
	"token_ttl":           "5m",
	"login_identity":      "Javi",
	"login_limit_per_min": 30,
	"trust_proxy":         false,
	"metrics_enabled":     true,
	"metrics_token":       "",
	"cors_origins":        []string{"*"},
}

var validate = validator.New()

// Load reads settings from environment variables (PORT, JWT_SECRET, ...) and,
// when file is non-empty, from that config file. The environment wins.
func Load(file string) (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.CORSOrigins = splitList(cfg.CORSOrigins)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", describe(err))
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// splitList normalises CORS_ORIGINS given as "a, b" in a single env value.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
