package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort               string   `env:"HTTP_PORT" envDefault:"5000"`
	DatabaseURL            string   `env:"DATABASE_URL,required,notEmpty"`
	DBTimeoutSeconds       int      `env:"DB_TIMEOUT_SECONDS" envDefault:"5"`
	JWTSecret              string   `env:"JWT_SECRET,required,notEmpty"`
	JWTTTLMinutes          int      `env:"JWT_TTL_MINUTES" envDefault:"60"`
	AdminUsername          string   `env:"ADMIN_USERNAME,required,notEmpty"`
	AdminPassword          string   `env:"ADMIN_PASSWORD"`
	AdminPasswordHash      string   `env:"ADMIN_PASSWORD_HASH"`
	AllowedOrigins         []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	TrustedProxies         []string `env:"TRUSTED_PROXIES" envSeparator:","`
	MigrateOnStart         bool     `env:"MIGRATE_ON_START" envDefault:"false"`
	SMTPHost               string   `env:"SMTP_HOST"`
	SMTPPort               int      `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser               string   `env:"SMTP_USER"`
	SMTPPass               string   `env:"SMTP_PASS"`
	SMTPFrom               string   `env:"SMTP_FROM"`
	SMTPFromName           string   `env:"SMTP_FROM_NAME"`
	SMTPUseTLS             bool     `env:"SMTP_USE_TLS" envDefault:"false"`
	MailTimeoutSeconds     int      `env:"MAIL_TIMEOUT_SECONDS" envDefault:"10"`
	RedisAddr              string   `env:"REDIS_ADDR"`
	RedisPassword          string   `env:"REDIS_PASSWORD"`
	RedisDB                int      `env:"REDIS_DB" envDefault:"0"`
	RateLimitMax           int      `env:"CONTACT_RATE_LIMIT_MAX" envDefault:"0"`
	RateLimitWindowMinutes int      `env:"CONTACT_RATE_LIMIT_WINDOW_MINUTES" envDefault:"10"`
}

var ErrAdminPasswordMissing = errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa combinaciones que env no puede expresar con tags.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AdminPassword) == "" && strings.TrimSpace(c.AdminPasswordHash) == "" {
		return ErrAdminPasswordMissing
	}
	return nil
}

func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}

func (c *Config) DBTimeout() time.Duration {
	return time.Duration(c.DBTimeoutSeconds) * time.Second
}

func (c *Config) MailTimeout() time.Duration {
	return time.Duration(c.MailTimeoutSeconds) * time.Second
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMinutes) * time.Minute
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
