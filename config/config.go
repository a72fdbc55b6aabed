// Package config reads the process configuration from the environment (and an optional .env file).
package config

import (
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// DevSessionSecret is used in dev mode when no secret is configured
const DevSessionSecret = "dev-secret-change"

// SessionLifetime bounds the admin cookie; the signed value itself carries no expiry.
const SessionLifetime = 8 * time.Hour

var sha256Hex = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// Database selects and names the document store
type Database struct {
	URL  string // postgres://, mysql:// or a sqlite path
	Name string
}

// Admin is the single administrator credential
type Admin struct {
	Email         string
	PasswordHash  string
	SessionSecret string
	CookieSecure  bool
}

// Pricing controls order totals
type Pricing struct {
	Currency string
	TaxRate  float64
	OrderFee float64
}

// Log configures the zerolog logger
type Log struct {
	Level    string
	Pretty   bool
	FilePath string
}

type Config struct {
	DevMode                 bool
	Port                    int
	GinMode                 string
	SiteName                string
	CORSOrigins             []string
	StripeSecret            string
	ReservationSlotCapacity int
	LoginAttemptsPerMinute  int
	DB                      Database
	Admin                   Admin
	Pricing                 Pricing
	Log                     Log
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", 8000)
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SITE_NAME", "BoomiisUK")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DATABASE_NAME", "boomiis")
	v.SetDefault("ADMIN_EMAIL", "admin@boomiis.uk")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("CURRENCY", "GBP")
	v.SetDefault("TAX_RATE", 0.0)
	v.SetDefault("ORDER_FEE", 0.0)
	v.SetDefault("RESERVATION_SLOT_CAPACITY", 20)
	v.SetDefault("LOGIN_ATTEMPTS_PER_MINUTE", 5)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
}

// Load reads .env (when present) and the environment. devMode relaxes the
// session secret requirement.
func Load(devMode bool) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	cfg := &Config{
		DevMode:                 devMode,
		Port:                    v.GetInt("PORT"),
		GinMode:                 v.GetString("GIN_MODE"),
		SiteName:                v.GetString("SITE_NAME"),
		CORSOrigins:             splitList(v.GetString("CORS_ORIGINS")),
		StripeSecret:            v.GetString("STRIPE_SECRET"),
		ReservationSlotCapacity: v.GetInt("RESERVATION_SLOT_CAPACITY"),
		LoginAttemptsPerMinute:  v.GetInt("LOGIN_ATTEMPTS_PER_MINUTE"),
		DB: Database{
			URL:  v.GetString("DATABASE_URL"),
			Name: v.GetString("DATABASE_NAME"),
		},
		Admin: Admin{
			Email:         strings.TrimSpace(v.GetString("ADMIN_EMAIL")),
			PasswordHash:  strings.TrimSpace(v.GetString("ADMIN_PASSWORD_HASH")),
			SessionSecret: v.GetString("ADMIN_SESSION_SECRET"),
			CookieSecure:  v.GetBool("COOKIE_SECURE"),
		},
		Pricing: Pricing{
			Currency: strings.ToUpper(v.GetString("CURRENCY")),
			TaxRate:  v.GetFloat64("TAX_RATE"),
			OrderFee: v.GetFloat64("ORDER_FEE"),
		},
		Log: Log{
			Level:    v.GetString("LOG_LEVEL"),
			Pretty:   v.GetBool("LOG_PRETTY"),
			FilePath: v.GetString("LOG_FILE_PATH"),
		},
	}

	if cfg.DevMode && cfg.Admin.SessionSecret == "" {
		cfg.Admin.SessionSecret = DevSessionSecret
	}

	return cfg, Validate(cfg)
}

// Validate checks the settings the server can not start without.
func Validate(c *Config) error {
	invalid := "invalid config"

	if c.Port == 0 {
		return errors.Wrap(ErrPortCanNotBeZero, invalid)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return errors.Wrap(ErrGinMode, invalid)
	}
	if c.Admin.Email == "" {
		return errors.Wrap(ErrAdminEmailEmpty, invalid)
	}
	if c.Admin.PasswordHash == "" {
		return errors.Wrap(ErrAdminPasswordHashEmpty, invalid)
	}
	if !IsSHA256Hex(c.Admin.PasswordHash) && !IsBcrypt(c.Admin.PasswordHash) {
		return errors.Wrap(ErrAdminPasswordHashInvalid, invalid)
	}
	if c.Admin.SessionSecret == "" {
		return errors.Wrap(ErrSessionSecretEmpty, invalid)
	}
	if c.ReservationSlotCapacity < 1 {
		return errors.Wrap(ErrSlotCapacity, invalid)
	}
	if c.Pricing.TaxRate < 0 || c.Pricing.OrderFee < 0 {
		return errors.Wrap(ErrNegativePricing, invalid)
	}

	return nil
}

// PaymentsEnabled reports whether a payment processor credential is configured.
func (c *Config) PaymentsEnabled() bool {
	return c.StripeSecret != ""
}

// IsSHA256Hex reports whether s looks like a hex encoded SHA-256 digest.
func IsSHA256Hex(s string) bool {
	return sha256Hex.MatchString(s)
}

// IsBcrypt reports whether s carries a bcrypt prefix.
func IsBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
