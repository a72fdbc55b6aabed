package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8" // sha256("password")

func validConfig() *Config {
	return &Config{
		Port:                    8000,
		GinMode:                 "test",
		ReservationSlotCapacity: 20,
		Admin: Admin{
			Email:         "admin@boomiis.uk",
			PasswordHash:  testHash,
			SessionSecret: "secret",
		},
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", testHash)
	t.Setenv("ADMIN_SESSION_SECRET", "s3cret")

	cfg, err := Load(false)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "admin@boomiis.uk", cfg.Admin.Email)
	assert.Equal(t, "GBP", cfg.Pricing.Currency)
	assert.Equal(t, 20, cfg.ReservationSlotCapacity)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "boomiis", cfg.DB.Name)
	assert.False(t, cfg.PaymentsEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", testHash)
	t.Setenv("ADMIN_SESSION_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("CURRENCY", "eur")
	t.Setenv("RESERVATION_SLOT_CAPACITY", "5")
	t.Setenv("STRIPE_SECRET", "sk_test_123")
	t.Setenv("CORS_ORIGINS", "https://boomiis.uk, https://www.boomiis.uk")

	cfg, err := Load(false)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "EUR", cfg.Pricing.Currency)
	assert.Equal(t, 5, cfg.ReservationSlotCapacity)
	assert.True(t, cfg.PaymentsEnabled())
	assert.Equal(t, []string{"https://boomiis.uk", "https://www.boomiis.uk"}, cfg.CORSOrigins)
}

func TestLoadFailsWithoutPasswordHash(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("ADMIN_SESSION_SECRET", "s3cret")

	_, err := Load(false)
	require.ErrorIs(t, err, ErrAdminPasswordHashEmpty)
}

func TestLoadDevModeSessionSecret(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", testHash)
	t.Setenv("ADMIN_SESSION_SECRET", "")

	_, err := Load(false)
	require.ErrorIs(t, err, ErrSessionSecretEmpty)

	cfg, err := Load(true)
	require.NoError(t, err)
	assert.Equal(t, DevSessionSecret, cfg.Admin.SessionSecret)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"valid config", func(_ *Config) {}, nil},
		{"bcrypt hash", func(c *Config) { c.Admin.PasswordHash = "$2a$10$abcdefghijklmnopqrstuv" }, nil},
		{"missing port", func(c *Config) { c.Port = 0 }, ErrPortCanNotBeZero},
		{"unknown gin mode", func(c *Config) { c.GinMode = "verbose" }, ErrGinMode},
		{"missing email", func(c *Config) { c.Admin.Email = "" }, ErrAdminEmailEmpty},
		{"malformed hash", func(c *Config) { c.Admin.PasswordHash = "plaintext" }, ErrAdminPasswordHashInvalid},
		{"zero capacity", func(c *Config) { c.ReservationSlotCapacity = 0 }, ErrSlotCapacity},
		{"negative fee", func(c *Config) { c.Pricing.OrderFee = -1 }, ErrNegativePricing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := Validate(c)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
