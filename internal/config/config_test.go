package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, DBDriverMongo, cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Registration.PendingTTL)
	assert.Equal(t, 10*time.Minute, cfg.Registration.OTPTTL)
	assert.Equal(t, 2*time.Minute, cfg.Registration.ResendCooldown)
	assert.Equal(t, 5, cfg.Registration.MaxOTPAttempts)
	assert.Equal(t, 30*time.Minute, cfg.Registration.SweepInterval)
	assert.Equal(t, 168*time.Hour, cfg.Auth.JWT.AccessTokenTTL)
	assert.Equal(t, 720*time.Hour, cfg.Auth.JWT.RefreshTokenTTL)
	assert.Equal(t, "clinickart-api", cfg.Auth.JWT.Issuer)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Registration.ExposeOTP)
	assert.False(t, cfg.NeedsRedis())
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		setRequired(t)
		cfg, err := Load()
		require.NoError(t, err)
		return *cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"expose otp outside production", func(c *Config) { c.Registration.ExposeOTP = true }, true},
		{"expose otp in production", func(c *Config) {
			c.Env = EnvProduction
			c.Auth.OTPSalt = "pepper"
			c.Registration.ExposeOTP = true
		}, false},
		{"production without otp salt", func(c *Config) { c.Env = EnvProduction }, false},
		{"same jwt secrets", func(c *Config) { c.Auth.JWT.RefreshSecret = c.Auth.JWT.AccessSecret }, false},
		{"otp too short", func(c *Config) { c.Auth.OTPLength = 3 }, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }, false},
		{"mysql without server", func(c *Config) { c.Database.Driver = DBDriverMySQL }, false},
		{"unknown pending store", func(c *Config) { c.Registration.PendingStore = "disk" }, false},
		{"sendgrid without key", func(c *Config) {
			c.Email.Enabled = true
			c.Email.Provider = EmailProviderSendGrid
		}, false},
		{"unknown notify mode", func(c *Config) { c.Notify.Mode = "sms" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNeedsRedis(t *testing.T) {
	cfg := Config{}
	cfg.Registration.PendingStore = PendingStoreRedis
	assert.True(t, cfg.NeedsRedis())

	cfg = Config{}
	cfg.Notify.Mode = NotifyModeQueue
	assert.True(t, cfg.NeedsRedis())
}
