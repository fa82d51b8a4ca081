package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.ErrorIs(t, err, ErrMissingSecret)
	assert.Nil(t, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TOKEN_EXPIRATION", "")
	t.Setenv("FRONTEND_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, time.Hour, cfg.JWT.TokenExpiration)
	assert.Equal(t, "http://localhost:8080", cfg.FrontendURL)
	assert.Contains(t, cfg.Database.URL, "postgres://")
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_EXPIRATION", "2h")
	t.Setenv("FRONTEND_URL", "https://blog.example.com/")
	t.Setenv("MAIL_WORKERS", "4")
	t.Setenv("SERVER_ENABLE_METRICS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.JWT.TokenExpiration)
	assert.Equal(t, "https://blog.example.com", cfg.FrontendURL)
	assert.Equal(t, 4, cfg.Mail.Workers)
	assert.True(t, cfg.HTTP.EnableMetrics)
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name string
		val  string
		want time.Duration
	}{
		{name: "go duration", val: "90m", want: 90 * time.Minute},
		{name: "seconds", val: "30", want: 30 * time.Second},
		{name: "days", val: "7d", want: 7 * 24 * time.Hour},
		{name: "garbage falls back", val: "soon", want: time.Minute},
		{name: "empty falls back", val: "", want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.val)
			assert.Equal(t, tt.want, getDuration("TEST_DURATION", time.Minute))
		})
	}
}
