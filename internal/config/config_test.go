package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty uses default", "", []string{"d"}},
		{"only commas uses default", " , ,", []string{"d"}},
		{"trims items", "http://a.com, http://b.com ,", []string{"http://a.com", "http://b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitList(tt.input, []string{"d"}))
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, cfg.DSN())
}

func TestDatabaseConfig_URLWins(t *testing.T) {
	cfg := DatabaseConfig{URL: "postgres://u:p@db:5432/app", Host: "ignored"}

	assert.Equal(t, "postgres://u:p@db:5432/app", cfg.DSN())
}

func clearAPIEnv(t *testing.T) {
	for _, key := range []string{
		"SECRET_KEY", "TOKEN_TTL", "EMAIL_CONFIRMATION_REQUIRED", "PORT", "CORS_ALLOWED_ORIGINS",
		"DATABASE_URL", "DB_ENGINE", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"PUBLIC_URL", "EMAIL_HOST", "EMAIL_PORT", "EMAIL_HOST_USER", "EMAIL_HOST_PASSWORD", "DEFAULT_FROM_EMAIL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadAPI_MissingSecret(t *testing.T) {
	clearAPIEnv(t)

	cfg, err := LoadAPI()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "SECRET_KEY")
}

func TestLoadAPI_WithDefaults(t *testing.T) {
	clearAPIEnv(t)
	t.Setenv("SECRET_KEY", "secret")

	cfg, err := LoadAPI()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 720*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.EmailConfirmationRequired)
	assert.Equal(t, DefaultCORSOrigins, cfg.CORSAllowedOrigins)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.Name)
	assert.Equal(t, "postgres", cfg.Database.Password)
}

func TestLoadAPI_Email(t *testing.T) {
	clearAPIEnv(t)
	t.Setenv("SECRET_KEY", "secret")
	t.Setenv("EMAIL_CONFIRMATION_REQUIRED", "true")

	_, err := LoadAPI()
	require.ErrorContains(t, err, "EMAIL_HOST")

	t.Setenv("EMAIL_HOST", "smtp.example.com")
	t.Setenv("EMAIL_HOST_USER", "robot@example.com")
	t.Setenv("EMAIL_HOST_PASSWORD", "pw")
	t.Setenv("PUBLIC_URL", "https://api.linguista.online/")

	cfg, err := LoadAPI()
	require.NoError(t, err)
	assert.Equal(t, EmailConfig{Host: "smtp.example.com", Port: "587", User: "robot@example.com", Password: "pw"}, cfg.Email)
	assert.Equal(t, "https://api.linguista.online/api/v1/auth/registration/account-confirm-email", cfg.ConfirmationURL())
}

func TestLoadAPI_InvalidTTL(t *testing.T) {
	clearAPIEnv(t)
	t.Setenv("SECRET_KEY", "secret")
	t.Setenv("TOKEN_TTL", "forever")

	_, err := LoadAPI()
	assert.ErrorContains(t, err, "TOKEN_TTL")
}

func TestLoadAPI_UnsupportedEngine(t *testing.T) {
	clearAPIEnv(t)
	t.Setenv("SECRET_KEY", "secret")
	t.Setenv("DB_ENGINE", "django.db.backends.sqlite3")

	_, err := LoadAPI()
	assert.ErrorContains(t, err, "DB_ENGINE")
}

func TestLoadBot(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	os.Unsetenv("BOT_TOKEN")

	_, err := LoadBot()
	assert.ErrorContains(t, err, "BOT_TOKEN")

	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("API_URL", "http://api:8000/api/v1/")

	cfg, err := LoadBot()
	require.NoError(t, err)
	assert.Equal(t, "http://api:8000/api/v1", cfg.APIURL)
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "DEBUG", "info", ""} {
		logger, err := NewLogger(level)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
	dev, err := NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(-1))

	prod, err := NewLogger("info")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(-1))
}
