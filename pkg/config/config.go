package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config carries every runtime knob for the taleemtrack client and the
// bundled dev server. Values come from the environment (optionally via a
// .env file) with the defaults below.
type Config struct {
	Env string

	API       APIConfig
	Auth      AuthConfig
	Log       LogConfig
	DevServer DevServerConfig
}

// APIConfig points the client at the TaleemTrack backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AuthConfig controls where client credentials are persisted.
type AuthConfig struct {
	CredentialsFile string
}

// LogConfig tunes zap output.
type LogConfig struct {
	Level  string
	Format string
}

// DevServerConfig configures the in-memory development server.
type DevServerConfig struct {
	Port        int
	JWTSecret   string
	TokenExpiry time.Duration
	CORSOrigins []string
}

// Load reads configuration from the environment, consulting a .env file
// when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine; anything else is a real config problem.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("TALEEMTRACK_API_URL"), "/"),
		Timeout: parseDuration(v.GetString("TALEEMTRACK_API_TIMEOUT"), 15*time.Second),
	}

	cfg.Auth = AuthConfig{
		CredentialsFile: v.GetString("TALEEMTRACK_CREDENTIALS_FILE"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.DevServer = DevServerConfig{
		Port:        v.GetInt("DEV_SERVER_PORT"),
		JWTSecret:   v.GetString("DEV_SERVER_JWT_SECRET"),
		TokenExpiry: parseDuration(v.GetString("DEV_SERVER_TOKEN_EXPIRY"), 24*time.Hour),
		CORSOrigins: splitAndTrim(v.GetString("DEV_SERVER_ALLOWED_ORIGINS")),
	}

	return cfg, nil
}

// DefaultCredentialsFile resolves the credentials path relative to the user
// config dir when the config does not pin one explicitly.
func (c *Config) DefaultCredentialsFile(userConfigDir string) string {
	if c.Auth.CredentialsFile != "" {
		return c.Auth.CredentialsFile
	}
	return filepath.Join(userConfigDir, "taleemtrack", "credentials.json")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("TALEEMTRACK_API_URL", "http://localhost:8080/api")
	v.SetDefault("TALEEMTRACK_API_TIMEOUT", "15s")
	v.SetDefault("TALEEMTRACK_CREDENTIALS_FILE", "")

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("DEV_SERVER_PORT", 8080)
	v.SetDefault("DEV_SERVER_JWT_SECRET", "dev_secret")
	v.SetDefault("DEV_SERVER_TOKEN_EXPIRY", "24h")
	v.SetDefault("DEV_SERVER_ALLOWED_ORIGINS", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
