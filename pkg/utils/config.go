package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	LoginRatePerMin int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

func (c JWTConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RedisConfig is optional; an empty URL keeps realtime events on the local hub only.
type RedisConfig struct {
	URL     string
	Channel string
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required when DEBUG is off")

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "clubops")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("LOGIN_RATE_PER_MIN", 10)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "clubops")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("REDIS_CHANNEL", "clubops:events")
}

// LoadConfig reads .env (if present) into the environment and resolves
// settings through viper. Flags bound onto v take precedence.
func LoadConfig(v *viper.Viper) (*Config, error) {
	// .env is optional, the process environment is enough in containers
	_ = godotenv.Load()

	if v == nil {
		v = viper.New()
	}
	setDefaults(v)
	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			LoginRatePerMin: v.GetInt("LOGIN_RATE_PER_MIN"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Redis: RedisConfig{
			URL:     v.GetString("REDIS_URL"),
			Channel: v.GetString("REDIS_CHANNEL"),
		},
	}

	if config.JWT.Secret == "" {
		if !config.App.Debug {
			return nil, ErrMissingJWTSecret
		}
		config.JWT.Secret = "clubops-dev-secret"
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
