package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that feed them.
var envBindings = map[string]string{
	"server.port":               "PORT",
	"server.log_level":          "LOG_LEVEL",
	"server.gin_mode":           "GIN_MODE",
	"server.public_url":         "PUBLIC_URL",
	"store.driver":              "STORE_DRIVER",
	"store.sqlite_path":         "SQLITE_PATH",
	"firebase.credentials_file": "GOOGLE_APPLICATION_CREDENTIALS",
	"firebase.project_id":       "FIREBASE_PROJECT_ID",
	"firebase.api_key":          "FIREBASE_API_KEY",
	"firebase.auth_domain":      "FIREBASE_AUTH_DOMAIN",
	"auth.mode":                 "AUTH_MODE",
	"auth.session_secret":       "SESSION_SECRET",
	"auth.session_ttl":          "SESSION_TTL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.public_url", "http://localhost:8080")
	v.SetDefault("store.driver", DriverFirestore)
	v.SetDefault("store.sqlite_path", "tarefas.db")
	v.SetDefault("auth.mode", AuthModeFirebase)
	v.SetDefault("auth.session_ttl", "168h")
}

// Load reads the env files, then the environment, and validates the result.
// Variables already present in the environment win over env files. With no
// files given, a missing .env is fine; named files must exist.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
		slog.Debug("no env file found, using process environment only")
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.NeedsFirebase() && cfg.Firebase.ProjectID == "" {
		return errors.New("invalid configuration: FIREBASE_PROJECT_ID is required for the firestore driver and firebase auth")
	}
	return nil
}
