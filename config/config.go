// Package config loads the server configuration from the environment.
package config

import "time"

const (
	DriverFirestore = "firestore"
	DriverSQLite    = "sqlite"

	AuthModeFirebase = "firebase"
	AuthModeDev      = "dev"
)

// Config holds all application configuration, grouped per concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Firebase FirebaseConfig `mapstructure:"firebase"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	GinMode   string `mapstructure:"gin_mode" validate:"required,oneof=debug release test"`
	PublicURL string `mapstructure:"public_url" validate:"required,url"`
}

type StoreConfig struct {
	Driver     string `mapstructure:"driver" validate:"required,oneof=firestore sqlite"`
	SQLitePath string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
}

// FirebaseConfig covers both the Admin SDK (credentials, project) and the
// web SDK values rendered into the sign-in page.
type FirebaseConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	ProjectID       string `mapstructure:"project_id"`
	APIKey          string `mapstructure:"api_key"`
	AuthDomain      string `mapstructure:"auth_domain"`
}

type AuthConfig struct {
	Mode          string        `mapstructure:"mode" validate:"required,oneof=firebase dev"`
	SessionSecret string        `mapstructure:"session_secret" validate:"required,min=32"`
	SessionTTL    time.Duration `mapstructure:"session_ttl" validate:"required,gt=0"`
}

// NeedsFirebase reports whether the Firebase Admin app has to be initialized.
func (c *Config) NeedsFirebase() bool {
	return c.Store.Driver == DriverFirestore || c.Auth.Mode == AuthModeFirebase
}
