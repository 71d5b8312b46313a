package config

import (
	"fmt"
	"strings"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

type Config struct {
	Port             string `config:"PORT"`
	GinMode          string `config:"GIN_MODE"`
	DatabaseURL      string `config:"DATABASE_URL"`
	DBHost           string `config:"DB_HOST"`
	DBPort           string `config:"DB_PORT"`
	DBUser           string `config:"DB_USER"`
	DBPassword       string `config:"DB_PASSWORD"`
	DBName           string `config:"DB_NAME"`
	DBSSLMode        string `config:"DB_SSLMODE"`
	RedisURL         string `config:"REDIS_URL"`
	LogLevel         string `config:"LOG_LEVEL"`
	LogPretty        bool   `config:"LOG_PRETTY"`
	CORSOrigins      string `config:"CORS_ORIGINS"`
	DefaultCourts    int    `config:"DEFAULT_COURTS"`
	SessionIdleHours int    `config:"SESSION_IDLE_HOURS"`
	PublicBaseURL    string `config:"PUBLIC_BASE_URL"`
}

func Default() Config {
	return Config{
		Port:             "8080",
		GinMode:          "release",
		DBHost:           "localhost",
		DBPort:           "5432",
		DBUser:           "postgres",
		DBName:           "badminton",
		DBSSLMode:        "disable",
		LogLevel:         "info",
		CORSOrigins:      "*",
		DefaultCourts:    2,
		SessionIdleHours: 12,
		PublicBaseURL:    "http://localhost:8080",
	}
}

// Load reads the process environment over the defaults. Callers load .env
// files beforehand with godotenv.
func Load() (Config, error) {
	cfg := Default()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "failed to read configuration from environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DefaultCourts <= 0 {
		return eris.Errorf("DEFAULT_COURTS must be positive, got %d", c.DefaultCourts)
	}
	if c.SessionIdleHours <= 0 {
		return eris.Errorf("SESSION_IDLE_HOURS must be positive, got %d", c.SessionIdleHours)
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a key/value Postgres DSN
// built from the DB_* variables.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
