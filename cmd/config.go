package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"mealroute/internal/core/domain/model/kernel"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is decoded from the environment. A .env file, when present, is
// loaded first and never overrides variables that are already set.
type Config struct {
	HTTPPort string `env:"HTTP_PORT,default=8080"`

	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     string `env:"DB_PORT,default=5432"`
	DBUser     string `env:"DB_USER,default=postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,default=mealroute"`
	DBSslMode  string `env:"DB_SSLMODE,default=disable"`

	LogLevel string `env:"LOG_LEVEL,default=info"`

	// KitchenLat and KitchenLng locate the single depot every tour starts from.
	KitchenLat float64 `env:"KITCHEN_LAT,required"`
	KitchenLng float64 `env:"KITCHEN_LNG,required"`

	RouteLockTimeout time.Duration `env:"ROUTE_LOCK_TIMEOUT,default=5s"`

	// RouteSnapshotSchedule is a six-field cron expression; empty disables the job.
	RouteSnapshotSchedule string `env:"ROUTE_SNAPSHOT_SCHEDULE"`

	HTTPRateLimitRPS   float64 `env:"HTTP_RATE_LIMIT_RPS,default=0"`
	HTTPRateLimitBurst int     `env:"HTTP_RATE_LIMIT_BURST,default=0"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// LoadConfig reads the optional env files and decodes Config.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the values envdecode cannot.
func (c Config) Validate() error {
	_, err := c.Kitchen()
	return errors.Join(
		err,
		nonNegative("ROUTE_LOCK_TIMEOUT", c.RouteLockTimeout),
		nonNegative("SHUTDOWN_TIMEOUT", c.ShutdownTimeout),
	)
}

// Kitchen is the route origin.
func (c Config) Kitchen() (kernel.GeoPoint, error) {
	p, err := kernel.NewGeoPoint(c.KitchenLat, c.KitchenLng)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("kitchen location: %w", err)
	}
	return p, nil
}

// DatabaseURL is the postgres:// form used by both gorm and migrations.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

// HTTPAddr is the listen address.
func (c Config) HTTPAddr() string {
	return net.JoinHostPort("0.0.0.0", c.HTTPPort)
}

func nonNegative(name string, d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%s must not be negative, got %s", name, d)
	}
	return nil
}
