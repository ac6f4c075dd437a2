package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"

	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/store"
	"github.com/jwalitptl/clinic-admin/pkg/messaging/redis"
	"github.com/jwalitptl/clinic-admin/pkg/worker"
)

const EnvPrefix = "CLINIC"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Clinic  ClinicConfig  `mapstructure:"clinic"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Events  EventsConfig  `mapstructure:"events"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int             `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration   `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	RequireAuth     bool            `mapstructure:"require_auth"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
	CORS            CORSConfig      `mapstructure:"cors"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type StorageConfig struct {
	Driver       string         `mapstructure:"driver"`
	Dir          string         `mapstructure:"dir"`
	StrictDecode bool           `mapstructure:"strict_decode"`
	Redis        RedisConfig    `mapstructure:"redis"`
	Postgres     PostgresConfig `mapstructure:"postgres"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	Prefix       string        `mapstructure:"prefix"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type ClinicConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type AuthConfig struct {
	PasswordHashing string `mapstructure:"password_hashing"`
	BcryptCost      int    `mapstructure:"bcrypt_cost"`
}

type EventsConfig struct {
	Enabled bool         `mapstructure:"enabled"`
	Channel string       `mapstructure:"channel"`
	Redis   RedisConfig  `mapstructure:"redis"`
	Outbox  OutboxConfig `mapstructure:"outbox"`
}

type OutboxConfig struct {
	BatchSize       int           `mapstructure:"batch_size"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	RetryAttempts   int           `mapstructure:"retry_attempts"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"`
	Retention       time.Duration `mapstructure:"retention"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.require_auth", false)
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.requests_per_second", 20.0)
	v.SetDefault("server.rate_limit.burst", 40)
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.cors.allowed_methods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors.allowed_headers", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})

	v.SetDefault("storage.driver", store.DriverFile)
	v.SetDefault("storage.dir", "data")
	v.SetDefault("storage.strict_decode", false)
	v.SetDefault("storage.redis.url", "redis://localhost:6379/0")
	v.SetDefault("storage.redis.prefix", store.DefaultRedisPrefix)
	v.SetDefault("storage.postgres.host", "localhost")
	v.SetDefault("storage.postgres.port", 5432)
	v.SetDefault("storage.postgres.user", "postgres")
	v.SetDefault("storage.postgres.password", "")
	v.SetDefault("storage.postgres.name", "clinic")
	v.SetDefault("storage.postgres.sslmode", "disable")

	v.SetDefault("clinic.timezone", "UTC")

	v.SetDefault("auth.password_hashing", "none")
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("events.enabled", false)
	v.SetDefault("events.channel", "clinic.events")
	v.SetDefault("events.redis.url", "redis://localhost:6379/0")
	v.SetDefault("events.outbox.batch_size", 100)
	v.SetDefault("events.outbox.poll_interval", time.Second)
	v.SetDefault("events.outbox.retry_attempts", 3)
	v.SetDefault("events.outbox.retry_delay", 500*time.Millisecond)
	v.SetDefault("events.outbox.retention", 7*24*time.Hour)
	v.SetDefault("events.outbox.cleanup_interval", time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// LoadConfig reads config.yaml from the working directory or ./config and
// applies CLINIC_ prefixed environment overrides, e.g. CLINIC_STORAGE_DIR.
// A missing file is not an error; defaults apply.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case store.DriverFile, store.DriverMemory, store.DriverRedis, store.DriverPostgres:
	default:
		return fmt.Errorf("invalid storage.driver %q", c.Storage.Driver)
	}
	if _, err := c.Clinic.Location(); err != nil {
		return err
	}
	o := c.Events.Outbox
	if c.Events.Enabled && (o.BatchSize <= 0 || o.PollInterval <= 0 || o.RetryAttempts <= 0 || o.RetryDelay <= 0) {
		return errors.New("events.outbox settings must be greater than 0")
	}
	return nil
}

// Location is the zone calendar dates and weekdays are evaluated in.
func (c ClinicConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic.timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *StorageConfig) ToStoreOptions() store.Options {
	return store.Options{
		Driver:      c.Driver,
		Dir:         c.Dir,
		RedisURL:    c.Redis.URL,
		RedisPrefix: c.Redis.Prefix,
		Postgres: store.PostgresConfig{
			Host:     c.Postgres.Host,
			Port:     c.Postgres.Port,
			User:     c.Postgres.User,
			Password: c.Postgres.Password,
			Name:     c.Postgres.Name,
			SSLMode:  c.Postgres.SSLMode,
		},
	}
}

func (c *StorageConfig) ToRepositoryOptions() repository.Options {
	return repository.Options{StrictDecode: c.StrictDecode}
}

func (c *EventsConfig) ToWorkerConfig() worker.OutboxProcessorConfig {
	return worker.OutboxProcessorConfig{
		BatchSize:     c.Outbox.BatchSize,
		PollInterval:  c.Outbox.PollInterval,
		RetryAttempts: c.Outbox.RetryAttempts,
		RetryDelay:    c.Outbox.RetryDelay,
		Channel:       c.Channel,
	}
}

func (c *RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}
