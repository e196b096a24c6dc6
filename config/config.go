package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Log        LogConfig        `yaml:"log"`
	Kafka      KafkaConfig      `yaml:"kafka"`
}

type DatabaseConfig struct {
	Host     string     `yaml:"host"`
	Port     int        `yaml:"port"`
	User     string     `yaml:"user"`
	Password string     `yaml:"password"`
	Name     string     `yaml:"name"`
	SSLMode  string     `yaml:"ssl_mode"`
	Pool     PoolConfig `yaml:"pool"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// PoolConfig bounds the connection pool. Zero values fall back to the defaults below.
type PoolConfig struct {
	MaxConns          int32         `yaml:"max_conns"`
	MinConns          int32         `yaml:"min_conns"`
	MaxConnIdleTime   time.Duration `yaml:"max_conn_idle_time"`
	MaxConnLifetime   time.Duration `yaml:"max_conn_lifetime"`
	AcquireTimeout    time.Duration `yaml:"acquire_timeout"`
	HealthCheckPeriod time.Duration `yaml:"health_check_period"`
}

type MigrationsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type KafkaConfig struct {
	Brokers           []string `yaml:"brokers"`
	FlightStatusTopic string   `yaml:"flight_status_topic"`
	GroupID           string   `yaml:"group_id"`
	PublishRetries    int      `yaml:"publish_retries"`
}

const (
	defaultMaxConns          = 10
	defaultMinConns          = 2
	defaultMaxConnIdleTime   = 10 * time.Minute
	defaultMaxConnLifetime   = 30 * time.Minute
	defaultAcquireTimeout    = 10 * time.Second
	defaultHealthCheckPeriod = time.Minute

	defaultPublishRetries = 3
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Config{
		Migrations: MigrationsConfig{Enabled: true},
		Log:        LogConfig{Level: "info", Format: "json"},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Database.Pool.applyDefaults()
	if cfg.Kafka.PublishRetries <= 0 {
		cfg.Kafka.PublishRetries = defaultPublishRetries
	}

	if cfg.Database.Pool.MinConns > cfg.Database.Pool.MaxConns {
		return nil, fmt.Errorf("invalid pool config: min_conns %d exceeds max_conns %d", cfg.Database.Pool.MinConns, cfg.Database.Pool.MaxConns)
	}

	return &cfg, nil
}

func (p *PoolConfig) applyDefaults() {
	if p.MaxConns <= 0 {
		p.MaxConns = defaultMaxConns
	}
	if p.MinConns <= 0 {
		p.MinConns = defaultMinConns
	}
	if p.MaxConnIdleTime <= 0 {
		p.MaxConnIdleTime = defaultMaxConnIdleTime
	}
	if p.MaxConnLifetime <= 0 {
		p.MaxConnLifetime = defaultMaxConnLifetime
	}
	if p.AcquireTimeout <= 0 {
		p.AcquireTimeout = defaultAcquireTimeout
	}
	if p.HealthCheckPeriod <= 0 {
		p.HealthCheckPeriod = defaultHealthCheckPeriod
	}
}
