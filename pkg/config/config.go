// Package config loads service configuration from YAML with environment
// variable overrides, following the teacher's BaseConfig/LoadConfig shape.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the illustrative composition-root entrypoint.
// The decisioning core itself exposes no transport.
type ServerConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
}

// DatabaseConfig configures the Postgres connection.
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN builds the libpq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig configures the parameter-store/bureau cache.
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
	PoolSize int    `yaml:"pool_size"`
}

// Addr returns the host:port address redis.Options expects.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// BureauConfig configures the external credit-bureau collaborator.
type BureauConfig struct {
	NICEBaseURL string        `yaml:"nice_base_url"`
	KCBBaseURL  string        `yaml:"kcb_base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
}

// ParameterStoreConfig configures the regulatory parameter resolver.
type ParameterStoreConfig struct {
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	ResolveTimeout  time.Duration `yaml:"resolve_timeout"`
	WarnRateLimit   time.Duration `yaml:"warn_rate_limit"`
}

// SecurityConfig configures the PII-hashing secret.
type SecurityConfig struct {
	IdentityHashKey string `yaml:"identity_hash_key"`
}

// Config is the root application configuration.
type Config struct {
	Service        ServerConfig         `yaml:"service"`
	Database       DatabaseConfig       `yaml:"database"`
	Redis          RedisConfig          `yaml:"redis"`
	Bureau         BureauConfig         `yaml:"bureau"`
	ParameterStore ParameterStoreConfig `yaml:"parameter_store"`
	Security       SecurityConfig       `yaml:"security"`
}

// Load reads configPath (if present) and applies environment-variable
// overrides and defaults, mirroring the teacher's LoadConfig/
// overrideWithEnvVars/SetDefaults split.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	setDefaults(cfg)
	overrideWithEnvVars(cfg)

	return cfg, nil
}

func setDefaults(c *Config) {
	if c.Service.Environment == "" {
		c.Service.Environment = "development"
	}
	if c.Service.LogLevel == "" {
		c.Service.LogLevel = "info"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 5 * time.Minute
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Bureau.Timeout == 0 {
		c.Bureau.Timeout = 3 * time.Second
	}
	if c.Bureau.CacheTTL == 0 {
		c.Bureau.CacheTTL = time.Hour
	}
	if c.ParameterStore.CacheTTL == 0 {
		c.ParameterStore.CacheTTL = 5 * time.Minute
	}
	if c.ParameterStore.ResolveTimeout == 0 {
		c.ParameterStore.ResolveTimeout = 500 * time.Millisecond
	}
	if c.ParameterStore.WarnRateLimit == 0 {
		c.ParameterStore.WarnRateLimit = time.Minute
	}
	if c.Security.IdentityHashKey == "" {
		c.Security.IdentityHashKey = "dev-identity-hash-key-change-me"
	}
}

func overrideWithEnvVars(c *Config) {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Service.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Service.LogLevel = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Database.Port = p
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.Name = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Redis.Port = p
		}
	}
	if v := os.Getenv("BUREAU_NICE_URL"); v != "" {
		c.Bureau.NICEBaseURL = v
	}
	if v := os.Getenv("BUREAU_KCB_URL"); v != "" {
		c.Bureau.KCBBaseURL = v
	}
	if v := os.Getenv("IDENTITY_HASH_KEY"); v != "" {
		c.Security.IdentityHashKey = v
	}
}
