package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"readTimeout"`
		WriteTimeout    time.Duration `yaml:"writeTimeout"`
		IdleTimeout     time.Duration `yaml:"idleTimeout"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
		AllowedOrigins  []string      `yaml:"allowedOrigins"`
		RateLimit       struct {
			Capacity   int `yaml:"capacity"`
			RefillRate int `yaml:"refillRate"`
		} `yaml:"rateLimit"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	// History selects where console queries are stored: memory, mysql or postgres.
	History struct {
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"history"`

	Cache struct {
		Driver   string        `yaml:"driver"` // memory | redis
		Address  string        `yaml:"address"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"cache"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Console struct {
		DefaultUser string `yaml:"defaultUser"`
		TimeZone    string `yaml:"timeZone"`
		TimeLayout  string `yaml:"timeLayout"`
	} `yaml:"console"`
}

// Load reads the YAML file at path, applies .env and CHECKOPS_* overrides,
// fills defaults and validates. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyEnv(c *Config) {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv("CHECKOPS_" + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv("CHECKOPS_" + key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	num("SERVER_PORT", &c.Server.Port)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("HISTORY_DRIVER", &c.History.Driver)
	str("HISTORY_HOST", &c.History.Host)
	num("HISTORY_PORT", &c.History.Port)
	str("HISTORY_USER", &c.History.User)
	str("HISTORY_PASSWORD", &c.History.Password)
	str("HISTORY_NAME", &c.History.Name)
	str("CACHE_DRIVER", &c.Cache.Driver)
	str("CACHE_ADDRESS", &c.Cache.Address)
	str("CACHE_PASSWORD", &c.Cache.Password)
	str("MINIO_ENDPOINT", &c.Minio.Endpoint)
	str("MINIO_ACCESS_KEY", &c.Minio.AccessKey)
	str("MINIO_SECRET_KEY", &c.Minio.SecretKey)
	str("MINIO_BUCKET", &c.Minio.BucketName)
	str("CONSOLE_DEFAULT_USER", &c.Console.DefaultUser)
	str("CONSOLE_TIME_ZONE", &c.Console.TimeZone)
	if v, ok := os.LookupEnv("CHECKOPS_ALLOWED_ORIGINS"); ok {
		c.Server.AllowedOrigins = strings.Split(v, ",")
	}
}

func applyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Server.RateLimit.Capacity == 0 {
		c.Server.RateLimit.Capacity = 60
	}
	if c.Server.RateLimit.RefillRate == 0 {
		c.Server.RateLimit.RefillRate = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.History.Driver == "" {
		c.History.Driver = "memory"
	}
	if c.History.Port == 0 {
		switch c.History.Driver {
		case "mysql":
			c.History.Port = 3306
		case "postgres":
			c.History.Port = 5432
		}
	}
	if c.History.SSLMode == "" {
		c.History.SSLMode = "disable"
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 10 * time.Minute
	}
	if c.Console.DefaultUser == "" {
		c.Console.DefaultUser = "hr-manager-1"
	}
	if c.Console.TimeZone == "" {
		c.Console.TimeZone = "UTC"
	}
}

// Validate checks driver names and required connection fields.
func (c *Config) Validate() error {
	switch c.History.Driver {
	case "memory":
	case "mysql", "postgres":
		if c.History.Host == "" || c.History.Name == "" {
			return fmt.Errorf("history.%s requires host and name", c.History.Driver)
		}
	default:
		return fmt.Errorf("unknown history driver %q", c.History.Driver)
	}
	switch c.Cache.Driver {
	case "memory":
	case "redis":
		if c.Cache.Address == "" {
			return errors.New("cache.redis requires address")
		}
	default:
		return fmt.Errorf("unknown cache driver %q", c.Cache.Driver)
	}
	if _, err := time.LoadLocation(c.Console.TimeZone); err != nil {
		return fmt.Errorf("console.timeZone: %w", err)
	}
	return nil
}

// MinioEnabled reports whether uploads can be stored.
func (c *Config) MinioEnabled() bool {
	return c.Minio.Endpoint != "" && c.Minio.BucketName != ""
}

// Location returns the console time zone; Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Console.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MySQLDSN builds the go-sql-driver DSN for the history store.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.History.User,
		c.History.Password,
		c.History.Host,
		c.History.Port,
		c.History.Name,
	)
}

// PostgresDSN builds the lib/pq connection string for the history store.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.History.Host,
		c.History.Port,
		c.History.User,
		c.History.Password,
		c.History.Name,
		c.History.SSLMode,
	)
}
