// Package config reads the service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseHost   string `mapstructure:"DATABASE_HOST"`
	DatabasePort   string `mapstructure:"DATABASE_PORT"`
	DatabaseUser   string `mapstructure:"DATABASE_USER"`
	DatabasePass   string `mapstructure:"DATABASE_PASS"`
	// DatabaseName 在 sqlite 下是数据库文件路径
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	CacheHost string `mapstructure:"CACHE_HOST"`
	CachePort string `mapstructure:"CACHE_PORT"`
	CachePass string `mapstructure:"CACHE_PASS"`
	CacheDB   int    `mapstructure:"CACHE_DB"`

	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout time.Duration `mapstructure:"CONTEXT_TIMEOUT"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	CORSOrigins    string        `mapstructure:"CORS_ORIGINS"`

	BloomFilterSize   uint64        `mapstructure:"BLOOM_FILTER_SIZE"`
	ReconcileInterval time.Duration `mapstructure:"RECONCILE_INTERVAL"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"DATABASE_DRIVER":    DriverMySQL,
	"DATABASE_HOST":      "127.0.0.1",
	"DATABASE_PORT":      "3306",
	"DATABASE_USER":      "root",
	"DATABASE_PASS":      "",
	"DATABASE_NAME":      "conduit",
	"CACHE_HOST":         "127.0.0.1",
	"CACHE_PORT":         "6379",
	"CACHE_PASS":         "",
	"CACHE_DB":           0,
	"SERVER_ADDRESS":     ":9090",
	"CONTEXT_TIMEOUT":    "30s",
	"JWT_SECRET":         "",
	"CORS_ORIGINS":       "*",
	"BLOOM_FILTER_SIZE":  uint64(10000000),
	"RECONCILE_INTERVAL": "0s",
	"RATE_LIMIT_RPS":     5.0,
	"RATE_LIMIT_BURST":   10,
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "text",
}

// Load reads envFile (".env" when empty) into the process environment if it
// exists, then decodes the environment on top of the defaults.
// Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
		logrus.Debugf("%s not found, using environment only", envFile)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("DATABASE_DRIVER %q: expected %s or %s", c.DatabaseDriver, DriverMySQL, DriverSQLite)
	}
	if c.ContextTimeout <= 0 {
		return fmt.Errorf("CONTEXT_TIMEOUT must be positive, got %s", c.ContextTimeout)
	}
	if c.ReconcileInterval < 0 {
		return fmt.Errorf("RECONCILE_INTERVAL must not be negative, got %s", c.ReconcileInterval)
	}
	return nil
}

// MySQLDSN builds the go-sql-driver DSN.
func (c Config) MySQLDSN() string {
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", c.DatabaseUser, c.DatabasePass, c.DatabaseHost, c.DatabasePort, c.DatabaseName)
	val := url.Values{}
	val.Add("parseTime", "1")
	val.Add("loc", "UTC")
	val.Add("charset", "utf8mb4")
	return fmt.Sprintf("%s?%s", connection, val.Encode())
}

func (c Config) CacheAddr() string {
	return c.CacheHost + ":" + c.CachePort
}

// Origins splits CORS_ORIGINS on commas.
func (c Config) Origins() []string {
	var res []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			res = append(res, o)
		}
	}
	return res
}

// SetupLogger applies LOG_LEVEL and LOG_FORMAT to the standard logrus logger.
func (c Config) SetupLogger() error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	switch strings.ToLower(c.LogFormat) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("LOG_FORMAT %q: expected text or json", c.LogFormat)
	}
	return nil
}
