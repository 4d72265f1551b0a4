package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/conduit-feed/internal/config"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, config.DriverMySQL, cfg.DatabaseDriver)
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, 30*time.Second, cfg.ContextTimeout)
	assert.Equal(t, time.Duration(0), cfg.ReconcileInterval)
	assert.Equal(t, uint64(10000000), cfg.BloomFilterSize)
	assert.Equal(t, []string{"*"}, cfg.Origins())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_NAME", "/tmp/feed.db")
	t.Setenv("CONTEXT_TIMEOUT", "5s")
	t.Setenv("RECONCILE_INTERVAL", "10m")
	t.Setenv("CACHE_DB", "3")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := config.Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "/tmp/feed.db", cfg.DatabaseName)
	assert.Equal(t, 5*time.Second, cfg.ContextTimeout)
	assert.Equal(t, 10*time.Minute, cfg.ReconcileInterval)
	assert.Equal(t, 3, cfg.CacheDB)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CONDUIT_TEST_ONLY=1\nSERVER_ADDRESS=:7070\n"), 0o600))
	t.Setenv("SERVER_ADDRESS", ":8080")
	t.Cleanup(func() { _ = os.Unsetenv("CONDUIT_TEST_ONLY") })

	cfg, err := config.Load(path)
	require.NoError(t, err)
	// 环境变量优先于文件
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "1", os.Getenv("CONDUIT_TEST_ONLY"))
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	_, err := config.Load(missingEnvFile(t))
	assert.ErrorContains(t, err, "DATABASE_DRIVER")
}

func TestMySQLDSN(t *testing.T) {
	cfg := config.Config{
		DatabaseUser: "u", DatabasePass: "p",
		DatabaseHost: "db", DatabasePort: "3306", DatabaseName: "feed",
	}
	assert.Equal(t, "u:p@tcp(db:3306)/feed?charset=utf8mb4&loc=UTC&parseTime=1", cfg.MySQLDSN())
	assert.Equal(t, "cache:6379", config.Config{CacheHost: "cache", CachePort: "6379"}.CacheAddr())
}

func TestSetupLogger(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())
	defer logrus.SetFormatter(logrus.StandardLogger().Formatter)

	require.NoError(t, config.Config{LogLevel: "debug", LogFormat: "json"}.SetupLogger())
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	assert.Error(t, config.Config{LogLevel: "loud"}.SetupLogger())
	assert.Error(t, config.Config{LogLevel: "info", LogFormat: "xml"}.SetupLogger())
}
