package main

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Guyuepp/conduit-feed/internal/config"
)

const (
	dbMaxRetry       = 10
	dbRetryInterval  = 2 * time.Second
	dbMaxOpenConns   = 50
	dbMaxIdleConns   = 10
	dbConnMaxLifetime = time.Hour
)

func dialector(cfg config.Config) gorm.Dialector {
	if cfg.DatabaseDriver == config.DriverSQLite {
		return sqlite.Open(cfg.DatabaseName + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	}
	return mysql.Open(cfg.MySQLDSN())
}

// openDB retries until the database answers a ping.
func openDB(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	var err error
	for i := range dbMaxRetry {
		var db *gorm.DB
		db, err = gorm.Open(dialector(cfg), gcfg)
		if err == nil {
			sqlDB, derr := db.DB()
			if derr != nil {
				return nil, derr
			}
			if err = sqlDB.PingContext(ctx); err == nil {
				if cfg.DatabaseDriver == config.DriverSQLite {
					// sqlite 只允许一个写连接
					sqlDB.SetMaxOpenConns(1)
				} else {
					sqlDB.SetMaxOpenConns(dbMaxOpenConns)
					sqlDB.SetMaxIdleConns(dbMaxIdleConns)
					sqlDB.SetConnMaxLifetime(dbConnMaxLifetime)
				}
				return db, nil
			}
			_ = sqlDB.Close()
		}
		logrus.Warnf("failed to connect to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dbRetryInterval):
		}
	}
	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", dbMaxRetry, err)
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.Errorf("got error when getting sql.DB from gorm.DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logrus.Errorf("got error when closing the DB connection: %v", err)
	}
}

func openCache(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.CacheAddr(),
		Password: cfg.CachePass,
		DB:       cfg.CacheDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to open connection to cache: %w", err)
	}
	return client, nil
}
