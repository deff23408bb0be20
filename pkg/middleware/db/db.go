package db

import (
	"context"
	"fmt"
	"time"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

type LogConf struct {
	Level string
}

type Config struct {
	Host    string
	Port    int
	User    string
	PW      string
	DBName  string
	LogConf LogConf
}

// Datastore wraps the shared gorm handle so repositories can embed it.
type Datastore struct {
	db *gorm.DB
}

var datastore *Datastore

func InitPostgres(ctx context.Context, conf *Config) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		conf.Host, conf.Port, conf.User, conf.PW, conf.DBName)

	gormLevel := gormlogger.Warn
	if conf.LogConf.Level == "debug" {
		gormLevel = gormlogger.Info
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLevel),
		TranslateError: true,
	})
	if err != nil {
		logger.Fatalf(ctx, "init postgres fail err: %+v", err)
		return
	}

	if err := gdb.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		logger.Warnf(ctx, "init gorm otel plugin fail err: %+v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Fatalf(ctx, "get sql db fail err: %+v", err)
		return
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	datastore = &Datastore{db: gdb}
}

func ClosePostgres(_ context.Context) {
	if datastore == nil {
		return
	}
	if sqlDB, err := datastore.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func DB() *Datastore {
	return datastore
}

// SetDB injects a prebuilt gorm handle, used by tests.
func SetDB(gdb *gorm.DB) {
	datastore = &Datastore{db: gdb}
}

func (d *Datastore) DBWithContext(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx)
}

func (d *Datastore) DBIns() *gorm.DB {
	return d.db
}

// Transaction runs fn inside one transaction, rebinding the shared
// datastore for repositories created within.
func (d *Datastore) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.db.WithContext(ctx).Transaction(fn)
}
