package appointments

import (
	"context"
	"fmt"
	"net"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/imrishuroy/go-appointment-flow/internal/config"
)

// DSN builds the driver connection string for one country database.
func DSN(db config.CountryDB) string {
	cfg := mysqlDriver.NewConfig()
	cfg.User = db.User
	cfg.Passwd = db.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(db.Host, db.Port)
	cfg.DBName = db.Name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN()
}

// OpenDB connects to a country database, applies pool settings and installs the
// tracing plugin. It does not retry; a failed cold start is retried by the platform.
func OpenDB(db config.CountryDB, pool config.DBPool, log logrus.FieldLogger) (*gorm.DB, error) {
	gdb, err := gorm.Open(mysql.Open(DSN(db)), &gorm.Config{
		Logger: logger.New(log, logger.Config{
			LogLevel:                  logger.Error,
			SlowThreshold:             time.Second,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", db.Name, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	if pool.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	}

	if err := gdb.Use(otelgorm.NewPlugin()); err != nil {
		log.WithError(err).Warn("db connected but failed to install otelgorm plugin")
	}
	return gdb, nil
}

// Migrate creates or updates the appointment table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&Appointment{}); err != nil {
		return fmt.Errorf("migrate appointment table: %w", err)
	}
	return nil
}

// Ping checks that the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
