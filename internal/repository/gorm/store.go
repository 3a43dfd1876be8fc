package gorm

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/roamsim/roamsim/internal/config"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/logger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store wraps the gorm connection shared by all repositories.
type Store struct {
	db            *gorm.DB
	retryAttempts uint64
	logger        *logger.Logger
}

// NewStore opens the database connection and configures the pool.
func NewStore(cfg *config.Configuration, log *logger.Logger) (*Store, error) {
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to the database").
			Mark(ierr.ErrDatabase)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	store := &Store{
		db:            db,
		retryAttempts: uint64(cfg.Database.RetryAttempts),
		logger:        log,
	}

	if cfg.Database.AutoMigrate {
		if err := store.Migrate(); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// Migrate creates or updates the schema for all models.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&PlanModel{}, &PlanDurationModel{}, &OrderModel{}, &CustomerModel{}); err != nil {
		return ierr.WithError(err).
			WithHint("Schema migration failed").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withRetry runs a database operation, retrying transient failures such as
// connection pool exhaustion with jittered exponential backoff, bounded by
// the configured attempt count. Non-transient errors return immediately.
func (s *Store) withRetry(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(newBackoff(), s.retryAttempts),
		ctx,
	)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if isTransient(err) {
			s.logger.Warnw("transient database error, retrying", "error", err)
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}

func newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return b
}

// isTransient classifies errors worth retrying: bad connections and pool
// exhaustion, not constraint violations or missing rows.
func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "too many connections") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "invalid connection") ||
		strings.Contains(msg, "connection reset")
}
