package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bioaura/platform/backend-go/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/sync/semaphore"
)

type DB struct {
	*sqlx.DB
	sem *semaphore.Weighted
}

var (
	dbInstance *DB
	once       sync.Once
)

// NewDB creates a new database connection pool
func NewDB(cfg *config.DatabaseConfig, maxConcurrent int) (*DB, error) {
	var err error
	once.Do(func() {
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

		var db *sqlx.DB
		db, err = sqlx.Connect("postgres", connStr)
		if err != nil {
			return
		}

		// Configure connection pool
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		if maxConcurrent < 1 {
			maxConcurrent = 10
		}
		dbInstance = &DB{
			DB:  db,
			sem: semaphore.NewWeighted(int64(maxConcurrent)),
		}
	})

	return dbInstance, err
}

// Wrap adapts an existing sqlx handle, for tools that open their own
// connection outside the server pool.
func Wrap(db *sqlx.DB, maxConcurrent int) *DB {
	if maxConcurrent < 1 {
		maxConcurrent = 10
	}
	return &DB{
		DB:  db,
		sem: semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Acquire reserves a query slot, bounding how many snapshot reads hit the
// pool at once. Callers must Release exactly once.
func (db *DB) Acquire(ctx context.Context) error {
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire query slot: %w", err)
	}
	return nil
}

func (db *DB) Release() {
	db.sem.Release(1)
}
