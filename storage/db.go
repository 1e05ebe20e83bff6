package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"quotation-backend/config"
	"quotation-backend/utils"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
)

// ConnectTimeout bounds how long InitDB keeps retrying the first ping.
const ConnectTimeout = 30 * time.Second

// InitDB opens the shared Postgres pool and waits until it answers a ping.
// The caller owns the returned handle and must Close it on shutdown.
func InitDB(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pool settings sized for a light API load
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = ConnectTimeout

	attempt := 0
	operation := func() error {
		attempt++
		if err := Ping(ctx, db); err != nil {
			log.Printf("database ping attempt %d failed: %v", attempt, err)
			return err
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("connected to database %s on %s:%s", cfg.Name, cfg.Host, cfg.Port)
	return db, nil
}

// Ping checks the pool with a short deadline. Used by the health endpoint.
func Ping(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	pingCtx, cancel := utils.GetFastQueryContext(ctx)
	defer cancel()
	return db.PingContext(pingCtx)
}
