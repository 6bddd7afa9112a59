package database

import (
	"context"
	"testing"
	"time"

	"github.com/yourusername/fairline/internal/config"
)

// SetupTestDB creates a test database connection and verifies it.
// Tests calling this are skipped when no test config is present.
func SetupTestDB(t *testing.T) *DB {
	cfg, err := config.Load("../../config/config.yaml.test")
	if err != nil {
		t.Skipf("skipping: no test database config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		t.Skipf("skipping: test database unavailable: %v", err)
	}

	verifyCtx, verifyCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer verifyCancel()

	if err := db.Ping(verifyCtx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the database connection cleanly
func TeardownTestDB(t *testing.T, db *DB) {
	db.Close()
}
