package database

import (
	"database/sql"
	"fmt"
	"time"

	"draftkeep/pkg/logger"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured SQL backend. driver is "postgres" or
// "sqlite"; dsn is a connection URL for postgres or a file path for sqlite.
func Open(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Verify the connection is actually alive.
	// Retry a few times in case of temporary DNS/network blips.
	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			logger.Sugar.Info("Successfully connected to the draft database")
			return db, nil
		}
		logger.Sugar.Infof("Database connection failed, retrying in 1s... (%v)", err)
		time.Sleep(1 * time.Second)
	}
	db.Close()
	return nil, fmt.Errorf("could not connect to database after retries: %w", err)
}
