// ABOUTME: SQLite-based cache implementation for persistent snapshot caching
// ABOUTME: Provides a file-based cache that survives application restarts

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"contractes-api/core/interfaces"
)

const cleanupInterval = 5 * time.Minute

// Client implements the Cache interface using SQLite
type Client struct {
	db       *sql.DB
	filePath string
	logger   interfaces.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSQLiteCache creates a new SQLite cache client
func NewSQLiteCache(filePath string, logger interfaces.Logger) (*Client, error) {
	if filePath == "" {
		filePath = "contractes-cache.db"
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	db, err := sql.Open("sqlite3", filePath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	client := &Client{
		db:       db,
		filePath: filePath,
		logger:   logger,
		stop:     make(chan struct{}),
	}

	if err := client.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	go client.cleanupRoutine()

	return client, nil
}

// initSchema creates the cache table if it doesn't exist
func (c *Client) initSchema() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS ` + tableName + ` (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			expiry INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_expiry ON ` + tableName + `(expiry);
	`)
	return err
}

// Get retrieves a value from the cache
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key, c.logger); err != nil {
		return nil, err
	}

	query, params, err := getQuery(key, time.Now().UnixNano())
	if err != nil {
		return nil, err
	}

	var value []byte
	err = c.db.QueryRowContext(ctx, query, params...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interfaces.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}
	return value, nil
}

// Set stores a value in the cache with TTL.
// A zero TTL stores the value without expiry.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}
	if err := ValidateValue(value); err != nil {
		return err
	}

	expiry := int64(math.MaxInt64)
	if ttl > 0 {
		expiry = time.Now().Add(ttl).UnixNano()
	}

	query, params, err := setQuery(key, value, expiry)
	if err != nil {
		return err
	}
	if _, err := c.db.ExecContext(ctx, query, params...); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}

	query, params, err := deleteQuery(key)
	if err != nil {
		return err
	}
	if _, err := c.db.ExecContext(ctx, query, params...); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}

// Ping checks the database for health reporting
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close stops the cleanup routine and closes the database connection
func (c *Client) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return c.db.Close()
}

// Stats returns cache statistics
func (c *Client) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var count int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+tableName).Scan(&count); err != nil {
		return nil, err
	}
	stats["total_entries"] = count

	var expired int
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+tableName+" WHERE expiry <= ?", time.Now().UnixNano()).Scan(&expired)
	if err != nil {
		return nil, err
	}
	stats["expired_entries"] = expired
	stats["file_path"] = c.filePath

	return stats, nil
}

func (c *Client) cleanupRoutine() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes expired entries
func (c *Client) cleanup() {
	query, params, err := cleanupQuery(time.Now().UnixNano())
	if err != nil {
		return
	}
	res, err := c.db.Exec(query, params...)
	if err != nil {
		c.logger.Warn("SQLite cache cleanup failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		c.logger.Debug("SQLite cache cleanup", map[string]interface{}{
			"removed": n,
		})
	}
}
