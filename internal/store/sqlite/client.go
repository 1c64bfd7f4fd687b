package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"scumguard/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Store = (*Client)(nil)

type Client struct {
	db  *sql.DB
	log logrus.FieldLogger

	closeOnce sync.Once
}

// Open connects to a save database owned by another live process. Every
// pooled connection gets the pragmas from buildDSN; the pool is capped at
// one so the engine works on a single long-lived connection.
func Open(ctx context.Context, path string, log logrus.FieldLogger) (*Client, error) {
	log = log.WithField("component", "store")

	driverDSN, err := buildDSN(path)
	if err != nil {
		return nil, fmt.Errorf("building sqlite DSN: %w", err)
	}

	db, err := sql.Open("sqlite", driverDSN)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	c := &Client{db: db, log: log}
	if err := c.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Errorf("[LOGIC] Error creating indexes: %v", err)
	}
	return c, nil
}

// Close is safe to call more than once. Errors are logged, not returned,
// since the file may already be gone.
func (c *Client) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		if err := c.db.Close(); err != nil {
			c.log.WithError(err).Errorf("[LOGIC] Error closing database: %v", err)
		}
	})
	return nil
}
