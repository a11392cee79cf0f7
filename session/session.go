// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"database/sql"
	"fmt"
)

// Counter is the global admin session version. It lives in a single-row
// table so that every server process sharing the store observes the same
// value, and so that Advance is atomic under concurrent administrators.
type Counter struct {
	db *sql.DB
}

func NewCounter(db *sql.DB) *Counter {
	return &Counter{db: db}
}

// Current returns the live session version.
func (c *Counter) Current(ctx context.Context) (int64, error) {
	var version int64
	err := c.db.QueryRowContext(ctx, `
		SELECT version FROM session_version WHERE id = 1
	`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read session version: %w", err)
	}
	return version, nil
}

// Advance increments the version and returns the new value. Every admin
// token stamped with an earlier version is invalid from this point on.
func (c *Counter) Advance(ctx context.Context) (int64, error) {
	var version int64
	err := c.db.QueryRowContext(ctx, `
		UPDATE session_version SET version = version + 1 WHERE id = 1 RETURNING version
	`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to advance session version: %w", err)
	}
	return version, nil
}
