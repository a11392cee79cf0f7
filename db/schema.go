// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application and seeds the
// single session version row. Safe to call multiple times - uses IF NOT
// EXISTS, and the seed is conflict-free.
//
// The DDL is intentionally restricted to the dialect both Postgres and
// SQLite accept: TEXT keys, explicit timestamps (no NOW() defaults), and
// ON CONFLICT clauses for the conditional writes.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Session counter starts at 1; a restart must never reset it.
	_, err = db.Exec(`
		INSERT INTO session_version (id, version) VALUES (1, 1)
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to seed session version: %w", err)
	}

	return nil
}

const schema = `
-- Administrators (credential store; written out-of-band, read-only here)
CREATE TABLE IF NOT EXISTS admin (
    identity TEXT PRIMARY KEY,
    secret TEXT NOT NULL,
    privilege TEXT NOT NULL DEFAULT '' CHECK (privilege IN ('', 'results', 'valberedning', 'all'))
);

-- Eligible voters (credential store; written out-of-band, read-only here)
CREATE TABLE IF NOT EXISTS voter (
    identity TEXT PRIMARY KEY,
    pincode TEXT NOT NULL
);

-- The single active election (the contested post)
CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    post TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Candidates for the active post
CREATE TABLE IF NOT EXISTS candidate (
    name TEXT PRIMARY KEY
);

-- Ballots reference the post by value, not an election row, so replacing
-- the election row never orphans them
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    voter_identity TEXT NOT NULL,
    post TEXT NOT NULL,
    candidate TEXT NOT NULL,
    cast_at TIMESTAMP NOT NULL,
    UNIQUE (voter_identity, post)
);

CREATE INDEX IF NOT EXISTS idx_ballot_post ON ballot(post);

-- Global admin session version; exactly one row, id pinned to 1
CREATE TABLE IF NOT EXISTS session_version (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    version BIGINT NOT NULL
);

-- Append-only check-in log, one row per successful voter login
CREATE TABLE IF NOT EXISTS attendance (
    voter_identity TEXT NOT NULL,
    checked_in_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attendance_identity ON attendance(voter_identity);
`
