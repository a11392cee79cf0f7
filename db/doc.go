// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables and seeds the session counter:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes,
and ON CONFLICT DO NOTHING for the seed row.

# Tables

  - admin: administrator credentials and privilege level (out-of-band writes)
  - voter: eligible voter identities and pincodes (out-of-band writes)
  - election: the single active election (collapse enforced in handlers)
  - candidate: candidate set for the active post, unique by name
  - ballot: one ballot per (voter_identity, post)
  - session_version: the one-row global admin session counter
  - attendance: append-only voter check-in log

# Invariant-bearing constraints

Two constraints back the invariants the handlers rely on:

  - ballot UNIQUE (voter_identity, post) closes the concurrent double-vote
    race; casts go through INSERT ... ON CONFLICT DO NOTHING
  - session_version CHECK (id = 1) pins the counter to a single row

The DDL avoids anything dialect-specific so the same schema runs on both
Postgres (lib/pq) and SQLite (modernc.org/sqlite).
*/
package db
