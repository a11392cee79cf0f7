// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"demokrati-backend/models"
)

// activeElection returns the single active election. If no row exists it
// bootstraps an empty one; if concurrent writers ever left duplicates it
// keeps the oldest row and deletes the rest, so reads restore the invariant
// instead of propagating it.
func activeElection(db *sql.DB) (models.Election, error) {
	rows, err := db.Query(`
		SELECT id, post, created_at FROM election ORDER BY created_at, id
	`)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}
	defer rows.Close()

	var elections []models.Election
	for rows.Next() {
		var e models.Election
		if err := rows.Scan(&e.ID, &e.Post, &e.CreatedAt); err != nil {
			return models.Election{}, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return models.Election{}, fmt.Errorf("failed to read elections: %w", err)
	}

	if len(elections) == 0 {
		e := models.Election{
			ID:        uuid.NewString(),
			Post:      "",
			CreatedAt: time.Now().UTC(),
		}
		_, err := db.Exec(`
			INSERT INTO election (id, post, created_at) VALUES ($1, $2, $3)
		`, e.ID, e.Post, e.CreatedAt)
		if err != nil {
			return models.Election{}, fmt.Errorf("failed to bootstrap election: %w", err)
		}
		return e, nil
	}

	if len(elections) > 1 {
		// Collapse: one statement, oldest row survives.
		_, err := db.Exec(`DELETE FROM election WHERE id <> $1`, elections[0].ID)
		if err != nil {
			return models.Election{}, fmt.Errorf("failed to collapse duplicate elections: %w", err)
		}
		slog.Warn("collapsed duplicate election rows", "kept", elections[0].ID, "removed", len(elections)-1)
	}

	return elections[0], nil
}

// replaceElection swaps in a new single election row. The delete and insert
// run in one transaction so the table never settles with zero or multiple
// rows, no matter how many duplicates existed before the call.
func replaceElection(db *sql.DB, post string) (models.Election, error) {
	tx, err := db.Begin()
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM election`); err != nil {
		return models.Election{}, fmt.Errorf("failed to clear elections: %w", err)
	}

	e := models.Election{
		ID:        uuid.NewString(),
		Post:      post,
		CreatedAt: time.Now().UTC(),
	}
	_, err = tx.Exec(`
		INSERT INTO election (id, post, created_at) VALUES ($1, $2, $3)
	`, e.ID, e.Post, e.CreatedAt)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to insert election: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Election{}, fmt.Errorf("failed to commit election replacement: %w", err)
	}
	return e, nil
}

// listCandidates returns the candidate set for the active post, sorted by
// name. Display order is a presentation concern; sorting just keeps the
// output stable.
func listCandidates(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM candidate ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return candidates, nil
}

// candidateExists reports whether name is in the candidate set.
func candidateExists(db *sql.DB, name string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM candidate WHERE name = $1)
	`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check candidate: %w", err)
	}
	return exists, nil
}
