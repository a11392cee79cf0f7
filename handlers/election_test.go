// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"

	"demokrati-backend/testutil"
)

func TestActiveElectionBootstrap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	election, err := activeElection(db)
	if err != nil {
		t.Fatalf("activeElection() error = %v", err)
	}
	if election.Post != "" {
		t.Errorf("Bootstrap election post = %q, want empty", election.Post)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM election`).Scan(&count); err != nil {
		t.Fatalf("Failed to count elections: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 row after bootstrap, got %d", count)
	}

	// Idempotent: a second read returns the same row
	again, err := activeElection(db)
	if err != nil {
		t.Fatalf("activeElection() error = %v", err)
	}
	if again.ID != election.ID {
		t.Errorf("Second read returned a different row: %s vs %s", again.ID, election.ID)
	}
}

func TestActiveElectionCollapsesDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	seed := []struct {
		id        string
		post      string
		createdAt string
	}{
		{"row-c", "Third", "2025-03-01T00:00:00Z"},
		{"row-a", "First", "2025-01-01T00:00:00Z"},
		{"row-b", "Second", "2025-02-01T00:00:00Z"},
	}
	for _, s := range seed {
		_, err := db.Exec(`INSERT INTO election (id, post, created_at) VALUES ($1, $2, $3)`, s.id, s.post, s.createdAt)
		if err != nil {
			t.Fatalf("Failed to seed election: %v", err)
		}
	}

	election, err := activeElection(db)
	if err != nil {
		t.Fatalf("activeElection() error = %v", err)
	}
	if election.Post != "First" {
		t.Errorf("Expected the oldest row to survive, got post %q", election.Post)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM election`).Scan(&count); err != nil {
		t.Fatalf("Failed to count elections: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected duplicates collapsed to 1 row, got %d", count)
	}
}

func TestReplaceElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	for i, post := range []string{"President", "Secretary", "Treasurer"} {
		election, err := replaceElection(db, post)
		if err != nil {
			t.Fatalf("replaceElection(%q) error = %v", post, err)
		}
		if election.Post != post {
			t.Errorf("replaceElection(%q) returned post %q", post, election.Post)
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM election`).Scan(&count); err != nil {
			t.Fatalf("Failed to count elections: %v", err)
		}
		if count != 1 {
			t.Errorf("After replacement %d: expected 1 row, got %d", i, count)
		}
	}
}

func TestListCandidatesSorted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	for _, name := range []string{"Cleo", "Anna", "Bert"} {
		testutil.AddTestCandidate(t, db, name)
	}

	candidates, err := listCandidates(db)
	if err != nil {
		t.Fatalf("listCandidates() error = %v", err)
	}

	want := []string{"Anna", "Bert", "Cleo"}
	if len(candidates) != len(want) {
		t.Fatalf("Expected %d candidates, got %d", len(want), len(candidates))
	}
	for i := range want {
		if candidates[i] != want[i] {
			t.Errorf("candidates[%d] = %q, want %q", i, candidates[i], want[i])
		}
	}
}

func TestCandidateExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.AddTestCandidate(t, db, "Anna")

	ok, err := candidateExists(db, "Anna")
	if err != nil {
		t.Fatalf("candidateExists() error = %v", err)
	}
	if !ok {
		t.Error("Expected Anna to exist")
	}

	ok, err = candidateExists(db, "Zed")
	if err != nil {
		t.Fatalf("candidateExists() error = %v", err)
	}
	if ok {
		t.Error("Expected Zed to be unknown")
	}
}
