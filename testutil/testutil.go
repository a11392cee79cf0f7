// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"demokrati-backend/cliparse"
	"demokrati-backend/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. One connection max: each database/sql connection to :memory:
// would otherwise get its own empty database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4117,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		TokenSecret:  "test-token-secret",
	}
}

// CreateTestAdmin inserts an administrator with the given privilege level
// ("", "results", "valberedning", or "all")
func CreateTestAdmin(t *testing.T, conn *sql.DB, identity, secret, privilege string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO admin (identity, secret, privilege) VALUES ($1, $2, $3)
	`, identity, secret, privilege)
	if err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
}

// CreateTestVoter inserts an eligible voter
func CreateTestVoter(t *testing.T, conn *sql.DB, identity, pincode string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO voter (identity, pincode) VALUES ($1, $2)
	`, identity, pincode)
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}
}

// SetTestElection replaces the election table with a single row for post
func SetTestElection(t *testing.T, conn *sql.DB, post string) {
	t.Helper()

	if _, err := conn.Exec(`DELETE FROM election`); err != nil {
		t.Fatalf("Failed to clear elections: %v", err)
	}
	_, err := conn.Exec(`
		INSERT INTO election (id, post, created_at) VALUES ($1, $2, $3)
	`, uuid.NewString(), post, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}
}

// AddTestCandidate adds a candidate to the active set
func AddTestCandidate(t *testing.T, conn *sql.DB, name string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO candidate (name) VALUES ($1) ON CONFLICT (name) DO NOTHING
	`, name)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
}

// CastTestBallot records a ballot directly in the ledger
func CastTestBallot(t *testing.T, conn *sql.DB, identity, post, candidate string) string {
	t.Helper()

	ballotID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO ballot (id, voter_identity, post, candidate, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, ballotID, identity, post, candidate, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	return ballotID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
