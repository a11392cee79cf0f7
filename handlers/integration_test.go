// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"demokrati-backend/middleware"
	"demokrati-backend/models"
	"demokrati-backend/session"
	"demokrati-backend/testutil"
)

// TestFullElectionWorkflow tests the complete end-to-end workflow:
// 1. Admin logs in (SuperAdmin, version 1)
// 2. Admin sets the active election and adds candidates
// 3. Voters log in and cast ballots
// 4. Duplicate cast is rejected
// 5. Tally matches the cast ballots
// 6. Admin revokes all sessions; the old token is dead on the next request
// 7. Ballots are reset with a fresh token
func TestFullElectionWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	sessions := session.NewCounter(db)
	adminHandler := NewAdminHandler(db, cfg, sessions)
	voterHandler := NewVoterHandler(db, cfg)

	testutil.CreateTestAdmin(t, db, "chair@club.se", "opensesame", models.PrivilegeSuperAdmin)
	testutil.CreateTestVoter(t, db, "alice@club.se", "1111")
	testutil.CreateTestVoter(t, db, "bob@club.se", "2222")

	// Step 1: Admin login
	req := testutil.MakeRequest("POST", "/admin/login", models.LoginRequest{Identity: "chair@club.se", Secret: "opensesame"}, nil)
	w := httptest.NewRecorder()
	adminHandler.Login(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 1 - Admin login failed: %d - %s", w.Code, w.Body.String())
	}
	var loginResp models.AdminLoginResponse
	testutil.AssertJSON(t, w, &loginResp)
	adminTok := loginResp.Token
	t.Logf("Step 1 - Admin logged in with privilege %s", loginResp.Privilege)

	adminHeaders := map[string]string{middleware.AdminTokenHeader: adminTok}

	// Step 2: Set election and add candidates
	req = testutil.MakeRequest("PUT", "/admin/election", models.SetElectionRequest{Post: "President"}, adminHeaders)
	w = httptest.NewRecorder()
	adminHandler.SetElection(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Set election failed: %d - %s", w.Code, w.Body.String())
	}

	for _, name := range []string{"CandidateX", "CandidateY"} {
		req = testutil.MakeRequest("POST", "/admin/candidates", models.AddCandidateRequest{Name: name}, adminHeaders)
		w = httptest.NewRecorder()
		adminHandler.AddCandidate(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Add candidate %s failed: %d - %s", name, w.Code, w.Body.String())
		}
	}
	t.Log("Step 2 - Election set to President with 2 candidates")

	// Step 3: Voters log in and cast
	voterTokens := make(map[string]string)
	for identity, pin := range map[string]string{"alice@club.se": "1111", "bob@club.se": "2222"} {
		req = testutil.MakeRequest("POST", "/voter/login", models.LoginRequest{Identity: identity, Secret: pin}, nil)
		w = httptest.NewRecorder()
		voterHandler.Login(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("Step 3 - Voter login %s failed: %d - %s", identity, w.Code, w.Body.String())
		}
		var vResp models.VoterLoginResponse
		testutil.AssertJSON(t, w, &vResp)
		voterTokens[identity] = vResp.Token
	}

	req = testutil.MakeRequest("POST", "/ballots", models.CastBallotRequest{Candidate: "CandidateX"},
		map[string]string{middleware.VoterTokenHeader: voterTokens["alice@club.se"]})
	w = httptest.NewRecorder()
	voterHandler.CastBallot(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 3 - Alice cast failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 3 - Alice voted for CandidateX")

	// Step 4: Alice tries again, any candidate
	req = testutil.MakeRequest("POST", "/ballots", models.CastBallotRequest{Candidate: "CandidateY"},
		map[string]string{middleware.VoterTokenHeader: voterTokens["alice@club.se"]})
	w = httptest.NewRecorder()
	voterHandler.CastBallot(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("Step 4 - Expected conflict on duplicate cast, got: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 4 - Duplicate cast rejected")

	// Step 5: Tally
	req = testutil.MakeRequest("GET", "/admin/tally", nil, adminHeaders)
	w = httptest.NewRecorder()
	adminHandler.Tally(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Tally failed: %d - %s", w.Code, w.Body.String())
	}
	var tallyResp models.TallyResponse
	testutil.AssertJSON(t, w, &tallyResp)
	if tallyResp.Counts["CandidateX"] != 1 {
		t.Errorf("Step 5 - Expected CandidateX: 1, got %v", tallyResp.Counts)
	}
	if len(tallyResp.Counts) != 1 {
		t.Errorf("Step 5 - Expected a single tallied candidate, got %v", tallyResp.Counts)
	}
	t.Logf("Step 5 - Tally: %v", tallyResp.Counts)

	// Step 6: Global logout revokes the working token
	req = testutil.MakeRequest("POST", "/admin/logout-all", nil, adminHeaders)
	w = httptest.NewRecorder()
	adminHandler.LogoutAll(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Logout-all failed: %d - %s", w.Code, w.Body.String())
	}

	req = testutil.MakeRequest("GET", "/admin/tally", nil, adminHeaders)
	w = httptest.NewRecorder()
	adminHandler.Tally(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Step 6 - Expected revoked token to be rejected, got: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 6 - Old token rejected after logout-all")

	// Step 7: Fresh login works and can reset the ledger
	req = testutil.MakeRequest("POST", "/admin/login", models.LoginRequest{Identity: "chair@club.se", Secret: "opensesame"}, nil)
	w = httptest.NewRecorder()
	adminHandler.Login(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Re-login failed: %d - %s", w.Code, w.Body.String())
	}
	testutil.AssertJSON(t, w, &loginResp)

	req = testutil.MakeRequest("POST", "/admin/reset-ballots", nil,
		map[string]string{middleware.AdminTokenHeader: loginResp.Token})
	w = httptest.NewRecorder()
	adminHandler.ResetBallots(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Reset ballots failed: %d - %s", w.Code, w.Body.String())
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ballot`).Scan(&count); err != nil {
		t.Fatalf("Failed to count ballots: %v", err)
	}
	if count != 0 {
		t.Errorf("Step 7 - Expected empty ledger, got %d rows", count)
	}
	t.Log("Step 7 - Ledger reset with fresh token")
}

// TestResultsOnlyAdminScenario: a results-only principal can read the tally
// but cannot touch the candidate list.
func TestResultsOnlyAdminScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	sessions := session.NewCounter(db)
	adminHandler := NewAdminHandler(db, cfg, sessions)

	testutil.CreateTestAdmin(t, db, "observer@club.se", "lookonly", models.PrivilegeResultsOnly)
	testutil.SetTestElection(t, db, "President")
	testutil.AddTestCandidate(t, db, "Anna")
	testutil.CastTestBallot(t, db, "v1@club.se", "President", "Anna")

	req := testutil.MakeRequest("POST", "/admin/login", models.LoginRequest{Identity: "observer@club.se", Secret: "lookonly"}, nil)
	w := httptest.NewRecorder()
	adminHandler.Login(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var loginResp models.AdminLoginResponse
	testutil.AssertJSON(t, w, &loginResp)
	headers := map[string]string{middleware.AdminTokenHeader: loginResp.Token}

	// Tally succeeds
	req = testutil.MakeRequest("GET", "/admin/tally", nil, headers)
	w = httptest.NewRecorder()
	adminHandler.Tally(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Adding a candidate is forbidden
	req = testutil.MakeRequest("POST", "/admin/candidates", models.AddCandidateRequest{Name: "Bert"}, headers)
	w = httptest.NewRecorder()
	adminHandler.AddCandidate(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// And so is a global logout
	req = testutil.MakeRequest("POST", "/admin/logout-all", nil, headers)
	w = httptest.NewRecorder()
	adminHandler.LogoutAll(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)
}
