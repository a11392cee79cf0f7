// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"demokrati-backend/auth"
	"demokrati-backend/cliparse"
	"demokrati-backend/middleware"
	"demokrati-backend/models"
)

type VoterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoterHandler(db *sql.DB, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{db: db, cfg: cfg}
}

// requireVoter validates the voter token and returns the identity it is
// bound to. Returns "" after writing the error response.
func (h *VoterHandler) requireVoter(w http.ResponseWriter, r *http.Request) string {
	token := middleware.VoterToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Voter token required")
		return ""
	}

	identity, err := auth.ParseVoterToken(token, []byte(h.cfg.TokenSecret))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token")
		return ""
	}
	return identity
}

// Login handles POST /voter/login
func (h *VoterHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Identity == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity is required")
		return
	}

	var pincode string
	err := h.db.QueryRow(`
		SELECT pincode FROM voter WHERE identity = $1
	`, req.Identity).Scan(&pincode)

	if err == sql.ErrNoRows {
		auth.CompareDummy(req.Secret)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	if !auth.VerifySecret(req.Secret, pincode) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// Check-in log is append-only; a failed write doesn't block the login.
	_, err = h.db.Exec(`
		INSERT INTO attendance (voter_identity, checked_in_at) VALUES ($1, $2)
	`, req.Identity, time.Now().UTC())
	if err != nil {
		slog.Warn("failed to record attendance", "error", err)
	}

	token, err := auth.MintVoterToken(req.Identity, []byte(h.cfg.TokenSecret))
	if err != nil {
		slog.Error("failed to mint voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("voter logged in", "identity", req.Identity)

	middleware.JSONResponse(w, http.StatusOK, models.VoterLoginResponse{Token: token})
}

// Logout handles POST /voter/logout
// Voter sessions are stateless server-side; the client discards its token.
func (h *VoterHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
}

// GetElection handles GET /election
// Shows the voter what is being voted on and who the candidates are.
func (h *VoterHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	if h.requireVoter(w, r) == "" {
		return
	}

	election, err := activeElection(h.db)
	if err != nil {
		slog.Error("failed to load active election", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	candidates, err := listCandidates(h.db)
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionResponse{
		Post:       election.Post,
		Candidates: candidates,
	})
}

// CastBallot handles POST /ballots
func (h *VoterHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	identity := h.requireVoter(w, r)
	if identity == "" {
		return
	}

	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidate := strings.TrimSpace(req.Candidate)
	if candidate == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate is required")
		return
	}

	election, err := activeElection(h.db)
	if err != nil {
		slog.Error("failed to load active election", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	if election.Post == "" {
		middleware.ErrorResponse(w, http.StatusConflict, "No active election")
		return
	}

	known, err := candidateExists(h.db, candidate)
	if err != nil {
		slog.Error("failed to check candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	if !known {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown candidate")
		return
	}

	// Single conditional insert. The UNIQUE (voter_identity, post)
	// constraint closes the race between concurrent casts by the same
	// voter; the application never does a separate read-then-write.
	ballotID := uuid.NewString()
	res, err := h.db.Exec(`
		INSERT INTO ballot (id, voter_identity, post, candidate, cast_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (voter_identity, post) DO NOTHING
	`, ballotID, identity, election.Post, candidate, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read insert result", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	if inserted == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Already voted for this post")
		return
	}

	// Ballot secrecy: never log identity and candidate together.
	slog.Info("ballot cast", "post", election.Post)

	middleware.JSONResponse(w, http.StatusCreated, models.CastBallotResponse{
		BallotID: ballotID,
		Message:  "Ballot recorded",
	})
}
