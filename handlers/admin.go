// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"demokrati-backend/auth"
	"demokrati-backend/cliparse"
	"demokrati-backend/middleware"
	"demokrati-backend/models"
	"demokrati-backend/session"
)

type AdminHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	sessions *session.Counter
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config, sessions *session.Counter) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, sessions: sessions}
}

// requireAdmin validates the admin token on this request and checks the
// privilege gate for the requested action. This runs on every privileged
// endpoint; it is the enforcement point for mass logout. Returns false
// after writing the error response.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request, action auth.Action) bool {
	token := middleware.AdminToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Admin token required")
		return false
	}

	level, issuedVersion, err := auth.ParseAdminToken(token, []byte(h.cfg.TokenSecret))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin token")
		return false
	}

	current, err := h.sessions.Current(r.Context())
	if err != nil {
		slog.Error("failed to read session version", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return false
	}
	if issuedVersion != current {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Session revoked")
		return false
	}

	if err := auth.Authorize(level, action); err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "Insufficient privilege")
		return false
	}

	return true
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Identity == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity is required")
		return
	}

	var secret, privilege string
	err := h.db.QueryRow(`
		SELECT secret, privilege FROM admin WHERE identity = $1
	`, req.Identity).Scan(&secret, &privilege)

	if err == sql.ErrNoRows {
		// Unknown identity and wrong secret must be indistinguishable.
		auth.CompareDummy(req.Secret)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query admin", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	if !auth.VerifySecret(req.Secret, secret) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	version, err := h.sessions.Current(r.Context())
	if err != nil {
		slog.Error("failed to read session version", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	token, err := auth.MintAdminToken(auth.ParseLevel(privilege), version, []byte(h.cfg.TokenSecret))
	if err != nil {
		slog.Error("failed to mint admin token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("admin logged in", "identity", req.Identity, "privilege", privilege, "version", version)

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		Token:     token,
		Privilege: privilege,
	})
}

// Logout handles POST /admin/logout
// Sessions are stateless server-side; the client discards its token.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
}

// LogoutAll handles POST /admin/logout-all
// Advancing the session counter revokes every outstanding admin token.
func (h *AdminHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, auth.ActionGlobalLogout) {
		return
	}

	version, err := h.sessions.Advance(r.Context())
	if err != nil {
		slog.Error("failed to advance session version", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	slog.Info("all admin sessions revoked", "version", version)

	middleware.JSONResponse(w, http.StatusOK, models.LogoutAllResponse{Version: version})
}

// GetElection handles GET /admin/election
func (h *AdminHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, auth.ActionViewResults) {
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

// SetElection handles PUT /admin/election
func (h *AdminHandler) SetElection(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, auth.ActionModifyElection) {
		return
	}

	var req models.SetElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	post := strings.TrimSpace(req.Post)

	election, err := replaceElection(h.db, post)
	if err != nil {
		slog.Error("failed to replace election", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	candidates, err := listCandidates(h.db)
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	slog.Info("election replaced", "post", election.Post)

	middleware.JSONResponse(w, http.StatusOK, models.ElectionResponse{
		Post:       election.Post,
		Candidates: candidates,
	})
}

// AddCandidate handles POST /admin/candidates
func (h *AdminHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, auth.ActionModifyCandidates) {
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	res, err := h.db.Exec(`
		INSERT INTO candidate (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`, name)
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read insert result", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	// Duplicate adds are idempotent: the set is unchanged and the call
	// still succeeds.
	status := http.StatusCreated
	if inserted == 0 {
		status = http.StatusOK
	} else {
		slog.Info("candidate added", "name", name)
	}

	candidates, err := listCandidates(h.db)
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	election, err := activeElection(h.db)
	if err != nil {
		slog.Error("failed to load active election", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	middleware.JSONResponse(w, status, models.ElectionResponse{
		Post:       election.Post,
		Candidates: candidates,
	})
}

// RemoveCandidate handles DELETE /admin/candidates/{name}
func (h *AdminHandler) RemoveCandidate(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, auth.ActionModifyCandidates) {
		return
	}

	name := r.PathValue("name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	// Removing an unknown name is a no-op success; a denial elsewhere must
	// not be distinguishable from a missing resource, so neither is this.
	_, err := h.db.Exec(`DELETE FROM candidate WHERE name = $1`, name)
	if err != nil {
		slog.Error("failed to delete candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	slog.Info("candidate removed", "name", name)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Candidate removed"})
}

// Tally handles GET /admin/tally
// Groups ballots for the active post by candidate. Candidates without
// ballots are omitted unless ?full=true unions them in with zero counts.
func (h *AdminHandler) Tally(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, auth.ActionViewResults) {
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

	rows, err := h.db.Query(`
		SELECT candidate, COUNT(*) FROM ballot WHERE post = $1 GROUP BY candidate
	`, election.Post)
	if err != nil {
		slog.Error("failed to query tally", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var candidate string
		var count int
		if err := rows.Scan(&candidate, &count); err != nil {
			slog.Error("failed to scan tally row", "error", err)
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
			return
		}
		counts[candidate] = count
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read tally", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	if r.URL.Query().Get("full") == "true" {
		candidates, err := listCandidates(h.db)
		if err != nil {
			slog.Error("failed to list candidates", "error", err)
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
			return
		}
		for _, name := range candidates {
			if _, ok := counts[name]; !ok {
				counts[name] = 0
			}
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		Post:   election.Post,
		Counts: counts,
	})
}

// ResetBallots handles POST /admin/reset-ballots
// Clears the whole ledger. Irreversible; there is no soft delete.
func (h *AdminHandler) ResetBallots(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, auth.ActionResetBallots) {
		return
	}

	if _, err := h.db.Exec(`DELETE FROM ballot`); err != nil {
		slog.Error("failed to reset ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	slog.Info("all ballots reset")

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "All voting data has been reset"})
}

// ResetAttendance handles POST /admin/reset-attendance
func (h *AdminHandler) ResetAttendance(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, auth.ActionResetAttendance) {
		return
	}

	if _, err := h.db.Exec(`DELETE FROM attendance`); err != nil {
		slog.Error("failed to reset attendance", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	slog.Info("attendance log reset")

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Attendance log has been reset"})
}
