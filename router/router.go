// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"demokrati-backend/cliparse"
	"demokrati-backend/handlers"
	"demokrati-backend/middleware"
	"demokrati-backend/session"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, sessions *session.Counter) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(db, cfg, sessions)
	voterHandler := handlers.NewVoterHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Admin surface (requires X-Admin-Token except login)
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("POST /admin/logout", middleware.WithLogging(adminHandler.Logout))
	mux.HandleFunc("POST /admin/logout-all", middleware.WithLogging(adminHandler.LogoutAll))
	mux.HandleFunc("GET /admin/election", middleware.WithLogging(adminHandler.GetElection))
	mux.HandleFunc("PUT /admin/election", middleware.WithLogging(adminHandler.SetElection))
	mux.HandleFunc("POST /admin/candidates", middleware.WithLogging(adminHandler.AddCandidate))
	mux.HandleFunc("DELETE /admin/candidates/{name}", middleware.WithLogging(adminHandler.RemoveCandidate))
	mux.HandleFunc("GET /admin/tally", middleware.WithLogging(adminHandler.Tally))
	mux.HandleFunc("POST /admin/reset-ballots", middleware.WithLogging(adminHandler.ResetBallots))
	mux.HandleFunc("POST /admin/reset-attendance", middleware.WithLogging(adminHandler.ResetAttendance))

	// Voter surface (requires X-Voter-Token except login)
	mux.HandleFunc("POST /voter/login", middleware.WithLogging(voterHandler.Login))
	mux.HandleFunc("POST /voter/logout", middleware.WithLogging(voterHandler.Logout))
	mux.HandleFunc("GET /election", middleware.WithLogging(voterHandler.GetElection))
	mux.HandleFunc("POST /ballots", middleware.WithLogging(voterHandler.CastBallot))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("demokrati API v1"))
	})

	return mux
}
