// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the demokrati API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, sessions)

# Endpoints

Health:

	GET /health

Admin surface (requires X-Admin-Token except login):

	POST   /admin/login             - Authenticate, returns versioned token
	POST   /admin/logout            - Stateless self logout
	POST   /admin/logout-all        - Revoke every admin token (SuperAdmin)
	GET    /admin/election          - Active post and candidates
	PUT    /admin/election          - Replace the active election
	POST   /admin/candidates        - Add a candidate
	DELETE /admin/candidates/{name} - Remove a candidate
	GET    /admin/tally             - Ballot counts per candidate
	POST   /admin/reset-ballots     - Clear the vote ledger
	POST   /admin/reset-attendance  - Clear the check-in log

Voter surface (requires X-Voter-Token except login):

	POST /voter/login  - Authenticate, returns identity-bound token
	POST /voter/logout - Stateless self logout
	GET  /election     - Active post and candidates
	POST /ballots      - Cast a ballot

# Handler Initialization

The router creates handler instances with dependency injection:

	adminHandler := handlers.NewAdminHandler(db, cfg, sessions)
	voterHandler := handlers.NewVoterHandler(db, cfg)
*/
package router
