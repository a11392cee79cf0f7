// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the demokrati API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AdminHandler: admin login, global logout, election and candidate
    management, tally, ledger and attendance resets
  - VoterHandler: voter login, election view, ballot casting

Handlers are created via constructor functions:

	adminHandler := handlers.NewAdminHandler(db, cfg, sessions)
	voterHandler := handlers.NewVoterHandler(db, cfg)

# Admin Flow

	POST /admin/login       → Login (returns versioned token)
	PUT  /admin/election    → SetElection (replaces the single election row)
	POST /admin/candidates  → AddCandidate
	GET  /admin/tally       → Tally
	POST /admin/logout-all  → LogoutAll (advances the session counter)

Every privileged endpoint re-validates the token against the live session
counter and consults the privilege gate before touching the store. A token
issued before a logout-all is rejected on the very next request.

# Voter Flow

	POST /voter/login → Login (returns identity-bound token)
	GET  /election    → GetElection (active post and candidates)
	POST /ballots     → CastBallot (at most one per voter per post)

# Election State

The election table must hold exactly one row. activeElection bootstraps an
empty row when none exists and collapses stray duplicates on read;
replaceElection swaps the row atomically. Ballots reference the post by
value, so replacing the election row never orphans the ledger.

# Vote Ledger

CastBallot is a single conditional insert against the UNIQUE
(voter_identity, post) constraint; concurrent duplicate casts leave exactly
one stored ballot. Tally groups the ledger by candidate for the active post.
*/
package handlers
