// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the demokrati API server.

demokrati is an election backend for a single contested post: eligible
voters cast at most one ballot each, administrators manage the election and
read tallies, and every admin credential can be revoked at once by
advancing a global session version.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:demokrati.db TOKEN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 4117 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - TOKEN_SECRET (--token-secret): HMAC secret signing admin/voter tokens

Optional settings:

  - PORT (-p): Server port (default: 4117)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

A .env file is loaded when present (godotenv).

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (admin, voter, election helpers)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, token extraction
  - models: Request/response types
  - auth: Token minting/validation and the privilege gate
  - session: Store-backed admin session version counter
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
