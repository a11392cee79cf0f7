// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session owns the global admin session version counter.

The counter is a single row in the session_version table, seeded at 1 by
db.CreateSchema. Admin tokens are stamped with the counter value at login;
validation rejects any token whose stamp differs from the live value.

	counter := session.NewCounter(db)
	v, err := counter.Current(ctx)
	v, err = counter.Advance(ctx)

Advance is the sole revocation mechanism: one atomic UPDATE invalidates every
outstanding admin token. There is no per-session revocation list, which trades
per-user logout granularity for O(1) revoke-all.
*/
package session
