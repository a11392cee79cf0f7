// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token minting, token validation, and the privilege gate.

# Admin Tokens

Admin tokens are HMAC-SHA256 signed JWTs carrying the privilege level and the
session version at issue time:

	token, err := auth.MintAdminToken(level, version, secret)
	level, ver, err := auth.ParseAdminToken(token, secret)

The server keeps no per-session state. A token is honored only while the live
session counter still equals its ver claim, so advancing the counter revokes
every outstanding admin token at once.

# Voter Tokens

Voter tokens are signed JWTs binding a session to a voter identity:

	token, err := auth.MintVoterToken(identity, secret)
	identity, err := auth.ParseVoterToken(token, secret)

They carry no privilege level and no version stamp; voter sessions are not
subject to mass revocation.

# Privilege Gate

Levels: LevelNone < LevelResultsOnly < LevelModify < LevelSuperAdmin.
Actions: ViewResults, ModifyElection, ModifyCandidates, ResetBallots,
ResetAttendance, GlobalLogout.

	if err := auth.Authorize(level, auth.ActionModifyElection); err != nil {
		// 403
	}

The mapping is pure and total; every mutating handler must call it before
touching the store.

# Secret Comparison

Login handlers compare submitted secrets in constant time:

	if !auth.VerifySecret(submitted, stored) { ... }

When the identity is unknown, auth.CompareDummy burns an equivalent
comparison so the failure is timing-invariant either way.
*/
package auth
