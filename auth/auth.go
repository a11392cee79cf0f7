// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionRevoked     = errors.New("session revoked")
)

// AdminClaims are the JWT claims carried by an admin token. Ver is the
// session counter value at issue time; a token is only honored while the
// live counter still equals Ver.
type AdminClaims struct {
	Privilege string `json:"priv"`
	Ver       int64  `json:"ver"`
	jwt.RegisteredClaims
}

// VoterClaims bind a voter token to an identity. No privilege dimension
// and no version stamp.
type VoterClaims struct {
	jwt.RegisteredClaims
}

// MintAdminToken issues a signed admin token for the given privilege level,
// stamped with the current session version.
func MintAdminToken(level Level, version int64, secret []byte) (string, error) {
	claims := AdminClaims{
		Privilege: level.String(),
		Ver:       version,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}

// ParseAdminToken verifies the token signature and extracts the privilege
// level and issued session version. Returns ErrInvalidToken on any parse
// or signature failure.
func ParseAdminToken(tokenString string, secret []byte) (Level, int64, error) {
	var claims AdminClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return LevelNone, 0, ErrInvalidToken
	}
	return ParseLevel(claims.Privilege), claims.Ver, nil
}

// MintVoterToken issues a signed voter token bound to an identity.
func MintVoterToken(identity string, secret []byte) (string, error) {
	claims := VoterClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  identity,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign voter token: %w", err)
	}
	return signed, nil
}

// ParseVoterToken verifies the token signature and returns the voter
// identity it is bound to.
func ParseVoterToken(tokenString string, secret []byte) (string, error) {
	var claims VoterClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// VerifySecret compares a submitted secret against the stored one in
// constant time.
func VerifySecret(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// CompareDummy burns a comparison against a throwaway value so that lookups
// for unknown identities take the same time as a wrong-secret rejection.
func CompareDummy(got string) {
	subtle.ConstantTimeCompare([]byte(got), []byte("demokrati-no-such-principal"))
}
