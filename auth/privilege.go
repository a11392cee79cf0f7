// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import "errors"

var ErrForbidden = errors.New("insufficient privilege")

// Level is an administrative capability tier.
type Level int

const (
	LevelNone Level = iota
	LevelResultsOnly
	LevelModify
	LevelSuperAdmin
)

// Action is a privileged operation category.
type Action int

const (
	ActionViewResults Action = iota
	ActionModifyElection
	ActionModifyCandidates
	ActionResetBallots
	ActionResetAttendance
	ActionGlobalLogout
)

// Level strings as stored in the admin table and carried in token claims.
const (
	levelNoneStr        = ""
	levelResultsOnlyStr = "results"
	levelModifyStr      = "valberedning"
	levelSuperAdminStr  = "all"
)

// ParseLevel maps a stored privilege string to a Level. Unknown strings
// degrade to LevelNone rather than failing open.
func ParseLevel(s string) Level {
	switch s {
	case levelSuperAdminStr:
		return LevelSuperAdmin
	case levelModifyStr:
		return LevelModify
	case levelResultsOnlyStr:
		return LevelResultsOnly
	default:
		return LevelNone
	}
}

func (l Level) String() string {
	switch l {
	case LevelSuperAdmin:
		return levelSuperAdminStr
	case LevelModify:
		return levelModifyStr
	case LevelResultsOnly:
		return levelResultsOnlyStr
	default:
		return levelNoneStr
	}
}

// Allowed is the privilege gate: a pure, total mapping of (level, action)
// to allow/deny.
//
//	             ViewResults  ModifyElection/Candidates  ResetBallots/Attendance  GlobalLogout
//	SuperAdmin        ✓                  ✓                        ✓                    ✓
//	Modify            ✓                  ✓                        ✓                    ✗
//	ResultsOnly       ✓                  ✗                        ✗                    ✗
//	None              ✗                  ✗                        ✗                    ✗
func Allowed(l Level, a Action) bool {
	switch a {
	case ActionViewResults:
		return l >= LevelResultsOnly
	case ActionModifyElection, ActionModifyCandidates, ActionResetBallots, ActionResetAttendance:
		return l >= LevelModify
	case ActionGlobalLogout:
		return l == LevelSuperAdmin
	default:
		return false
	}
}

// Authorize returns ErrForbidden unless the level permits the action.
func Authorize(l Level, a Action) error {
	if !Allowed(l, a) {
		return ErrForbidden
	}
	return nil
}
