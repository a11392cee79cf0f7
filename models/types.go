package models

import "time"

// Privilege level constants as stored in the admin table
const (
	PrivilegeNone        = ""
	PrivilegeResultsOnly = "results"
	PrivilegeModify      = "valberedning"
	PrivilegeSuperAdmin  = "all"
)

// Request types

type LoginRequest struct {
	Identity string `json:"identity"`
	Secret   string `json:"secret"`
}

type SetElectionRequest struct {
	Post string `json:"post"`
}

type AddCandidateRequest struct {
	Name string `json:"name"`
}

type CastBallotRequest struct {
	Candidate string `json:"candidate"`
}

// Response types

type AdminLoginResponse struct {
	Token     string `json:"token"`
	Privilege string `json:"privilege"`
}

type VoterLoginResponse struct {
	Token string `json:"token"`
}

type LogoutAllResponse struct {
	Version int64 `json:"version"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ElectionResponse struct {
	Post       string   `json:"post"`
	Candidates []string `json:"candidates"`
}

type CastBallotResponse struct {
	BallotID string `json:"ballot_id"`
	Message  string `json:"message"`
}

type TallyResponse struct {
	Post   string         `json:"post"`
	Counts map[string]int `json:"counts"`
}

// Domain types

type Election struct {
	ID        string    `json:"id"`
	Post      string    `json:"post"`
	CreatedAt time.Time `json:"created_at"`
}

type Ballot struct {
	ID            string    `json:"id"`
	VoterIdentity string    `json:"-"` // Never expose in JSON
	Post          string    `json:"post"`
	Candidate     string    `json:"candidate"`
	CastAt        time.Time `json:"cast_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
