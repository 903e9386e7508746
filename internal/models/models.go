package models

import "time"

// Voting type keys. One VotingSession row exists per type.
const (
	VotingTypeElection = "su_election"
	VotingTypeCourses  = "course_rating"
	VotingTypeClubs    = "department_club"
)

// VotingTypes lists every configured voting domain.
var VotingTypes = []string{VotingTypeElection, VotingTypeCourses, VotingTypeClubs}

// Session status values derived from the session config and the clock.
const (
	StatusActive     = "active"
	StatusNotStarted = "not_started"
	StatusEnded      = "ended"
	StatusInactive   = "inactive"
)

// VotingSession controls whether a voting type currently accepts votes.
// Status is never stored; it is derived fresh from this record on every read.
type VotingSession struct {
	ID                 int        `json:"id"`
	Name               string     `json:"name"`
	VotingType         string     `json:"voting_type"`
	Active             bool       `json:"is_active"`
	StartTime          *time.Time `json:"start_time"`
	EndTime            *time.Time `json:"end_time"`
	MessageBeforeStart string     `json:"message_before_start"`
	MessageDuring      string     `json:"message_during_voting"`
	MessageAfterEnd    string     `json:"message_after_end"`
	MessageInactive    string     `json:"message_inactive"`
}

// SessionStatus is the derived view of a VotingSession at a point in time.
type SessionStatus struct {
	VotingType      string     `json:"voting_type"`
	Status          string     `json:"status"`
	Message         string     `json:"message"`
	IsVotingAllowed bool       `json:"is_voting_allowed"`
	SessionName     string     `json:"session_name,omitempty"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
}

// ElectionPosition is an electable office (President, General Secretary, ...).
type ElectionPosition struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"is_active"`
}

// ElectionCandidate is a contestant for exactly one position.
// VoteCount is a cache derived from the anonymous-vote ledger; it is only
// ever written by the tally refresh that follows a successful cast.
type ElectionCandidate struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	PositionID   int      `json:"position_id"`
	PositionName string   `json:"position_name,omitempty"`
	Party        string   `json:"party,omitempty"`
	Manifesto    string   `json:"manifesto,omitempty"`
	Agenda       []string `json:"agenda,omitempty"`
	Image        string   `json:"image,omitempty"`
	VoteCount    int      `json:"vote_count"`
	Active       bool     `json:"is_active"`
}

// AnonymousVote is one cast ballot. The voter_hash is a one-way digest of
// (user id, position id, salt); nothing in this record links to a user row.
// Rows are append-only: never updated or deleted once created.
type AnonymousVote struct {
	ID          int64  `json:"id"`
	VoterHash   string `json:"voter_hash"`
	CandidateID int    `json:"candidate_id"`
	PositionID  int    `json:"position_id"`
	Signature   string `json:"vote_signature"`
	VotedAt     string `json:"voted_at"` // RFC3339Nano, exactly as signed
	IPHash      string `json:"-"`
}

// Department groups courses.
type Department struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ShortName   string `json:"short_name"`
	Description string `json:"description,omitempty"`
}

// Course is a ratable course. Averages are recomputed from ratings on write.
type Course struct {
	ID              int     `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	DepartmentID    int     `json:"department_id"`
	DepartmentShort string  `json:"department,omitempty"`
	Instructor      string  `json:"instructor"`
	Description     string  `json:"description,omitempty"`
	AvgGrading      float64 `json:"avg_grading"`
	AvgToughness    float64 `json:"avg_toughness"`
	AvgOverall      float64 `json:"avg_overall"`
	Upvotes         int     `json:"upvotes"`
	Downvotes       int     `json:"downvotes"`
	Active          bool    `json:"is_active"`
}

// CourseRating is one user's rating of a course (1-5 scales, upsertable).
type CourseRating struct {
	ID        int     `json:"id"`
	UserID    int     `json:"-"`
	CourseID  int     `json:"course_id"`
	Grading   float64 `json:"grading"`
	Toughness float64 `json:"toughness"`
	Overall   float64 `json:"overall"`
}

// Club type and size values.
const (
	ClubTypeDepartment = "department"
	ClubTypeClub       = "club"
)

// Club is a department or club competing in the popularity poll.
type Club struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	ShortName   string   `json:"short_name,omitempty"`
	Type        string   `json:"type"`
	Size        string   `json:"size,omitempty"`
	Category    string   `json:"category,omitempty"`
	Role        string   `json:"role,omitempty"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights,omitempty"`
	VoteCount   int      `json:"vote_count"`
	Image       string   `json:"image,omitempty"`
	Active      bool     `json:"is_active"`
}

// Comment on a course or a club. Author is blanked when Anonymous is set.
type Comment struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Anonymous bool   `json:"is_anonymous"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"created_at"`
}

// User is an authenticated account. The identity assertion that creates it
// is verified upstream; this system never sees raw credentials.
type User struct {
	ID       int    `json:"id"`
	GoogleID string `json:"-"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture,omitempty"`
	Verified bool   `json:"is_verified"`
}

// WSMessage is the envelope for WebSocket broadcasts.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
