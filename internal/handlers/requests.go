package handlers

import "time"

// GoogleLoginRequest carries the provider access token from the client
type GoogleLoginRequest struct {
	AccessToken string `json:"access_token"`
}

// AdminLoginRequest represents an admin login attempt
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// ElectionVoteRequest represents a request to cast an election vote
type ElectionVoteRequest struct {
	CandidateID int `json:"candidate_id"`
}

// ClubVoteRequest represents a request to vote for a club
type ClubVoteRequest struct {
	ClubID int `json:"club_id"`
}

// CommentRequest represents a request to comment on a course or club
type CommentRequest struct {
	Text      string `json:"text"`
	Anonymous bool   `json:"is_anonymous"`
}

// CourseRatingRequest represents a request to rate a course
type CourseRatingRequest struct {
	Grading   float64 `json:"grading"`
	Toughness float64 `json:"toughness"`
	Overall   float64 `json:"overall"`
}

// SessionUpsertRequest represents a request to configure a voting session
type SessionUpsertRequest struct {
	Name               string     `json:"name"`
	Active             bool       `json:"is_active"`
	StartTime          *time.Time `json:"start_time"`
	EndTime            *time.Time `json:"end_time"`
	MessageBeforeStart string     `json:"message_before_start"`
	MessageDuring      string     `json:"message_during_voting"`
	MessageAfterEnd    string     `json:"message_after_end"`
	MessageInactive    string     `json:"message_inactive"`
}

// SessionToggleRequest represents a request to toggle a session's active flag
type SessionToggleRequest struct {
	Active bool `json:"is_active"`
}

// PositionCreateRequest represents a request to create an election position
type PositionCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CandidateCreateRequest represents a request to create an election candidate
type CandidateCreateRequest struct {
	Name       string   `json:"name"`
	PositionID int      `json:"position_id"`
	Party      string   `json:"party"`
	Manifesto  string   `json:"manifesto"`
	Agenda     []string `json:"agenda"`
	Image      string   `json:"image"`
}

// DepartmentCreateRequest represents a request to create a department
type DepartmentCreateRequest struct {
	Name        string `json:"name"`
	ShortName   string `json:"short_name"`
	Description string `json:"description"`
}

// CourseCreateRequest represents a request to create a course
type CourseCreateRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	DepartmentID int    `json:"department_id"`
	Instructor   string `json:"instructor"`
	Description  string `json:"description"`
}

// ClubCreateRequest represents a request to create a department/club entry
type ClubCreateRequest struct {
	Name        string   `json:"name"`
	ShortName   string   `json:"short_name"`
	Type        string   `json:"type"`
	Size        string   `json:"size"`
	Category    string   `json:"category"`
	Role        string   `json:"role"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
	Image       string   `json:"image"`
}
