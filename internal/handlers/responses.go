package handlers

import (
	"github.com/campusvote/pollz/internal/models"
	"github.com/campusvote/pollz/internal/services"
)

// LoginResponse is the response for a successful user login
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AdminLoginResponse is the response for a successful admin login
type AdminLoginResponse struct {
	Token string `json:"token"`
}

// CreatedResponse is the response for admin create operations
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// ClubDetailResponse is a club with its comments
type ClubDetailResponse struct {
	Club     *models.Club     `json:"club"`
	Comments []models.Comment `json:"comments"`
}

// CourseDetailResponse is a course with its comments
type CourseDetailResponse struct {
	Course   *models.Course   `json:"course"`
	Comments []models.Comment `json:"comments"`
}

// ClubVoteResponse is the response for a club vote
type ClubVoteResponse struct {
	Message string       `json:"message"`
	Club    *models.Club `json:"club"`
}

// VoteStatusResponse wraps the per-position vote status list
type VoteStatusResponse struct {
	Positions []services.PositionVoteStatus `json:"positions"`
}
