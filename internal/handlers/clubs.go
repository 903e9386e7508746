package handlers

import (
	"net/http"

	"github.com/campusvote/pollz/internal/auth"
	"github.com/campusvote/pollz/internal/models"
	"github.com/campusvote/pollz/internal/repository"
)

// handleListClubs returns active clubs, filterable by ?type=, ?category=
// and ?size=
func (h *Handlers) handleListClubs(w http.ResponseWriter, r *http.Request) {
	filter := repository.ClubFilter{
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
		Size:     r.URL.Query().Get("size"),
	}

	clubs, err := h.Clubs.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, clubs)
}

// handleGetClub returns one club with its comments
func (h *Handlers) handleGetClub(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	club, comments, err := h.Clubs.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ClubDetailResponse{Club: club, Comments: comments})
}

// handleClubVote records the caller's vote for a club
func (h *Handlers) handleClubVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, Unauthorized("Unauthorized"))
		return
	}

	var req ClubVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.ClubID == 0 {
		respondError(w, BadRequest("club_id is required"))
		return
	}

	club, err := h.Clubs.Vote(r.Context(), userID, req.ClubID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, ClubVoteResponse{Message: "Vote recorded", Club: club})
}

// handleClubComment adds a comment to a club
func (h *Handlers) handleClubComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, Unauthorized("Unauthorized"))
		return
	}

	clubID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Clubs.Comment(r.Context(), userID, clubID, req.Text, req.Anonymous); err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]string{"message": "Comment added"})
}

// handleCreateClub creates a department/club entry (admin)
func (h *Handlers) handleCreateClub(w http.ResponseWriter, r *http.Request) {
	var req ClubCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Name == "" || req.Type == "" {
		respondError(w, BadRequest("name and type are required"))
		return
	}

	id, err := h.Clubs.Create(r.Context(), &models.Club{
		Name:        req.Name,
		ShortName:   req.ShortName,
		Type:        req.Type,
		Size:        req.Size,
		Category:    req.Category,
		Role:        req.Role,
		Description: req.Description,
		Highlights:  req.Highlights,
		Image:       req.Image,
		Active:      true,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}
