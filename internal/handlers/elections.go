package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/campusvote/pollz/internal/auth"
)

// handleListPositions returns all active election positions
func (h *Handlers) handleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.Elections.ListPositions(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, positions)
}

// handleListCandidates returns active candidates, optionally filtered by
// ?position=
func (h *Handlers) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	positionID := 0
	if raw := r.URL.Query().Get("position"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, BadRequest("Invalid position parameter"))
			return
		}
		positionID = id
	}

	candidates, err := h.Elections.ListCandidates(r.Context(), positionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, candidates)
}

// handleCastVote casts an anonymous election vote for the authenticated user
func (h *Handlers) handleCastVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, Unauthorized("Unauthorized"))
		return
	}

	var req ElectionVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.CandidateID == 0 {
		respondError(w, BadRequest("candidate_id is required"))
		return
	}

	receipt, err := h.Elections.CastVote(r.Context(), userID, req.CandidateID, clientIP(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, receipt)
}

// handleVoteStatus reports, per position, whether the caller has voted
func (h *Handlers) handleVoteStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, Unauthorized("Unauthorized"))
		return
	}

	statuses, err := h.Elections.VoteStatus(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, VoteStatusResponse{Positions: statuses})
}

// handleVerifyVote recomputes a stored vote's signature
func (h *Handlers) handleVerifyVote(w http.ResponseWriter, r *http.Request) {
	voteID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Elections.VerifyVote(r.Context(), voteID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleReceiptQR renders a vote's verification payload as a QR code PNG,
// so a paper receipt can be checked against the ledger later.
func (h *Handlers) handleReceiptQR(w http.ResponseWriter, r *http.Request) {
	voteID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	vote, err := h.Elections.GetVote(r.Context(), voteID)
	if err != nil {
		respondError(w, err)
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"vote_id":   vote.ID,
		"signature": vote.Signature,
		"timestamp": vote.VotedAt,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(png)
}

// handleLiveStats returns current tallies for every position
func (h *Handlers) handleLiveStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Elections.LiveStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}

// handleCreatePosition creates an election position (admin)
func (h *Handlers) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var req PositionCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Name == "" {
		respondError(w, BadRequest("name is required"))
		return
	}

	id, err := h.Elections.CreatePosition(r.Context(), req.Name, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}

// handleCreateCandidate creates an election candidate (admin)
func (h *Handlers) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req CandidateCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Name == "" || req.PositionID == 0 {
		respondError(w, BadRequest("name and position_id are required"))
		return
	}

	id, err := h.Elections.CreateCandidate(r.Context(), req.Name, req.PositionID, req.Party, req.Manifesto, req.Agenda, req.Image)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}
