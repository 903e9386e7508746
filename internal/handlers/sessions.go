package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusvote/pollz/internal/models"
)

// handleAllStatuses returns the derived status of every voting type
func (h *Handlers) handleAllStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.Sessions.AllStatuses(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, statuses)
}

// handleStatus returns the derived status of one voting type
func (h *Handlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	votingType := chi.URLParam(r, "type")

	status, err := h.Sessions.Status(r.Context(), votingType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, status)
}

// handleUpsertSession replaces the session config for a voting type (admin)
func (h *Handlers) handleUpsertSession(w http.ResponseWriter, r *http.Request) {
	votingType := chi.URLParam(r, "type")

	var req SessionUpsertRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	status, err := h.Sessions.Upsert(r.Context(), &models.VotingSession{
		Name:               req.Name,
		VotingType:         votingType,
		Active:             req.Active,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		MessageBeforeStart: req.MessageBeforeStart,
		MessageDuring:      req.MessageDuring,
		MessageAfterEnd:    req.MessageAfterEnd,
		MessageInactive:    req.MessageInactive,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, status)
}

// handleToggleSession flips the manual active flag for a voting type (admin)
func (h *Handlers) handleToggleSession(w http.ResponseWriter, r *http.Request) {
	votingType := chi.URLParam(r, "type")

	var req SessionToggleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	status, err := h.Sessions.SetActive(r.Context(), votingType, req.Active)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, status)
}
