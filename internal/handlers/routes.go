package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Auth (public)
	r.Post("/api/auth/google-login", h.handleGoogleLogin)
	r.Post("/api/admin/login", h.handleAdminLogin)
	r.Post("/api/admin/logout", h.handleAdminLogout)

	// Voting sessions (public)
	r.Get("/api/voting/status", h.handleAllStatuses)
	r.Get("/api/voting/status/{type}", h.handleStatus)

	// Elections (public)
	r.Get("/api/elections/positions", h.handleListPositions)
	r.Get("/api/elections/candidates", h.handleListCandidates)
	r.Get("/api/elections/live-stats", h.handleLiveStats)
	r.Get("/api/elections/votes/{id}/verify", h.handleVerifyVote)
	r.Get("/api/elections/votes/{id}/receipt-qr", h.handleReceiptQR)

	// Courses (public reads)
	r.Get("/api/departments", h.handleListDepartments)
	r.Get("/api/courses", h.handleListCourses)
	r.Get("/api/courses/{id}", h.handleGetCourse)

	// Clubs (public reads)
	r.Get("/api/clubs", h.handleListClubs)
	r.Get("/api/clubs/{id}", h.handleGetClub)

	// Stats (public)
	r.Get("/api/stats", h.handleVotingStats)

	// Authenticated user API
	r.Group(func(r chi.Router) {
		r.Use(h.UserSessions.RequireUser)

		r.Post("/api/auth/logout", h.handleLogout)
		r.Get("/api/profile", h.handleProfile)

		r.Post("/api/elections/vote", h.handleCastVote)
		r.Get("/api/elections/vote-status", h.handleVoteStatus)

		r.Post("/api/clubs/vote", h.handleClubVote)
		r.Post("/api/clubs/{id}/comments", h.handleClubComment)

		r.Post("/api/courses/{id}/rate", h.handleRateCourse)
		r.Post("/api/courses/{id}/comments", h.handleCourseComment)
	})

	// Admin API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Admin.RequireAdminAPI)

		r.Put("/api/admin/voting-sessions/{type}", h.handleUpsertSession)
		r.Post("/api/admin/voting-sessions/{type}/toggle", h.handleToggleSession)

		r.Post("/api/admin/positions", h.handleCreatePosition)
		r.Post("/api/admin/candidates", h.handleCreateCandidate)
		r.Post("/api/admin/departments", h.handleCreateDepartment)
		r.Post("/api/admin/courses", h.handleCreateCourse)
		r.Post("/api/admin/clubs", h.handleCreateClub)
	})

	return r
}
