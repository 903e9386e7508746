package handlers

import (
	"net/http"

	"github.com/campusvote/pollz/internal/auth"
	"github.com/campusvote/pollz/internal/services"
)

// handleGoogleLogin exchanges a verified provider token for an API session.
// The account is created on first login.
func (h *Handlers) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req GoogleLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.AccessToken == "" {
		respondError(w, BadRequest("access_token is required"))
		return
	}

	identity, err := h.Verifier.Verify(r.Context(), req.AccessToken)
	if err != nil {
		respondError(w, Unauthorized("Invalid access token"))
		return
	}

	user, err := h.Users.GetOrCreate(r.Context(), services.Identity{
		GoogleID: identity.GoogleID,
		Email:    identity.Email,
		Name:     identity.Name,
		Picture:  identity.Picture,
		Verified: true,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	token := h.UserSessions.Issue(user.ID)
	respondOK(w, LoginResponse{Token: token, User: user})
}

// handleLogout revokes the caller's session token
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := auth.BearerToken(r); token != "" {
		h.UserSessions.Revoke(token)
	}
	respondSuccess(w, "Logged out")
}

// handleProfile returns the authenticated user's profile with voted flags
func (h *Handlers) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, Unauthorized("Unauthorized"))
		return
	}

	profile, err := h.Users.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, profile)
}

// handleAdminLogin processes admin login
func (h *Handlers) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	token, ok := h.Admin.Login(req.Password)
	if !ok {
		respondError(w, Unauthorized("Invalid password"))
		return
	}

	auth.SetSessionCookie(w, token)
	respondOK(w, AdminLoginResponse{Token: token})
}

// handleAdminLogout clears the admin session
func (h *Handlers) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Admin.Logout(cookie.Value)
	}
	if token := auth.BearerToken(r); token != "" {
		h.Admin.Logout(token)
	}

	auth.ClearSessionCookie(w)
	respondSuccess(w, "Logged out")
}
