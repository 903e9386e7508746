package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	CookieName        = "pollz_admin_session"
	AdminSessionExpiry = 24 * time.Hour
)

// ErrInvalidToken is returned by verifiers for tokens they cannot validate.
var ErrInvalidToken = errors.New("invalid access token")

// Campus-themed words for password generation
var campusWords = []string{
	"ballot", "campus", "quad", "lecture", "semester",
	"tally", "dean", "library", "senate", "mascot",
	"tuition", "dorm", "podium", "charter", "registrar",
	"provost", "gavel", "caucus", "plaza",
}

// Admin handles admin authentication
type Admin struct {
	password string
	sessions map[string]time.Time
	mu       sync.RWMutex
}

// NewAdmin creates a new Admin instance with the given password
func NewAdmin(password string) *Admin {
	return &Admin{
		password: password,
		sessions: make(map[string]time.Time),
	}
}

// GeneratePassword creates a random 3-word password
func GeneratePassword() string {
	words := make([]string, 3)
	for i := range words {
		idx := randomInt(len(campusWords))
		words[i] = campusWords[idx]
	}
	return strings.Join(words, "-")
}

// Login validates the password and returns a session token if valid
func (a *Admin) Login(password string) (string, bool) {
	if password != a.password {
		return "", false
	}

	token := generateToken()
	a.mu.Lock()
	a.sessions[token] = time.Now().Add(AdminSessionExpiry)
	a.mu.Unlock()

	return token, true
}

// Logout invalidates a session token
func (a *Admin) Logout(token string) {
	a.mu.Lock()
	delete(a.sessions, token)
	a.mu.Unlock()
}

// ValidateSession checks if a session token is valid
func (a *Admin) ValidateSession(token string) bool {
	a.mu.RLock()
	expiry, exists := a.sessions[token]
	a.mu.RUnlock()

	if !exists {
		return false
	}

	if time.Now().After(expiry) {
		a.mu.Lock()
		delete(a.sessions, token)
		a.mu.Unlock()
		return false
	}

	return true
}

// SessionFromRequest extracts and validates the admin session from a request.
// Accepts either the session cookie or a bearer token.
func (a *Admin) SessionFromRequest(r *http.Request) bool {
	if token := BearerToken(r); token != "" && a.ValidateSession(token) {
		return true
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return a.ValidateSession(cookie.Value)
}

// RequireAdminAPI middleware for admin API endpoints (returns 401)
func (a *Admin) RequireAdminAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.SessionFromRequest(r) {
			next.ServeHTTP(w, r)
			return
		}
		respondUnauthorized(w, "Unauthorized - please log in")
	})
}

// SetSessionCookie sets the admin session cookie on the response
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(AdminSessionExpiry.Seconds()),
	})
}

// ClearSessionCookie removes the admin session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// generateToken creates a random session token
func generateToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// randomInt returns a random int in [0, max)
func randomInt(max int) int {
	bytes := make([]byte, 1)
	rand.Read(bytes)
	return int(bytes[0]) % max
}
