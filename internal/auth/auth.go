package auth

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionExpiry is how long a user session token stays valid.
const SessionExpiry = 7 * 24 * time.Hour

// Identity is the verified assertion handed back by a token verifier.
type Identity struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
}

// Verifier turns an opaque provider access token into a verified identity.
// The Google implementation lives outside this subsystem; tests and local
// runs use StaticVerifier.
type Verifier interface {
	Verify(ctx context.Context, accessToken string) (*Identity, error)
}

// StaticVerifier maps access tokens directly to identities. For tests and
// development only.
type StaticVerifier struct {
	Identities map[string]*Identity
}

// Verify implements Verifier
func (v *StaticVerifier) Verify(_ context.Context, accessToken string) (*Identity, error) {
	identity, ok := v.Identities[accessToken]
	if !ok {
		return nil, ErrInvalidToken
	}
	return identity, nil
}

type userSession struct {
	userID int
	expiry time.Time
}

// Sessions issues and validates bearer tokens for authenticated users.
type Sessions struct {
	mu     sync.RWMutex
	tokens map[string]userSession
}

// NewSessions creates an empty session store
func NewSessions() *Sessions {
	return &Sessions{tokens: make(map[string]userSession)}
}

// Issue creates a new session token for a user
func (s *Sessions) Issue(userID int) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = userSession{userID: userID, expiry: time.Now().Add(SessionExpiry)}
	s.mu.Unlock()
	return token
}

// Lookup returns the user ID for a valid token
func (s *Sessions) Lookup(token string) (int, bool) {
	s.mu.RLock()
	session, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return 0, false
	}
	if time.Now().After(session.expiry) {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
		return 0, false
	}
	return session.userID, true
}

// Revoke invalidates a session token
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

type contextKey int

const userIDKey contextKey = 0

// WithUserID returns a context carrying the authenticated user ID
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID extracts the authenticated user ID from the context
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// RequireUser is middleware that authenticates the bearer token and stores
// the user ID in the request context
func (s *Sessions) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			respondUnauthorized(w, "missing bearer token")
			return
		}
		userID, ok := s.Lookup(token)
		if !ok {
			respondUnauthorized(w, "invalid or expired session")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// BearerToken extracts the token from an Authorization: Bearer header
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"code":"UNAUTHORIZED","error":"` + message + `"}`))
}
