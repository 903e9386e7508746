package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSessions_IssueAndLookup(t *testing.T) {
	s := NewSessions()

	token := s.Issue(42)
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	userID, ok := s.Lookup(token)
	if !ok {
		t.Fatal("expected token to be valid after issue")
	}
	if userID != 42 {
		t.Errorf("expected user ID 42, got %d", userID)
	}
}

func TestSessions_LookupUnknownToken(t *testing.T) {
	s := NewSessions()

	if _, ok := s.Lookup("nonexistent-token"); ok {
		t.Error("expected lookup to fail for unknown token")
	}
}

func TestSessions_Revoke(t *testing.T) {
	s := NewSessions()
	token := s.Issue(7)

	s.Revoke(token)

	if _, ok := s.Lookup(token); ok {
		t.Error("expected token to be invalid after revoke")
	}
}

func TestSessions_ExpiredToken(t *testing.T) {
	s := NewSessions()
	token := s.Issue(7)

	// Manually expire the session
	s.mu.Lock()
	s.tokens[token] = userSession{userID: 7, expiry: time.Now().Add(-1 * time.Hour)}
	s.mu.Unlock()

	if _, ok := s.Lookup(token); ok {
		t.Error("expected expired token to be invalid")
	}

	// Verify session was cleaned up
	s.mu.RLock()
	_, exists := s.tokens[token]
	s.mu.RUnlock()
	if exists {
		t.Error("expected expired session to be removed")
	}
}

func TestSessions_DistinctTokensPerUser(t *testing.T) {
	s := NewSessions()

	first := s.Issue(1)
	second := s.Issue(1)

	if first == second {
		t.Error("expected distinct tokens for separate logins")
	}
}

func TestRequireUser_AllowsValidToken(t *testing.T) {
	s := NewSessions()
	token := s.Issue(42)

	var gotUserID int
	handler := s.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/elections/vote", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	if gotUserID != 42 {
		t.Errorf("expected user ID 42 in context, got %d", gotUserID)
	}
}

func TestRequireUser_Returns401WithoutToken(t *testing.T) {
	s := NewSessions()

	handler := s.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/elections/vote", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "UNAUTHORIZED") {
		t.Errorf("expected UNAUTHORIZED code in body, got: %s", rr.Body.String())
	}
}

func TestRequireUser_Returns401ForInvalidToken(t *testing.T) {
	s := NewSessions()

	handler := s.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/elections/vote", nil)
	req.Header.Set("Authorization", "Bearer bogus-token")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")

	if got := BearerToken(req); got != "abc123" {
		t.Errorf("expected abc123, got %q", got)
	}
}

func TestBearerToken_MissingHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	if got := BearerToken(req); got != "" {
		t.Errorf("expected empty token, got %q", got)
	}
}

func TestBearerToken_WrongScheme(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	if got := BearerToken(req); got != "" {
		t.Errorf("expected empty token for non-bearer scheme, got %q", got)
	}
}

func TestUserID_MissingFromContext(t *testing.T) {
	if _, ok := UserID(context.Background()); ok {
		t.Error("expected no user ID on bare context")
	}
}

func TestStaticVerifier(t *testing.T) {
	v := &StaticVerifier{Identities: map[string]*Identity{
		"good-token": {GoogleID: "g-1", Email: "sam@campus.edu", Name: "Sam"},
	}}

	identity, err := v.Verify(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Email != "sam@campus.edu" {
		t.Errorf("expected sam@campus.edu, got %s", identity.Email)
	}

	if _, err := v.Verify(context.Background(), "bad-token"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewAdmin(t *testing.T) {
	a := NewAdmin("test-password")

	if a == nil {
		t.Fatal("expected admin auth to be created")
	}
	if a.password != "test-password" {
		t.Error("expected password to be set")
	}
	if a.sessions == nil {
		t.Error("expected sessions map to be initialized")
	}
}

func TestGeneratePassword_Format(t *testing.T) {
	pw := GeneratePassword()

	parts := strings.Split(pw, "-")
	if len(parts) != 3 {
		t.Errorf("expected 3 words separated by dashes, got %d parts: %s", len(parts), pw)
	}

	// Verify each part is from campusWords
	for _, part := range parts {
		found := false
		for _, word := range campusWords {
			if part == word {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("word %q not in campusWords list", part)
		}
	}
}

func TestAdminLogin_ValidPassword(t *testing.T) {
	a := NewAdmin("correct-password")

	token, ok := a.Login("correct-password")

	if !ok {
		t.Error("expected login to succeed with correct password")
	}
	if len(token) != 64 { // 32 bytes = 64 hex chars
		t.Errorf("expected 64-char token, got %d chars", len(token))
	}
	if !a.ValidateSession(token) {
		t.Error("expected session to be valid after login")
	}
}

func TestAdminLogin_InvalidPassword(t *testing.T) {
	a := NewAdmin("correct-password")

	token, ok := a.Login("wrong-password")

	if ok {
		t.Error("expected login to fail with wrong password")
	}
	if token != "" {
		t.Error("expected empty token on failed login")
	}
}

func TestAdminLogout_InvalidatesSession(t *testing.T) {
	a := NewAdmin("password")
	token, _ := a.Login("password")

	a.Logout(token)

	if a.ValidateSession(token) {
		t.Error("expected session to be invalid after logout")
	}
}

func TestAdminValidateSession_ExpiredSession(t *testing.T) {
	a := NewAdmin("password")
	token, _ := a.Login("password")

	// Manually expire the session
	a.mu.Lock()
	a.sessions[token] = time.Now().Add(-1 * time.Hour)
	a.mu.Unlock()

	if a.ValidateSession(token) {
		t.Error("expected expired session to be invalid")
	}
}

func TestRequireAdminAPI_AllowsCookieSession(t *testing.T) {
	a := NewAdmin("password")
	token, _ := a.Login("password")

	handler := a.RequireAdminAPI(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("PUT", "/api/admin/voting-sessions/su_election", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

func TestRequireAdminAPI_AllowsBearerToken(t *testing.T) {
	a := NewAdmin("password")
	token, _ := a.Login("password")

	handler := a.RequireAdminAPI(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("PUT", "/api/admin/voting-sessions/su_election", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

func TestRequireAdminAPI_Returns401WithoutSession(t *testing.T) {
	a := NewAdmin("password")

	handler := a.RequireAdminAPI(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("PUT", "/api/admin/voting-sessions/su_election", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Error("expected JSON content type")
	}
}

func TestSetSessionCookie(t *testing.T) {
	rr := httptest.NewRecorder()

	SetSessionCookie(rr, "test-token")

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	cookie := cookies[0]
	if cookie.Name != CookieName {
		t.Errorf("expected cookie name %s, got %s", CookieName, cookie.Name)
	}
	if cookie.Value != "test-token" {
		t.Errorf("expected cookie value 'test-token', got %s", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly to be true")
	}
}

func TestClearSessionCookie(t *testing.T) {
	rr := httptest.NewRecorder()

	ClearSessionCookie(rr)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("expected MaxAge -1 (delete), got %d", cookies[0].MaxAge)
	}
}

func TestConcurrentSessionAccess(t *testing.T) {
	s := NewSessions()

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func(id int) {
			token := s.Issue(id)
			s.Lookup(token)
			s.Revoke(token)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
