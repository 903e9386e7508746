package handlers

import (
	"github.com/campusvote/pollz/internal/auth"
	"github.com/campusvote/pollz/internal/services"
	"github.com/campusvote/pollz/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Sessions     services.SessionServicer
	Elections    services.ElectionServicer
	Clubs        services.ClubServicer
	Courses      services.CourseServicer
	Users        services.UserServicer
	Stats        services.StatsServicer
	Verifier     auth.Verifier
	UserSessions *auth.Sessions
	Admin        *auth.Admin
	Hub          *websocket.Hub
	Log          HTTPLogger
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	sessions services.SessionServicer,
	elections services.ElectionServicer,
	clubs services.ClubServicer,
	courses services.CourseServicer,
	users services.UserServicer,
	stats services.StatsServicer,
	verifier auth.Verifier,
	userSessions *auth.Sessions,
	adminAuth *auth.Admin,
	hub *websocket.Hub,
	log HTTPLogger,
) *Handlers {
	return &Handlers{
		Sessions:     sessions,
		Elections:    elections,
		Clubs:        clubs,
		Courses:      courses,
		Users:        users,
		Stats:        stats,
		Verifier:     verifier,
		UserSessions: userSessions,
		Admin:        adminAuth,
		Hub:          hub,
		Log:          log,
	}
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance with test auth (no hub)
func NewForTesting(
	sessions services.SessionServicer,
	elections services.ElectionServicer,
	clubs services.ClubServicer,
	courses services.CourseServicer,
	users services.UserServicer,
	stats services.StatsServicer,
	verifier auth.Verifier,
) *Handlers {
	return &Handlers{
		Sessions:     sessions,
		Elections:    elections,
		Clubs:        clubs,
		Courses:      courses,
		Users:        users,
		Stats:        stats,
		Verifier:     verifier,
		UserSessions: auth.NewSessions(),
		Admin:        auth.NewAdmin("test-password"),
		Log:          NoopHTTPLogger{},
	}
}
