package app

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusvote/pollz/internal/anonymize"
	"github.com/campusvote/pollz/internal/auth"
	"github.com/campusvote/pollz/internal/handlers"
	"github.com/campusvote/pollz/internal/logger"
	"github.com/campusvote/pollz/internal/repository"
	"github.com/campusvote/pollz/internal/services"
	"github.com/campusvote/pollz/internal/websocket"
)

// App holds all application dependencies
type App struct {
	log           logger.Logger
	handlers      *handlers.Handlers
	repo          *repository.Repository
	cancelWatcher context.CancelFunc
}

// New creates and initializes a new application instance
func New(log logger.Logger, dbPath string, hasher *anonymize.Hasher, verifier auth.Verifier, adminAuth *auth.Admin) (*App, error) {
	repo, err := repository.New(dbPath)
	if err != nil {
		return nil, err
	}

	// Initialize services
	sessionService := services.NewSessionService(log, repo)
	electionService := services.NewElectionService(log, repo, hasher, sessionService)
	clubService := services.NewClubService(log, repo, sessionService)
	courseService := services.NewCourseService(log, repo)
	userService := services.NewUserService(log, repo)
	statsService := services.NewStatsService(log, repo)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log, sessionService)
	hub.Start()
	sessionService.SetBroadcaster(hub)
	electionService.SetBroadcaster(hub)

	// Watch for session window transitions with context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go hub.WatchSessions(ctx)

	h := handlers.New(
		sessionService,
		electionService,
		clubService,
		courseService,
		userService,
		statsService,
		verifier,
		auth.NewSessions(),
		adminAuth,
		hub,
		log,
	)

	return &App{
		log:           log,
		handlers:      h,
		repo:          repo,
		cancelWatcher: cancel,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close performs graceful shutdown of app resources
func (a *App) Close() {
	if a.cancelWatcher != nil {
		a.cancelWatcher()
	}
	if a.repo != nil {
		a.repo.Close()
	}
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	a.log.Info("Server starting", "addr", addr)
	return http.ListenAndServe(addr, a.Router())
}
