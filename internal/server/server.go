package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/jellyfit/internal/catalog"
	"github.com/meltforce/jellyfit/internal/coach"
	"github.com/meltforce/jellyfit/internal/storage"
	"github.com/meltforce/jellyfit/internal/tracker"
	"tailscale.com/client/local"
)

// Deps are the components the HTTP handlers operate on.
type Deps struct {
	Store    *storage.Store
	Tracker  *tracker.Tracker
	Catalog  *catalog.Catalog
	Coach    *coach.Service
	Location *time.Location
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store   *storage.Store
	tracker *tracker.Tracker
	catalog *catalog.Catalog
	coach   *coach.Service
	loc     *time.Location
	log     *slog.Logger
	apiKey  string
	router  chi.Router
	ts      *local.Client
	now     func() time.Time
}

// New creates a new Server with all routes configured.
func New(deps Deps, apiKey string, log *slog.Logger) *Server {
	loc := deps.Location
	if loc == nil {
		loc = time.Local
	}
	s := &Server{
		store:   deps.Store,
		tracker: deps.Tracker,
		catalog: deps.Catalog,
		coach:   deps.Coach,
		loc:     loc,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
		now:     time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale enables Tailscale identity lookup for requests arriving over
// the tailnet.
func (s *Server) SetTailscale(lc *local.Client) {
	s.ts = lc
}

// MountMCP serves an MCP transport handler at path behind API key auth.
func (s *Server) MountMCP(path string, h http.Handler) {
	s.router.With(APIKeyAuth(s.apiKey)).Handle(path, h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Reads (no auth; tsnet handles access)
		r.Get("/me", s.handleMe)
		r.Get("/templates", s.handleListTemplates)
		r.Get("/templates/{id}", s.handleGetTemplate)
		r.Get("/session", s.handleGetActive)
		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Get("/profile", s.handleGetProfile)
		r.Get("/plan", s.handleGetPlan)
		r.Get("/insights", s.handleInsights)
		r.Get("/stats", s.handleStats)

		// Writes (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))

			r.Post("/templates/generate", s.handleGenerateTemplates)

			r.Post("/session", s.handleStartSession)
			r.Delete("/session", s.handleCancelSession)
			r.Post("/session/finish", s.handleFinishSession)
			r.Put("/session/notes", s.handleSessionNotes)
			r.Post("/session/exercises", s.handleAddExercise)
			r.Route("/session/exercises/{exerciseID}", func(r chi.Router) {
				r.Delete("/", s.handleRemoveExercise)
				r.Post("/timed", s.handleToggleTimed)
				r.Put("/notes", s.handleExerciseNotes)
				r.Put("/media", s.handleAttachMedia)
				r.Delete("/media", s.handleDetachMedia)
				r.Post("/sets", s.handleAddSet)
				r.Delete("/sets/{setID}", s.handleRemoveSet)
				r.Patch("/sets/{setID}", s.handleUpdateSet)
				r.Post("/sets/{setID}/toggle", s.handleToggleSet)
			})

			r.Put("/profile", s.handlePutProfile)
			r.Post("/plan/generate", s.handleGeneratePlan)
			r.Post("/plan/days/{day}/complete", s.handleCompleteDay)
			r.Post("/plan/days/{day}/start", s.handleStartPlanDay)
			r.Post("/chat", s.handleChat)
		})
	})
}
