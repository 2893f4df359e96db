// Package handler implements the HTTP handlers for the Trip Planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, children.go, insights.go, export.go) but share
// the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/spec"
)

// TripServicer defines the store operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the store or its backend.
type TripServicer interface {
	List(ctx context.Context, filter domain.TripFilter) []domain.Trip
	Get(ctx context.Context, ref string) (domain.Trip, error)
	Create(ctx context.Context, in domain.NewTrip) domain.Trip
	UpdateChecked(ctx context.Context, ref string, patch domain.TripPatch, check func(domain.Trip) error) (domain.Trip, error)
	Delete(ctx context.Context, ref string) bool

	AddActivity(ctx context.Context, ref string, a domain.Activity) (domain.Trip, error)
	UpdateActivity(ctx context.Context, ref string, id uuid.UUID, patch domain.ActivityPatch) (domain.Trip, error)
	DeleteActivity(ctx context.Context, ref string, id uuid.UUID) (domain.Trip, error)

	AddKeyEvent(ctx context.Context, ref string, e domain.KeyEvent) (domain.Trip, error)
	UpdateKeyEvent(ctx context.Context, ref string, id uuid.UUID, patch domain.KeyEventPatch) (domain.Trip, error)
	DeleteKeyEvent(ctx context.Context, ref string, id uuid.UUID) (domain.Trip, error)

	AddDeadline(ctx context.Context, ref string, d domain.Deadline) (domain.Trip, error)
	UpdateDeadline(ctx context.Context, ref string, id uuid.UUID, patch domain.DeadlinePatch) (domain.Trip, error)
	DeleteDeadline(ctx context.Context, ref string, id uuid.UUID) (domain.Trip, error)

	AddChecklist(ctx context.Context, ref string, c domain.Checklist) (domain.Trip, error)
	UpdateChecklist(ctx context.Context, ref string, id uuid.UUID, patch domain.ChecklistPatch) (domain.Trip, error)
	DeleteChecklist(ctx context.Context, ref string, id uuid.UUID) (domain.Trip, error)

	AddChecklistItem(ctx context.Context, ref string, checklist uuid.UUID, it domain.ChecklistItem) (domain.Trip, error)
	UpdateChecklistItem(ctx context.Context, ref string, checklist, item uuid.UUID, patch domain.ChecklistItemPatch) (domain.Trip, error)
	DeleteChecklistItem(ctx context.Context, ref string, checklist, item uuid.UUID) (domain.Trip, error)
}

// ExportServicer defines the export operation the handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips   TripServicer
	export  ExportServicer
	log     *slog.Logger
	metrics *metrics.Instruments
	now     func() time.Time
	// insights memoises per-trip insight bundles keyed by ID and LastUpdated,
	// so any mutation of the trip naturally misses the cache.
	insights *cache.Cache
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger used for unexpected errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithMetrics sets the instruments cache lookups are recorded into.
func WithMetrics(m *metrics.Instruments) Option {
	return func(s *Server) { s.metrics = m }
}

// WithClock overrides time.Now for "today" in insights and overview.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithInsightsTTL sets how long computed insights stay cached.
// A zero or negative ttl disables caching.
func WithInsightsTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl <= 0 {
			s.insights = nil
			return
		}
		s.insights = cache.New(ttl, 2*ttl)
	}
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, export ExportServicer, opts ...Option) *Server {
	s := &Server{
		trips:    trips,
		export:   export,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:  metrics.Noop(),
		now:      time.Now,
		insights: cache.New(5*time.Minute, 10*time.Minute),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil)
}

// Routes registers every endpoint on a new chi router. Middleware is the
// caller's concern; main.go mounts the result under its own stack.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)
	r.Get("/overview", s.GetOverview)
	r.Get("/export", s.GetExport)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{ref}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Patch("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Get("/insights", s.GetTripInsights)
			r.Get("/timeline", s.GetTripTimeline)

			r.Post("/activities", s.AddActivity)
			r.Patch("/activities/{id}", s.UpdateActivity)
			r.Delete("/activities/{id}", s.DeleteActivity)

			r.Post("/key-events", s.AddKeyEvent)
			r.Patch("/key-events/{id}", s.UpdateKeyEvent)
			r.Delete("/key-events/{id}", s.DeleteKeyEvent)

			r.Post("/deadlines", s.AddDeadline)
			r.Patch("/deadlines/{id}", s.UpdateDeadline)
			r.Delete("/deadlines/{id}", s.DeleteDeadline)

			r.Post("/checklists", s.AddChecklist)
			r.Patch("/checklists/{id}", s.UpdateChecklist)
			r.Delete("/checklists/{id}", s.DeleteChecklist)

			r.Post("/checklists/{id}/items", s.AddChecklistItem)
			r.Patch("/checklists/{id}/items/{itemId}", s.UpdateChecklistItem)
			r.Delete("/checklists/{id}/items/{itemId}", s.DeleteChecklistItem)
		})
	})
	return r
}

// serveOpenAPI handles GET /openapi.yaml.
func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
