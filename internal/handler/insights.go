package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/insights"
	"github.com/pkordes/trip-planner/internal/timeline"
)

// GetTripInsights handles GET /trips/{ref}/insights.
// Results are cached per trip, LastUpdated and calendar day, so a cached
// bundle is never served for a trip that has changed since it was computed
// nor after the date it was stamped with has passed.
func (s *Server) GetTripInsights(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}

	today := s.now()
	key := fmt.Sprintf("%s@%d@%s", trip.ID, trip.LastUpdated.UnixNano(), domain.DateOf(today))
	if s.insights != nil {
		if cached, ok := s.insights.Get(key); ok {
			s.metrics.RecordCacheLookup(r.Context(), true)
			writeJSON(w, http.StatusOK, cached)
			return
		}
		s.metrics.RecordCacheLookup(r.Context(), false)
	}

	bundle := insights.Summarize(trip, today)
	if s.insights != nil {
		s.insights.SetDefault(key, bundle)
	}
	writeJSON(w, http.StatusOK, bundle)
}

// TimelineResponse is the body of GET /trips/{ref}/timeline.
type TimelineResponse struct {
	Controls   timeline.Controls    `json:"controls"`
	From       domain.Date          `json:"from"`
	To         domain.Date          `json:"to"`
	Days       []timeline.DayBucket `json:"days"`
	ColorScale []string             `json:"colorScale"`
}

// GetTripTimeline handles GET /trips/{ref}/timeline.
// ?month= (0-11), ?year= and ?zoom= override the view state that otherwise
// starts at the trip's first month; zoom is clamped to the supported range.
func (s *Server) GetTripTimeline(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}

	var month, year, zoom *int
	q := r.URL.Query()
	for name, dst := range map[string]**int{"month": &month, "year": &year, "zoom": &zoom} {
		if err := runtime.BindQueryParameter("form", true, false, name, q, dst); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
			return
		}
	}
	if month != nil && (*month < 0 || *month > 11) {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("month must be between 0 and 11"))
		return
	}

	c := timeline.New(trip)
	if month != nil {
		c.SetMonth(*month)
	}
	if year != nil {
		c.SetYear(*year)
	}
	if zoom != nil {
		c.Zoom = min(max(*zoom, timeline.MinZoom), timeline.MaxZoom)
	}

	from, to := c.Window()
	writeJSON(w, http.StatusOK, TimelineResponse{
		Controls:   c,
		From:       from,
		To:         to,
		Days:       timeline.BucketsBetween(trip, from, to),
		ColorScale: timeline.ColorScale[:],
	})
}

// GetOverview handles GET /overview.
func (s *Server) GetOverview(w http.ResponseWriter, r *http.Request) {
	trips := s.trips.List(r.Context(), domain.TripFilter{})
	writeJSON(w, http.StatusOK, insights.Overview(trips, s.now()))
}
