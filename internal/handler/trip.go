package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ListTrips handles GET /trips.
// Supports ?status=, ?startDate=, ?endDate=, ?destination=, ?minBudget=,
// ?maxBudget= and ?holidayPreferences=a,b; present filters are ANDed.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	filter, err := bindTripFilter(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, s.trips.List(r.Context(), filter))
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var in domain.NewTrip
	if err := decodeBody(r, &in); err != nil {
		writeDecodeError(w, err)
		return
	}
	if err := validateNewTrip(in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	writeJSON(w, http.StatusCreated, s.trips.Create(r.Context(), in))
}

// GetTrip handles GET /trips/{ref}. ref is a trip ID or slug.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PATCH /trips/{ref}.
// The patch is validated against the record it would produce, inside the
// store's lock, so an endDate alone is still checked against the stored
// startDate even when another PATCH lands concurrently.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var patch domain.TripPatch
	if err := decodeBody(r, &patch); err != nil {
		writeDecodeError(w, err)
		return
	}

	updated, err := s.trips.UpdateChecked(r.Context(), chi.URLParam(r, "ref"), patch, validateTrip)
	if err != nil {
		s.writeStoreError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{ref}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if !s.trips.Delete(r.Context(), chi.URLParam(r, "ref")) {
		writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// bindTripFilter reads the list filters from the query string using the same
// form-style binding generated OpenAPI servers use.
func bindTripFilter(r *http.Request) (domain.TripFilter, error) {
	var f domain.TripFilter
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "status", q, &f.Status); err != nil {
		return f, err
	}
	if f.Status != nil && !f.Status.Valid() {
		return f, invalid("status %q is not valid", *f.Status)
	}
	if err := runtime.BindQueryParameter("form", true, false, "startDate", q, &f.StartDate); err != nil {
		return f, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "endDate", q, &f.EndDate); err != nil {
		return f, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "destination", q, &f.Destination); err != nil {
		return f, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "minBudget", q, &f.MinBudget); err != nil {
		return f, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "maxBudget", q, &f.MaxBudget); err != nil {
		return f, err
	}
	if err := runtime.BindQueryParameter("form", false, false, "holidayPreferences", q, &f.HolidayPreferences); err != nil {
		return f, err
	}
	return f, nil
}
