package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Nested entity endpoints all respond with the updated parent trip:
// 201 for adds, 200 for patches and deletes, 404 when the trip or the
// child does not exist.

// ---- activities ------------------------------------------------------------

// AddActivity handles POST /trips/{ref}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	addChild(s, w, r, "trip", validateActivity, s.trips.AddActivity)
}

// UpdateActivity handles PATCH /trips/{ref}/activities/{id}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	patchChild(s, w, r, "activity", validateActivityPatch, s.trips.UpdateActivity)
}

// DeleteActivity handles DELETE /trips/{ref}/activities/{id}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	deleteChild(s, w, r, "activity", s.trips.DeleteActivity)
}

// ---- key events ------------------------------------------------------------

// AddKeyEvent handles POST /trips/{ref}/key-events.
func (s *Server) AddKeyEvent(w http.ResponseWriter, r *http.Request) {
	addChild(s, w, r, "trip", validateKeyEvent, s.trips.AddKeyEvent)
}

// UpdateKeyEvent handles PATCH /trips/{ref}/key-events/{id}.
func (s *Server) UpdateKeyEvent(w http.ResponseWriter, r *http.Request) {
	patchChild(s, w, r, "key event", validateKeyEventPatch, s.trips.UpdateKeyEvent)
}

// DeleteKeyEvent handles DELETE /trips/{ref}/key-events/{id}.
func (s *Server) DeleteKeyEvent(w http.ResponseWriter, r *http.Request) {
	deleteChild(s, w, r, "key event", s.trips.DeleteKeyEvent)
}

// ---- deadlines -------------------------------------------------------------

// AddDeadline handles POST /trips/{ref}/deadlines.
func (s *Server) AddDeadline(w http.ResponseWriter, r *http.Request) {
	addChild(s, w, r, "trip", validateDeadline, s.trips.AddDeadline)
}

// UpdateDeadline handles PATCH /trips/{ref}/deadlines/{id}.
func (s *Server) UpdateDeadline(w http.ResponseWriter, r *http.Request) {
	patchChild(s, w, r, "deadline", validateDeadlinePatch, s.trips.UpdateDeadline)
}

// DeleteDeadline handles DELETE /trips/{ref}/deadlines/{id}.
func (s *Server) DeleteDeadline(w http.ResponseWriter, r *http.Request) {
	deleteChild(s, w, r, "deadline", s.trips.DeleteDeadline)
}

// ---- checklists ------------------------------------------------------------

// AddChecklist handles POST /trips/{ref}/checklists.
func (s *Server) AddChecklist(w http.ResponseWriter, r *http.Request) {
	addChild(s, w, r, "trip", validateChecklist, s.trips.AddChecklist)
}

// UpdateChecklist handles PATCH /trips/{ref}/checklists/{id}.
func (s *Server) UpdateChecklist(w http.ResponseWriter, r *http.Request) {
	patchChild(s, w, r, "checklist", validateChecklistPatch, s.trips.UpdateChecklist)
}

// DeleteChecklist handles DELETE /trips/{ref}/checklists/{id}.
func (s *Server) DeleteChecklist(w http.ResponseWriter, r *http.Request) {
	deleteChild(s, w, r, "checklist", s.trips.DeleteChecklist)
}

// AddChecklistItem handles POST /trips/{ref}/checklists/{id}/items.
func (s *Server) AddChecklistItem(w http.ResponseWriter, r *http.Request) {
	checklist, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	addChild(s, w, r, "trip or checklist", validateChecklistItem,
		func(ctx context.Context, ref string, it domain.ChecklistItem) (domain.Trip, error) {
			return s.trips.AddChecklistItem(ctx, ref, checklist, it)
		})
}

// UpdateChecklistItem handles PATCH /trips/{ref}/checklists/{id}/items/{itemId}.
func (s *Server) UpdateChecklistItem(w http.ResponseWriter, r *http.Request) {
	checklist, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	item, ok := pathUUID(w, r, "itemId")
	if !ok {
		return
	}
	var patch domain.ChecklistItemPatch
	if err := decodeBody(r, &patch); err != nil {
		writeDecodeError(w, err)
		return
	}
	if err := validateChecklistItemPatch(patch); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	trip, err := s.trips.UpdateChecklistItem(r.Context(), chi.URLParam(r, "ref"), checklist, item, patch)
	if err != nil {
		s.writeStoreError(w, r, err, "trip, checklist or item")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DeleteChecklistItem handles DELETE /trips/{ref}/checklists/{id}/items/{itemId}.
func (s *Server) DeleteChecklistItem(w http.ResponseWriter, r *http.Request) {
	checklist, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	item, ok := pathUUID(w, r, "itemId")
	if !ok {
		return
	}
	trip, err := s.trips.DeleteChecklistItem(r.Context(), chi.URLParam(r, "ref"), checklist, item)
	if err != nil {
		s.writeStoreError(w, r, err, "trip, checklist or item")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// ---- shared plumbing -------------------------------------------------------

func addChild[T any](
	s *Server, w http.ResponseWriter, r *http.Request, what string,
	validate func(T) error,
	add func(ctx context.Context, ref string, v T) (domain.Trip, error),
) {
	var v T
	if err := decodeBody(r, &v); err != nil {
		writeDecodeError(w, err)
		return
	}
	if err := validate(v); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	trip, err := add(r.Context(), chi.URLParam(r, "ref"), v)
	if err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

func patchChild[P any](
	s *Server, w http.ResponseWriter, r *http.Request, kind string,
	validate func(P) error,
	update func(ctx context.Context, ref string, id uuid.UUID, p P) (domain.Trip, error),
) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var p P
	if err := decodeBody(r, &p); err != nil {
		writeDecodeError(w, err)
		return
	}
	if err := validate(p); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	trip, err := update(r.Context(), chi.URLParam(r, "ref"), id, p)
	if err != nil {
		s.writeStoreError(w, r, err, "trip or "+kind)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func deleteChild(
	s *Server, w http.ResponseWriter, r *http.Request, kind string,
	del func(ctx context.Context, ref string, id uuid.UUID) (domain.Trip, error),
) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	trip, err := del(r.Context(), chi.URLParam(r, "ref"), id)
	if err != nil {
		s.writeStoreError(w, r, err, "trip or "+kind)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// pathUUID parses a UUID path parameter, writing a 422 when it is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid "+name+": must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
