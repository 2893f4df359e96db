package service

import (
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/slug"
)

// migrateTrips backfills fields that older collections may lack: trip and
// child IDs, slugs, status, child lists and lastUpdated. Duplicate IDs or
// slugs left by earlier bugs or hand edits are reassigned, keeping the first
// occurrence. It returns how many trips changed. Caller must hold mu.
func (s *TripService) migrateTrips() int {
	changed := 0
	seenIDs := make(map[uuid.UUID]struct{}, len(s.trips))
	var seenSlugs []string

	for i := range s.trips {
		t := &s.trips[i]
		before := t.Clone()
		dirty := false

		if _, dup := seenIDs[t.ID]; t.ID == uuid.Nil || dup {
			t.ID = s.freshID(seenIDs)
			dirty = true
		}
		seenIDs[t.ID] = struct{}{}

		if t.Slug == "" || contains(seenSlugs, t.Slug) {
			t.Slug = slug.GenerateUnique(slug.Slugify(t.Destination), seenSlugs)
			dirty = true
		}
		seenSlugs = append(seenSlugs, t.Slug)

		if t.Status == "" {
			t.Status = domain.StatusDraft
			dirty = true
		}
		if t.LastUpdated.IsZero() {
			t.LastUpdated = s.stamp(t.LastUpdated)
			dirty = true
		}
		if hasNilLists(before) {
			fillEmptyLists(t)
			dirty = true
		}
		if s.ensureChildIDs(t) {
			dirty = true
		}

		if dirty {
			changed++
		}
	}
	return changed
}

// ensureChildIDs gives every nested entity a non-nil ID that is unique
// within its list. Reports whether anything was assigned.
func (s *TripService) ensureChildIDs(t *domain.Trip) bool {
	changed := false
	changed = assignIDs(t.Activities, func(a *domain.Activity) *uuid.UUID { return &a.ID }, s.newID) || changed
	changed = assignIDs(t.KeyEvents, func(e *domain.KeyEvent) *uuid.UUID { return &e.ID }, s.newID) || changed
	changed = assignIDs(t.Deadlines, func(d *domain.Deadline) *uuid.UUID { return &d.ID }, s.newID) || changed
	changed = assignIDs(t.Checklists, func(c *domain.Checklist) *uuid.UUID { return &c.ID }, s.newID) || changed
	for i := range t.Checklists {
		changed = assignIDs(t.Checklists[i].Items, func(it *domain.ChecklistItem) *uuid.UUID { return &it.ID }, s.newID) || changed
	}
	return changed
}

// assignIDs replaces nil and repeated IDs in items with fresh ones.
func assignIDs[T any](items []T, idOf func(*T) *uuid.UUID, gen func() uuid.UUID) bool {
	seen := make(map[uuid.UUID]struct{}, len(items))
	changed := false
	for i := range items {
		id := idOf(&items[i])
		if _, dup := seen[*id]; *id == uuid.Nil || dup {
			*id = freshIDFrom(gen, seen)
			changed = true
		}
		seen[*id] = struct{}{}
	}
	return changed
}

func (s *TripService) freshID(taken map[uuid.UUID]struct{}) uuid.UUID {
	return freshIDFrom(s.newID, taken)
}

func freshIDFrom(gen func() uuid.UUID, taken map[uuid.UUID]struct{}) uuid.UUID {
	for {
		id := gen()
		if _, dup := taken[id]; id != uuid.Nil && !dup {
			return id
		}
	}
}

func hasNilLists(t domain.Trip) bool {
	if t.Activities == nil || t.KeyEvents == nil || t.Deadlines == nil ||
		t.Checklists == nil || t.HolidayPreferences == nil {
		return true
	}
	for _, c := range t.Checklists {
		if c.Items == nil {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
