package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Nested entities have no lifecycle of their own: each operation below
// locates the parent trip by ID or slug, edits one of its lists, stamps the
// parent's LastUpdated and persists. Added children always get a fresh ID;
// any ID supplied by the caller is ignored. Every operation returns the
// updated parent, or an error wrapping domain.ErrNotFound when the parent
// or the child does not exist.

// ---- activities ------------------------------------------------------------

// AddActivity appends a to the trip's activities.
func (s *TripService) AddActivity(ctx context.Context, ref string, a domain.Activity) (domain.Trip, error) {
	return s.mutateTrip(ctx, "add_activity", ref, func(t *domain.Trip) error {
		a.ID = freshChildID(t.Activities, activityID, s.newID)
		t.Activities = append(t.Activities, a)
		return nil
	})
}

// UpdateActivity patches the activity with the given ID.
func (s *TripService) UpdateActivity(ctx context.Context, ref string, id uuid.UUID, patch domain.ActivityPatch) (domain.Trip, error) {
	return s.mutateTrip(ctx, "update_activity", ref, func(t *domain.Trip) error {
		return patchChild(t.Activities, id, activityID, "activity", patch.Apply)
	})
}

// DeleteActivity removes the activity with the given ID.
func (s *TripService) DeleteActivity(ctx context.Context, ref string, id uuid.UUID) (domain.Trip, error) {
	return s.mutateTrip(ctx, "delete_activity", ref, func(t *domain.Trip) error {
		rest, err := removeChild(t.Activities, id, activityID, "activity")
		t.Activities = rest
		return err
	})
}

// ---- key events ------------------------------------------------------------

// AddKeyEvent appends e to the trip's key events.
func (s *TripService) AddKeyEvent(ctx context.Context, ref string, e domain.KeyEvent) (domain.Trip, error) {
	return s.mutateTrip(ctx, "add_key_event", ref, func(t *domain.Trip) error {
		e.ID = freshChildID(t.KeyEvents, keyEventID, s.newID)
		t.KeyEvents = append(t.KeyEvents, e)
		return nil
	})
}

// UpdateKeyEvent patches the key event with the given ID.
func (s *TripService) UpdateKeyEvent(ctx context.Context, ref string, id uuid.UUID, patch domain.KeyEventPatch) (domain.Trip, error) {
	return s.mutateTrip(ctx, "update_key_event", ref, func(t *domain.Trip) error {
		return patchChild(t.KeyEvents, id, keyEventID, "key event", patch.Apply)
	})
}

// DeleteKeyEvent removes the key event with the given ID.
func (s *TripService) DeleteKeyEvent(ctx context.Context, ref string, id uuid.UUID) (domain.Trip, error) {
	return s.mutateTrip(ctx, "delete_key_event", ref, func(t *domain.Trip) error {
		rest, err := removeChild(t.KeyEvents, id, keyEventID, "key event")
		t.KeyEvents = rest
		return err
	})
}

// ---- deadlines -------------------------------------------------------------

// AddDeadline appends d to the trip's deadlines.
func (s *TripService) AddDeadline(ctx context.Context, ref string, d domain.Deadline) (domain.Trip, error) {
	return s.mutateTrip(ctx, "add_deadline", ref, func(t *domain.Trip) error {
		d.ID = freshChildID(t.Deadlines, deadlineID, s.newID)
		t.Deadlines = append(t.Deadlines, d)
		return nil
	})
}

// UpdateDeadline patches the deadline with the given ID.
func (s *TripService) UpdateDeadline(ctx context.Context, ref string, id uuid.UUID, patch domain.DeadlinePatch) (domain.Trip, error) {
	return s.mutateTrip(ctx, "update_deadline", ref, func(t *domain.Trip) error {
		return patchChild(t.Deadlines, id, deadlineID, "deadline", patch.Apply)
	})
}

// DeleteDeadline removes the deadline with the given ID.
func (s *TripService) DeleteDeadline(ctx context.Context, ref string, id uuid.UUID) (domain.Trip, error) {
	return s.mutateTrip(ctx, "delete_deadline", ref, func(t *domain.Trip) error {
		rest, err := removeChild(t.Deadlines, id, deadlineID, "deadline")
		t.Deadlines = rest
		return err
	})
}

// ---- checklists ------------------------------------------------------------

// AddChecklist appends c to the trip's checklists. Items supplied with the
// checklist get fresh IDs as well.
func (s *TripService) AddChecklist(ctx context.Context, ref string, c domain.Checklist) (domain.Trip, error) {
	return s.mutateTrip(ctx, "add_checklist", ref, func(t *domain.Trip) error {
		c.ID = freshChildID(t.Checklists, checklistID, s.newID)
		items := make([]domain.ChecklistItem, 0, len(c.Items))
		for _, it := range c.Items {
			it.ID = freshChildID(items, checklistItemID, s.newID)
			items = append(items, it)
		}
		c.Items = items
		t.Checklists = append(t.Checklists, c)
		return nil
	})
}

// UpdateChecklist patches the checklist with the given ID. Items supplied in
// the patch replace the whole list; items without an ID receive one.
func (s *TripService) UpdateChecklist(ctx context.Context, ref string, id uuid.UUID, patch domain.ChecklistPatch) (domain.Trip, error) {
	return s.mutateTrip(ctx, "update_checklist", ref, func(t *domain.Trip) error {
		if err := patchChild(t.Checklists, id, checklistID, "checklist", patch.Apply); err != nil {
			return err
		}
		s.ensureChildIDs(t)
		return nil
	})
}

// DeleteChecklist removes the checklist with the given ID and all its items.
func (s *TripService) DeleteChecklist(ctx context.Context, ref string, id uuid.UUID) (domain.Trip, error) {
	return s.mutateTrip(ctx, "delete_checklist", ref, func(t *domain.Trip) error {
		rest, err := removeChild(t.Checklists, id, checklistID, "checklist")
		t.Checklists = rest
		return err
	})
}

// AddChecklistItem appends it to the checklist with the given ID.
func (s *TripService) AddChecklistItem(ctx context.Context, ref string, checklist uuid.UUID, it domain.ChecklistItem) (domain.Trip, error) {
	return s.mutateTrip(ctx, "add_checklist_item", ref, func(t *domain.Trip) error {
		return patchChild(t.Checklists, checklist, checklistID, "checklist", func(c *domain.Checklist) {
			it.ID = freshChildID(c.Items, checklistItemID, s.newID)
			c.Items = append(c.Items, it)
		})
	})
}

// UpdateChecklistItem patches one item of one checklist.
func (s *TripService) UpdateChecklistItem(ctx context.Context, ref string, checklist, item uuid.UUID, patch domain.ChecklistItemPatch) (domain.Trip, error) {
	return s.mutateTrip(ctx, "update_checklist_item", ref, func(t *domain.Trip) error {
		c, err := findChild(t.Checklists, checklist, checklistID, "checklist")
		if err != nil {
			return err
		}
		return patchChild(c.Items, item, checklistItemID, "checklist item", patch.Apply)
	})
}

// DeleteChecklistItem removes one item from one checklist.
func (s *TripService) DeleteChecklistItem(ctx context.Context, ref string, checklist, item uuid.UUID) (domain.Trip, error) {
	return s.mutateTrip(ctx, "delete_checklist_item", ref, func(t *domain.Trip) error {
		c, err := findChild(t.Checklists, checklist, checklistID, "checklist")
		if err != nil {
			return err
		}
		rest, err := removeChild(c.Items, item, checklistItemID, "checklist item")
		c.Items = rest
		return err
	})
}

// ---- helpers ---------------------------------------------------------------

func activityID(a domain.Activity) uuid.UUID            { return a.ID }
func keyEventID(e domain.KeyEvent) uuid.UUID            { return e.ID }
func deadlineID(d domain.Deadline) uuid.UUID            { return d.ID }
func checklistID(c domain.Checklist) uuid.UUID          { return c.ID }
func checklistItemID(it domain.ChecklistItem) uuid.UUID { return it.ID }

// freshChildID draws an ID not used by any element of items.
func freshChildID[T any](items []T, idOf func(T) uuid.UUID, gen func() uuid.UUID) uuid.UUID {
	taken := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		taken[idOf(it)] = struct{}{}
	}
	return freshIDFrom(gen, taken)
}

// findChild returns a pointer into items for the element with the given ID.
func findChild[T any](items []T, id uuid.UUID, idOf func(T) uuid.UUID, kind string) (*T, error) {
	for i := range items {
		if idOf(items[i]) == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}

func patchChild[T any](items []T, id uuid.UUID, idOf func(T) uuid.UUID, kind string, apply func(*T)) error {
	p, err := findChild(items, id, idOf, kind)
	if err != nil {
		return err
	}
	apply(p)
	return nil
}

// removeChild returns items without the element with the given ID. On
// not-found it returns items unchanged along with the error.
func removeChild[T any](items []T, id uuid.UUID, idOf func(T) uuid.UUID, kind string) ([]T, error) {
	for i := range items {
		if idOf(items[i]) == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), nil
		}
	}
	return items, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}
