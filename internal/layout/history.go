package layout

import (
	"time"

	"esignapi/internal/model"
)

// Snapshot is a deep copy of the preparation state recorded after each
// committed mutation. Snapshots are immutable once pushed.
type Snapshot struct {
	Fields        []model.Field
	DueDate       *time.Time
	Message       string
	ExpiryDays    int
	NotifySigners bool
}

func cloneFields(fields []model.Field) []model.Field {
	out := make([]model.Field, len(fields))
	copy(out, fields)
	return out
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Fields = cloneFields(s.Fields)
	if s.DueDate != nil {
		d := *s.DueDate
		c.DueDate = &d
	}
	return c
}

// History is a linear undo/redo stack of snapshots with a current index.
// A mutation after an undo truncates everything past the index before
// appending, so redo never resurrects a divergent branch.
type History struct {
	entries   []Snapshot
	index     int
	limit     int
	restoring bool
}

// DefaultHistoryLimit bounds history depth. Snapshots are full field-list
// copies, so memory is linear in depth × field count.
const DefaultHistoryLimit = 100

// NewHistory creates a history seeded with the initial state. The seed
// counts as entry 0 so the first undo returns to it.
func NewHistory(limit int, initial Snapshot) *History {
	if limit <= 1 {
		limit = DefaultHistoryLimit
	}
	return &History{
		entries: []Snapshot{initial.Clone()},
		limit:   limit,
	}
}

// Push records a committed mutation. Calls made while a restore is in
// flight are dropped: undo/redo must never append the state they restore.
func (h *History) Push(s Snapshot) {
	if h.restoring {
		return
	}
	h.entries = append(h.entries[:h.index+1], s.Clone())
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	h.index = len(h.entries) - 1
}

// CanUndo reports whether an earlier snapshot exists.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether a later snapshot exists.
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

// Undo steps back one entry and returns a copy of it. No-op at entry 0.
func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return Snapshot{}, false
	}
	h.index--
	return h.entries[h.index].Clone(), true
}

// Redo steps forward one entry and returns a copy of it. No-op at the tail.
func (h *History) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return Snapshot{}, false
	}
	h.index++
	return h.entries[h.index].Clone(), true
}

// Restoring marks the start or end of a restore so that state changes made
// while applying a snapshot do not get recorded as fresh history.
func (h *History) Restoring(on bool) { h.restoring = on }

// Len returns the number of recorded snapshots.
func (h *History) Len() int { return len(h.entries) }
