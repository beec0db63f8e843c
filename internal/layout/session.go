package layout

import (
	"time"

	"github.com/google/uuid"

	"esignapi/internal/model"
)

// Session is the document preparation state for one editing session: the
// working field set, signers, send options, and the history stack. It is
// owned by a single browser tab's event loop; all mutations are synchronous
// and there is no concurrent writer.
type Session struct {
	DocumentID string

	fields        []model.Field
	signers       []model.Signer
	dueDate       *time.Time
	message       string
	expiryDays    int
	notifySigners bool

	pages      map[int]PageSize
	history    *History
	selected   string
	generation uint64
}

// NewSession starts an editing session over the given working set. The
// initial state is seeded as history entry 0.
func NewSession(documentID string, fields []model.Field, signers []model.Signer) *Session {
	s := &Session{
		DocumentID: documentID,
		fields:     cloneFields(fields),
		signers:    append([]model.Signer(nil), signers...),
		pages:      make(map[int]PageSize),
	}
	s.history = NewHistory(DefaultHistoryLimit, s.snapshot())
	return s
}

// Fields returns a copy of the working field list in insertion order.
func (s *Session) Fields() []model.Field { return cloneFields(s.fields) }

// Signers returns a copy of the signer list.
func (s *Session) Signers() []model.Signer { return append([]model.Signer(nil), s.signers...) }

// Generation increments on every committed mutation; filter caches key
// their memoization on it.
func (s *Session) Generation() uint64 { return s.generation }

// Selected returns the id of the selected field, or "".
func (s *Session) Selected() string { return s.selected }

// Select marks a field as selected. Selection is not a history-tracked
// mutation.
func (s *Session) Select(fieldID string) { s.selected = fieldID }

// SetPageSize records a page's native dimensions as reported by the
// renderer. Until a page's size is known its fields are not rendered.
func (s *Session) SetPageSize(page int, size PageSize) {
	s.pages[page] = size
}

// PageSizes returns the known page dimensions keyed by page number.
func (s *Session) PageSizes() map[int]PageSize { return s.pages }

// Visible returns the fields to overlay for a view. Callers that render per
// frame should go through a FilterCache instead.
func (s *Session) Visible(v View) []model.Field {
	return VisibleFields(s.fields, v, s.pages)
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Fields:        s.fields,
		DueDate:       s.dueDate,
		Message:       s.message,
		ExpiryDays:    s.expiryDays,
		NotifySigners: s.notifySigners,
	}
}

// commit applies a mutation and records the resulting state. Every add,
// delete, move, resize, property edit, and signer reassignment funnels
// through here; undo/redo do not.
func (s *Session) commit(mutate func()) {
	mutate()
	s.generation++
	s.history.Push(s.snapshot())
}

func (s *Session) restore(snap Snapshot) {
	s.history.Restoring(true)
	defer s.history.Restoring(false)
	s.fields = snap.Fields
	s.dueDate = snap.DueDate
	s.message = snap.Message
	s.expiryDays = snap.ExpiryDays
	s.notifySigners = snap.NotifySigners
	s.generation++
	if s.selected != "" && s.fieldIndex(s.selected) < 0 {
		s.selected = ""
	}
}

// Undo restores the previous snapshot. No-op at the oldest entry.
func (s *Session) Undo() bool {
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Redo restores the next snapshot. No-op at the newest entry.
func (s *Session) Redo() bool {
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// CanUndo reports whether Undo would do anything.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

func (s *Session) fieldIndex(id string) int {
	for i := range s.fields {
		if s.fields[i].ID == id {
			return i
		}
	}
	return -1
}

// Field returns the field with the given id.
func (s *Session) Field(id string) (model.Field, bool) {
	if i := s.fieldIndex(id); i >= 0 {
		return s.fields[i], true
	}
	return model.Field{}, false
}

// AddField places a new field with a fresh id on the given page. Geometry
// is clamped to the type's constraints before the commit.
func (s *Session) AddField(f model.Field) model.Field {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.DocumentID = s.DocumentID
	r := clampGeometry(f.Type, fieldRect(f))
	setFieldRect(&f, r)
	s.commit(func() {
		s.fields = append(s.fields, f)
	})
	return f
}

// UpdateField replaces the field with the same id, keeping list order.
// Geometry is clamped; an unknown id is a no-op.
func (s *Session) UpdateField(f model.Field) bool {
	i := s.fieldIndex(f.ID)
	if i < 0 {
		return false
	}
	r := clampGeometry(f.Type, fieldRect(f))
	setFieldRect(&f, r)
	s.commit(func() {
		s.fields[i] = f
	})
	return true
}

// RemoveField deletes a field by id and clears the selection if it pointed
// at the deleted field.
func (s *Session) RemoveField(id string) bool {
	i := s.fieldIndex(id)
	if i < 0 {
		return false
	}
	s.commit(func() {
		s.fields = append(s.fields[:i:i], s.fields[i+1:]...)
		if s.selected == id {
			s.selected = ""
		}
	})
	return true
}

// DuplicateOffset is the fixed PDF-point displacement applied to a
// duplicated field.
const DuplicateOffset = 20.0

// DuplicateField copies a field onto the same page with a fresh id, offset
// by DuplicateOffset in both axes.
func (s *Session) DuplicateField(id string) (model.Field, bool) {
	i := s.fieldIndex(id)
	if i < 0 {
		return model.Field{}, false
	}
	dup := s.fields[i]
	dup.ID = uuid.NewString()
	dup.X += DuplicateOffset
	dup.Y += DuplicateOffset
	dup.Value = ""
	s.commit(func() {
		s.fields = append(s.fields, dup)
	})
	return dup, true
}

// AssignSigner reassigns a field to a signer ("" unassigns) and inherits
// the signer's color by convention.
func (s *Session) AssignSigner(fieldID, signerID string) bool {
	i := s.fieldIndex(fieldID)
	if i < 0 {
		return false
	}
	color := ""
	for _, sg := range s.signers {
		if sg.ID == signerID {
			color = sg.Color
			break
		}
	}
	s.commit(func() {
		s.fields[i].SignerID = signerID
		s.fields[i].Color = color
	})
	return true
}

// SetSendOptions updates the due date, message, expiry, and notification
// flag as one committed edit.
func (s *Session) SetSendOptions(dueDate *time.Time, message string, expiryDays int, notify bool) {
	s.commit(func() {
		s.dueDate = dueDate
		s.message = message
		s.expiryDays = expiryDays
		s.notifySigners = notify
	})
}

// SendOptions returns the current due date, message, expiry, and
// notification flag.
func (s *Session) SendOptions() (*time.Time, string, int, bool) {
	return s.dueDate, s.message, s.expiryDays, s.notifySigners
}

// moveField applies a clamped absolute position to a field; used by the
// interaction controller and keyboard nudges.
func (s *Session) moveField(id string, x, y float64) bool {
	i := s.fieldIndex(id)
	if i < 0 {
		return false
	}
	r := clampGeometry(s.fields[i].Type, Rect{
		X: x, Y: y,
		Width:  s.fields[i].Width.Float64(),
		Height: s.fields[i].Height.Float64(),
	})
	s.commit(func() {
		s.fields[i].X = model.FlexFloat(r.X)
		s.fields[i].Y = model.FlexFloat(r.Y)
	})
	return true
}

// resizeField applies a clamped size to a field.
func (s *Session) resizeField(id string, w, h float64) bool {
	i := s.fieldIndex(id)
	if i < 0 {
		return false
	}
	r := clampGeometry(s.fields[i].Type, Rect{
		X: s.fields[i].X.Float64(), Y: s.fields[i].Y.Float64(),
		Width: w, Height: h,
	})
	s.commit(func() {
		s.fields[i].Width = model.FlexFloat(r.Width)
		s.fields[i].Height = model.FlexFloat(r.Height)
	})
	return true
}

// Key is a keyboard event at the session boundary. Meta covers Cmd on
// macOS; Ctrl covers everything else.
type Key struct {
	Name  string // "z", "ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight"
	Shift bool
	Ctrl  bool
	Meta  bool
}

const (
	nudgeStep      = 1.0
	nudgeStepLarge = 10.0
)

// HandleKey dispatches editor keyboard shortcuts: Ctrl/Cmd+Z undoes,
// Ctrl/Cmd+Shift+Z redoes, arrow keys nudge the selected field by 1 point
// (10 with shift). Returns true when the key was consumed.
func (s *Session) HandleKey(k Key) bool {
	if (k.Ctrl || k.Meta) && k.Name == "z" {
		if k.Shift {
			return s.Redo()
		}
		return s.Undo()
	}

	var dx, dy float64
	switch k.Name {
	case "ArrowUp":
		dy = -1
	case "ArrowDown":
		dy = 1
	case "ArrowLeft":
		dx = -1
	case "ArrowRight":
		dx = 1
	default:
		return false
	}
	if s.selected == "" {
		return false
	}
	step := nudgeStep
	if k.Shift {
		step = nudgeStepLarge
	}
	f, ok := s.Field(s.selected)
	if !ok {
		return false
	}
	return s.moveField(f.ID, f.X.Float64()+dx*step, f.Y.Float64()+dy*step)
}

func fieldRect(f model.Field) Rect {
	return Rect{
		X:      f.X.Float64(),
		Y:      f.Y.Float64(),
		Width:  f.Width.Float64(),
		Height: f.Height.Float64(),
	}
}

func setFieldRect(f *model.Field, r Rect) {
	f.X = model.FlexFloat(r.X)
	f.Y = model.FlexFloat(r.Y)
	f.Width = model.FlexFloat(r.Width)
	f.Height = model.FlexFloat(r.Height)
}

// clampGeometry enforces the layout invariants silently: non-negative
// position, the per-type minimum size, and the global maximum. Violations
// never surface as errors.
func clampGeometry(t model.FieldType, r Rect) Rect {
	minW, minH := t.MinSize()
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.Width < minW {
		r.Width = minW
	} else if r.Width > model.MaxFieldSize {
		r.Width = model.MaxFieldSize
	}
	if r.Height < minH {
		r.Height = minH
	} else if r.Height > model.MaxFieldSize {
		r.Height = model.MaxFieldSize
	}
	return r
}

// ClampGeometry is the exported form used by the persistence boundary when
// fields arrive from a client save.
func ClampGeometry(t model.FieldType, r Rect) Rect { return clampGeometry(t, r) }
