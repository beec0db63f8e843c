package layout

import "esignapi/internal/model"

// gesturePhase is the controller's state: idle, dragging, or resizing.
type gesturePhase int

const (
	phaseIdle gesturePhase = iota
	phaseDragging
	phaseResizing
)

// DragThreshold is the pointer travel, in screen pixels, below which a
// down/up pair counts as a click rather than a drag.
const DragThreshold = 3.0

// CaptureFunc is invoked when a click on a signature or initial field
// should open the external signature-capture flow.
type CaptureFunc func(fieldID string)

// Controller translates pointer events on field overlays into committed
// geometry changes on a Session. Exactly one commit is emitted per
// completed gesture; pointer moves only update an uncommitted preview.
//
// Only one field may be mid-gesture at a time; a pointer-down while another
// gesture is active is ignored.
type Controller struct {
	session *Session

	// ActiveSignerID scopes click behavior: a click on a signature or
	// initial field assigned to this signer triggers OnCapture.
	ActiveSignerID string
	OnCapture      CaptureFunc

	phase     gesturePhase
	fieldID   string
	transform Transform // captured at gesture start, held fixed until release
	startX    float64   // screen px
	startY    float64
	origin    Rect // pre-gesture geometry, PDF points
	preview   Rect
	moved     bool
}

// NewController creates a controller bound to a session.
func NewController(session *Session) *Controller {
	return &Controller{session: session}
}

// Dragging reports whether a drag gesture is in progress.
func (c *Controller) Dragging() bool { return c.phase == phaseDragging }

// Resizing reports whether a resize gesture is in progress.
func (c *Controller) Resizing() bool { return c.phase == phaseResizing }

// Preview returns the uncommitted geometry shown while a gesture is in
// progress, in PDF points.
func (c *Controller) Preview() (Rect, bool) {
	if c.phase == phaseIdle {
		return Rect{}, false
	}
	return c.preview, true
}

// PointerDown starts a gesture on a field overlay. onHandle selects resize
// over drag. The transform is captured here and reused for every event of
// the gesture; an invalid transform refuses the gesture so a missing scale
// can never reach stored geometry.
func (c *Controller) PointerDown(fieldID string, x, y float64, onHandle bool, t Transform) {
	if c.phase != phaseIdle {
		return
	}
	if !t.Valid() {
		return
	}
	f, ok := c.session.Field(fieldID)
	if !ok {
		return
	}
	c.fieldID = fieldID
	c.transform = t
	c.startX, c.startY = x, y
	c.origin = fieldRect(f)
	c.preview = c.origin
	c.moved = false
	if onHandle {
		c.phase = phaseResizing
	} else {
		c.phase = phaseDragging
	}
}

// PointerMove updates the preview. The committed field is untouched until
// release.
func (c *Controller) PointerMove(x, y float64) {
	if c.phase == phaseIdle {
		return
	}
	dx, dy := x-c.startX, y-c.startY
	if dx*dx+dy*dy > DragThreshold*DragThreshold {
		c.moved = true
	}
	pdx, pdy := c.transform.DeltaToPDF(dx, dy)
	switch c.phase {
	case phaseDragging:
		c.preview = clampGeometry(c.fieldType(), Rect{
			X: c.origin.X + pdx, Y: c.origin.Y + pdy,
			Width: c.origin.Width, Height: c.origin.Height,
		})
	case phaseResizing:
		c.preview = clampGeometry(c.fieldType(), Rect{
			X: c.origin.X, Y: c.origin.Y,
			Width: c.origin.Width + pdx, Height: c.origin.Height + pdy,
		})
	}
}

// PointerUp ends the gesture. Sub-threshold movement is a click: the field
// is selected and, for signature/initial fields assigned to the active
// signer, the capture flow is triggered instead of any positional change.
// Otherwise the preview position is committed, even if the pointer was
// released outside a drop target.
func (c *Controller) PointerUp(x, y float64) {
	if c.phase == phaseIdle {
		return
	}
	c.PointerMove(x, y)
	phase := c.phase
	fieldID := c.fieldID
	preview := c.preview
	moved := c.moved
	c.reset()

	if !moved {
		c.session.Select(fieldID)
		if c.OnCapture != nil && c.ActiveSignerID != "" {
			if f, ok := c.session.Field(fieldID); ok &&
				(f.Type == model.FieldSignature || f.Type == model.FieldInitial) &&
				f.SignerID == c.ActiveSignerID {
				c.OnCapture(fieldID)
			}
		}
		return
	}

	switch phase {
	case phaseDragging:
		c.session.moveField(fieldID, preview.X, preview.Y)
	case phaseResizing:
		c.session.resizeField(fieldID, preview.Width, preview.Height)
	}
}

// Cancel abandons the gesture without committing, restoring the
// pre-gesture geometry. Bound to Escape by the editor.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.phase = phaseIdle
	c.fieldID = ""
	c.transform = Transform{}
	c.moved = false
}

func (c *Controller) fieldType() model.FieldType {
	if f, ok := c.session.Field(c.fieldID); ok {
		return f.Type
	}
	return model.FieldText
}
