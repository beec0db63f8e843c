// Package layout implements the field layout engine shared by the editor,
// preview, and signer views: the PDF-point to screen-pixel transform, page
// scoped field filtering, pointer gesture handling, and undo/redo history.
package layout

// PageSize is a page's native size in PDF points, reported by the renderer
// once per page load.
type PageSize struct {
	Width  float64
	Height float64
}

// Known reports whether the renderer has delivered dimensions yet. Pages
// without known dimensions render no overlays.
func (p PageSize) Known() bool { return p.Width > 0 && p.Height > 0 }

// Rect is an axis-aligned rectangle. Whether it is in PDF-point or screen
// space depends on which side of a Transform it sits on.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

const (
	// MinScale floors the effective scale so fields stay clickable on
	// narrow viewports.
	MinScale = 0.5

	MinZoom = 0.5
	MaxZoom = 3.0
)

// EffectiveScale computes the multiplier from PDF points to screen pixels:
// min(containerWidth/pageWidth, 1) × zoom, floored at MinScale. Zoom is
// clamped to [MinZoom, MaxZoom] first. Returns 0 when the page size is not
// known yet, which callers must treat as "do not render".
func EffectiveScale(page PageSize, containerWidth, zoom float64) float64 {
	if !page.Known() || containerWidth <= 0 {
		return 0
	}
	if zoom < MinZoom {
		zoom = MinZoom
	} else if zoom > MaxZoom {
		zoom = MaxZoom
	}
	fit := containerWidth / page.Width
	if fit > 1 {
		fit = 1
	}
	s := fit * zoom
	if s < MinScale {
		s = MinScale
	}
	return s
}

// Transform converts geometry between PDF-point space and screen-pixel
// space at a fixed scale. The zero Transform is invalid; obtain one from a
// Scaler or NewTransform.
type Transform struct {
	scale float64
}

// NewTransform returns a transform at the given scale. A non-positive scale
// yields an invalid transform whose conversions are no-ops.
func NewTransform(scale float64) Transform {
	if scale <= 0 {
		return Transform{}
	}
	return Transform{scale: scale}
}

// Valid reports whether the transform has a usable scale. Invalid
// transforms must never be used for commits.
func (t Transform) Valid() bool { return t.scale > 0 }

// Scale returns the scale factor, or 0 for an invalid transform.
func (t Transform) Scale() float64 { return t.scale }

// ToScreen maps a PDF-point rectangle to screen pixels. Sub-pixel precision
// is preserved; rounding is left to CSS positioning.
func (t Transform) ToScreen(r Rect) Rect {
	if !t.Valid() {
		return Rect{}
	}
	return Rect{
		X:      r.X * t.scale,
		Y:      r.Y * t.scale,
		Width:  r.Width * t.scale,
		Height: r.Height * t.scale,
	}
}

// ToPDF maps a screen-pixel rectangle back to PDF points.
func (t Transform) ToPDF(r Rect) Rect {
	if !t.Valid() {
		return Rect{}
	}
	return Rect{
		X:      r.X / t.scale,
		Y:      r.Y / t.scale,
		Width:  r.Width / t.scale,
		Height: r.Height / t.scale,
	}
}

// DeltaToPDF converts a screen-pixel delta to PDF points. Used when
// committing a drag: the same scale captured at drag-start must be used for
// every event of the gesture.
func (t Transform) DeltaToPDF(dx, dy float64) (float64, float64) {
	if !t.Valid() {
		return 0, 0
	}
	return dx / t.scale, dy / t.scale
}

// Scaler memoizes the effective scale against its inputs so that it is only
// recomputed when the page size, container width, or zoom actually change,
// not on every render frame.
type Scaler struct {
	page           PageSize
	containerWidth float64
	zoom           float64
	transform      Transform
	dirty          bool
}

// NewScaler returns a scaler with no page dimensions yet. Its Transform is
// invalid until SetPage is called with a known size.
func NewScaler() *Scaler {
	return &Scaler{zoom: 1, dirty: true}
}

// SetPage records the page's native size, invalidating the memoized scale
// if it changed.
func (s *Scaler) SetPage(p PageSize) {
	if s.page != p {
		s.page = p
		s.dirty = true
	}
}

// SetContainerWidth records the available pixel width.
func (s *Scaler) SetContainerWidth(w float64) {
	if s.containerWidth != w {
		s.containerWidth = w
		s.dirty = true
	}
}

// SetZoom records the user zoom multiplier.
func (s *Scaler) SetZoom(z float64) {
	if s.zoom != z {
		s.zoom = z
		s.dirty = true
	}
}

// Transform returns the transform for the current inputs, recomputing only
// when an input changed since the last call.
func (s *Scaler) Transform() Transform {
	if s.dirty {
		s.transform = NewTransform(EffectiveScale(s.page, s.containerWidth, s.zoom))
		s.dirty = false
	}
	return s.transform
}
