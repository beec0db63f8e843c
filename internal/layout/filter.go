package layout

import "esignapi/internal/model"

// View describes which subset of a document's fields should render as
// overlays: the displayed page, and optionally the signer whose fields are
// being filled. A zero SignerID with ShowAll false means "editor view with
// no signer filter".
type View struct {
	Page     int
	SignerID string
}

// VisibleFields returns the fields to render for a view, preserving the
// input list's relative order. The input is never mutated. Page numbers are
// compared after coercion (model.FlexInt handles string-typed values at the
// unmarshal boundary). Fields on a page whose dimensions are unknown are
// omitted entirely: no dimensions, no overlays.
func VisibleFields(fields []model.Field, v View, pages map[int]PageSize) []model.Field {
	if !pages[v.Page].Known() {
		return nil
	}
	out := make([]model.Field, 0, len(fields))
	for _, f := range fields {
		if f.PageNumber.Int() != v.Page {
			continue
		}
		if v.SignerID != "" && f.SignerID != v.SignerID {
			continue
		}
		out = append(out, f)
	}
	return out
}

// DisplayColor resolves the color to render a field with: its own color if
// set, else the assigned signer's color, else the neutral unassigned style.
func DisplayColor(f model.Field, signers []model.Signer) string {
	if f.Color != "" {
		return f.Color
	}
	for _, s := range signers {
		if s.ID == f.SignerID && s.Color != "" {
			return s.Color
		}
	}
	return model.UnassignedColor
}

// FilterCache memoizes VisibleFields against (generation, page, signerID).
// The owning session bumps the generation on every committed mutation, so
// recomputing on every render frame is cheap between commits.
type FilterCache struct {
	generation uint64
	view       View
	cached     []model.Field
	valid      bool
}

// Get returns the memoized subset for the view, recomputing when the
// session generation or the view changed.
func (c *FilterCache) Get(generation uint64, fields []model.Field, v View, pages map[int]PageSize) []model.Field {
	if c.valid && c.generation == generation && c.view == v {
		return c.cached
	}
	c.cached = VisibleFields(fields, v, pages)
	c.generation = generation
	c.view = v
	c.valid = true
	return c.cached
}
