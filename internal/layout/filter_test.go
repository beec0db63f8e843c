package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esignapi/internal/model"
)

func testPages() map[int]PageSize {
	return map[int]PageSize{
		1: {Width: 612, Height: 792},
		2: {Width: 612, Height: 792},
		3: {Width: 612, Height: 792},
	}
}

func TestVisibleFields_ByPage(t *testing.T) {
	fields := []model.Field{
		{ID: "a", PageNumber: 1},
		{ID: "b", PageNumber: 2},
		{ID: "c", PageNumber: 3},
		{ID: "d", PageNumber: 2},
	}

	got := VisibleFields(fields, View{Page: 2}, testPages())

	require.Len(t, got, 2)
	// Insertion order, not spatial order.
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "d", got[1].ID)
}

func TestVisibleFields_CoercesStringPageNumbers(t *testing.T) {
	// Page numbers arrive as strings from older clients; the coercion at
	// the unmarshal boundary must make the page filter numeric.
	payload := `[
		{"id": "a", "pageNumber": "2", "x": "10.5", "y": 20},
		{"id": "b", "pageNumber": 1}
	]`
	var fields []model.Field
	require.NoError(t, json.Unmarshal([]byte(payload), &fields))

	got := VisibleFields(fields, View{Page: 2}, testPages())

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.InDelta(t, 10.5, got[0].X.Float64(), 1e-9)
}

func TestVisibleFields_SignerScoped(t *testing.T) {
	fields := []model.Field{
		{ID: "a", PageNumber: 1, SignerID: "s1"},
		{ID: "b", PageNumber: 1, SignerID: "s2"},
		{ID: "c", PageNumber: 1},
	}

	got := VisibleFields(fields, View{Page: 1, SignerID: "s1"}, testPages())
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	// Editor view: no signer filter, unassigned fields included.
	all := VisibleFields(fields, View{Page: 1}, testPages())
	assert.Len(t, all, 3)
}

func TestVisibleFields_UnknownPageDimensions(t *testing.T) {
	fields := []model.Field{{ID: "a", PageNumber: 4}}

	// Page 4 has not reported dimensions: nothing renders.
	got := VisibleFields(fields, View{Page: 4}, testPages())
	assert.Empty(t, got)
}

func TestVisibleFields_DoesNotMutateInput(t *testing.T) {
	fields := []model.Field{
		{ID: "a", PageNumber: 1},
		{ID: "b", PageNumber: 2},
	}
	before := append([]model.Field(nil), fields...)

	_ = VisibleFields(fields, View{Page: 1}, testPages())

	assert.Equal(t, before, fields)
}

func TestDisplayColor(t *testing.T) {
	signers := []model.Signer{{ID: "s1", Color: "#2563EB"}}

	tests := []struct {
		name  string
		field model.Field
		want  string
	}{
		{"field color wins", model.Field{Color: "#000000", SignerID: "s1"}, "#000000"},
		{"signer color inherited", model.Field{SignerID: "s1"}, "#2563EB"},
		{"unassigned falls back to neutral", model.Field{}, model.UnassignedColor},
		{"dangling signer falls back to neutral", model.Field{SignerID: "ghost"}, model.UnassignedColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayColor(tt.field, signers))
		})
	}
}

func TestFilterCache(t *testing.T) {
	fields := []model.Field{{ID: "a", PageNumber: 1}}
	pages := testPages()
	var c FilterCache

	first := c.Get(1, fields, View{Page: 1}, pages)
	require.Len(t, first, 1)

	// Same generation and view: memoized result, even if the caller's
	// slice has moved on.
	second := c.Get(1, nil, View{Page: 1}, pages)
	assert.Len(t, second, 1)

	// Generation bump recomputes.
	third := c.Get(2, nil, View{Page: 1}, pages)
	assert.Empty(t, third)

	// View change recomputes too.
	fourth := c.Get(2, fields, View{Page: 2}, pages)
	assert.Empty(t, fourth)
}
