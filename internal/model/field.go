package model

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FieldType classifies what a placed field collects from a signer.
type FieldType string

const (
	FieldText      FieldType = "text"
	FieldEmail     FieldType = "email"
	FieldDate      FieldType = "date"
	FieldCheckbox  FieldType = "checkbox"
	FieldSignature FieldType = "signature"
	FieldInitial   FieldType = "initial"
	FieldName      FieldType = "name"
	FieldPhone     FieldType = "phone"
	FieldAddress   FieldType = "address"
	FieldDropdown  FieldType = "dropdown"
	FieldRadio     FieldType = "radio"
	FieldNumber    FieldType = "number"
	FieldTextarea  FieldType = "textarea"
	FieldImage     FieldType = "image"
	FieldFormula   FieldType = "formula"
	FieldPayment   FieldType = "payment"
)

var fieldTypes = map[FieldType]bool{
	FieldText: true, FieldEmail: true, FieldDate: true, FieldCheckbox: true,
	FieldSignature: true, FieldInitial: true, FieldName: true, FieldPhone: true,
	FieldAddress: true, FieldDropdown: true, FieldRadio: true, FieldNumber: true,
	FieldTextarea: true, FieldImage: true, FieldFormula: true, FieldPayment: true,
}

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool { return fieldTypes[t] }

// MinSize returns the smallest usable width/height for a field of this type,
// in PDF points. Anything smaller is clamped up on commit.
func (t FieldType) MinSize() (w, h float64) {
	switch t {
	case FieldSignature, FieldInitial:
		return 80, 30
	case FieldCheckbox, FieldRadio:
		return 16, 16
	default:
		return 50, 20
	}
}

// MaxFieldSize bounds width and height so a runaway resize cannot cover
// the whole page.
const MaxFieldSize = 500.0

// Field is a placeable, fillable region on a document page. Geometry is in
// PDF points with a top-left origin; PageNumber is 1-indexed.
type Field struct {
	ID               string    `json:"id"`
	DocumentID       string    `json:"documentId"`
	Type             FieldType `json:"type"`
	Label            string    `json:"label"`
	Required         bool      `json:"required"`
	Placeholder      string    `json:"placeholder,omitempty"`
	X                FlexFloat `json:"x"`
	Y                FlexFloat `json:"y"`
	Width            FlexFloat `json:"width"`
	Height           FlexFloat `json:"height"`
	PageNumber       FlexInt   `json:"pageNumber"`
	Value            string    `json:"value,omitempty"`
	SignerID         string    `json:"signerId,omitempty"`
	Color            string    `json:"color,omitempty"`
	FontFamily       string    `json:"fontFamily,omitempty"`
	FontSize         FlexInt   `json:"fontSize,omitempty"`
	ValidationRule   string    `json:"validationRule,omitempty"`
	ConditionalLogic string    `json:"conditionalLogic,omitempty"`
	Options          string    `json:"options,omitempty"`
	BackgroundColor  string    `json:"backgroundColor,omitempty"`
	BorderColor      string    `json:"borderColor,omitempty"`
	TextColor        string    `json:"textColor,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ValidationRule is the parsed form of Field.ValidationRule. Exactly one of
// Pattern, MinLength, MaxLength is set for prefixed rules; a JSON blob may
// set several.
type ValidationRule struct {
	Pattern   *regexp.Regexp
	MinLength int
	MaxLength int
}

type jsonRule struct {
	Pattern   string `json:"pattern"`
	MinLength int    `json:"minLength"`
	MaxLength int    `json:"maxLength"`
}

// ParseValidationRule parses a rule string of the form "regex:…",
// "minLength:…", "maxLength:…" or a JSON blob. A malformed rule returns
// (nil, false): the caller applies no extra validation rather than failing.
func ParseValidationRule(raw string) (*ValidationRule, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	switch {
	case strings.HasPrefix(raw, "regex:"):
		re, err := regexp.Compile(strings.TrimPrefix(raw, "regex:"))
		if err != nil {
			return nil, false
		}
		return &ValidationRule{Pattern: re}, true
	case strings.HasPrefix(raw, "minLength:"):
		n, err := strconv.Atoi(strings.TrimPrefix(raw, "minLength:"))
		if err != nil || n < 0 {
			return nil, false
		}
		return &ValidationRule{MinLength: n}, true
	case strings.HasPrefix(raw, "maxLength:"):
		n, err := strconv.Atoi(strings.TrimPrefix(raw, "maxLength:"))
		if err != nil || n < 0 {
			return nil, false
		}
		return &ValidationRule{MaxLength: n}, true
	}
	var jr jsonRule
	if err := json.Unmarshal([]byte(raw), &jr); err != nil {
		return nil, false
	}
	r := &ValidationRule{MinLength: jr.MinLength, MaxLength: jr.MaxLength}
	if jr.Pattern != "" {
		re, err := regexp.Compile(jr.Pattern)
		if err != nil {
			return nil, false
		}
		r.Pattern = re
	}
	return r, true
}

// Accepts reports whether value satisfies the rule.
func (r *ValidationRule) Accepts(value string) bool {
	if r == nil {
		return true
	}
	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		return false
	}
	if r.MinLength > 0 && len(value) < r.MinLength {
		return false
	}
	if r.MaxLength > 0 && len(value) > r.MaxLength {
		return false
	}
	return true
}

// ConditionalLogic is a show/hide rule referencing another field's value.
type ConditionalLogic struct {
	FieldID  string `json:"fieldId"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// ParseConditionalLogic decodes the JSON rule attached to a field. Malformed
// payloads return (nil, false) and the field stays always visible.
func ParseConditionalLogic(raw string) (*ConditionalLogic, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	var cl ConditionalLogic
	if err := json.Unmarshal([]byte(raw), &cl); err != nil {
		return nil, false
	}
	if cl.FieldID == "" || cl.Operator == "" {
		return nil, false
	}
	return &cl, true
}

// Visible evaluates the rule against the referenced field's current value.
// Unknown operators and dangling field references degrade to visible.
func (c *ConditionalLogic) Visible(fields []Field) bool {
	if c == nil {
		return true
	}
	var ref *Field
	for i := range fields {
		if fields[i].ID == c.FieldID {
			ref = &fields[i]
			break
		}
	}
	if ref == nil {
		return true
	}
	switch c.Operator {
	case "equals":
		return ref.Value == c.Value
	case "not_equals":
		return ref.Value != c.Value
	case "contains":
		return strings.Contains(ref.Value, c.Value)
	default:
		return true
	}
}

// IsVisible applies the field's own conditional logic against its siblings.
func (f *Field) IsVisible(fields []Field) bool {
	cl, ok := ParseConditionalLogic(f.ConditionalLogic)
	if !ok {
		return true
	}
	return cl.Visible(fields)
}
