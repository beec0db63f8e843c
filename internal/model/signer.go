package model

import (
	"regexp"
	"time"
)

// SignerStatus tracks a signer's progress through the signing flow.
type SignerStatus string

const (
	SignerPending   SignerStatus = "PENDING"
	SignerViewed    SignerStatus = "VIEWED"
	SignerCompleted SignerStatus = "COMPLETED"
	SignerDeclined  SignerStatus = "DECLINED"
)

// CanTransition reports whether moving from s to next is a legal step.
// The flow is PENDING → VIEWED → COMPLETED; DECLINED may be entered from
// any non-terminal state and is terminal.
func (s SignerStatus) CanTransition(next SignerStatus) bool {
	if s == SignerCompleted || s == SignerDeclined {
		return false
	}
	switch next {
	case SignerViewed:
		return s == SignerPending
	case SignerCompleted:
		return s == SignerPending || s == SignerViewed
	case SignerDeclined:
		return true
	default:
		return false
	}
}

// Signer is a party expected to complete a subset of a document's fields.
type Signer struct {
	ID         string       `json:"id"`
	DocumentID string       `json:"documentId"`
	Email      string       `json:"email"`
	Name       string       `json:"name,omitempty"`
	Role       string       `json:"role,omitempty"`
	Order      int          `json:"order"`
	Status     SignerStatus `json:"status"`
	Color      string       `json:"color,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail checks the RFC-shaped form of an address. It does not attempt
// full RFC 5322 validation; delivery is the mailer's problem.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// SignerPalette holds the colors assigned to signers, in order, so each
// signer's fields are visually distinct in the editor. Wraps around after
// the last entry.
var SignerPalette = []string{
	"#2563EB", // blue
	"#16A34A", // green
	"#D97706", // amber
	"#DC2626", // red
	"#7C3AED", // violet
	"#0891B2", // cyan
}

// UnassignedColor is the neutral style used for fields with no signer.
const UnassignedColor = "#9CA3AF"

// PaletteColor returns the palette entry for the i-th signer.
func PaletteColor(i int) string {
	if i < 0 {
		i = 0
	}
	return SignerPalette[i%len(SignerPalette)]
}
