package model

import "time"

// Document represents an uploaded PDF awaiting preparation and signing.
// This is a pure domain model with no database-specific dependencies or tags.
type Document struct {
	ID            string     `json:"id"`
	Filename      string     `json:"filename"`
	StoragePath   string     `json:"storagePath"`
	Size          int64      `json:"size"`
	ContentType   string     `json:"contentType"`
	PageCount     int        `json:"pageCount"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Message       string     `json:"message,omitempty"`
	ExpiryDays    int        `json:"expiryDays,omitempty"`
	NotifySigners bool       `json:"notifySigners"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// PageDimensions is one page's native size in PDF points, as reported by the
// PDF probe at upload time. Overlays for a page are only rendered once its
// dimensions are known.
type PageDimensions struct {
	DocumentID string  `json:"documentId"`
	PageNumber int     `json:"pageNumber"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}
