package model

import "time"

// Entry is one diary record. The JSON names are the persisted format.
type Entry struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Correction string     `json:"correction,omitempty"`
	Image      string     `json:"image,omitempty"` // data URL
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// HasContent reports whether the entry carries a title or a body.
func (e Entry) HasContent() bool {
	return e.Title != "" || e.Body != ""
}
