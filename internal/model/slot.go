package model

import "time"

// Slot is a key/value pair in the persistent store.
type Slot struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
