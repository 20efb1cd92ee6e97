package model

import "time"

// Image is one item to annotate. StoragePath is opaque to the core; public
// URLs are derived, never persisted.
type Image struct {
	ID          int64     `json:"id"`
	StoragePath string    `json:"storage_path"`
	IsPractice  bool      `json:"is_practice"`
	CreatedAt   time.Time `json:"created_at"`
}
