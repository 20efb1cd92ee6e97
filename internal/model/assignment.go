package model

import "time"

// BatchAssignment is the ordered set of images assigned to a participant for
// one batch. Generated once per participant, then treated as read-only.
type BatchAssignment struct {
	ID            int64     `json:"id"`
	ParticipantID string    `json:"participant_id"`
	BatchNo       int       `json:"batch_no"`
	ItemIDs       []int64   `json:"item_ids"`
	CreatedAt     time.Time `json:"created_at"`
}

// BatchProgress is a computed summary for one batch.
type BatchProgress struct {
	BatchNo        int  `json:"batch_no"`
	TotalCount     int  `json:"total_count"`
	CompletedCount int  `json:"completed_count"`
	SkippedCount   int  `json:"skipped_count"`
	IsFinished     bool `json:"is_finished"`
}
