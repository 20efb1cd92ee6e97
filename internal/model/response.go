package model

import "time"

// ResponseFlaw is one localized marker as persisted inside a response row.
// Positions and radius are normalized image-space values in [0,1].
type ResponseFlaw struct {
	ID        string   `json:"id"`
	PX        float64  `json:"px"`
	PY        float64  `json:"py"`
	R         float64  `json:"r"`
	Reasons   []string `json:"reasons"`
	OtherText string   `json:"other_text"`
}

// Response is the persisted answer for one (participant, image, mode)
// triple. This is the only bit-exact wire contract in the system: the JSON
// field names match the rows already written by earlier clients.
type Response struct {
	ID             int64          `json:"id"`
	ParticipantID  string         `json:"participant_id"`
	ImageID        int64          `json:"image_id"`
	IsPractice     bool           `json:"is_practice"`
	IsSkip         bool           `json:"is_skip"`
	NoFlaw         bool           `json:"no_flaw"`
	ReasonsOverall []string       `json:"reasons_overall"`
	ReasonsFlaws   []ResponseFlaw `json:"reasons_flaws"`
	DurationMS     *int64         `json:"duration_ms,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
