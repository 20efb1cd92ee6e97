package dto

import (
	"spotcheck.app/survey/internal/model"
)

type FlawMarker struct {
	ID        string   `json:"id" binding:"required"`
	PX        float64  `json:"px" binding:"min=0,max=1"`
	PY        float64  `json:"py" binding:"min=0,max=1"`
	R         float64  `json:"r" binding:"required,gt=0"`
	Reasons   []string `json:"reasons" binding:"required,min=1"`
	OtherText string   `json:"other_text,omitempty"`
}

type SaveResponseRequest struct {
	ImageID        int64        `json:"image_id" binding:"required"`
	IsPractice     bool         `json:"is_practice"`
	NoFlaw         bool         `json:"no_flaw"`
	ReasonsOverall []string     `json:"reasons_overall"`
	ReasonsFlaws   []FlawMarker `json:"reasons_flaws"`
	DurationMS     *int64       `json:"duration_ms,omitempty"`
}

func (r SaveResponseRequest) ToModel(participantID string) model.Response {
	flaws := make([]model.ResponseFlaw, 0, len(r.ReasonsFlaws))
	for _, f := range r.ReasonsFlaws {
		flaws = append(flaws, model.ResponseFlaw{
			ID:        f.ID,
			PX:        f.PX,
			PY:        f.PY,
			R:         f.R,
			Reasons:   f.Reasons,
			OtherText: f.OtherText,
		})
	}
	overall := r.ReasonsOverall
	if overall == nil {
		overall = []string{}
	}
	return model.Response{
		ParticipantID:  participantID,
		ImageID:        r.ImageID,
		IsPractice:     r.IsPractice,
		NoFlaw:         r.NoFlaw,
		ReasonsOverall: overall,
		ReasonsFlaws:   flaws,
		DurationMS:     r.DurationMS,
	}
}

type SkipRequest struct {
	ImageID    int64 `json:"image_id" binding:"required"`
	IsPractice bool  `json:"is_practice"`
}

type BatchSummary struct {
	BatchNo   int `json:"batch_no"`
	ItemCount int `json:"item_count"`
}

func ToBatchSummaries(batches []model.BatchAssignment) []BatchSummary {
	out := make([]BatchSummary, 0, len(batches))
	for _, b := range batches {
		out = append(out, BatchSummary{BatchNo: b.BatchNo, ItemCount: len(b.ItemIDs)})
	}
	return out
}
