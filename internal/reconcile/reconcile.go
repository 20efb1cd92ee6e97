// Package reconcile merges persisted response records with the in-memory
// answer state: it rebuilds answers on load, flattens them back into records
// on save, and owns the cursor and completion arithmetic that sequences a
// batch. Rebuild and flatten are exact inverses modulo derived fields, so a
// reload after save always lands on identical state.
package reconcile

import (
	"spotcheck.app/survey/internal/annotation"
	"spotcheck.app/survey/internal/model"
)

// BuildAnswers reconstructs the in-memory answer map from persisted records.
// Records for items outside the assigned list are ignored; assigned items
// without a record get an empty, unsaved answer. Skip records stay empty —
// re-opening a skipped item starts fresh, since no draft was ever saved.
func BuildAnswers(assigned []int64, records []model.Response) map[int64]*annotation.Answer {
	answers := make(map[int64]*annotation.Answer, len(assigned))
	for _, itemID := range assigned {
		answers[itemID] = &annotation.Answer{}
	}

	for _, rec := range records {
		a, ok := answers[rec.ImageID]
		if !ok {
			continue
		}
		*a = *BuildAnswer(rec)
	}

	return answers
}

// BuildAnswer reconstructs a single answer from one persisted record.
func BuildAnswer(rec model.Response) *annotation.Answer {
	a := &annotation.Answer{
		Saved:   !rec.IsSkip,
		Skipped: rec.IsSkip,
	}
	if rec.IsSkip {
		return a
	}

	a.NoFlaw = rec.NoFlaw
	a.Overall = annotation.ReasonSet{Selected: append([]string(nil), rec.ReasonsOverall...)}

	for _, f := range rec.ReasonsFlaws {
		a.Markers = append(a.Markers, annotation.Marker{
			ID:     f.ID,
			PX:     f.PX,
			PY:     f.PY,
			Radius: f.R,
			Reasons: annotation.ReasonSet{
				Selected:  append([]string(nil), f.Reasons...),
				OtherText: f.OtherText,
			},
		})
	}

	return a
}

// Flatten builds the outbound record for a save: the inverse of
// BuildAnswer. duration is wall time spent on the item, nil when unknown;
// it is attached for analysis but never restored.
func Flatten(participantID string, itemID int64, practice bool, a *annotation.Answer, duration *int64) model.Response {
	rec := model.Response{
		ParticipantID:  participantID,
		ImageID:        itemID,
		IsPractice:     practice,
		IsSkip:         false,
		NoFlaw:         a.NoFlaw,
		ReasonsOverall: append([]string{}, a.Overall.Selected...),
		ReasonsFlaws:   make([]model.ResponseFlaw, 0, len(a.Markers)),
		DurationMS:     duration,
	}

	for _, m := range a.Markers {
		rec.ReasonsFlaws = append(rec.ReasonsFlaws, model.ResponseFlaw{
			ID:        m.ID,
			PX:        m.PX,
			PY:        m.PY,
			R:         m.Radius,
			Reasons:   append([]string{}, m.Reasons.Selected...),
			OtherText: m.Reasons.OtherText,
		})
	}

	return rec
}

// SkipRecord builds the minimal record persisted for a skip: only the skip
// flag, no answer payload.
func SkipRecord(participantID string, itemID int64, practice bool) model.Response {
	return model.Response{
		ParticipantID:  participantID,
		ImageID:        itemID,
		IsPractice:     practice,
		IsSkip:         true,
		ReasonsOverall: []string{},
		ReasonsFlaws:   []model.ResponseFlaw{},
	}
}

// StartCursor returns the index of the first assigned item that is not yet
// saved. A fully completed batch opens at the first item (self-review).
func StartCursor(assigned []int64, answers map[int64]*annotation.Answer) int {
	for i, itemID := range assigned {
		if a := answers[itemID]; a == nil || !a.Saved {
			return i
		}
	}
	return 0
}

// FindNext scans forward circularly from current+1 for the next item that
// is not saved. With includeSkipped false, previously skipped items are also
// passed over so genuinely untouched items come first; with true, skips are
// revisited sooner. ok is false when every item is saved — batch complete,
// not an error.
func FindNext(current int, assigned []int64, answers map[int64]*annotation.Answer, includeSkipped bool) (next int, ok bool) {
	eligible := func(itemID int64) bool {
		a := answers[itemID]
		if a == nil {
			return true
		}
		if a.Saved {
			return false
		}
		return includeSkipped || !a.Skipped
	}

	for i := current + 1; i < len(assigned); i++ {
		if eligible(assigned[i]) {
			return i, true
		}
	}
	for i := 0; i <= current && i < len(assigned); i++ {
		if eligible(assigned[i]) {
			return i, true
		}
	}
	return 0, false
}

// Progress counts completed (saved and not skipped) and skipped answers over
// the assigned items.
func Progress(assigned []int64, answers map[int64]*annotation.Answer) (completed, skipped int) {
	for _, itemID := range assigned {
		a := answers[itemID]
		if a == nil {
			continue
		}
		switch {
		case a.Saved && !a.Skipped:
			completed++
		case a.Skipped:
			skipped++
		}
	}
	return completed, skipped
}

// AllDone reports batch completion. Skipped-but-unsaved items never count:
// skip is "defer", not "complete".
func AllDone(assigned []int64, answers map[int64]*annotation.Answer) bool {
	if len(assigned) == 0 {
		return false
	}
	completed, _ := Progress(assigned, answers)
	return completed == len(assigned)
}
