// Package annotation owns the in-memory answer state for a single item:
// localized markers, whole-image reasons, and the no-flaw judgment. It is
// the working draft between what the participant edits and what the
// reconciliation engine persists.
package annotation

import (
	"spotcheck.app/survey/common/id"
	"spotcheck.app/survey/internal/taxonomy"
)

// DefaultRadius is the normalized radius of a freshly placed marker,
// relative to the shorter image dimension.
const DefaultRadius = 0.04

// ReasonSet is a set of composite reason codes plus the optional free-text
// note captured when a has-text-input item is selected.
type ReasonSet struct {
	Selected  []string
	OtherText string
}

func (r ReasonSet) Empty() bool {
	return len(r.Selected) == 0
}

// ByGroup derives the grouped lookup from the selected codes. Derived on
// demand rather than stored, so the flat code list stays the single source
// of truth.
func (r ReasonSet) ByGroup() map[string][]string {
	return taxonomy.CodesToGrouped(r.Selected)
}

func (r ReasonSet) clone() ReasonSet {
	out := ReasonSet{OtherText: r.OtherText}
	out.Selected = append(out.Selected, r.Selected...)
	return out
}

// Marker is one confirmed localized annotation. Position and radius are
// normalized to [0,1] image space; pan/zoom never touches stored values.
type Marker struct {
	ID      string
	PX      float64
	PY      float64
	Radius  float64
	Reasons ReasonSet
}

// Draft is an unconfirmed candidate marker created by a click, pending
// reason selection. FromID is set when re-opening an existing marker for
// editing.
type Draft struct {
	PX     float64
	PY     float64
	Radius float64
	FromID string
}

// NewDraft creates a draft at a normalized position with the default radius.
func NewDraft(px, py float64) *Draft {
	return &Draft{PX: clamp01(px), PY: clamp01(py), Radius: DefaultRadius}
}

// EditDraft creates a draft that re-opens an existing marker.
func EditDraft(m Marker) *Draft {
	return &Draft{PX: m.PX, PY: m.PY, Radius: m.Radius, FromID: m.ID}
}

// Answer is the full per-item answer state for one participant and mode.
type Answer struct {
	Saved   bool
	Skipped bool
	NoFlaw  bool
	Overall ReasonSet
	Markers []Marker
}

// CommitDraft promotes a draft into the marker list with the given reasons.
// A nil draft or empty reason set is a guarded no-op (legitimate idle
// states, not errors). Edits replace position and reasons in place,
// preserving id and ordering; new drafts append with a fresh opaque id.
func (a *Answer) CommitDraft(d *Draft, reasons ReasonSet) bool {
	if d == nil || reasons.Empty() {
		return false
	}

	if d.FromID != "" {
		for i := range a.Markers {
			if a.Markers[i].ID == d.FromID {
				a.Markers[i].PX = clamp01(d.PX)
				a.Markers[i].PY = clamp01(d.PY)
				a.Markers[i].Radius = clamp01(d.Radius)
				a.Markers[i].Reasons = reasons.clone()
				return true
			}
		}
		return false
	}

	a.Markers = append(a.Markers, Marker{
		ID:      id.Opaque(),
		PX:      clamp01(d.PX),
		PY:      clamp01(d.PY),
		Radius:  clamp01(d.Radius),
		Reasons: reasons.clone(),
	})
	return true
}

// DeleteMarker removes a marker by id. Returns whether anything was removed.
func (a *Answer) DeleteMarker(markerID string) bool {
	for i := range a.Markers {
		if a.Markers[i].ID == markerID {
			a.Markers = append(a.Markers[:i], a.Markers[i+1:]...)
			return true
		}
	}
	return false
}

// Marker returns the marker with the given id, if present.
func (a *Answer) Marker(markerID string) (Marker, bool) {
	for _, m := range a.Markers {
		if m.ID == markerID {
			return m, true
		}
	}
	return Marker{}, false
}

// SetNoFlaw flips the no-flaw judgment. Setting it clears overall reasons
// and markers in the same step, so a later save persists an unambiguous
// no-flaw record rather than a stale mixed state.
func (a *Answer) SetNoFlaw(noFlaw bool) {
	a.NoFlaw = noFlaw
	if noFlaw {
		a.Overall = ReasonSet{}
		a.Markers = nil
	}
}

// SetOverall replaces the whole-image reasons.
func (a *Answer) SetOverall(reasons ReasonSet) {
	a.Overall = reasons.clone()
}

// ClearOverall drops all whole-image reasons.
func (a *Answer) ClearOverall() {
	a.Overall = ReasonSet{}
}

// SaveEligible reports whether this answer may be saved: a no-flaw judgment,
// at least one overall reason, or at least one marker.
func (a *Answer) SaveEligible() bool {
	return a.NoFlaw || !a.Overall.Empty() || len(a.Markers) > 0
}

// Empty reports whether the answer carries no content at all. Skip records
// reconcile to empty answers.
func (a *Answer) Empty() bool {
	return !a.NoFlaw && a.Overall.Empty() && len(a.Markers) == 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
