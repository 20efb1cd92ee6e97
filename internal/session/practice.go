package session

import (
	"context"
	"fmt"
	"log/slog"

	"spotcheck.app/survey/internal/annotation"
	"spotcheck.app/survey/internal/geometry"
	"spotcheck.app/survey/internal/model"
	"spotcheck.app/survey/internal/reconcile"
)

// ViewMode is the practice display state for the current item.
type ViewMode string

const (
	// ModeAnswer is the editable annotation view.
	ModeAnswer ViewMode = "answer"
	// ModeReference shows the curated reference annotation, read-only.
	ModeReference ViewMode = "reference"
	// ModeSelfReview shows the participant's own saved answer, read-only.
	ModeSelfReview ViewMode = "selfReview"
)

// PracticeFinisher records that a participant has completed practice.
type PracticeFinisher interface {
	MarkPracticePassed(ctx context.Context, participantID string) error
}

// PracticeController runs the guided warm-up round. It reuses the session
// flow but forces a reference comparison after every save: the participant
// annotates, sees the curated answer, optionally flips back to their own,
// and only then moves on. Navigation is strictly forward.
type PracticeController struct {
	inner     *Controller
	mode      ViewMode
	reference map[int64]*annotation.Answer
	complete  bool
}

// NewPracticeController builds a practice session. referenceRecords are the
// curated answers for the practice items; items without one simply show an
// unavailable reference rather than failing.
func NewPracticeController(participantID string, assigned []int64, records, referenceRecords []model.Response, writer ResponseWriter) *PracticeController {
	return &PracticeController{
		inner:     NewController(participantID, true, assigned, records, writer),
		mode:      ModeAnswer,
		reference: reconcile.BuildAnswers(assigned, referenceRecords),
	}
}

// Mode returns the current view mode.
func (p *PracticeController) Mode() ViewMode {
	return p.mode
}

// Complete reports whether the last practice item has been reviewed.
func (p *PracticeController) Complete() bool {
	return p.complete
}

// Items returns the practice item ids in order.
func (p *PracticeController) Items() []int64 {
	return p.inner.Items()
}

// Cursor returns the current item index.
func (p *PracticeController) Cursor() int {
	return p.inner.Cursor()
}

// CurrentItem returns the current item id, or false on an empty assignment.
func (p *PracticeController) CurrentItem() (int64, bool) {
	return p.inner.CurrentItem()
}

// CurrentAnswer returns the participant's working answer for the current
// item.
func (p *PracticeController) CurrentAnswer() (*annotation.Answer, bool) {
	return p.inner.CurrentAnswer()
}

// Reference returns the curated answer for the current item. ok is false
// when no reference has been configured for it.
func (p *PracticeController) Reference() (*annotation.Answer, bool) {
	itemID, ok := p.CurrentItem()
	if !ok {
		return nil, false
	}
	ref, ok := p.reference[itemID]
	if !ok || ref.Empty() {
		return nil, false
	}
	return ref, true
}

// --- Editing: delegated, but only while answering -------------------------

func (p *PracticeController) editable() bool {
	return p.mode == ModeAnswer && !p.complete
}

// PointerDown begins a gesture; panning works in every mode, marker
// placement only while answering.
func (p *PracticeController) PointerDown(clientX, clientY float64) {
	p.inner.PointerDown(clientX, clientY)
}

// PointerMove advances an active gesture.
func (p *PracticeController) PointerMove(clientX, clientY float64) {
	p.inner.PointerMove(clientX, clientY)
}

// PointerUp ends a gesture. Clicks place a draft only in answer mode; in
// the read-only modes the click is discarded.
func (p *PracticeController) PointerUp(clientX, clientY float64, image geometry.Rect) {
	if !p.editable() {
		p.inner.pan.Up()
		return
	}
	p.inner.PointerUp(clientX, clientY, image)
}

// PointerLeave cancels an in-flight gesture.
func (p *PracticeController) PointerLeave() {
	p.inner.PointerLeave()
}

// Wheel applies a pointer-anchored zoom step.
func (p *PracticeController) Wheel(delta, pointerX, pointerY float64, container geometry.Rect) {
	p.inner.Wheel(delta, pointerX, pointerY, container)
}

// ZoomBy applies a center-anchored zoom step.
func (p *PracticeController) ZoomBy(delta float64, container geometry.Rect) {
	p.inner.ZoomBy(delta, container)
}

// ResetView restores the identity transform.
func (p *PracticeController) ResetView() {
	p.inner.ResetView()
}

// Transform returns the current pan/zoom state.
func (p *PracticeController) Transform() geometry.Transform {
	return p.inner.Transform()
}

// Draft returns the pending draft marker, if any.
func (p *PracticeController) Draft() *annotation.Draft {
	if !p.editable() {
		return nil
	}
	return p.inner.Draft()
}

// ConfirmDraft commits the pending draft while answering.
func (p *PracticeController) ConfirmDraft(reasons annotation.ReasonSet) bool {
	if !p.editable() {
		return false
	}
	return p.inner.ConfirmDraft(reasons)
}

// CancelDraft discards the pending draft.
func (p *PracticeController) CancelDraft() {
	p.inner.CancelDraft()
}

// BeginEdit re-opens an existing marker while answering.
func (p *PracticeController) BeginEdit(markerID string) bool {
	if !p.editable() {
		return false
	}
	return p.inner.BeginEdit(markerID)
}

// DeleteMarker removes a marker while answering.
func (p *PracticeController) DeleteMarker(markerID string) {
	if !p.editable() {
		return
	}
	p.inner.DeleteMarker(markerID)
}

// Select toggles the highlight ring onto one marker.
func (p *PracticeController) Select(markerID string) {
	p.inner.Select(markerID)
}

// Selected returns the highlighted marker id, if any.
func (p *PracticeController) Selected() string {
	return p.inner.Selected()
}

// SetOverall replaces the whole-image reasons while answering.
func (p *PracticeController) SetOverall(reasons annotation.ReasonSet) {
	if !p.editable() {
		return
	}
	p.inner.SetOverall(reasons)
}

// ClearOverall drops the whole-image reasons while answering.
func (p *PracticeController) ClearOverall() {
	if !p.editable() {
		return
	}
	p.inner.ClearOverall()
}

// ToggleNoFlaw flips the no-flaw judgment while answering.
func (p *PracticeController) ToggleNoFlaw(noFlaw bool) {
	if !p.editable() {
		return
	}
	p.inner.ToggleNoFlaw(noFlaw)
}

// CanSave reports whether the current answer is save-eligible and the
// session is in answer mode.
func (p *PracticeController) CanSave() bool {
	return p.editable() && p.inner.CanSave()
}

// --- Flow -----------------------------------------------------------------

// Save persists the current answer and switches to the reference view
// without advancing; the participant must look at the curated answer before
// moving on.
func (p *PracticeController) Save(ctx context.Context) error {
	if !p.editable() {
		return ErrNotEligible
	}
	if err := p.inner.save(ctx, false); err != nil {
		return err
	}
	p.mode = ModeReference
	p.inner.ResetView()
	return nil
}

// ViewMine switches from the reference to the participant's own saved
// answer.
func (p *PracticeController) ViewMine() {
	if p.mode != ModeReference {
		return
	}
	p.mode = ModeSelfReview
	p.inner.ResetView()
}

// ViewReference switches back from self-review to the reference.
func (p *PracticeController) ViewReference() {
	if p.mode != ModeSelfReview {
		return
	}
	p.mode = ModeReference
	p.inner.ResetView()
}

// NextAfterReview ends the review of the current item. On the last item the
// practice round is complete; otherwise the next item opens in answer mode.
func (p *PracticeController) NextAfterReview() {
	if p.mode == ModeAnswer || p.complete {
		return
	}
	if p.inner.cursor >= len(p.inner.assigned)-1 {
		p.complete = true
		return
	}
	p.inner.Goto(p.inner.cursor + 1)
	p.mode = ModeAnswer
}

// Finish records the practice-passed flag once the round is complete.
func (p *PracticeController) Finish(ctx context.Context, finisher PracticeFinisher) error {
	if !p.complete {
		return fmt.Errorf("practice round not complete")
	}
	if err := finisher.MarkPracticePassed(ctx, p.inner.participantID); err != nil {
		slog.ErrorContext(ctx, "failed to record practice completion", "error", err)
		return fmt.Errorf("recording practice completion: %w", err)
	}
	return nil
}
