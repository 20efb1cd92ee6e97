// Package session sequences the participant-facing annotation flow: which
// item is current, the viewport transform, draft markers, and the save/skip
// transitions against the persistence layer. A Controller owns the answer
// map for one participant session; it is single-writer by contract and not
// goroutine-safe.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"spotcheck.app/survey/internal/annotation"
	"spotcheck.app/survey/internal/geometry"
	"spotcheck.app/survey/internal/model"
	"spotcheck.app/survey/internal/reconcile"
)

var (
	// ErrNoItem is returned when an operation needs a current item and the
	// assignment is empty.
	ErrNoItem = errors.New("no current item")

	// ErrNotEligible is returned when a save is attempted without a no-flaw
	// judgment, overall reasons, or markers. Enforced here as well as in
	// the UI affordance, since a disabled control can be bypassed.
	ErrNotEligible = errors.New("answer not save-eligible")
)

// ResponseWriter persists one response record. Writes are upserts keyed by
// (participant, item, mode), so retrying a failed save is always safe.
type ResponseWriter interface {
	Write(ctx context.Context, rec model.Response) error
}

// Controller drives a main-batch annotation session.
type Controller struct {
	participantID string
	practice      bool
	assigned      []int64
	answers       map[int64]*annotation.Answer
	cursor        int
	writer        ResponseWriter

	transform geometry.Transform
	pan       geometry.PanTracker
	draft     *annotation.Draft
	selected  string
	startedAt time.Time

	now func() time.Time
}

// NewController builds a session from the assigned item ids and previously
// persisted records. The starting cursor is the first unfinished item.
func NewController(participantID string, practice bool, assigned []int64, records []model.Response, writer ResponseWriter) *Controller {
	answers := reconcile.BuildAnswers(assigned, records)
	c := &Controller{
		participantID: participantID,
		practice:      practice,
		assigned:      append([]int64(nil), assigned...),
		answers:       answers,
		cursor:        reconcile.StartCursor(assigned, answers),
		writer:        writer,
		transform:     geometry.Identity(),
		now:           time.Now,
	}
	c.startedAt = c.now()
	return c
}

// Items returns the assigned item ids in order.
func (c *Controller) Items() []int64 {
	return c.assigned
}

// Cursor returns the current item index.
func (c *Controller) Cursor() int {
	return c.cursor
}

// CurrentItem returns the current item id, or false on an empty assignment.
func (c *Controller) CurrentItem() (int64, bool) {
	if len(c.assigned) == 0 {
		return 0, false
	}
	return c.assigned[c.cursor], true
}

// Answer returns the working answer for an item id.
func (c *Controller) Answer(itemID int64) (*annotation.Answer, bool) {
	a, ok := c.answers[itemID]
	return a, ok
}

// CurrentAnswer returns the working answer for the current item.
func (c *Controller) CurrentAnswer() (*annotation.Answer, bool) {
	itemID, ok := c.CurrentItem()
	if !ok {
		return nil, false
	}
	return c.Answer(itemID)
}

// Goto jumps to an item by index and resets the item-local view state.
func (c *Controller) Goto(index int) {
	if index < 0 || index >= len(c.assigned) || index == c.cursor {
		return
	}
	c.cursor = index
	c.resetItemState()
}

// Prev moves to the previous item, if any.
func (c *Controller) Prev() {
	c.Goto(c.cursor - 1)
}

// Next moves to the next item, if any. Free navigation; no save required.
func (c *Controller) Next() {
	c.Goto(c.cursor + 1)
}

// Transform and viewport reset on item change; answers do not.
func (c *Controller) resetItemState() {
	c.transform = geometry.Identity()
	c.pan.Cancel()
	c.draft = nil
	c.selected = ""
	c.startedAt = c.now()
}

// --- Viewport -------------------------------------------------------------

// Transform returns the current pan/zoom state. Callers must recompute the
// rendered image rect from it before painting overlays.
func (c *Controller) Transform() geometry.Transform {
	return c.transform
}

// Wheel applies a pointer-anchored zoom step.
func (c *Controller) Wheel(delta, pointerX, pointerY float64, container geometry.Rect) {
	c.transform = geometry.ZoomAtPoint(c.transform, delta, pointerX, pointerY, container)
}

// ZoomBy applies a center-anchored zoom step (toolbar buttons).
func (c *Controller) ZoomBy(delta float64, container geometry.Rect) {
	c.transform = geometry.Zoom(c.transform, delta, container)
}

// ResetView restores the identity transform.
func (c *Controller) ResetView() {
	c.transform = geometry.Identity()
}

// PointerDown begins a pan/click gesture on the image.
func (c *Controller) PointerDown(clientX, clientY float64) {
	c.pan.Down(clientX, clientY, c.transform)
}

// PointerMove advances an active gesture, panning the viewport.
func (c *Controller) PointerMove(clientX, clientY float64) {
	if t, ok := c.pan.Move(clientX, clientY); ok {
		c.transform = t
	}
}

// PointerUp ends the gesture. If it was a click (movement within the drag
// threshold), a draft marker is placed at the pointer's normalized position
// on the rendered image rect, and any ring selection is cleared to avoid
// confusion.
func (c *Controller) PointerUp(clientX, clientY float64, image geometry.Rect) {
	if !c.pan.Up() {
		return
	}
	if _, ok := c.CurrentItem(); !ok {
		return
	}
	px, py := geometry.ScreenToNormalized(clientX, clientY, image)
	c.draft = annotation.NewDraft(px, py)
	c.selected = ""
}

// PointerLeave cancels an in-flight gesture.
func (c *Controller) PointerLeave() {
	c.pan.Cancel()
}

// --- Markers --------------------------------------------------------------

// Draft returns the pending draft marker, if any.
func (c *Controller) Draft() *annotation.Draft {
	return c.draft
}

// CancelDraft discards the pending draft.
func (c *Controller) CancelDraft() {
	c.draft = nil
}

// ConfirmDraft commits the pending draft with the chosen reasons. No-op
// when there is no current item or no draft.
func (c *Controller) ConfirmDraft(reasons annotation.ReasonSet) bool {
	a, ok := c.CurrentAnswer()
	if !ok || c.draft == nil {
		return false
	}
	if !a.CommitDraft(c.draft, reasons) {
		return false
	}
	c.draft = nil
	return true
}

// BeginEdit re-opens an existing marker as the draft, so confirming replaces
// it in place.
func (c *Controller) BeginEdit(markerID string) bool {
	a, ok := c.CurrentAnswer()
	if !ok {
		return false
	}
	m, ok := a.Marker(markerID)
	if !ok {
		return false
	}
	c.draft = annotation.EditDraft(m)
	return true
}

// DeleteMarker removes a marker from the current answer; a deleted marker
// also loses its selection highlight.
func (c *Controller) DeleteMarker(markerID string) {
	a, ok := c.CurrentAnswer()
	if !ok {
		return
	}
	if a.DeleteMarker(markerID) && c.selected == markerID {
		c.selected = ""
	}
}

// Select toggles the highlight ring onto one marker. Selection is view-only
// transient state, never persisted.
func (c *Controller) Select(markerID string) {
	c.selected = markerID
}

// Selected returns the highlighted marker id, if any.
func (c *Controller) Selected() string {
	return c.selected
}

// --- Answer edits ---------------------------------------------------------

// SetOverall replaces the whole-image reasons on the current answer.
func (c *Controller) SetOverall(reasons annotation.ReasonSet) {
	if a, ok := c.CurrentAnswer(); ok {
		a.SetOverall(reasons)
	}
}

// ClearOverall drops the whole-image reasons on the current answer.
func (c *Controller) ClearOverall() {
	if a, ok := c.CurrentAnswer(); ok {
		a.ClearOverall()
	}
}

// ToggleNoFlaw flips the no-flaw judgment. Setting it cancels any draft and
// selection and clears reasons/markers in the answer itself.
func (c *Controller) ToggleNoFlaw(noFlaw bool) {
	a, ok := c.CurrentAnswer()
	if !ok {
		return
	}
	if noFlaw {
		c.draft = nil
		c.selected = ""
	}
	a.SetNoFlaw(noFlaw)
}

// CanSave reports whether the current answer is save-eligible.
func (c *Controller) CanSave() bool {
	a, ok := c.CurrentAnswer()
	return ok && a.SaveEligible()
}

// --- Save / skip ----------------------------------------------------------

// Save persists the current answer and advances to the next unfinished item,
// passing over previously skipped ones. On write failure local state is
// unchanged and Save may simply be retried.
func (c *Controller) Save(ctx context.Context) error {
	return c.save(ctx, true)
}

func (c *Controller) save(ctx context.Context, advance bool) error {
	itemID, ok := c.CurrentItem()
	if !ok {
		return ErrNoItem
	}
	a := c.answers[itemID]
	if !a.SaveEligible() {
		return ErrNotEligible
	}

	duration := c.now().Sub(c.startedAt).Milliseconds()
	rec := reconcile.Flatten(c.participantID, itemID, c.practice, a, &duration)

	// The item id and its index are captured before the write: a response
	// that lands after the user has navigated elsewhere must complete the
	// item it was issued for, never whatever is current by then.
	issuedAt := c.indexOf(itemID)

	if err := c.writer.Write(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to save response", "error", err, "image_id", itemID)
		return fmt.Errorf("saving response: %w", err)
	}

	a.Saved = true
	a.Skipped = false

	if advance && c.cursor == issuedAt {
		// Untouched items first; once only skips remain, revisit those.
		next, ok := reconcile.FindNext(issuedAt, c.assigned, c.answers, false)
		if !ok {
			next, ok = reconcile.FindNext(issuedAt, c.assigned, c.answers, true)
		}
		if ok {
			c.Goto(next)
		}
	}
	return nil
}

// Skip persists a minimal skip record and advances. Skipped items remain in
// rotation (includeSkipped=true) so they come back around sooner.
func (c *Controller) Skip(ctx context.Context) error {
	itemID, ok := c.CurrentItem()
	if !ok {
		return ErrNoItem
	}

	issuedAt := c.indexOf(itemID)
	rec := reconcile.SkipRecord(c.participantID, itemID, c.practice)

	if err := c.writer.Write(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to skip item", "error", err, "image_id", itemID)
		return fmt.Errorf("skipping item: %w", err)
	}

	a := c.answers[itemID]
	a.Saved = false
	a.Skipped = true

	if c.cursor == issuedAt {
		if next, ok := reconcile.FindNext(issuedAt, c.assigned, c.answers, true); ok {
			c.Goto(next)
		}
	}
	return nil
}

// Progress returns completed, skipped, and total counts.
func (c *Controller) Progress() (completed, skipped, total int) {
	completed, skipped = reconcile.Progress(c.assigned, c.answers)
	return completed, skipped, len(c.assigned)
}

// AllDone reports whether every assigned item is saved and not skipped.
func (c *Controller) AllDone() bool {
	return reconcile.AllDone(c.assigned, c.answers)
}

func (c *Controller) indexOf(itemID int64) int {
	for i, id := range c.assigned {
		if id == itemID {
			return i
		}
	}
	return -1
}
