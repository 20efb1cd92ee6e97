package geometry

import "math"

// PanTracker is the pointer gesture state machine for the image viewer.
// A pointer-down begins a potential pan; once total movement exceeds
// DragThresholdPx the gesture is a drag and the offset follows the pointer.
// A pointer-up without crossing the threshold is a click, which the caller
// turns into a draft marker.
//
// Idle → Down(origin) → Move* → Up. Leave/cancel returns to Idle.
type PanTracker struct {
	active      bool
	dragging    bool
	startX      float64
	startY      float64
	offsetStart Transform
}

// Active reports whether a gesture is in progress (cursor feedback).
func (p *PanTracker) Active() bool {
	return p.active
}

// Down begins a gesture at the given pointer position with the current
// transform as the pan origin.
func (p *PanTracker) Down(clientX, clientY float64, current Transform) {
	p.active = true
	p.dragging = false
	p.startX = clientX
	p.startY = clientY
	p.offsetStart = current
}

// Move advances the gesture. The offset follows the pointer from the
// gesture origin on every move; crossing the drag threshold only decides
// whether the eventual pointer-up counts as a click. Returns the transform
// to render and whether the gesture is live.
func (p *PanTracker) Move(clientX, clientY float64) (Transform, bool) {
	if !p.active {
		return Transform{}, false
	}

	dx := clientX - p.startX
	dy := clientY - p.startY
	if math.Hypot(dx, dy) > DragThresholdPx {
		p.dragging = true
	}

	t := p.offsetStart
	t.OffsetX += dx
	t.OffsetY += dy
	return t, true
}

// Up ends the gesture. click is true when the pointer never crossed the drag
// threshold; the caller should then create a draft marker at the pointer's
// normalized position.
func (p *PanTracker) Up() (click bool) {
	if !p.active {
		return false
	}
	click = !p.dragging
	p.active = false
	p.dragging = false
	return click
}

// Cancel aborts the gesture, e.g. when the pointer leaves the container.
func (p *PanTracker) Cancel() {
	p.active = false
	p.dragging = false
}
