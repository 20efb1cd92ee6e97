// Package geometry maps pointer and viewport coordinates to normalized
// image space under a user-controlled pan/zoom transform, and back again for
// rendering overlay markers. Everything here is pure: callers measure rects,
// this package only does the math.
package geometry

import "math"

const (
	MinScale = 0.5
	MaxScale = 5.0

	// DragThresholdPx separates "click to mark" from "drag to pan". A
	// pointer that travels more than this many pixels between down and up
	// is a pan, not a click.
	DragThresholdPx = 3.0
)

// Rect is an axis-aligned rectangle in client pixels.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (r Rect) valid() bool {
	return r.Width > 0 && r.Height > 0
}

// CenterX returns the horizontal center of the rect in client pixels.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center of the rect in client pixels.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Transform is the pan/zoom state of the viewer: uniform scale about the
// container center plus a translation in container pixels.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Identity is the reset viewport: scale 1, no offset.
func Identity() Transform {
	return Transform{Scale: 1}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ScreenToNormalized converts a pointer position to normalized image
// coordinates. image must be the rendered bounding box of the image with the
// current transform applied — a fresh measurement, never a cached one —
// otherwise markers drift. Results are clamped to [0,1].
func ScreenToNormalized(clientX, clientY float64, image Rect) (px, py float64) {
	if !image.valid() {
		return 0, 0
	}
	px = clamp((clientX-image.Left)/image.Width, 0, 1)
	py = clamp((clientY-image.Top)/image.Height, 0, 1)
	return px, py
}

// ZoomAtPoint applies a scale delta anchored at the pointer so the point
// under the cursor stays visually fixed. The transform origin is the
// container center. A delta clamped away entirely leaves the offset
// untouched.
func ZoomAtPoint(t Transform, delta, pointerX, pointerY float64, container Rect) Transform {
	oldScale := t.Scale
	newScale := clamp(oldScale+delta, MinScale, MaxScale)
	if newScale == oldScale {
		return t
	}

	dx := pointerX - container.CenterX()
	dy := pointerY - container.CenterY()
	factor := 1/newScale - 1/oldScale

	return Transform{
		Scale:   newScale,
		OffsetX: t.OffsetX + dx*factor,
		OffsetY: t.OffsetY + dy*factor,
	}
}

// Zoom applies a scale delta anchored at the container center.
func Zoom(t Transform, delta float64, container Rect) Transform {
	return ZoomAtPoint(t, delta, container.CenterX(), container.CenterY(), container)
}

// ApplyTransform computes the rendered image rect from the untransformed
// fitted rect. The offset translates in container pixels before scaling
// about the container center, matching a CSS
// "translate(offset) scale(scale)" on an element centered in its container.
// Call this after every transform-affecting mutation; never reuse a rect
// measured under a previous transform.
func ApplyTransform(natural Rect, t Transform, container Rect) Rect {
	cx := container.CenterX()
	cy := container.CenterY()

	// Element center after translation, then scaled about the container
	// center.
	ex := natural.Left + natural.Width/2 + t.OffsetX
	ey := natural.Top + natural.Height/2 + t.OffsetY
	sx := cx + (ex-cx)*t.Scale
	sy := cy + (ey-cy)*t.Scale

	w := natural.Width * t.Scale
	h := natural.Height * t.Scale
	return Rect{Left: sx - w/2, Top: sy - h/2, Width: w, Height: h}
}

// MarkerOverlayRect positions a circular overlay for a marker at (px,py)
// with the given normalized radius. The returned rect is relative to the
// container origin; diameter is 2·radius·min(imageW, imageH). ok is false
// when either rect has not been measured yet (the hidden sentinel).
func MarkerOverlayRect(px, py, radius float64, image, container Rect) (Rect, bool) {
	if !image.valid() || !container.valid() {
		return Rect{}, false
	}

	cx := image.Left - container.Left + px*image.Width
	cy := image.Top - container.Top + py*image.Height
	rPx := radius * math.Min(image.Width, image.Height)

	return Rect{
		Left:   cx - rPx,
		Top:    cy - rPx,
		Width:  rPx * 2,
		Height: rPx * 2,
	}, true
}
