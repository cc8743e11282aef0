package xform

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Trackball is a virtual sphere rotation controller. Pointer positions are
// projected onto a unit sphere centered on the viewport and dragging rotates the
// model about the axis perpendicular to the previous and current sphere points.
// The zero value has identity orientation and a 1x1 viewport, see [Trackball.Resize].
type Trackball struct {
	width, height float32
	// Sensitivity multiplies the dragged angle. Zero is treated as 1.
	Sensitivity float32
	rot         mgl32.Quat
	last        mgl32.Vec3
	dragging    bool
}

// NewTrackball returns a trackball for a viewport of the given size in pixels.
func NewTrackball(width, height int) *Trackball {
	tb := &Trackball{Sensitivity: 1, rot: mgl32.QuatIdent()}
	tb.Resize(width, height)
	return tb
}

// Resize updates the viewport size used to project pointer positions.
func (tb *Trackball) Resize(width, height int) {
	tb.width = float32(max(width, 1))
	tb.height = float32(max(height, 1))
}

// Press starts a drag at the pointer position (x,y) in pixels, origin at the top left.
func (tb *Trackball) Press(x, y float64) {
	tb.last = tb.project(x, y)
	tb.dragging = true
}

// Release ends the current drag.
func (tb *Trackball) Release() { tb.dragging = false }

// Dragging reports whether a drag is in progress.
func (tb *Trackball) Dragging() bool { return tb.dragging }

// Drag rotates the trackball as the pointer moves to (x,y). Ignored when not dragging.
func (tb *Trackball) Drag(x, y float64) {
	if !tb.dragging {
		return
	}
	cur := tb.project(x, y)
	axis := tb.last.Cross(cur)
	if axis.Len() < epstol {
		return
	}
	cosAngle := max(-1, min(1, tb.last.Dot(cur)))
	angle := math32.Acos(cosAngle)
	if tb.Sensitivity != 0 {
		angle *= tb.Sensitivity
	}
	tb.rot = mgl32.QuatRotate(angle, axis.Normalize()).Mul(tb.orientation()).Normalize()
	tb.last = cur
}

// Reset returns the trackball to the identity orientation.
func (tb *Trackball) Reset() {
	tb.rot = mgl32.QuatIdent()
	tb.dragging = false
}

// Rotation returns the accumulated rotation matrix.
func (tb *Trackball) Rotation() mgl32.Mat4 {
	return tb.orientation().Mat4()
}

func (tb *Trackball) orientation() mgl32.Quat {
	if tb.rot == (mgl32.Quat{}) {
		return mgl32.QuatIdent()
	}
	return tb.rot
}

// project maps a pixel position onto the unit sphere. Positions outside the
// sphere's silhouette are mapped onto its rim.
func (tb *Trackball) project(x, y float64) mgl32.Vec3 {
	w, h := max(tb.width, 1), max(tb.height, 1)
	nx := (2*float32(x) - w) / w
	ny := (h - 2*float32(y)) / h
	d2 := nx*nx + ny*ny
	if d2 <= 1 {
		return mgl32.Vec3{nx, ny, math32.Sqrt(1 - d2)}
	}
	d := math32.Sqrt(d2)
	return mgl32.Vec3{nx / d, ny / d, 0}
}
