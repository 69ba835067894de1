// Package input collects per-tick camera input into frames.
package input

import "github.com/go-gl/mathgl/mgl32"

// Button identifies a mouse button binding. ButtonNone means unbound.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight

	buttonCount
)

// Frame is one tick's worth of accumulated camera input. Vertical motion
// and scroll components are sign-inverted at collection time so positive Y
// means "up" in world convention.
//
// Scroll is kept in two buckets: whole-line wheel steps and pixel-precise
// trackpad deltas, each with its own sensitivity downstream.
type Frame struct {
	Motion       mgl32.Vec2
	ScrollLines  mgl32.Vec2
	ScrollPixels mgl32.Vec2

	// Held is the button state for the tick; Pressed marks the
	// unpressed-to-pressed edge. Indexed by Button.
	Held    [buttonCount]bool
	Pressed [buttonCount]bool

	// UI focus gating: while the UI owns the pointer all camera input is
	// dropped, while it owns the keyboard the reset key is dropped.
	UIWantsPointer  bool
	UIWantsKeyboard bool

	// ResetPressed reports the reset keybinding, already gated on
	// UIWantsKeyboard by the collector.
	ResetPressed bool
}

// AddMotion accumulates a pointer motion delta, flipping the vertical sign
// from screen to world convention.
func (f *Frame) AddMotion(dx, dy float32) {
	f.Motion[0] += dx
	f.Motion[1] -= dy
}

// AddScrollLines accumulates a line-unit scroll event.
func (f *Frame) AddScrollLines(dx, dy float32) {
	f.ScrollLines[0] += dx
	f.ScrollLines[1] -= dy
}

// AddScrollPixels accumulates a pixel-unit scroll event.
func (f *Frame) AddScrollPixels(dx, dy float32) {
	f.ScrollPixels[0] += dx
	f.ScrollPixels[1] -= dy
}
