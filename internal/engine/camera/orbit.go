// Package camera implements the pan-orbit camera: orbit state, per-tick
// input handling and transform derivation.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mirefield/terrella/internal/engine/input"
)

// Action is what a camera input gesture does.
type Action int

const (
	ActionNone Action = iota
	ActionPan
	ActionOrbit
	ActionZoom
)

// State holds the orbit parameters the camera transform derives from.
// Yaw stays wrapped in (-pi, pi]; pitch is unclamped so the camera can
// flip over the poles, with UpsideDown tracking which side it is on.
type State struct {
	Center     mgl32.Vec3
	Radius     float32
	Yaw        float32
	Pitch      float32
	UpsideDown bool
}

// DefaultState is the canonical home position restored by Reset.
func DefaultState() State {
	return State{
		Center: mgl32.Vec3{},
		Radius: 6,
	}
}

// Settings is the per-camera constant configuration: sensitivities, which
// mouse button drives each action, what the scroll wheel does, and the
// radius clamp bounds. Immutable after the controller is created.
type Settings struct {
	PanSensitivity   float32
	OrbitSensitivity float32 // radians per pixel of motion
	ZoomSensitivity  float32

	PanButton   input.Button
	OrbitButton input.Button
	ZoomButton  input.Button

	ScrollAction           Action
	ScrollLineSensitivity  float32
	ScrollPixelSensitivity float32

	// Multiplicative zoom is unbounded without these.
	MinRadius float32
	MaxRadius float32
}

// DefaultSettings mirrors the stock editor bindings: middle-drag pans,
// right-drag orbits, wheel zooms.
func DefaultSettings() Settings {
	return Settings{
		PanSensitivity:         0.001,
		OrbitSensitivity:       mgl32.DegToRad(0.1),
		ZoomSensitivity:        0.01,
		PanButton:              input.ButtonMiddle,
		OrbitButton:            input.ButtonRight,
		ZoomButton:             input.ButtonNone,
		ScrollAction:           ActionZoom,
		ScrollLineSensitivity:  16,
		ScrollPixelSensitivity: 1,
		MinRadius:              0.1,
		MaxRadius:              1000,
	}
}

// Transform is the derived world transform consumed by the renderer.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// DeriveTransform converts orbit state into a world transform: yaw around
// world up, then pitch around the post-yaw right axis, zero roll; the
// camera sits behind the center along its local +Z at Radius distance.
func DeriveTransform(s State) Transform {
	rot := mgl32.QuatRotate(s.Yaw, mgl32.Vec3{0, 1, 0}).
		Mul(mgl32.QuatRotate(s.Pitch, mgl32.Vec3{1, 0, 0}))
	return Transform{
		Position: s.Center.Add(rot.Rotate(mgl32.Vec3{0, 0, s.Radius})),
		Rotation: rot,
	}
}

// ViewMatrix returns the inverse of the transform for use as a view matrix.
func (t Transform) ViewMatrix() mgl32.Mat4 {
	return t.Rotation.Inverse().Mat4().
		Mul4(mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z()))
}

// Controller drives the orbit state from per-tick input frames.
type Controller struct {
	settings  Settings
	state     State
	transform Transform
}

// NewController creates a controller at the default home position.
func NewController(settings Settings) *Controller {
	c := &Controller{
		settings: settings,
		state:    DefaultState(),
	}
	c.transform = DeriveTransform(c.state)
	return c
}

// State returns the current orbit state.
func (c *Controller) State() State { return c.state }

// Settings returns the immutable controller settings.
func (c *Controller) Settings() Settings { return c.settings }

// Transform returns the most recently published transform.
func (c *Controller) Transform() Transform { return c.transform }

// Reset restores the home position and immediately republishes the
// transform. Callers gate the keybinding path on UI keyboard focus; the
// UI button path calls this directly.
func (c *Controller) Reset() {
	c.state = DefaultState()
	c.transform = DeriveTransform(c.state)
}

// Update applies one tick of accumulated input and returns whether the
// published transform changed. All camera input is suppressed while the UI
// claims the pointer or the keyboard.
func (c *Controller) Update(frame input.Frame) bool {
	if frame.UIWantsPointer || frame.UIWantsKeyboard {
		return false
	}

	pan := c.gestureDelta(frame, c.settings.PanButton, ActionPan, c.settings.PanSensitivity)
	orbit := c.gestureDelta(frame, c.settings.OrbitButton, ActionOrbit, c.settings.OrbitSensitivity)
	zoom := c.gestureDelta(frame, c.settings.ZoomButton, ActionZoom, c.settings.ZoomSensitivity)

	changed := false

	if zoom != (mgl32.Vec2{}) {
		changed = true
		// Exponential zoom: perceived speed proportional to distance.
		c.state.Radius *= float32(gomath.Exp(float64(-zoom.Y())))
		if c.state.Radius < c.settings.MinRadius {
			c.state.Radius = c.settings.MinRadius
		}
		if c.state.Radius > c.settings.MaxRadius {
			c.state.Radius = c.settings.MaxRadius
		}
	}

	if orbit != (mgl32.Vec2{}) {
		changed = true
		// Latch the upside-down side on the press edge, before this
		// tick's delta moves the pitch.
		if c.settings.OrbitButton != input.ButtonNone && frame.Pressed[c.settings.OrbitButton] {
			c.state.UpsideDown = c.state.Pitch < -gomath.Pi/2 || c.state.Pitch > gomath.Pi/2
		}
		if c.state.UpsideDown {
			orbit[0] = -orbit[0]
		}
		c.state.Yaw += orbit.X()
		c.state.Pitch += orbit.Y()
		// Per-tick deltas are bounded, so a single wrap step suffices.
		if c.state.Yaw > gomath.Pi {
			c.state.Yaw -= 2 * gomath.Pi
		}
		if c.state.Yaw < -gomath.Pi {
			c.state.Yaw += 2 * gomath.Pi
		}
	}

	if pan != (mgl32.Vec2{}) {
		changed = true
		// Pan in the pre-update camera plane, scaled by radius so the
		// feel stays constant across zoom levels.
		right := c.transform.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
		up := c.transform.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
		c.state.Center = c.state.Center.
			Add(right.Mul(pan.X() * c.state.Radius)).
			Add(up.Mul(pan.Y() * c.state.Radius))
	}

	if changed {
		c.transform = DeriveTransform(c.state)
	}
	return changed
}

// gestureDelta accumulates pointer motion while the action's button is
// held plus both scroll buckets when the wheel is bound to the action,
// scaled by the action sensitivity. All contributions are negated to match
// the drag direction convention.
func (c *Controller) gestureDelta(frame input.Frame, button input.Button, action Action, sensitivity float32) mgl32.Vec2 {
	var total mgl32.Vec2
	if button != input.ButtonNone && frame.Held[button] {
		total = total.Sub(frame.Motion.Mul(sensitivity))
	}
	if c.settings.ScrollAction == action {
		total = total.Sub(frame.ScrollLines.Mul(c.settings.ScrollLineSensitivity * sensitivity))
		total = total.Sub(frame.ScrollPixels.Mul(c.settings.ScrollPixelSensitivity * sensitivity))
	}
	return total
}
