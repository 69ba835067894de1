package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mirefield/terrella/internal/engine/input"
)

const tolerance = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a)-float64(b)) <= tolerance
}

func vecNear(a, b mgl32.Vec3) bool {
	return near(a.X(), b.X()) && near(a.Y(), b.Y()) && near(a.Z(), b.Z())
}

// orbitFrame builds a frame dragging with the orbit button by the given
// screen-space motion.
func orbitFrame(s Settings, dx, dy float32) input.Frame {
	var f input.Frame
	f.Held[s.OrbitButton] = true
	f.AddMotion(dx, dy)
	return f
}

func TestDefaultStateHome(t *testing.T) {
	s := DefaultState()
	if s.Center != (mgl32.Vec3{}) || s.Radius != 6 || s.Yaw != 0 || s.Pitch != 0 || s.UpsideDown {
		t.Fatalf("got home state %+v", s)
	}
}

func TestDeriveTransformHome(t *testing.T) {
	tr := DeriveTransform(DefaultState())
	if !vecNear(tr.Position, mgl32.Vec3{0, 0, 6}) {
		t.Errorf("got home position %v, want {0 0 6}", tr.Position)
	}
	// At home the camera looks down -Z with +Y up.
	fwd := tr.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
	if !vecNear(fwd, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("got home forward %v, want {0 0 -1}", fwd)
	}
}

func TestDeriveTransformLooksAtCenter(t *testing.T) {
	s := State{Center: mgl32.Vec3{1, 2, 3}, Radius: 4, Yaw: 0.7, Pitch: -0.4}
	tr := DeriveTransform(s)

	if got := tr.Position.Sub(s.Center).Len(); !near(got, s.Radius) {
		t.Errorf("got distance to center %v, want %v", got, s.Radius)
	}
	fwd := tr.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
	toCenter := s.Center.Sub(tr.Position).Normalize()
	if !vecNear(fwd, toCenter) {
		t.Errorf("forward %v does not point at center (want %v)", fwd, toCenter)
	}
}

func TestViewMatrixInvertsTransform(t *testing.T) {
	tr := DeriveTransform(State{Center: mgl32.Vec3{2, -1, 5}, Radius: 3, Yaw: 1.1, Pitch: 0.3})
	view := tr.ViewMatrix()

	// The camera position must map to the view-space origin.
	eye := view.Mul4x1(tr.Position.Vec4(1)).Vec3()
	if eye.Len() > 1e-4 {
		t.Errorf("camera position maps to %v in view space, want origin", eye)
	}
}

func TestUpdateIgnoredWhileUIOwnsPointer(t *testing.T) {
	c := NewController(DefaultSettings())
	f := orbitFrame(c.Settings(), 50, 20)
	f.UIWantsPointer = true

	if c.Update(f) {
		t.Fatal("Update reported a change while UI owns the pointer")
	}
	if c.State() != DefaultState() {
		t.Fatalf("state changed while UI owns the pointer: %+v", c.State())
	}
}

func TestUpdateIgnoredWhileUIOwnsKeyboard(t *testing.T) {
	c := NewController(DefaultSettings())
	f := orbitFrame(c.Settings(), 50, 20)
	f.UIWantsKeyboard = true

	if c.Update(f) {
		t.Fatal("Update reported a change while UI owns the keyboard")
	}
	if c.State() != DefaultState() {
		t.Fatalf("state changed while UI owns the keyboard: %+v", c.State())
	}
}

func TestUpdateNoInputNoChange(t *testing.T) {
	c := NewController(DefaultSettings())
	before := c.Transform()
	if c.Update(input.Frame{}) {
		t.Fatal("Update reported a change for an empty frame")
	}
	if c.Transform() != before {
		t.Fatal("transform changed for an empty frame")
	}
}

func TestOrbitAccumulates(t *testing.T) {
	settings := DefaultSettings()
	c := NewController(settings)
	c.Update(orbitFrame(settings, 100, -40))

	// Motion is negated by the drag convention; the frame already
	// flipped the vertical sign at collection time.
	wantYaw := -100 * settings.OrbitSensitivity
	wantPitch := -40 * settings.OrbitSensitivity
	if got := c.State().Yaw; !near(got, wantYaw) {
		t.Errorf("got yaw %v, want %v", got, wantYaw)
	}
	if got := c.State().Pitch; !near(got, wantPitch) {
		t.Errorf("got pitch %v, want %v", got, wantPitch)
	}
}

func TestYawWrapsOnce(t *testing.T) {
	settings := DefaultSettings()
	c := NewController(settings)
	c.state.Yaw = 3.0
	c.transform = DeriveTransform(c.state)

	// Push yaw past +pi by 0.5 and expect a single wrap into (-pi, pi].
	f := orbitFrame(settings, -0.5/settings.OrbitSensitivity, 0)
	c.Update(f)

	want := float32(3.5 - 2*math.Pi)
	if got := c.State().Yaw; !near(got, want) {
		t.Errorf("got yaw %v, want %v", got, want)
	}
}

func TestUpsideDownLatchedOnPress(t *testing.T) {
	settings := DefaultSettings()
	c := NewController(settings)
	c.state.Pitch = float32(math.Pi/2) + 0.2
	c.transform = DeriveTransform(c.state)

	f := orbitFrame(settings, 10, 0)
	f.Pressed[settings.OrbitButton] = true
	c.Update(f)

	if !c.State().UpsideDown {
		t.Fatal("press past the pole did not latch upside-down")
	}
	// Horizontal orbit reverses so dragging keeps following the cursor.
	want := 10 * settings.OrbitSensitivity
	if got := c.State().Yaw; !near(got, want) {
		t.Errorf("got yaw %v, want %v (reversed)", got, want)
	}
}

func TestUpsideDownHeldAcrossDrag(t *testing.T) {
	settings := DefaultSettings()
	c := NewController(settings)
	c.state.Pitch = float32(math.Pi/2) + 0.2
	c.state.UpsideDown = true
	c.transform = DeriveTransform(c.state)

	// Drag back below the pole without releasing: the latch must hold
	// until the next press edge.
	f := orbitFrame(settings, 0, -0.5/settings.OrbitSensitivity)
	c.Update(f)

	if !c.State().UpsideDown {
		t.Fatal("latch released mid-drag")
	}

	// A fresh press below the pole re-evaluates the latch.
	f2 := orbitFrame(settings, 1, 0)
	f2.Pressed[settings.OrbitButton] = true
	c.Update(f2)
	if c.State().UpsideDown {
		t.Fatal("latch not cleared on press below the pole")
	}
}

func TestZoomExponential(t *testing.T) {
	settings := DefaultSettings()
	c := NewController(settings)

	var f input.Frame
	// One wheel line: zoom.Y = lineSens * zoomSens after the double
	// negation (frame collection flips the sign, gestureDelta negates).
	f.AddScrollLines(0, -1)
	c.Update(f)

	zoomY := -settings.ScrollLineSensitivity * settings.ZoomSensitivity
	want := 6 * float32(math.Exp(float64(-zoomY)))
	if got := c.State().Radius; !near(got, want) {
		t.Errorf("got radius %v, want %v", got, want)
	}
}

func TestZoomClampsRadius(t *testing.T) {
	settings := DefaultSettings()
	c := NewController(settings)

	var in input.Frame
	in.AddScrollLines(0, 10000)
	c.Update(in)
	if got := c.State().Radius; got != settings.MinRadius {
		t.Errorf("got radius %v after extreme zoom in, want %v", got, settings.MinRadius)
	}

	var out input.Frame
	out.AddScrollLines(0, -10000)
	c.Update(out)
	if got := c.State().Radius; got != settings.MaxRadius {
		t.Errorf("got radius %v after extreme zoom out, want %v", got, settings.MaxRadius)
	}
}

func TestZoomPixelBucket(t *testing.T) {
	settings := DefaultSettings()
	c := NewController(settings)

	var f input.Frame
	f.AddScrollPixels(0, -16)
	c.Update(f)

	zoomY := -16 * settings.ScrollPixelSensitivity * settings.ZoomSensitivity
	want := 6 * float32(math.Exp(float64(-zoomY)))
	if got := c.State().Radius; !near(got, want) {
		t.Errorf("got radius %v, want %v", got, want)
	}
}

func TestPanScalesWithRadius(t *testing.T) {
	settings := DefaultSettings()

	for _, radius := range []float32{1, 6, 100} {
		c := NewController(settings)
		c.state.Radius = radius
		c.transform = DeriveTransform(c.state)

		var f input.Frame
		f.Held[settings.PanButton] = true
		f.AddMotion(10, 0)
		c.Update(f)

		// At home orientation right is world +X; motion is negated.
		want := mgl32.Vec3{-10 * settings.PanSensitivity * radius, 0, 0}
		if got := c.State().Center; !vecNear(got, want) {
			t.Errorf("radius %v: got center %v, want %v", radius, got, want)
		}
	}
}

func TestPanUsesPreUpdateOrientation(t *testing.T) {
	settings := DefaultSettings()
	c := NewController(settings)
	c.state.Yaw = float32(math.Pi / 2)
	c.transform = DeriveTransform(c.state)

	var f input.Frame
	f.Held[settings.PanButton] = true
	f.AddMotion(10, 0)
	c.Update(f)

	// Yawed 90 degrees, camera right is world -Z.
	want := mgl32.Vec3{0, 0, 10 * settings.PanSensitivity * 6}
	if got := c.State().Center; !vecNear(got, want) {
		t.Errorf("got center %v, want %v", got, want)
	}
}

func TestResetRestoresHome(t *testing.T) {
	settings := DefaultSettings()
	c := NewController(settings)
	home := c.Transform()

	var f input.Frame
	f.Held[settings.OrbitButton] = true
	f.Held[settings.PanButton] = true
	f.AddMotion(123, -77)
	f.AddScrollLines(0, 3)
	c.Update(f)

	if c.State() == DefaultState() {
		t.Fatal("input frame did not move the camera")
	}
	c.Reset()
	if c.State() != DefaultState() {
		t.Fatalf("got state %+v after reset, want home", c.State())
	}
	if c.Transform() != home {
		t.Fatalf("got transform %+v after reset, want home transform", c.Transform())
	}
}
