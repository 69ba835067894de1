package input

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// imguiButtons maps our button bindings onto imgui's mouse button indices.
var imguiButtons = [...]struct {
	button Button
	imgui  imgui.MouseButton
}{
	{ButtonLeft, imgui.MouseButtonLeft},
	{ButtonMiddle, imgui.MouseButtonMiddle},
	{ButtonRight, imgui.MouseButtonRight},
}

// Gather builds the tick's input frame from the imgui IO state. The imgui
// backend pumps the SDL events for us, so mouse deltas, wheel steps and
// capture flags all come from its IO snapshot. resetKey is the reset
// keybinding, suppressed while a UI widget owns the keyboard.
func Gather(resetKey imgui.Key) Frame {
	io := imgui.CurrentIO()

	var frame Frame
	frame.UIWantsPointer = io.WantCaptureMouse()
	frame.UIWantsKeyboard = io.WantCaptureKeyboard()

	delta := io.MouseDelta()
	frame.AddMotion(delta.X, delta.Y)

	// imgui reports wheel input in line steps; the SDL backend has no
	// separate pixel-precise channel, so the pixel bucket stays empty on
	// this path. Wheel up is positive in imgui, matching the screen
	// convention AddScrollLines inverts.
	frame.AddScrollLines(io.MouseWheelH(), io.MouseWheel())

	for _, m := range imguiButtons {
		frame.Held[m.button] = imgui.IsMouseDown(m.imgui)
		frame.Pressed[m.button] = imgui.IsMouseClickedBool(m.imgui)
	}

	if !frame.UIWantsKeyboard && imgui.IsKeyChordPressed(imgui.KeyChord(resetKey)) {
		frame.ResetPressed = true
	}

	return frame
}
