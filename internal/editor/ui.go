package editor

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/mirefield/terrella/internal/engine/ui"
	"github.com/mirefield/terrella/internal/planet"
)

// renderControls draws the parameter window. Widget edits land in a copy
// of the current parameters; SetParameters decides whether geometry needs
// rebuilding.
func (e *Editor) renderControls() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(280, 0), imgui.CondFirstUseEver)

	if imgui.Begin("Controls") {
		params := e.model.Parameters()
		changed := false

		imgui.Text("Planet Settings")

		res := int32(params.Resolution)
		if imgui.SliderIntV("Resolution", &res, 2, planet.MaxResolution, "%d", imgui.SliderFlagsNone) {
			params.Resolution = int(res)
			changed = true
		}
		if imgui.Checkbox("Spherify", &params.Spherify) {
			changed = true
		}
		if imgui.Checkbox("Wireframe", &params.Wireframe) {
			changed = true
		}

		imgui.Text("Base Color:")
		if imgui.ColorEdit4("##BaseColor", &params.Color) {
			changed = true
		}

		if changed {
			e.model.SetParameters(params)
		}

		imgui.Separator()

		imgui.Text("Press 'R' to reset camera.")
		if imgui.Button("Reset Camera Now") {
			e.cam.Reset()
		}

		state := e.cam.State()
		imgui.TextDisabled(fmt.Sprintf("radius %.2f  yaw %.2f  pitch %.2f", state.Radius, state.Yaw, state.Pitch))

		imgui.Separator()

		if imgui.Button("Export OBJ...") {
			e.openExportDialog()
		}
		imgui.SameLine()
		if imgui.Button("Screenshot (F12)") {
			e.screenshotRequested = true
		}
	}
	imgui.End()
}

// renderStatus shows the last export/screenshot result for a few seconds.
func (e *Editor) renderStatus() {
	if e.statusMsg == "" || time.Since(e.statusTime) > 4*time.Second {
		return
	}

	w, h := ui.DisplaySize()
	msgWidth := float32(360)
	imgui.SetNextWindowPos(imgui.NewVec2((w-msgWidth)/2, h-60))
	imgui.SetNextWindowSize(imgui.NewVec2(msgWidth, 0))
	imgui.SetNextWindowBgAlpha(0.8)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("##Status", nil, flags) {
		imgui.TextColored(imgui.NewVec4(0.2, 1.0, 0.2, 1.0), e.statusMsg)
	}
	imgui.End()
}
