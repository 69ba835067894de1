// Package editor wires the planet model, the pan-orbit camera and the
// parameter UI into the per-frame application loop.
package editor

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/mirefield/terrella/internal/config"
	"github.com/mirefield/terrella/internal/engine/camera"
	"github.com/mirefield/terrella/internal/engine/input"
	"github.com/mirefield/terrella/internal/engine/scene"
	"github.com/mirefield/terrella/internal/engine/ui"
	"github.com/mirefield/terrella/internal/export"
	"github.com/mirefield/terrella/internal/logger"
	"github.com/mirefield/terrella/internal/planet"
)

// resetKey is the camera reset keybinding.
const resetKey = imgui.KeyR

// Editor is the planet editor application.
type Editor struct {
	cfg     *config.Config
	backend *ui.Backend

	viewer *scene.Viewer
	model  *planet.Model
	cam    *camera.Controller

	// newViewer constructs the offscreen viewer on first use;
	// viewerFailed latches a construction error so it is logged once
	// instead of every tick.
	newViewer    func(width, height int32) (*scene.Viewer, error)
	viewerFailed bool

	// uploadedGen tracks which planet generation is on the GPU.
	uploadedGen uint64

	capture             *Capture
	screenshotRequested bool

	// pendingExport is set from the dialog goroutine and applied on the
	// main thread; SDL/Cocoa window operations must stay there.
	pendingExport atomic.Pointer[string]

	statusMsg  string
	statusTime time.Time
}

// New creates the editor window and initial state.
func New(cfg *config.Config) (*Editor, error) {
	backend, err := ui.NewBackend("Terrella", cfg.Graphics.Width, cfg.Graphics.Height, cfg.Graphics.VSync)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	e := &Editor{
		cfg:     cfg,
		backend: backend,
		model: planet.New(planet.Parameters{
			Resolution: cfg.Planet.Resolution,
			Spherify:   cfg.Planet.Spherify,
			Wireframe:  cfg.Planet.Wireframe,
			Color:      cfg.Planet.Color,
		}),
		cam:       camera.NewController(cameraSettings(cfg.Camera)),
		capture:   NewCapture(cfg.Capture.Dir, "terrella"),
		newViewer: scene.NewViewer,
	}

	logger.Info("editor initialized",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("resolution", e.model.Parameters().Resolution),
	)

	return e, nil
}

// Run enters the main loop until the window closes.
func (e *Editor) Run() {
	e.backend.Run(e.frame)
}

// Close releases GPU resources.
func (e *Editor) Close() {
	if e.viewer != nil {
		e.viewer.Destroy()
	}
}

// cameraSettings converts the config section into controller settings,
// keeping the stock button bindings.
func cameraSettings(c config.CameraConfig) camera.Settings {
	s := camera.DefaultSettings()
	s.PanSensitivity = c.PanSensitivity
	s.OrbitSensitivity = mgl32.DegToRad(c.OrbitSensitivityDeg)
	s.ZoomSensitivity = c.ZoomSensitivity
	s.ScrollLineSensitivity = c.ScrollLineSensitivity
	s.ScrollPixelSensitivity = c.ScrollPixelSensitivity
	s.MinRadius = c.MinRadius
	s.MaxRadius = c.MaxRadius
	return s
}

// frame runs one tick: pending commands, camera input, geometry upload,
// scene render, UI.
func (e *Editor) frame() {
	// Capture at frame start so the file holds the previous, fully
	// presented frame.
	if e.screenshotRequested {
		e.screenshotRequested = false
		e.takeScreenshot()
	}

	if path, ok := e.takePendingExport(); ok {
		e.exportOBJ(path)
	}

	fbw, fbh := ui.FramebufferSize()
	if !e.ensureViewer(fbw, fbh) {
		return
	}

	frame := input.Gather(resetKey)
	if frame.ResetPressed {
		e.cam.Reset()
	}
	e.cam.Update(frame)

	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF12)) {
		e.screenshotRequested = true
	}

	if err := e.viewer.Resize(fbw, fbh); err != nil {
		logger.Error("resizing scene viewer", zap.Error(err))
	}

	if gen := e.model.Generation(); gen != e.uploadedGen {
		e.viewer.UploadFaces(e.model.Faces()[:])
		e.uploadedGen = gen
	}

	params := e.model.Parameters()
	tex := e.viewer.Render(e.cam.Transform().ViewMatrix(), scene.Material{
		Color:     params.Color,
		Wireframe: params.Wireframe,
	})

	ui.SceneBackground(tex)
	e.renderControls()
	e.renderStatus()
}

// ensureViewer lazily constructs the offscreen viewer once the
// framebuffer size is known. A construction failure is logged once and
// latched; later ticks skip rendering instead of retrying.
func (e *Editor) ensureViewer(width, height int32) bool {
	if e.viewer != nil {
		return true
	}
	if e.viewerFailed {
		return false
	}
	viewer, err := e.newViewer(width, height)
	if err != nil {
		logger.Error("creating scene viewer", zap.Error(err))
		e.viewerFailed = true
		return false
	}
	e.viewer = viewer
	return true
}

// exportOBJ writes the current faces to path and surfaces the result in
// the status line.
func (e *Editor) exportOBJ(path string) {
	if err := export.SaveOBJ(path, "planet", e.model.Faces()[:]); err != nil {
		logger.Error("exporting OBJ", zap.Error(err))
		e.setStatus(fmt.Sprintf("Export failed: %v", err))
		return
	}
	logger.Info("exported OBJ", zap.String("path", path))
	e.setStatus(fmt.Sprintf("Exported %s", path))
}

// openExportDialog asks for a target path on a worker goroutine so the UI
// keeps running; the chosen path is handled next frame on the main thread.
func (e *Editor) openExportDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Title("Export Planet Mesh").
			Save()
		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "Export dialog error: %v\n", err)
			}
			return
		}
		e.queueExport(path)
	}()
}

// queueExport hands an export path from the dialog goroutine to the main
// thread.
func (e *Editor) queueExport(path string) {
	e.pendingExport.Store(&path)
}

// takePendingExport claims the queued export path, if any. At most one
// caller observes each queued path.
func (e *Editor) takePendingExport() (string, bool) {
	if path := e.pendingExport.Swap(nil); path != nil {
		return *path, true
	}
	return "", false
}

func (e *Editor) takeScreenshot() {
	if e.viewer == nil {
		return
	}
	w, h := e.viewer.Size()
	path, err := e.capture.SavePixels(e.viewer.ReadPixels(), int(w), int(h))
	if err != nil {
		logger.Error("capturing screenshot", zap.Error(err))
		e.setStatus(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
	e.setStatus(fmt.Sprintf("Saved %s", path))
}

func (e *Editor) setStatus(msg string) {
	e.statusMsg = msg
	e.statusTime = time.Now()
}
