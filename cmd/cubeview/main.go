// Cubeview renders a single textured cube with the same orbit camera
// as the editor. Handy for checking texture loading and camera feel
// without the full control panel.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/mirefield/terrella/internal/engine/camera"
	"github.com/mirefield/terrella/internal/engine/input"
	"github.com/mirefield/terrella/internal/engine/mesh"
	"github.com/mirefield/terrella/internal/engine/scene"
	"github.com/mirefield/terrella/internal/engine/ui"
	"github.com/mirefield/terrella/internal/logger"
	"github.com/mirefield/terrella/internal/planet"
)

const resetKey = imgui.KeyR

var (
	flagTexture = flag.String("texture", "", "path to a texture image (png, jpeg or bmp); checkerboard if empty")
	flagDebug   = flag.Bool("debug", false, "enable debug logging")
)

func init() {
	runtime.LockOSThread()
}

type app struct {
	backend *ui.Backend
	viewer  *scene.Viewer
	cam     *camera.Controller
	faces   []mesh.Face
	texture uint32
	loaded  bool
}

func main() {
	flag.Parse()

	level := "info"
	if *flagDebug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	backend, err := ui.NewBackend("Cubeview", 1024, 768, true)
	if err != nil {
		logger.Error("failed to create backend", zap.Error(err))
		os.Exit(1)
	}

	a := &app{
		backend: backend,
		cam:     camera.NewController(camera.DefaultSettings()),
		faces:   cubeFaces(),
	}
	backend.Run(a.frame)

	if a.viewer != nil {
		a.viewer.Destroy()
	}
}

// cubeFaces builds the six flat faces of a unit-half-extent cube at
// the minimum resolution, each a single quad.
func cubeFaces() []mesh.Face {
	faces := make([]mesh.Face, 0, planet.FaceCount)
	for _, normal := range planet.FaceNormals {
		faces = append(faces, mesh.BuildFace(mesh.MinResolution, normal, false))
	}
	return faces
}

func (a *app) frame() {
	fbw, fbh := ui.FramebufferSize()
	if fbw < 1 || fbh < 1 {
		return
	}

	if a.viewer == nil {
		v, err := scene.NewViewer(fbw, fbh)
		if err != nil {
			logger.Fatal("failed to create viewer", zap.Error(err))
		}
		a.viewer = v
	}
	if err := a.viewer.Resize(fbw, fbh); err != nil {
		logger.Error("viewer resize failed", zap.Error(err))
		return
	}

	if !a.loaded {
		a.loadTexture()
		a.viewer.UploadFaces(a.faces)
		a.loaded = true
	}

	frame := input.Gather(resetKey)
	if frame.ResetPressed {
		a.cam.Reset()
	}
	a.cam.Update(frame)

	tex := a.viewer.Render(a.cam.Transform().ViewMatrix(), scene.Material{
		Color:   [4]float32{1, 1, 1, 1},
		Texture: a.texture,
	})
	ui.SceneBackground(tex)

	a.renderHelp()
}

func (a *app) loadTexture() {
	if *flagTexture == "" {
		a.texture = scene.CheckerTexture(256, 32)
		return
	}
	tex, err := scene.LoadTexture(*flagTexture)
	if err != nil {
		logger.Warn("failed to load texture, using checkerboard",
			zap.String("path", *flagTexture), zap.Error(err))
		a.texture = scene.CheckerTexture(256, 32)
		return
	}
	a.texture = tex
}

func (a *app) renderHelp() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowBgAlpha(0.6)
	if imgui.BeginV("Cubeview", nil, imgui.WindowFlagsAlwaysAutoResize|imgui.WindowFlagsNoCollapse) {
		imgui.Text("Right drag: orbit")
		imgui.Text("Middle drag: pan")
		imgui.Text("Scroll: zoom")
		imgui.Text("R: reset camera")
		st := a.cam.State()
		imgui.TextDisabled(fmt.Sprintf("radius %.2f yaw %.2f pitch %.2f", st.Radius, st.Yaw, st.Pitch))
	}
	imgui.End()
}
