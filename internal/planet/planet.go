// Package planet owns the six-face cube-sphere model and its
// generation parameters.
package planet

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/mirefield/terrella/internal/engine/mesh"
	"github.com/mirefield/terrella/internal/logger"
)

// FaceCount is the number of cube faces.
const FaceCount = 6

// MaxResolution caps the grid resolution exposed to the UI slider.
const MaxResolution = 256

// FaceNormals are the fixed outward normals identifying each face.
var FaceNormals = [FaceCount]mgl32.Vec3{
	{0, 1, 0},
	{0, -1, 0},
	{-1, 0, 0},
	{1, 0, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// Parameters are the generation settings for the planet. Resolution and
// Spherify affect geometry; Color and Wireframe only affect presentation.
type Parameters struct {
	Resolution int
	Spherify   bool
	Wireframe  bool
	Color      [4]float32 // RGBA, 0..1
}

// DefaultParameters returns the startup settings.
func DefaultParameters() Parameters {
	return Parameters{
		Resolution: 10,
		Spherify:   true,
		Wireframe:  false,
		Color:      [4]float32{0.5, 0.5, 0.6, 1.0},
	}
}

// ClampResolution clamps a resolution into the valid slider range.
func ClampResolution(r int) int {
	if r < mesh.MinResolution {
		return mesh.MinResolution
	}
	if r > MaxResolution {
		return MaxResolution
	}
	return r
}

// Model holds the six face meshes and the parameters they were built from.
// Geometry is rebuilt wholesale when a geometry-affecting parameter changes;
// the generation counter is bumped so consumers re-upload exactly once.
type Model struct {
	params     Parameters
	faces      [FaceCount]mesh.Face
	generation uint64
}

// New builds a planet model with the given parameters. Resolution is
// clamped at this boundary so the mesh builder never sees a degenerate
// value.
func New(params Parameters) *Model {
	params.Resolution = ClampResolution(params.Resolution)
	m := &Model{params: params}
	m.rebuild()
	return m
}

// Parameters returns the current generation parameters.
func (m *Model) Parameters() Parameters { return m.params }

// Faces returns the current face meshes, one per FaceNormals entry.
func (m *Model) Faces() *[FaceCount]mesh.Face { return &m.faces }

// Generation returns a counter that increases once per geometry rebuild.
func (m *Model) Generation() uint64 { return m.generation }

// SetParameters stores new parameters and regenerates the six faces if, and
// only if, resolution or spherify changed. Color and wireframe updates are
// presentation-only and never trigger a rebuild.
func (m *Model) SetParameters(params Parameters) {
	params.Resolution = ClampResolution(params.Resolution)

	prev := m.params
	m.params = params

	if params.Resolution != prev.Resolution || params.Spherify != prev.Spherify {
		m.rebuild()
	}
}

// rebuild regenerates all six faces. Faces share no mutable state, so each
// one is built on its own worker.
func (m *Model) rebuild() {
	var wg sync.WaitGroup
	for i, normal := range FaceNormals {
		wg.Add(1)
		go func(i int, normal mgl32.Vec3) {
			defer wg.Done()
			m.faces[i] = mesh.BuildFace(m.params.Resolution, normal, m.params.Spherify)
		}(i, normal)
	}
	wg.Wait()

	m.generation++
	logger.Debug("planet rebuilt",
		zap.Int("resolution", m.params.Resolution),
		zap.Bool("spherify", m.params.Spherify),
		zap.Uint64("generation", m.generation),
	)
}
