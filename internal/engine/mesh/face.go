// Package mesh generates cube-face grid geometry for the planet.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MinResolution is the smallest grid resolution that produces geometry.
// Below this the percent divisor (resolution-1) would be zero.
const MinResolution = 2

// Face is the generated geometry for a single cube face: a
// resolution x resolution vertex grid triangulated into quads.
// Positions and Normals are parallel arrays; TexCoords holds the
// grid percent of each vertex for texturing and export.
type Face struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Indices   []uint32
}

// VertexCount returns the number of vertices in the face.
func (f Face) VertexCount() int { return len(f.Positions) }

// TriangleCount returns the number of triangles in the face.
func (f Face) TriangleCount() int { return len(f.Indices) / 3 }

// BuildFace generates one face of the cube, optionally projected onto the
// unit sphere. normal must be one of the six axis-aligned unit normals.
//
// The face plane is spanned by axisA = (n.y, n.z, n.x) and axisB = n x axisA.
// With spherify set, every grid point is normalized onto the unit sphere and
// the position doubles as the vertex normal; otherwise positions lie on the
// cube surface and all vertices share the face normal.
//
// A resolution below MinResolution yields an empty Face. Pure function:
// no shared state, safe to call concurrently for distinct faces.
func BuildFace(resolution int, normal mgl32.Vec3, spherify bool) Face {
	if resolution < MinResolution {
		return Face{}
	}

	axisA := mgl32.Vec3{normal.Y(), normal.Z(), normal.X()}
	axisB := normal.Cross(axisA)

	vertexCount := resolution * resolution
	indexCount := (resolution - 1) * (resolution - 1) * 6

	face := Face{
		Positions: make([]mgl32.Vec3, 0, vertexCount),
		Normals:   make([]mgl32.Vec3, 0, vertexCount),
		TexCoords: make([]mgl32.Vec2, 0, vertexCount),
		Indices:   make([]uint32, 0, indexCount),
	}

	inv := 1.0 / float32(resolution-1)
	for y := 0; y < resolution; y++ {
		for x := 0; x < resolution; x++ {
			i := uint32(x + y*resolution)
			px := float32(x) * inv
			py := float32(y) * inv

			pointOnCube := normal.
				Add(axisA.Mul((px - 0.5) * 2)).
				Add(axisB.Mul((py - 0.5) * 2))

			if spherify {
				p := pointOnCube.Normalize()
				face.Positions = append(face.Positions, p)
				face.Normals = append(face.Normals, p)
			} else {
				face.Positions = append(face.Positions, pointOnCube)
				face.Normals = append(face.Normals, normal)
			}
			face.TexCoords = append(face.TexCoords, mgl32.Vec2{px, py})

			// Two triangles per grid cell, wound so all six faces
			// present outward-facing front faces.
			if x != resolution-1 && y != resolution-1 {
				r := uint32(resolution)
				face.Indices = append(face.Indices,
					i, i+r+1, i+r,
					i, i+1, i+r+1,
				)
			}
		}
	}

	return face
}
