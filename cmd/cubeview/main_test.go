package main

import (
	"testing"

	"github.com/mirefield/terrella/internal/planet"
)

func TestCubeFaces(t *testing.T) {
	faces := cubeFaces()

	if len(faces) != planet.FaceCount {
		t.Fatalf("got %d faces, want %d", len(faces), planet.FaceCount)
	}
	for i, face := range faces {
		// Minimum resolution: one quad per face.
		if got := face.VertexCount(); got != 4 {
			t.Errorf("face %d: got %d vertices, want 4", i, got)
		}
		if got := face.TriangleCount(); got != 2 {
			t.Errorf("face %d: got %d triangles, want 2", i, got)
		}
		for j, n := range face.Normals {
			if n != planet.FaceNormals[i] {
				t.Errorf("face %d vertex %d: got normal %v, want %v", i, j, n, planet.FaceNormals[i])
			}
		}
	}
}
