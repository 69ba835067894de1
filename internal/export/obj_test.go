package export

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mirefield/terrella/internal/engine/mesh"
)

func TestWriteOBJSingleFace(t *testing.T) {
	face := mesh.BuildFace(2, mgl32.Vec3{0, 1, 0}, false)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, "planet", []mesh.Face{face}); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "o planet\n") {
		t.Errorf("output does not start with object name:\n%s", out)
	}

	counts := map[string]int{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		counts[strings.Fields(line)[0]]++
	}
	if counts["v"] != 4 || counts["vt"] != 4 || counts["vn"] != 4 {
		t.Errorf("got %d v, %d vt, %d vn lines, want 4 each", counts["v"], counts["vt"], counts["vn"])
	}
	if counts["f"] != 2 {
		t.Errorf("got %d f lines, want 2", counts["f"])
	}
}

func TestWriteOBJIndicesAreOneBasedAndOffset(t *testing.T) {
	faces := []mesh.Face{
		mesh.BuildFace(2, mgl32.Vec3{0, 1, 0}, false),
		mesh.BuildFace(2, mgl32.Vec3{0, -1, 0}, false),
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, "cube", faces); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}

	vertexTotal := faces[0].VertexCount() + faces[1].VertexCount()
	min, max := vertexTotal, 1
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "f" {
			continue
		}
		for _, ref := range fields[1:] {
			var v, vt, vn int
			if _, err := fmt.Sscanf(ref, "%d/%d/%d", &v, &vt, &vn); err != nil {
				t.Fatalf("bad face reference %q: %v", ref, err)
			}
			if v != vt || v != vn {
				t.Errorf("face reference %q mixes indices", ref)
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	if min != 1 {
		t.Errorf("got minimum face index %d, want 1", min)
	}
	if max != vertexTotal {
		t.Errorf("got maximum face index %d, want %d (second face not offset)", max, vertexTotal)
	}
}

func TestWriteOBJEmptyFaces(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, "empty", nil); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "o empty" {
		t.Errorf("got %q, want only the object line", got)
	}
}

func TestSaveOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planet.obj")
	face := mesh.BuildFace(3, mgl32.Vec3{1, 0, 0}, true)

	if err := SaveOBJ(path, "planet", []mesh.Face{face}); err != nil {
		t.Fatalf("SaveOBJ: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "o planet\n") {
		t.Error("written file missing object line")
	}
}

func TestSaveOBJBadPath(t *testing.T) {
	err := SaveOBJ(filepath.Join(t.TempDir(), "missing", "planet.obj"), "planet", nil)
	if err == nil {
		t.Fatal("expected error for non-existent directory")
	}
}
