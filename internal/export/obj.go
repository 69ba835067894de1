// Package export serializes face meshes to interchange formats.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mirefield/terrella/internal/engine/mesh"
)

// WriteOBJ writes the faces as a single Wavefront OBJ object. Each face's
// indices are shifted by the vertices written before it, since OBJ face
// references are global and 1-based.
func WriteOBJ(w io.Writer, name string, faces []mesh.Face) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "o %s\n", name)

	for _, f := range faces {
		for _, p := range f.Positions {
			fmt.Fprintf(bw, "v %g %g %g\n", p.X(), p.Y(), p.Z())
		}
	}
	for _, f := range faces {
		for _, t := range f.TexCoords {
			fmt.Fprintf(bw, "vt %g %g\n", t.X(), t.Y())
		}
	}
	for _, f := range faces {
		for _, n := range f.Normals {
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X(), n.Y(), n.Z())
		}
	}

	offset := uint32(1)
	for _, f := range faces {
		for i := 0; i+2 < len(f.Indices); i += 3 {
			a := f.Indices[i] + offset
			b := f.Indices[i+1] + offset
			c := f.Indices[i+2] + offset
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
		offset += uint32(f.VertexCount())
	}

	return bw.Flush()
}

// SaveOBJ writes the faces to a file at path.
func SaveOBJ(path, name string, faces []mesh.Face) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := WriteOBJ(file, name, faces); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	return nil
}
