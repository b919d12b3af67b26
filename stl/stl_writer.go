package stl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/binzume/gltfconv/geom"
	"github.com/binzume/gltfconv/scene"
	"github.com/pkg/errors"
)

const SolidName = "exported_object"

// WriteSTL writes an ASCII STL. Polygons are triangulated and degenerate
// facets get a zero normal.
func WriteSTL(s *scene.Scene, ww io.Writer) error {
	tris, err := s.Triangles()
	if err != nil {
		return err
	}

	w := bufio.NewWriter(ww)
	fmt.Fprintf(w, "solid %s\n", SolidName)
	for _, t := range tris {
		var v [3]*geom.Vector3
		for i, vi := range t {
			p := s.Vertexes[vi]
			v[i] = geom.NewVector3(p.X, p.Y, p.Z)
		}
		n := geom.TriangleNormal(v[0], v[1], v[2])
		fmt.Fprintf(w, "  facet normal %.6f %.6f %.6f\n", n.X, n.Y, n.Z)
		w.WriteString("    outer loop\n")
		for _, p := range v {
			fmt.Fprintf(w, "      vertex %.6f %.6f %.6f\n", p.X, p.Y, p.Z)
		}
		w.WriteString("    endloop\n")
		w.WriteString("  endfacet\n")
	}
	fmt.Fprintf(w, "endsolid %s\n", SolidName)
	return errors.Wrap(w.Flush(), "write stl")
}

func Save(s *scene.Scene, path string) error {
	w, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create stl")
	}
	defer w.Close()
	return WriteSTL(s, w)
}
