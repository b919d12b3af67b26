package obj

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/gltfconv/scene"
	"github.com/binzume/gltfconv/texture"
	"github.com/pkg/errors"
)

// DefaultMaterial is selected for the whole mesh.
const DefaultMaterial = "material0"

var mapDirectives = map[scene.TextureKind]string{
	scene.BaseColor:         "map_Kd",
	scene.MetallicRoughness: "map_Pr",
	scene.Normal:            "map_Bump",
	scene.Occlusion:         "map_Ao",
	scene.Emissive:          "map_Ke",
}

func baseName(path string) string {
	name := filepath.Base(path)
	return name[0 : len(name)-len(filepath.Ext(name))]
}

// WriteOBJ writes the mesh. If path is not empty, the .mtl file and texture
// files are written next to it.
func WriteOBJ(s *scene.Scene, ww io.Writer, path string) error {
	w := bufio.NewWriter(ww)

	if path != "" {
		fmt.Fprintf(w, "mtllib %v.mtl\n", baseName(path))
	}
	fmt.Fprintf(w, "usemtl %v\n", DefaultMaterial)

	for _, v := range s.Vertexes {
		fmt.Fprintf(w, "v %v %v %v\n", v.X, v.Y, v.Z)
	}
	for _, t := range s.TexCoords {
		fmt.Fprintf(w, "vt %v %v\n", t.U, t.V)
	}

	// vt indices always follow the vertex indices.
	if !s.HasParallelTexCoords() {
		log.Printf("texcoord count %d does not match vertex count %d", len(s.TexCoords), len(s.Vertexes))
	}
	for fi, f := range s.Faces {
		if len(f.Verts) < 3 {
			log.Printf("skip face %d: %d vertices", fi, len(f.Verts))
			continue
		}
		w.WriteString("f")
		for _, i := range f.Verts {
			if _, err := s.Vertex(i); err != nil {
				return errors.Wrapf(err, "face %d", fi)
			}
			fmt.Fprintf(w, " %d/%d", i+1, i+1)
		}
		w.WriteString("\n")
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "write obj")
	}

	if path != "" {
		return SaveMTL(s, strings.TrimSuffix(path, filepath.Ext(path))+".mtl")
	}
	return nil
}

// WriteMTL writes one newmtl block per material. names maps material index to
// the texture file names of that material.
func WriteMTL(s *scene.Scene, ww io.Writer, names []map[scene.TextureKind]string) error {
	w := bufio.NewWriter(ww)
	for mi := range s.Materials {
		if mi > 0 {
			w.WriteString("\n")
		}
		fmt.Fprintf(w, "newmtl material%d\n", mi)
		if mi >= len(names) {
			continue
		}
		for _, kind := range scene.TextureKinds {
			if name, ok := names[mi][kind]; ok {
				fmt.Fprintf(w, "%s %s\n", mapDirectives[kind], name)
			}
		}
	}
	return errors.Wrap(w.Flush(), "write mtl")
}

// SaveMTL writes the material library and the texture files it references.
func SaveMTL(s *scene.Scene, path string) error {
	dir, base := filepath.Dir(path), baseName(path)
	var names []map[scene.TextureKind]string
	for mi, mat := range s.Materials {
		n, err := texture.WriteMaterialTextures(dir, base, mi, mat)
		if err != nil {
			return err
		}
		names = append(names, n)
	}

	w, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create mtl")
	}
	defer w.Close()
	return WriteMTL(s, w, names)
}

func Save(s *scene.Scene, path string) error {
	w, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create obj")
	}
	defer w.Close()
	return WriteOBJ(s, w, path)
}
