package scene

import (
	"log"

	"github.com/binzume/gltfconv/geom"
	pkgerrors "github.com/pkg/errors"
)

// Vertex is a position in model space.
type Vertex struct {
	X float64
	Y float64
	Z float64
}

// TexCoord is a texture coordinate. V is stored flipped (1 - v) relative to glTF.
type TexCoord struct {
	U float64
	V float64
}

// Face is a polygon referencing vertices by index.
// Decoders only emit triangles.
type Face struct {
	Verts []int
}

// Material holds raw texture payloads. Any of them may be nil.
// Materials have no name, they are identified by their index in Scene.Materials.
type Material struct {
	BaseColorTexture         []byte
	MetallicRoughnessTexture []byte
	NormalTexture            []byte
	OcclusionTexture         []byte
	EmissiveTexture          []byte
}

// Scene is the intermediate mesh representation shared by decoders and encoders.
// TexCoords are indexed in parallel with Vertexes. Materials apply to the whole mesh.
type Scene struct {
	Vertexes  []Vertex
	TexCoords []TexCoord
	Faces     []*Face
	Materials []*Material
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) AddVertex(x, y, z float64) {
	s.Vertexes = append(s.Vertexes, Vertex{X: x, Y: y, Z: z})
}

func (s *Scene) AddTexCoord(u, v float64) {
	s.TexCoords = append(s.TexCoords, TexCoord{U: u, V: v})
}

func (s *Scene) AddFace(verts ...int) {
	s.Faces = append(s.Faces, &Face{Verts: verts})
}

func (s *Scene) AddMaterial(m *Material) {
	s.Materials = append(s.Materials, m)
}

// Vertex returns the vertex referenced by a face index.
func (s *Scene) Vertex(index int) (*Vertex, error) {
	if index < 0 || index >= len(s.Vertexes) {
		return nil, IndexError(index, len(s.Vertexes))
	}
	return &s.Vertexes[index], nil
}

// HasParallelTexCoords reports whether every vertex has a texture coordinate.
func (s *Scene) HasParallelTexCoords() bool {
	return len(s.TexCoords) > 0 && len(s.TexCoords) == len(s.Vertexes)
}

// Triangles splits every face into triangles of vertex indices.
// Faces with less than 3 vertices are skipped.
func (s *Scene) Triangles() ([][3]int, error) {
	var tris [][3]int
	for fi, f := range s.Faces {
		if len(f.Verts) < 3 {
			log.Printf("skip face %d: %d vertices", fi, len(f.Verts))
			continue
		}
		poly := make([]*geom.Vector3, len(f.Verts))
		for i, vi := range f.Verts {
			v, err := s.Vertex(vi)
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "face %d", fi)
			}
			poly[i] = geom.NewVector3(v.X, v.Y, v.Z)
		}
		for _, t := range geom.Triangulate(poly) {
			tris = append(tris, [3]int{f.Verts[t[0]], f.Verts[t[1]], f.Verts[t[2]]})
		}
	}
	return tris, nil
}
