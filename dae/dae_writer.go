package dae

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/binzume/gltfconv/scene"
	"github.com/binzume/gltfconv/texture"
	"github.com/pkg/errors"
)

const (
	meshID        = "object-mesh"
	positionsID   = "object-positions"
	texcoordsID   = "object-texcoords"
	verticesID    = "object-vertices"
	visualSceneID = "scene"

	defaultDiffuse = "0.8 0.8 0.8 1"
)

func imageID(kind scene.TextureKind, mi int) string {
	return fmt.Sprintf("%v-%d-image", kind, mi)
}

func materialID(mi int) string {
	return fmt.Sprintf("material-%d", mi)
}

func floatArray(values []float64) string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return strings.Join(s, " ")
}

func newSource(id string, values []float64, stride int, names ...string) *Source {
	src := &Source{
		ID:         id,
		FloatArray: FloatArray{ID: id + "-array", Count: len(values), Value: floatArray(values)},
		TechniqueCommon: SourceTechnique{Accessor: Accessor{
			Source: "#" + id + "-array",
			Count:  len(values) / stride,
			Stride: stride,
		}},
	}
	for _, n := range names {
		src.TechniqueCommon.Accessor.Params = append(src.TechniqueCommon.Accessor.Params, &Param{Name: n, Type: "float"})
	}
	return src
}

func newEffect(mi int, hasBaseColor bool) *Effect {
	id := materialID(mi)
	effect := &Effect{ID: id + "-effect"}
	effect.ProfileCOMMON.Technique.Sid = "COMMON"
	if !hasBaseColor {
		effect.ProfileCOMMON.Technique.Phong.Diffuse.Color = defaultDiffuse
		return effect
	}
	effect.ProfileCOMMON.NewParams = []*NewParam{
		{Sid: id + "-surface", Surface: &Surface{Type: "2D", InitFrom: imageID(scene.BaseColor, mi)}},
		{Sid: id + "-sampler", Sampler2D: &Sampler2D{Source: id + "-surface"}},
	}
	effect.ProfileCOMMON.Technique.Phong.Diffuse.Texture = &Texture{Texture: id + "-sampler", Texcoord: "UV"}
	return effect
}

// NewDocument builds the COLLADA document for the scene. textures holds the
// texture file names of each material, in material order.
func NewDocument(s *scene.Scene, textures []map[scene.TextureKind]string) (*COLLADA, error) {
	tris, err := s.Triangles()
	if err != nil {
		return nil, err
	}

	doc := &COLLADA{Xmlns: Namespace, Version: Version}
	doc.Asset.UpAxis = "Y_UP"

	for mi := range s.Materials {
		var names map[scene.TextureKind]string
		if mi < len(textures) {
			names = textures[mi]
		}
		for _, kind := range scene.TextureKinds {
			if name, ok := names[kind]; ok {
				doc.LibraryImages.Images = append(doc.LibraryImages.Images, &Image{ID: imageID(kind, mi), InitFrom: name})
			}
		}
		_, hasBaseColor := names[scene.BaseColor]
		doc.LibraryEffects.Effects = append(doc.LibraryEffects.Effects, newEffect(mi, hasBaseColor))
		doc.LibraryMaterials.Materials = append(doc.LibraryMaterials.Materials, &Material{
			ID:             materialID(mi),
			Name:           materialID(mi),
			InstanceEffect: InstanceEffect{URL: "#" + materialID(mi) + "-effect"},
		})
	}

	positions := make([]float64, 0, len(s.Vertexes)*3)
	for _, v := range s.Vertexes {
		positions = append(positions, v.X, v.Y, v.Z)
	}
	mesh := Mesh{
		Sources:   []*Source{newSource(positionsID, positions, 3, "X", "Y", "Z")},
		Vertices:  Vertices{ID: verticesID, Inputs: []*Input{{Semantic: "POSITION", Source: "#" + positionsID}}},
		Triangles: &Triangles{Count: len(tris)},
	}
	mesh.Triangles.Inputs = []*SharedInput{{Semantic: "VERTEX", Source: "#" + verticesID, Offset: 0}}

	withUV := s.HasParallelTexCoords()
	if withUV {
		uvs := make([]float64, 0, len(s.TexCoords)*2)
		for _, t := range s.TexCoords {
			uvs = append(uvs, t.U, t.V)
		}
		mesh.Sources = append(mesh.Sources, newSource(texcoordsID, uvs, 2, "S", "T"))
		mesh.Triangles.Inputs = append(mesh.Triangles.Inputs, &SharedInput{Semantic: "TEXCOORD", Source: "#" + texcoordsID, Offset: 0})
	}
	if len(s.Materials) > 0 {
		mesh.Triangles.Material = materialID(0)
	}

	p := make([]string, 0, len(tris)*3)
	for _, t := range tris {
		for _, i := range t {
			p = append(p, strconv.Itoa(i))
		}
	}
	mesh.Triangles.P = strings.Join(p, " ")
	doc.LibraryGeometries.Geometries = []*Geometry{{ID: meshID, Mesh: mesh}}

	node := &Node{Name: "object", InstanceGeometry: InstanceGeometry{URL: "#" + meshID}}
	if len(s.Materials) > 0 {
		node.InstanceGeometry.BindMaterial = &BindMaterial{}
		for mi := range s.Materials {
			im := &InstanceMaterial{Symbol: materialID(mi), Target: "#" + materialID(mi)}
			if withUV {
				im.BindVertexInput = &BindVertexInput{Semantic: "UV", InputSemantic: "TEXCOORD"}
			}
			node.InstanceGeometry.BindMaterial.InstanceMaterials = append(node.InstanceGeometry.BindMaterial.InstanceMaterials, im)
		}
	}
	doc.LibraryVisualScenes.VisualScenes = []*VisualScene{{ID: visualSceneID, Nodes: []*Node{node}}}
	doc.Scene.InstanceVisualScene.URL = "#" + visualSceneID
	return doc, nil
}

// WriteDAE writes the document. If path is not empty, texture files are
// written next to it and referenced from library_images.
func WriteDAE(s *scene.Scene, w io.Writer, path string) error {
	var textures []map[scene.TextureKind]string
	if path != "" {
		dir := filepath.Dir(path)
		base := filepath.Base(path)
		base = base[0 : len(base)-len(filepath.Ext(base))]
		for mi, mat := range s.Materials {
			names, err := texture.WriteMaterialTextures(dir, base, mi, mat)
			if err != nil {
				return err
			}
			textures = append(textures, names)
		}
	}

	doc, err := NewDocument(s, textures)
	if err != nil {
		return err
	}
	xmlBuf, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal dae")
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "write dae")
	}
	if _, err := w.Write(append(xmlBuf, '\n')); err != nil {
		return errors.Wrap(err, "write dae")
	}
	return nil
}

func Save(s *scene.Scene, path string) error {
	w, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create dae")
	}
	defer w.Close()
	return WriteDAE(s, w, path)
}
