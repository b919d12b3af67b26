package gltfutil

import (
	"log"
	"strings"

	"github.com/binzume/gltfconv/scene"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// sceneBuilder fills a Scene from the first primitive of the first mesh.
type sceneBuilder struct {
	accessorReader
	images [][]byte
}

func buildScene(doc *document, src Source) (*scene.Scene, error) {
	b := &sceneBuilder{accessorReader: accessorReader{doc: doc, src: src}}
	return b.build()
}

func (b *sceneBuilder) primitive() (*gltf.Primitive, error) {
	if len(b.doc.Meshes) == 0 || b.doc.Meshes[0] == nil {
		return nil, errors.Wrap(scene.ErrMissingRequiredStructure, "meshes[0]")
	}
	mesh := b.doc.Meshes[0]
	if len(mesh.Primitives) == 0 || mesh.Primitives[0] == nil {
		return nil, errors.Wrap(scene.ErrMissingRequiredStructure, "meshes[0].primitives[0]")
	}
	if len(b.doc.Meshes) > 1 || len(mesh.Primitives) > 1 {
		log.Printf("only meshes[0].primitives[0] is converted (%d meshes, %d primitives)", len(b.doc.Meshes), len(mesh.Primitives))
	}
	return mesh.Primitives[0], nil
}

func (b *sceneBuilder) build() (*scene.Scene, error) {
	prim, err := b.primitive()
	if err != nil {
		return nil, err
	}
	s := scene.NewScene()

	pos, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, errors.Wrap(scene.ErrMissingRequiredStructure, "POSITION attribute")
	}
	vertexes, err := b.ReadVec3(pos)
	if err != nil {
		return nil, errors.Wrap(err, "POSITION")
	}
	for _, v := range vertexes {
		s.AddVertex(float64(v[0]), float64(v[1]), float64(v[2]))
	}

	if tc, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, err := b.ReadVec2(tc)
		if err != nil {
			return nil, errors.Wrap(err, "TEXCOORD_0")
		}
		for _, uv := range uvs {
			s.AddTexCoord(float64(uv[0]), 1-float64(uv[1]))
		}
	}

	if err := b.loadImages(); err != nil {
		return nil, err
	}
	for i, m := range b.doc.Materials {
		mat, err := b.convertMaterial(m)
		if err != nil {
			return nil, errors.Wrapf(err, "material %d", i)
		}
		s.AddMaterial(mat)
	}

	if prim.Indices != nil {
		indices, err := b.ReadIndices(*prim.Indices)
		if err != nil {
			return nil, err
		}
		if len(indices)%3 != 0 {
			log.Printf("indices count %d is not a multiple of 3, ignoring the last %d", len(indices), len(indices)%3)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			s.AddFace(indices[i], indices[i+1], indices[i+2])
		}
	}
	return s, nil
}

func (b *sceneBuilder) loadImages() error {
	for i, img := range b.doc.Images {
		if img == nil {
			return errors.Wrapf(scene.ErrMissingRequiredStructure, "image %d", i)
		}
		var data []byte
		var err error
		if img.BufferView != nil {
			data, _, err = b.bufferView(*img.BufferView)
		} else if strings.HasPrefix(img.URI, dataURIPrefix) {
			data, err = decodeDataURI(img.URI)
		} else if img.URI != "" {
			data, err = b.src.ReadURI(img.URI)
		} else {
			err = errors.Wrap(scene.ErrMissingRequiredStructure, "no uri or bufferView")
		}
		if err != nil {
			return errors.Wrapf(err, "image %d", i)
		}
		b.images = append(b.images, data)
	}
	return nil
}

// image resolves a material texture index to image bytes.
// Documents without a textures array index images directly.
func (b *sceneBuilder) image(index uint32) ([]byte, error) {
	img := index
	if len(b.doc.Textures) > 0 {
		if int(index) >= len(b.doc.Textures) || b.doc.Textures[index] == nil {
			return nil, errors.Wrapf(scene.ErrMissingRequiredStructure, "texture %d", index)
		}
		src := b.doc.Textures[index].Source
		if src == nil {
			log.Printf("texture %d has no source image", index)
			return nil, nil
		}
		img = *src
	}
	if int(img) >= len(b.images) {
		return nil, errors.Wrapf(scene.ErrMissingRequiredStructure, "image %d", img)
	}
	return b.images[img], nil
}

func (b *sceneBuilder) convertMaterial(m *gltf.Material) (*scene.Material, error) {
	mat := &scene.Material{}
	if m == nil {
		return mat, nil
	}
	refs := map[scene.TextureKind]*uint32{}
	if pbr := m.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorTexture != nil {
			refs[scene.BaseColor] = &pbr.BaseColorTexture.Index
		}
		if pbr.MetallicRoughnessTexture != nil {
			refs[scene.MetallicRoughness] = &pbr.MetallicRoughnessTexture.Index
		}
	}
	if m.NormalTexture != nil && m.NormalTexture.Index != nil {
		refs[scene.Normal] = m.NormalTexture.Index
	}
	if m.OcclusionTexture != nil && m.OcclusionTexture.Index != nil {
		refs[scene.Occlusion] = m.OcclusionTexture.Index
	}
	if m.EmissiveTexture != nil {
		refs[scene.Emissive] = &m.EmissiveTexture.Index
	}

	for _, kind := range scene.TextureKinds {
		index, ok := refs[kind]
		if !ok {
			continue
		}
		data, err := b.image(*index)
		if err != nil {
			return nil, errors.Wrap(err, kind.String())
		}
		mat.SetTexture(kind, data)
	}
	return mat, nil
}
