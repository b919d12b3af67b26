package gltfutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/gltfconv/scene"
)

// ParseGLTF builds a Scene from glTF JSON text whose buffers and images are served by src.
func ParseGLTF(data []byte, src Source) (*scene.Scene, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return buildScene(doc, src)
}

// LoadGLTF reads a .gltf file. Buffers and images are resolved relative to its directory.
func LoadGLTF(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGLTF(data, NewFileSource(filepath.Dir(path)))
}

// Load reads a .gltf or .glb file, chosen by extension.
func Load(path string) (*scene.Scene, error) {
	if strings.ToLower(filepath.Ext(path)) == ".glb" {
		return LoadGLB(path)
	}
	return LoadGLTF(path)
}
