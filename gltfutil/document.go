package gltfutil

import (
	"encoding/json"

	"github.com/binzume/gltfconv/scene"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// document is a parsed glTF JSON document.
// gltf.ComponentType folds unknown codes into ComponentFloat, so the raw codes are kept alongside.
type document struct {
	*gltf.Document
	componentTypes []uint32
}

func (d *document) componentType(accessor uint32) uint32 {
	if int(accessor) >= len(d.componentTypes) {
		return 0
	}
	return d.componentTypes[accessor]
}

// parseDocument decodes glTF JSON text. A leading BOM is dropped and invalid UTF-8 is replaced.
func parseDocument(data []byte) (*document, error) {
	text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, errors.Wrapf(scene.ErrMalformedDocument, "decode text: %v", err)
	}

	var raw struct {
		Accessors []struct {
			ComponentType uint64 `json:"componentType"`
		} `json:"accessors"`
	}
	if err := json.Unmarshal(text, &raw); err != nil {
		return nil, errors.Wrapf(scene.ErrMalformedDocument, "%v", err)
	}
	codes := make([]uint32, len(raw.Accessors))
	for i, a := range raw.Accessors {
		// gltf.ComponentType only unmarshals uint16 codes.
		if a.ComponentType > 0xFFFF {
			return nil, errors.Wrapf(scene.ErrUnsupportedComponentType, "accessor %d: componentType %d", i, a.ComponentType)
		}
		codes[i] = uint32(a.ComponentType)
	}

	var doc gltf.Document
	if err := json.Unmarshal(text, &doc); err != nil {
		return nil, errors.Wrapf(scene.ErrMalformedDocument, "%v", err)
	}
	return &document{Document: &doc, componentTypes: codes}, nil
}
