package gltfutil

import (
	"encoding/base64"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/gltfconv/scene"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// Source provides the raw bytes behind glTF buffers and external resources.
type Source interface {
	// Buffer returns the whole content of doc.Buffers[index].
	Buffer(index int, b *gltf.Buffer) ([]byte, error)
	// ReadURI reads a resource referenced by a relative URI.
	ReadURI(uri string) ([]byte, error)
}

const dataURIPrefix = "data:"

// decodeDataURI decodes the base64 payload of a data: URI of any media type.
func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 || !strings.HasSuffix(uri[:comma], ";base64") {
		return nil, errors.Wrap(scene.ErrMalformedDocument, "data uri is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, errors.Wrapf(scene.ErrMalformedDocument, "data uri: %v", err)
	}
	return data, nil
}

// fileSource resolves buffers and images relative to the directory of a .gltf file.
type fileSource struct {
	dir     string
	buffers map[int][]byte
}

// NewFileSource returns a Source reading files relative to dir.
func NewFileSource(dir string) Source {
	return &fileSource{dir: dir, buffers: map[int][]byte{}}
}

func (s *fileSource) Buffer(index int, b *gltf.Buffer) ([]byte, error) {
	if data, ok := s.buffers[index]; ok {
		return data, nil
	}
	var data []byte
	var err error
	if len(b.Data) > 0 {
		data = b.Data
	} else if strings.HasPrefix(b.URI, dataURIPrefix) {
		data, err = decodeDataURI(b.URI)
		if err != nil {
			return nil, errors.Wrapf(err, "buffer %d", index)
		}
	} else if b.URI == "" {
		return nil, errors.Wrapf(scene.ErrMissingRequiredStructure, "buffer %d has no uri", index)
	} else {
		data, err = s.ReadURI(b.URI)
		if err != nil {
			return nil, errors.Wrapf(err, "buffer %d", index)
		}
	}
	if uint32(len(data)) < b.ByteLength {
		return nil, errors.Wrapf(scene.ErrUnexpectedEOF, "buffer %d: %d bytes, byteLength %d", index, len(data), b.ByteLength)
	}
	s.buffers[index] = data
	return data, nil
}

func (s *fileSource) ReadURI(uri string) ([]byte, error) {
	name, err := url.PathUnescape(uri)
	if err != nil {
		name = uri
	}
	return os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(name)))
}

// chunkSource serves buffers without uri from the BIN chunk of a GLB file.
type chunkSource struct {
	*fileSource
	bin []byte
}

// NewChunkSource returns a Source backed by the binary chunk of a GLB file.
// Resources with an uri are still resolved relative to dir.
func NewChunkSource(bin []byte, dir string) Source {
	return &chunkSource{
		fileSource: NewFileSource(dir).(*fileSource),
		bin:        bin,
	}
}

func (s *chunkSource) Buffer(index int, b *gltf.Buffer) ([]byte, error) {
	if b.URI != "" {
		return s.fileSource.Buffer(index, b)
	}
	if index != 0 {
		return nil, errors.Wrapf(scene.ErrMissingRequiredStructure, "buffer %d has no uri, only buffer 0 is stored in the BIN chunk", index)
	}
	if s.bin == nil {
		return nil, errors.Wrapf(scene.ErrMissingRequiredStructure, "buffer %d: no BIN chunk", index)
	}
	if uint32(len(s.bin)) < b.ByteLength {
		return nil, errors.Wrapf(scene.ErrUnexpectedEOF, "BIN chunk: %d bytes, byteLength %d", len(s.bin), b.ByteLength)
	}
	return s.bin, nil
}
