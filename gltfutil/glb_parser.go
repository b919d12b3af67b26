package gltfutil

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/binzume/gltfconv/scene"
	"github.com/pkg/errors"
)

const (
	glbMagic     = "glTF"
	glbChunkJSON = 0x4E4F534A
	glbChunkBIN  = 0x004E4942
)

// GLB holds the two chunks of a binary glTF file.
type GLB struct {
	Version uint32
	JSON    []byte
	BIN     []byte // nil if the file has no binary chunk
}

type glbParser struct {
	r   io.Reader
	err error
}

func (p *glbParser) read(v interface{}) error {
	if p.err == nil {
		p.err = binary.Read(p.r, binary.LittleEndian, v)
	}
	return p.err
}

func (p *glbParser) readUint32() uint32 {
	var v uint32
	p.read(&v)
	return v
}

func (p *glbParser) readChunk(name string, length uint32) []byte {
	if p.err != nil {
		return nil
	}
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, p.r, int64(length)); err != nil {
		p.err = errors.Wrapf(eofError(err), "%s chunk: declared %d bytes, %d available", name, length, buf.Len())
		return nil
	}
	return buf.Bytes()
}

func eofError(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return scene.ErrUnexpectedEOF
	}
	return err
}

// ReadGLB splits a GLB stream into its JSON and BIN chunks.
// Version, total length and the JSON chunk type are not validated.
func ReadGLB(r io.Reader) (*GLB, error) {
	p := &glbParser{r: r}

	var magic [4]byte
	if err := p.read(&magic); err != nil {
		return nil, errors.Wrap(eofError(err), "GLB header")
	}
	if string(magic[:]) != glbMagic {
		return nil, errors.Wrapf(scene.ErrInvalidMagic, "%q", magic[:])
	}

	glb := &GLB{}
	glb.Version = p.readUint32()
	p.readUint32() // total length
	jsonLength := p.readUint32()
	if jsonType := p.readUint32(); p.err == nil && jsonType != glbChunkJSON {
		log.Printf("unexpected first chunk type 0x%08x", jsonType)
	}
	if p.err != nil {
		return nil, errors.Wrap(eofError(p.err), "GLB header")
	}
	glb.JSON = p.readChunk("JSON", jsonLength)
	if p.err != nil {
		return nil, p.err
	}

	var header [8]byte
	n, err := io.ReadFull(r, header[:])
	if err == io.EOF && n == 0 {
		return glb, nil
	} else if err != nil {
		return nil, errors.Wrap(eofError(err), "BIN chunk header")
	}
	binLength := binary.LittleEndian.Uint32(header[0:4])
	if binType := binary.LittleEndian.Uint32(header[4:8]); binType != glbChunkBIN {
		log.Printf("unexpected second chunk type 0x%08x", binType)
	}
	glb.BIN = p.readChunk("BIN", binLength)
	if p.err != nil {
		return nil, p.err
	}
	return glb, nil
}

// ParseGLB builds a Scene from a GLB stream. Buffers without uri are read from the BIN chunk,
// other resources relative to dir.
func ParseGLB(r io.Reader, dir string) (*scene.Scene, error) {
	glb, err := ReadGLB(r)
	if err != nil {
		return nil, err
	}
	return ParseGLTF(glb.JSON, NewChunkSource(glb.BIN, dir))
}

// LoadGLB reads a .glb file.
func LoadGLB(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseGLB(bufio.NewReader(f), filepath.Dir(path))
}
