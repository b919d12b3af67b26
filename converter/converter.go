package converter

import (
	"log"
	"os"

	"github.com/binzume/gltfconv/dae"
	"github.com/binzume/gltfconv/gltfutil"
	"github.com/binzume/gltfconv/obj"
	"github.com/binzume/gltfconv/scene"
	"github.com/binzume/gltfconv/stl"
	"github.com/pkg/errors"
)

const DefaultOutputDir = "output"

type ConvertOption struct {
	Format         Format // Default: obj
	OutputDir      string // Default: "output", relative to the source file
	RemoveOriginal bool
	Concurrency    int // Default: 1
}

type Converter struct {
	*ConvertOption
}

func NewConverter(options *ConvertOption) *Converter {
	if options == nil {
		options = &ConvertOption{}
	}
	if options.Format == "" {
		options.Format = FormatOBJ
	}
	if options.OutputDir == "" {
		options.OutputDir = DefaultOutputDir
	}
	if options.Concurrency <= 0 {
		options.Concurrency = 1
	}
	return &Converter{ConvertOption: options}
}

// Decode reads a .gltf or .glb file.
func Decode(path string, format Format) (*scene.Scene, error) {
	switch format {
	case FormatGLTF:
		return gltfutil.LoadGLTF(path)
	case FormatGLB:
		return gltfutil.LoadGLB(path)
	}
	return nil, errors.Errorf("unsupported input format: %q", format)
}

// Encode writes the scene and its side-car files.
func Encode(s *scene.Scene, path string, format Format) error {
	switch format {
	case FormatOBJ:
		return obj.Save(s, path)
	case FormatSTL:
		return stl.Save(s, path)
	case FormatDAE:
		return dae.Save(s, path)
	}
	return errors.Errorf("unsupported output format: %q", format)
}

// Convert converts one file and returns the output path.
func (c *Converter) Convert(sourcePath string, source, target Format) (string, error) {
	if !source.IsSource() {
		return "", errors.Errorf("unsupported input format: %q", source)
	}
	if !target.IsTarget() {
		return "", errors.Errorf("unsupported output format: %q", target)
	}

	s, err := Decode(sourcePath, source)
	if err != nil {
		return "", errors.Wrapf(err, "decode %s", sourcePath)
	}
	output, err := OutputPath(sourcePath, c.OutputDir, target)
	if err != nil {
		return "", err
	}
	if err := Encode(s, output, target); err != nil {
		return "", errors.Wrapf(err, "encode %s", output)
	}
	log.Print("out: ", output)

	if c.RemoveOriginal {
		if err := os.Remove(sourcePath); err != nil {
			return output, errors.Wrap(err, "remove original")
		}
	}
	return output, nil
}

// ConvertFile converts sourcePath to the configured format.
func (c *Converter) ConvertFile(sourcePath string) (string, error) {
	return c.Convert(sourcePath, FormatOf(sourcePath), c.Format)
}

func Convert(sourcePath string, source, target Format, options *ConvertOption) (string, error) {
	return NewConverter(options).Convert(sourcePath, source, target)
}
