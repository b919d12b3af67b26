package texture

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/binzume/gltfconv/scene"
	"github.com/blezek/tga"
	_ "github.com/oov/psd"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var suffixes = map[scene.TextureKind]string{
	scene.BaseColor:         "base",
	scene.MetallicRoughness: "roughness",
	scene.Normal:            "normal",
	scene.Occlusion:         "occlusion",
	scene.Emissive:          "emissive",
}

// Suffix returns the short name used in texture file names.
func Suffix(kind scene.TextureKind) string {
	return suffixes[kind]
}

// FileName returns "<base>_<suffix><index>.png".
func FileName(base string, kind scene.TextureKind, index int) string {
	return fmt.Sprintf("%s_%s%d.png", base, Suffix(kind), index)
}

type Info struct {
	Format string
	Width  int
	Height int
}

// Inspect decodes only the image header. TGA has no magic and is tried last.
func Inspect(data []byte) (*Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil {
		return &Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
	}
	img, tgaErr := tga.Decode(bytes.NewReader(data))
	if tgaErr != nil {
		return nil, errors.Wrap(err, "unknown image format")
	}
	b := img.Bounds()
	return &Info{Format: "tga", Width: b.Dx(), Height: b.Dy()}, nil
}

// WriteFile writes texture bytes unchanged. Non-PNG payloads are logged since
// the file name always ends in .png.
func WriteFile(path string, data []byte) error {
	name := filepath.Base(path)
	if info, err := Inspect(data); err != nil {
		log.Printf("texture %s: %v", name, err)
	} else if info.Format != "png" {
		log.Printf("texture %s: %s image (%dx%d) written with .png extension", name, info.Format, info.Width, info.Height)
	} else {
		log.Printf("texture %s: %dx%d", name, info.Width, info.Height)
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write texture")
}

// WriteMaterialTextures writes every texture of the material next to base.
// It returns the file names written, keyed by kind.
func WriteMaterialTextures(dir, base string, index int, mat *scene.Material) (map[scene.TextureKind]string, error) {
	names := map[scene.TextureKind]string{}
	for _, kind := range scene.TextureKinds {
		data := mat.Texture(kind)
		if len(data) == 0 {
			continue
		}
		name := FileName(base, kind, index)
		if err := WriteFile(filepath.Join(dir, name), data); err != nil {
			return nil, err
		}
		names[kind] = name
	}
	return names, nil
}
