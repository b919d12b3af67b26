package converter

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

type Format string

const (
	FormatGLTF Format = "gltf"
	FormatGLB  Format = "glb"
	FormatOBJ  Format = "obj"
	FormatSTL  Format = "stl"
	FormatDAE  Format = "dae"
)

var (
	SourceFormats = []Format{FormatGLTF, FormatGLB}
	TargetFormats = []Format{FormatOBJ, FormatDAE, FormatSTL}
)

// FormatOf returns the lower-cased extension of path without the dot.
func FormatOf(path string) Format {
	return Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
}

func contains(formats []Format, f Format) bool {
	for _, ff := range formats {
		if ff == f {
			return true
		}
	}
	return false
}

func (f Format) IsSource() bool {
	return contains(SourceFormats, f)
}

func (f Format) IsTarget() bool {
	return contains(TargetFormats, f)
}

// ParseTargetFormat accepts "obj", ".OBJ" and so on.
func ParseTargetFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	if !f.IsTarget() {
		return "", errors.Errorf("unsupported output format: %q", s)
	}
	return f, nil
}
