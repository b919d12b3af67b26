package converter

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// OutputPath returns <dir of source>/<outputDir>/<base>.<target> and creates
// the directory. An absolute outputDir is used as is.
func OutputPath(sourcePath, outputDir string, target Format) (string, error) {
	dir := outputDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(sourcePath), outputDir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "create output dir")
	}
	base := filepath.Base(sourcePath)
	base = base[0 : len(base)-len(filepath.Ext(base))]
	return filepath.Join(dir, base+"."+string(target)), nil
}
