package converter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	os.WriteFile(path, []byte("format: stl\noutput_dir: out\nkeep_original: false\nconcurrency: 4\n"), 0644)

	conf, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	opt, err := conf.Option()
	if err != nil {
		t.Fatal(err)
	}
	if opt.Format != FormatSTL || opt.OutputDir != "out" || !opt.RemoveOriginal || opt.Concurrency != 4 {
		t.Error("unexpected option", opt)
	}

	os.WriteFile(path, []byte("format: dae\n"), 0644)
	conf, _ = LoadConfig(path)
	opt, _ = conf.Option()
	c := NewConverter(opt)
	if c.Format != FormatDAE || c.OutputDir != DefaultOutputDir || c.RemoveOriginal || c.Concurrency != 1 {
		t.Error("defaults", c.ConvertOption)
	}

	os.WriteFile(path, []byte("format: fbx\n"), 0644)
	conf, _ = LoadConfig(path)
	if _, err := conf.Option(); err == nil {
		t.Error("unsupported format should fail")
	}

	os.WriteFile(path, []byte("unknown_key: 1\n"), 0644)
	if _, err := LoadConfig(path); err == nil {
		t.Error("unknown key should fail")
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
