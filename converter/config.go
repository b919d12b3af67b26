package converter

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the optional YAML configuration file.
//
//	format: stl
//	output_dir: output
//	keep_original: true
//	concurrency: 4
type Config struct {
	Format       string `yaml:"format"`
	OutputDir    string `yaml:"output_dir"`
	KeepOriginal *bool  `yaml:"keep_original"`
	Concurrency  int    `yaml:"concurrency"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var conf Config
	if err := yaml.UnmarshalStrict(data, &conf); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return &conf, nil
}

// Option converts the file settings into a ConvertOption. Unset keys keep the defaults.
func (c *Config) Option() (*ConvertOption, error) {
	opt := &ConvertOption{OutputDir: c.OutputDir, Concurrency: c.Concurrency}
	if c.Format != "" {
		f, err := ParseTargetFormat(c.Format)
		if err != nil {
			return nil, err
		}
		opt.Format = f
	}
	if c.KeepOriginal != nil {
		opt.RemoveOriginal = !*c.KeepOriginal
	}
	return opt, nil
}
