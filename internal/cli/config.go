package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/matzehuels/geoxml/pkg/errors"
	"github.com/matzehuels/geoxml/pkg/pipeline"
)

// fileConfig is the TOML config file:
//
//	output = "emitters.xml"
//	layout = "attr"
//	count_attribute = "numParticles"
//	on_unknown = "error"
//	declaration = true
//	no_cache = false
type fileConfig struct {
	Output         string `toml:"output"`
	Layout         string `toml:"layout"`
	CountAttribute string `toml:"count_attribute"`
	OnUnknown      string `toml:"on_unknown"`
	Declaration    bool   `toml:"declaration"`
	NoCache        bool   `toml:"no_cache"`
}

// loadConfig reads the config file. An explicit path must exist; the default
// location is optional.
func (c *CLI) loadConfig() (fileConfig, error) {
	var cfg fileConfig

	path := c.configPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		c.Logger.Warn("unknown config keys", "file", path, "keys", undecoded)
	}
	c.Logger.Debug("loaded config", "file", path)
	return cfg, nil
}

// apply copies config values into opts for every flag the user did not set.
func (cfg fileConfig) apply(flags *pflag.FlagSet, opts *pipeline.Options, noCache *bool) {
	set := func(flag string, dst *string, v string) {
		if v != "" && !flags.Changed(flag) {
			*dst = v
		}
	}
	set("output", &opts.Output, cfg.Output)
	set("layout", &opts.Layout, cfg.Layout)
	set("count-attribute", &opts.CountAttrib, cfg.CountAttribute)
	set("on-unknown", &opts.OnUnknown, cfg.OnUnknown)

	if cfg.Declaration && !flags.Changed("declaration") {
		opts.Declaration = true
	}
	if cfg.NoCache && !flags.Changed("no-cache") {
		*noCache = true
	}
}
