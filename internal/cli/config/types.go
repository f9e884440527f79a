// Package config loads tzie-tokens CLI configuration.
//
// Values are layered, lowest to highest: built-in defaults, the
// tzie-tokens.yaml project file, a .env file and TZIE_ environment
// variables, then flags that were set explicitly on the command line.
package config

import (
	"github.com/1101hirokin/tzie-tokens/internal/builder"
	"github.com/1101hirokin/tzie-tokens/internal/platform"
)

// Config holds all CLI configuration options.
type Config struct {
	Theme        string `koanf:"theme"`
	Base         string `koanf:"base"`
	Output       string `koanf:"output"`
	Platform     string `koanf:"platform"`
	Prefix       string `koanf:"prefix"`
	PackageName  string `koanf:"package_name"`
	Watch        bool   `koanf:"watch"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output_format"`
	// Platforms holds per-platform overrides keyed by platform name.
	Platforms map[string]PlatformConfig `koanf:"platforms"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// PlatformConfig holds overrides for one platform.
type PlatformConfig struct {
	// Options are merged into the options of every file the platform writes.
	Options map[string]any `koanf:"options"`
}

// Default configuration values.
const (
	ConfigFileName    = "tzie-tokens.yaml"
	ConfigFileNameAlt = "tzie-tokens.yml"
	EnvPrefix         = "TZIE_"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Output:       builder.DefaultOutput,
		Platform:     platform.All,
		Prefix:       platform.DefaultPrefix,
		PackageName:  platform.DefaultPackageName,
		OutputFormat: DefaultOutput,
	}
}

// Request returns the build request described by the configuration.
func (c *Config) Request() builder.Request {
	return builder.Request{
		Theme:    c.Theme,
		Base:     c.Base,
		Output:   c.Output,
		Platform: c.Platform,
	}
}

// PlatformOptions returns the platform tuning described by the configuration.
func (c *Config) PlatformOptions() platform.Options {
	prefix := c.Prefix
	return platform.Options{Prefix: &prefix, PackageName: c.PackageName}
}

// FileOptions returns the per-platform file option overrides.
func (c *Config) FileOptions() map[string]map[string]any {
	if len(c.Platforms) == 0 {
		return nil
	}
	out := make(map[string]map[string]any, len(c.Platforms))
	for name, p := range c.Platforms {
		if len(p.Options) > 0 {
			out[name] = p.Options
		}
	}
	return out
}
