package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/1101hirokin/tzie-tokens/internal/format"
	"github.com/1101hirokin/tzie-tokens/internal/platform"
)

var outputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
// File existence is checked by the builder, so help and init work without
// any token files present.
func (c *Config) Validate() error {
	if c.OutputFormat != "" && !slices.Contains(outputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (expected one of %s)", c.OutputFormat, strings.Join(outputFormats, ", "))
	}
	if c.Platform != "" && c.Platform != platform.All && !slices.Contains(platform.Names, c.Platform) {
		return fmt.Errorf("%w %q (expected one of %s or %s)", platform.ErrUnknownPlatform, c.Platform, strings.Join(platform.Names, ", "), platform.All)
	}
	for name, p := range c.Platforms {
		if !slices.Contains(platform.Names, name) {
			return fmt.Errorf("platforms: %w %q", platform.ErrUnknownPlatform, name)
		}
		if _, err := format.DecodeOptions(p.Options); err != nil {
			return fmt.Errorf("platforms.%s.options: %w", name, err)
		}
	}
	return nil
}
