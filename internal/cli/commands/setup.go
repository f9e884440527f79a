package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/1101hirokin/tzie-tokens/internal/builder"
	"github.com/1101hirokin/tzie-tokens/internal/cli/config"
	"github.com/1101hirokin/tzie-tokens/internal/cli/output"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config and logger stored by the root
// command and creates a renderer for the configured output mode.
// A command run on its own, outside the root, loads its config from its
// flags and the working directory.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, ok := cmd.Context().Value(config.ConfigKey()).(*config.Config)
	if !ok {
		var err error
		if cfg, err = config.LoadConfig("", cmd.Flags()); err != nil {
			return nil, err
		}
	}
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// NewBuilder creates a token builder from the command configuration.
func (c *CommandContext) NewBuilder() (*builder.Builder, error) {
	return builder.New(builder.Options{
		Logger:      c.Logger,
		Platform:    c.Cfg.PlatformOptions(),
		FileOptions: c.Cfg.FileOptions(),
	})
}
