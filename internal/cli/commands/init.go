package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/1101hirokin/tzie-tokens/internal/cli/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tzie-tokens project",
		Long: `Initialize a new tzie-tokens project.

This creates:
  - tzie-tokens.yaml configuration file
  - theme/light.json starter theme
  - .gitignore ignoring the build output
  - .env.example listing environment overrides`,
		Example: `  # Initialize in current directory
  tzie-tokens init

  # Initialize in a new directory
  tzie-tokens init my-tokens

  # Force overwrite existing files
  tzie-tokens init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
	}

	files, err := copyTemplate("default", dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	for _, f := range files {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("tzie-tokens project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Edit theme/light.json")
	r.Println("  2. Run 'tzie-tokens build' to generate every platform into dist/")
	r.Println("  3. Run 'tzie-tokens list --platform css' to inspect generated names")

	return nil
}
