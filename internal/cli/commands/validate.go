package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1101hirokin/tzie-tokens/internal/cli/output"
	"github.com/1101hirokin/tzie-tokens/internal/token"
)

// ValidateOutput is the JSON form of the validate command.
type ValidateOutput struct {
	Files   []FileValidation `json:"files"`
	Invalid int              `json:"invalid"`
}

// FileValidation is the result for one file.
type FileValidation struct {
	Path  string  `json:"path"`
	Valid bool    `json:"valid"`
	Error *string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check token files against the token document schema",
		Long: `Validate JSON or YAML token files against the token document schema.

Only the document structure is checked. References are not resolved, so a
theme file can be validated without its base tokens.`,
		Example: `  tzie-tokens validate theme/light.json theme/dark.json`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args)
		},
	}
}

func runValidate(cmd *cobra.Command, paths []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	loader, err := token.NewLoader()
	if err != nil {
		return fmt.Errorf("failed to create token loader: %w", err)
	}

	result := ValidateOutput{Files: make([]FileValidation, 0, len(paths))}
	for _, p := range paths {
		fv := FileValidation{Path: p, Valid: true}
		if err := loader.ValidateFile(p); err != nil {
			msg := err.Error()
			fv.Valid = false
			fv.Error = &msg
			result.Invalid++
		}
		cmdCtx.Logger.Debug("validated token file", "path", p, "valid", fv.Valid)
		result.Files = append(result.Files, fv)
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(result); err != nil {
			return err
		}
	} else {
		for _, fv := range result.Files {
			if fv.Valid {
				r.StatusLine(fv.Path, "success", "")
				continue
			}
			r.StatusLine(fv.Path, "failed", *fv.Error)
		}
	}

	if result.Invalid > 0 {
		return fmt.Errorf("%d of %d files failed validation", result.Invalid, len(paths))
	}
	if r.EffectiveMode() != output.ModeJSON {
		r.Println("")
		r.Success(fmt.Sprintf("%d files valid", len(paths)))
	}
	return nil
}
