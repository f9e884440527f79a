package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/1101hirokin/tzie-tokens/internal/cli/output"
	"github.com/1101hirokin/tzie-tokens/internal/platform"
)

// ListOutput is the JSON form of the list command.
type ListOutput struct {
	Platforms []ListPlatform `json:"platforms"`
}

// ListPlatform holds the transformed tokens of one platform.
type ListPlatform struct {
	Name   string      `json:"name"`
	Tokens []TokenInfo `json:"tokens"`
}

// TokenInfo describes one emitted token.
type TokenInfo struct {
	Path   string `json:"path"`
	Type   string `json:"type,omitempty"`
	Name   string `json:"name"`
	Value  any    `json:"value"`
	Source string `json:"source"`
	Theme  string `json:"theme,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tokens with the names and values each platform emits",
		Long: `List every token after reference resolution, expansion and the
platform's transforms, without writing any files.

Output adapts to environment:
  - Terminal: table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output-format to override: auto, text, markdown, json`,
		Example: `  # Show the CSS custom property names
  tzie-tokens list --theme theme/light.json --platform css

  # Every platform as JSON
  tzie-tokens list --theme theme/light.json --output-format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	cmd.Flags().StringP("theme", "t", "", "Theme token file (required)")
	cmd.Flags().StringP("platform", "p", platform.All, "Platform to list")
	cmd.Flags().StringP("base", "b", "", "Base token file (default: embedded base tokens)")
	registerPlatformCompletion(cmd)

	return cmd
}

func runList(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	listing, err := collectTokens(cmdCtx)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(listing)
	default:
		listTable(r, listing)
		return nil
	}
}

func collectTokens(cmdCtx *CommandContext) (*ListOutput, error) {
	req := cmdCtx.Cfg.Request()
	b, err := cmdCtx.NewBuilder()
	if err != nil {
		return nil, err
	}

	cfgs, err := b.Platforms(req)
	if err != nil {
		return nil, err
	}
	dict, err := b.Load(req)
	if err != nil {
		return nil, err
	}

	listing := &ListOutput{Platforms: make([]ListPlatform, 0, len(cfgs))}
	for _, cfg := range cfgs {
		tokens, err := b.Transform(dict, cfg)
		if err != nil {
			return nil, err
		}
		lp := ListPlatform{Name: cfg.Name, Tokens: make([]TokenInfo, 0, len(tokens))}
		for _, t := range tokens {
			lp.Tokens = append(lp.Tokens, TokenInfo{
				Path:   t.Path.String(),
				Type:   string(t.Type),
				Name:   t.Name,
				Value:  t.Value,
				Source: t.Source.String(),
				Theme:  t.Theme,
			})
		}
		listing.Platforms = append(listing.Platforms, lp)
	}
	return listing, nil
}

// listTable renders one table per platform. The renderer picks a boxed
// table on a terminal and a markdown table otherwise.
func listTable(r *output.Renderer, listing *ListOutput) {
	header := []string{"Path", "Type", "Name", "Value", "Source"}
	for i, p := range listing.Platforms {
		if i > 0 {
			r.Println("")
		}
		r.Header(2, fmt.Sprintf("%s (%d tokens)", p.Name, len(p.Tokens)))

		rows := make([][]string, 0, len(p.Tokens))
		for _, t := range p.Tokens {
			source := output.Title(t.Source)
			if t.Theme != "" {
				source += ":" + t.Theme
			}
			rows = append(rows, []string{t.Path, t.Type, t.Name, displayValue(t.Value), source})
		}
		r.Table(header, rows)
	}
}

func displayValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
