package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1101hirokin/tzie-tokens/internal/builder"
	"github.com/1101hirokin/tzie-tokens/internal/cli/output"
	"github.com/1101hirokin/tzie-tokens/internal/platform"
)

// BuildOutput is the JSON form of a build result.
type BuildOutput struct {
	Theme     string           `json:"theme"`
	Base      string           `json:"base,omitempty"`
	Output    string           `json:"output"`
	Platforms []PlatformOutput `json:"platforms"`
}

// PlatformOutput lists the files written for one platform.
type PlatformOutput struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build design tokens for one or all platforms",
		Long: `Build design tokens from a theme file layered over the base tokens.

Each platform is written to its own directory under the output directory:
  json     tokens.json
  js       tokens.js, tokens.d.ts
  css      tokens.css
  compose  Tokens.kt
  ios      DesignTokens.swift

Without --base the embedded base tokens are used.`,
		Example: `  # Build every platform
  tzie-tokens build --theme theme/light.json

  # Build only CSS into ./public/tokens
  tzie-tokens build --theme theme/light.json --platform css --output ./public/tokens

  # Rebuild on every change
  tzie-tokens build --theme theme/light.json --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd)
		},
	}

	cmd.Flags().StringP("theme", "t", "", "Theme token file (required)")
	cmd.Flags().StringP("platform", "p", platform.All, "Platform to build: "+strings.Join(platform.Names, "|")+"|"+platform.All)
	cmd.Flags().StringP("output", "o", builder.DefaultOutput, "Output directory")
	cmd.Flags().StringP("base", "b", "", "Base token file (default: embedded base tokens)")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild when the theme or base file changes")
	registerPlatformCompletion(cmd)

	return cmd
}

func registerPlatformCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("platform", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return append(append([]string{}, platform.Names...), platform.All), cobra.ShellCompDirectiveNoFileComp
	})
}

func runBuild(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	req := cmdCtx.Cfg.Request()
	if err := req.Validate(); err != nil {
		return err
	}

	b, err := cmdCtx.NewBuilder()
	if err != nil {
		return err
	}

	if r.EffectiveMode() != output.ModeJSON {
		printBuildPlan(r, req)
	}

	if cmdCtx.Cfg.Watch {
		return watchBuild(cmd.Context(), r, b, req)
	}

	res, err := b.Build(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	return reportBuild(r, req, res)
}

func printBuildPlan(r *output.Renderer, req builder.Request) {
	platformName := req.Platform
	if platformName == "" {
		platformName = platform.All
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Build"))
		r.Println(output.FormatKeyValue("Platforms", platformName))
		r.Println(output.FormatKeyValue("Theme", req.Theme))
		if req.Base != "" {
			r.Println(output.FormatKeyValue("Base", req.Base))
		}
		r.Println(output.FormatKeyValue("Output", req.Output))
		r.Println("")
		return
	}

	styles := r.Styles()
	r.Println(styles.Header1.Render("Building tokens for platform(s): " + platformName))
	r.Println(styles.Muted.Render("Theme:  ") + req.Theme)
	if req.Base != "" {
		r.Println(styles.Muted.Render("Base:   ") + req.Base)
	}
	r.Println(styles.Muted.Render("Output: ") + req.Output)
	r.Println("")
}

func reportBuild(r *output.Renderer, req builder.Request, res *builder.Result) error {
	if r.EffectiveMode() == output.ModeJSON {
		out := BuildOutput{
			Theme:     req.Theme,
			Base:      req.Base,
			Output:    req.Output,
			Platforms: make([]PlatformOutput, 0, len(res.Platforms)),
		}
		for _, p := range res.Platforms {
			out.Platforms = append(out.Platforms, PlatformOutput{Name: p.Name, Files: p.Files})
		}
		return r.JSON(out)
	}

	for _, p := range res.Platforms {
		for _, f := range p.Files {
			r.StatusLine(f, "success", p.Name)
		}
	}
	r.Println("")
	r.Success("Build completed successfully")
	return nil
}

func watchBuild(ctx context.Context, r *output.Renderer, b *builder.Builder, req builder.Request) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return b.Watch(ctx, req, func(res *builder.Result, err error) {
		if err != nil {
			r.Error("build failed: " + err.Error())
			return
		}
		if err := reportBuild(r, req, res); err != nil {
			r.Error(err.Error())
			return
		}
		if r.EffectiveMode() != output.ModeJSON {
			r.Println(r.Styles().Muted.Render("Watching for changes (Ctrl+C to stop)..."))
		}
	})
}
