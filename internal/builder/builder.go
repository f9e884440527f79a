// Package builder runs the token pipeline: load, resolve, then expand,
// transform and format once per platform.
package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/1101hirokin/tzie-tokens/internal/expand"
	"github.com/1101hirokin/tzie-tokens/internal/format"
	"github.com/1101hirokin/tzie-tokens/internal/platform"
	"github.com/1101hirokin/tzie-tokens/internal/resolve"
	"github.com/1101hirokin/tzie-tokens/internal/token"
	"github.com/1101hirokin/tzie-tokens/internal/transform"
)

// DefaultOutput is the output directory used when a request names none.
const DefaultOutput = "./dist"

// Options configures a Builder.
type Options struct {
	// Registry supplies transforms. Nil means transform.Builtin().
	Registry *transform.Registry
	// Formats supplies formatters. Nil means format.Builtin().
	Formats format.Set
	Logger  *slog.Logger
	// Platform tunes the default platform configs.
	Platform platform.Options
	// FileOptions are merged into the file options of the named platform.
	FileOptions map[string]map[string]any
}

// Request describes one build.
type Request struct {
	// Theme is the theme token file. Required.
	Theme string
	// Base is the base token file. Empty uses the embedded defaults.
	Base string
	// Output is the root output directory.
	Output string
	// Platform is a platform name or "all".
	Platform string
}

// PlatformResult lists the files written for one platform.
type PlatformResult struct {
	Name  string
	Files []string
}

// Result is the outcome of a build, in platform build order.
type Result struct {
	Platforms []PlatformResult
}

// Files returns every written file.
func (r *Result) Files() []string {
	var out []string
	for _, p := range r.Platforms {
		out = append(out, p.Files...)
	}
	return out
}

// Builder builds token artifacts.
type Builder struct {
	registry *transform.Registry
	formats  format.Set
	logger   *slog.Logger
	opts     Options
	loader   *token.Loader
}

// New creates a Builder.
func New(opts Options) (*Builder, error) {
	loader, err := token.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to create token loader: %w", err)
	}

	b := &Builder{
		registry: opts.Registry,
		formats:  opts.Formats,
		logger:   opts.Logger,
		opts:     opts,
		loader:   loader,
	}
	if b.registry == nil {
		b.registry = transform.Builtin()
	}
	if b.formats == nil {
		b.formats = format.Builtin()
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return b, nil
}

// Validate checks that the request's token files exist.
func (r Request) Validate() error {
	if r.Theme == "" {
		return errors.New("--theme option is required")
	}
	if _, err := os.Stat(r.Theme); err != nil {
		return fmt.Errorf("Theme file not found: %s", r.Theme) //nolint:staticcheck // user-facing message
	}
	if r.Base != "" {
		if _, err := os.Stat(r.Base); err != nil {
			return fmt.Errorf("Base tokens file not found: %s", r.Base) //nolint:staticcheck // user-facing message
		}
	}
	return nil
}

// Load validates the request, loads base then theme tokens and resolves
// references.
func (b *Builder) Load(req Request) (*token.Dictionary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var base []*token.Token
	var err error
	if req.Base == "" {
		base, err = b.loader.LoadDefaultBase()
	} else {
		base, err = b.loader.LoadFile(req.Base, token.SourceBase)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load base tokens: %w", err)
	}

	theme, err := b.loader.LoadFile(req.Theme, token.SourceTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme tokens: %w", err)
	}

	dict := token.NewDictionary(base...)
	for _, t := range theme {
		dict.Add(t)
	}
	if err := resolve.Dictionary(dict); err != nil {
		return nil, fmt.Errorf("failed to resolve references: %w", err)
	}

	b.logger.Debug("tokens loaded", "base", len(base), "theme", len(theme))
	return dict, nil
}

// Platforms returns the configs selected by the request.
func (b *Builder) Platforms(req Request) ([]platform.Config, error) {
	output := req.Output
	if output == "" {
		output = DefaultOutput
	}
	cfgs, err := platform.Resolve(req.Platform, output, b.opts.Platform)
	if err != nil {
		return nil, err
	}
	platform.ApplyFileOptions(cfgs, b.opts.FileOptions)
	return cfgs, nil
}

// Transform runs one platform's expansion and transform chain on a copy
// of dict and returns the resulting tokens.
func (b *Builder) Transform(dict *token.Dictionary, cfg platform.Config) ([]*token.Token, error) {
	chain, err := b.registry.Chain(cfg.TransformGroup, cfg.Transforms...)
	if err != nil {
		return nil, fmt.Errorf("platform %s: %w", cfg.Name, err)
	}

	tokens, err := expand.Tokens(dict.Clone().All(), cfg.Expand)
	if err != nil {
		return nil, fmt.Errorf("platform %s: %w", cfg.Name, err)
	}
	if err := transform.Run(tokens, chain, transform.Options{Prefix: cfg.Prefix}); err != nil {
		return nil, fmt.Errorf("platform %s: %w", cfg.Name, err)
	}
	return tokens, nil
}

// Build runs the whole pipeline and writes every platform's files.
// Platforms build concurrently; the first failure cancels the rest.
func (b *Builder) Build(ctx context.Context, req Request) (*Result, error) {
	cfgs, err := b.Platforms(req)
	if err != nil {
		return nil, err
	}
	dict, err := b.Load(req)
	if err != nil {
		return nil, err
	}

	results := make([]PlatformResult, len(cfgs))
	g, gctx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		g.Go(func() error {
			files, err := b.buildPlatform(gctx, dict, cfg)
			if err != nil {
				return err
			}
			results[i] = PlatformResult{Name: cfg.Name, Files: files}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{Platforms: results}, nil
}

func (b *Builder) buildPlatform(ctx context.Context, dict *token.Dictionary, cfg platform.Config) ([]string, error) {
	log := b.logger.With("platform", cfg.Name)
	log.Debug("building platform", "transforms", cfg.Transforms, "files", len(cfg.Files))

	tokens, err := b.Transform(dict, cfg)
	if err != nil {
		return nil, err
	}
	grouped := token.GroupBySource(tokens)

	if err := os.MkdirAll(cfg.BuildPath, 0o755); err != nil { //nolint:gosec // build output is world-readable
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := make([]string, 0, len(cfg.Files))
	for _, f := range cfg.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fn, err := b.formats.Get(f.Format)
		if err != nil {
			return nil, fmt.Errorf("platform %s: %w", cfg.Name, err)
		}
		opts, err := format.DecodeOptions(f.Options)
		if err != nil {
			return nil, fmt.Errorf("platform %s, file %s: %w", cfg.Name, f.Destination, err)
		}

		data, err := fn(&format.File{Destination: f.Destination, Tokens: grouped, Options: opts})
		if err != nil {
			return nil, fmt.Errorf("platform %s, file %s: %w", cfg.Name, f.Destination, err)
		}

		path := filepath.Join(cfg.BuildPath, f.Destination)
		if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // build output is world-readable
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Debug("wrote file", "path", path, "bytes", len(data))
		written = append(written, path)
	}
	return written, nil
}
