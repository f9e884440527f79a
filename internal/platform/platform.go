// Package platform holds the declarative build configuration of every
// output platform.
package platform

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/1101hirokin/tzie-tokens/internal/expand"
	"github.com/1101hirokin/tzie-tokens/internal/format"
	"github.com/1101hirokin/tzie-tokens/internal/token"
	"github.com/1101hirokin/tzie-tokens/internal/transform"
)

// ErrUnknownPlatform is returned for a platform name that has no config.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform names.
const (
	JSON    = "json"
	JS      = "js"
	CSS     = "css"
	Compose = "compose"
	IOS     = "ios"

	// All selects every platform.
	All = "all"
)

// DefaultPrefix is prepended to every generated name.
const DefaultPrefix = "tz"

// DefaultPackageName is the Kotlin package of the compose output.
const DefaultPackageName = "com.tzie.tokens"

// Names lists every platform in build order.
var Names = []string{JSON, JS, CSS, Compose, IOS}

// File is one output of a platform.
type File struct {
	Destination string
	Format      string
	// Options is decoded into format.FileOptions at build time.
	Options map[string]any
}

// Config describes how one platform is built.
type Config struct {
	Name           string
	Prefix         string
	TransformGroup string
	// Transforms run after TransformGroup, in order.
	Transforms []string
	// BuildPath is the directory files are written to.
	BuildPath string
	Expand    expand.Options
	Files     []File
}

// Options tune the default configs.
type Options struct {
	// Prefix overrides DefaultPrefix when non-nil. An empty string
	// turns the prefix off.
	Prefix *string
	// PackageName overrides DefaultPackageName when set.
	PackageName string
}

var composites = []token.Type{token.TypeTypography, token.TypeShadow}

// Default returns the config of every platform, writing under buildPath.
func Default(buildPath string, opts Options) map[string]Config {
	prefix := DefaultPrefix
	if opts.Prefix != nil {
		prefix = *opts.Prefix
	}
	pkg := opts.PackageName
	if pkg == "" {
		pkg = DefaultPackageName
	}

	expandComposites := expand.Options{Include: composites, TypesMap: expand.DefaultTypesMap}
	dir := func(name string) string { return filepath.Join(buildPath, name) }

	return map[string]Config{
		JSON: {
			Name:           JSON,
			Prefix:         prefix,
			TransformGroup: transform.GroupTokensStudio,
			BuildPath:      dir(JSON),
			Files:          []File{{Destination: "tokens.json", Format: format.JSONThemed}},
		},
		JS: {
			Name:           JS,
			Prefix:         prefix,
			TransformGroup: transform.GroupTokensStudio,
			Transforms:     []string{transform.NameCamelElevationLayer},
			BuildPath:      dir(JS),
			Expand:         expandComposites,
			Files: []File{
				{Destination: "tokens.js", Format: format.JavaScriptThemed},
				{Destination: "tokens.d.ts", Format: format.TypeScriptThemed},
			},
		},
		CSS: {
			Name:           CSS,
			Prefix:         prefix,
			TransformGroup: transform.GroupTokensStudio,
			Transforms:     []string{transform.NameKebabElevationLayer},
			BuildPath:      dir(CSS),
			Files: []File{{
				Destination: "tokens.css",
				Format:      format.CSSUnifiedThemes,
				Options:     map[string]any{"outputReferences": true, "themeOnly": true},
			}},
		},
		Compose: {
			Name:           Compose,
			Prefix:         prefix,
			TransformGroup: transform.GroupTokensStudio,
			Transforms: []string{
				transform.NameCamelElevationLayer,
				transform.ColorCompose,
				transform.SizeComposeDp,
			},
			BuildPath: dir(Compose),
			Expand:    expandComposites,
			Files: []File{{
				Destination: "Tokens.kt",
				Format:      format.ComposeThemed,
				Options:     map[string]any{"packageName": pkg},
			}},
		},
		IOS: {
			Name:           IOS,
			Prefix:         prefix,
			TransformGroup: transform.GroupTokensStudio,
			Transforms: []string{
				transform.NameCamelElevationLayer,
				transform.ColorUIColor,
				transform.ContentSwift,
				transform.AssetSwift,
				transform.SizeSwiftCGFloat,
			},
			BuildPath: dir(IOS),
			Expand:    expandComposites,
			Files:     []File{{Destination: "DesignTokens.swift", Format: format.SwiftThemed}},
		},
	}
}

// Resolve returns the configs selected by name ("all" or one platform)
// in build order.
func Resolve(name, buildPath string, opts Options) ([]Config, error) {
	defaults := Default(buildPath, opts)
	if name == "" || name == All {
		out := make([]Config, 0, len(Names))
		for _, n := range Names {
			out = append(out, defaults[n])
		}
		return out, nil
	}

	cfg, ok := defaults[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (expected one of %v or %q)", ErrUnknownPlatform, name, Names, All)
	}
	return []Config{cfg}, nil
}

// ApplyFileOptions merges extra options into every file of the named
// platform. Later keys win.
func ApplyFileOptions(cfgs []Config, overrides map[string]map[string]any) {
	for i := range cfgs {
		extra, ok := overrides[cfgs[i].Name]
		if !ok {
			continue
		}
		for j := range cfgs[i].Files {
			merged := make(map[string]any, len(cfgs[i].Files[j].Options)+len(extra))
			for k, v := range cfgs[i].Files[j].Options {
				merged[k] = v
			}
			for k, v := range extra {
				merged[k] = v
			}
			cfgs[i].Files[j].Options = merged
		}
	}
}
