package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1101hirokin/tzie-tokens/internal/platform"
)

// chdir switches into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func buildFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "config file")
	flags.String("theme", "", "theme file")
	flags.String("output", "", "output directory")
	flags.String("platform", "", "platform")
	flags.String("output-format", "", "output format")
	flags.String("package-name", "", "package name")
	flags.Bool("verbose", false, "verbose")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Empty(t, GetConfigFileUsed())
	assert.Empty(t, cfg.Theme)
	assert.Equal(t, platform.All, cfg.Platform)
	assert.Equal(t, platform.DefaultPrefix, cfg.Prefix)
	assert.Equal(t, platform.DefaultPackageName, cfg.PackageName)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.True(t, filepath.IsAbs(cfg.Output), "default output is anchored at the project root")
}

func TestLoadConfig_FileFoundUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	writeConfig(t, root, `theme: theme/light.json
output: build
prefix: acme
platforms:
  css:
    options:
      themeOnly: false
      selector: ".acme"
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))
	chdir(t, nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	root, err = filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(cfg.ProjectRoot)
	require.NoError(t, err)
	assert.Equal(t, root, gotRoot)

	assert.Equal(t, filepath.Join(cfg.ProjectRoot, "theme", "light.json"), cfg.Theme)
	assert.Equal(t, filepath.Join(cfg.ProjectRoot, "build"), cfg.Output)
	assert.Equal(t, "acme", cfg.Prefix)
	assert.Equal(t, map[string]map[string]any{
		platform.CSS: {"themeOnly": false, "selector": ".acme"},
	}, cfg.FileOptions())
}

func TestLoadConfig_EmptyPrefixFromFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	writeConfig(t, dir, "prefix: \"\"\n")
	chdir(t, dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Prefix)

	opts := cfg.PlatformOptions()
	require.NotNil(t, opts.Prefix)
	assert.Empty(t, *opts.Prefix)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("platform: css\n"), 0600))
	chdir(t, t.TempDir())

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, platform.CSS, cfg.Platform)
	assert.Equal(t, cfgPath, GetConfigFileUsed())

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	writeConfig(t, dir, "package_name: from.file\n")
	chdir(t, dir)
	t.Setenv("TZIE_PACKAGE_NAME", "from.env")

	flags := buildFlags()
	require.NoError(t, flags.Set("package-name", "from.flag"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "from.flag", cfg.PackageName, "flag value should override config file and env var")
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	writeConfig(t, dir, "package_name: from.file\n")
	chdir(t, dir)
	t.Setenv("TZIE_PACKAGE_NAME", "from.env")

	cfg, err := LoadConfig("", buildFlags())
	require.NoError(t, err)
	assert.Equal(t, "from.env", cfg.PackageName, "env var should be used when flag is not set")
}

func TestLoadConfig_DotEnv(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	writeConfig(t, dir, "prefix: file\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TZIE_PREFIX=dotenv\n"), 0600))
	chdir(t, dir)
	// godotenv sets the variable for the process; drop it afterwards.
	t.Cleanup(func() { _ = os.Unsetenv("TZIE_PREFIX") })

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "dotenv", cfg.Prefix)
}

func TestLoadConfig_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TZIE_PREFIX=dotenv\n"), 0600))
	chdir(t, dir)
	t.Setenv("TZIE_PREFIX", "shell")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "shell", cfg.Prefix)
}

func TestLoadConfig_FlagPathsStayRelative(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	writeConfig(t, dir, "theme: from-file.json\n")
	chdir(t, dir)

	flags := buildFlags()
	require.NoError(t, flags.Set("theme", "theme/dark.json"))
	require.NoError(t, flags.Set("output", "out"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "theme/dark.json", cfg.Theme)
	assert.Equal(t, "out", cfg.Output)
}

func TestLoadConfig_ExpandsEnvVarsInPaths(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	writeConfig(t, dir, "theme: ${TOKENS_DIR}/light.json\n")
	chdir(t, dir)
	t.Setenv("TOKENS_DIR", "/srv/tokens")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "/srv/tokens/light.json", cfg.Theme)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"unknown platform", "platform: android\n", "unknown platform"},
		{"unknown output format", "output_format: html\n", "invalid output format"},
		{"unknown platform override", "platforms:\n  web:\n    options: {}\n", "platforms"},
		{"unknown file option", "platforms:\n  css:\n    options:\n      colour: red\n", "platforms.css.options"},
		{"malformed yaml", "theme: [\n", "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			chdir(t, dir)

			_, err := LoadConfig("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR_ONE", "value_one")
	t.Setenv("TEST_VAR_TWO", "value_two")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single variable", "${TEST_VAR_ONE}", "value_one"},
		{"multiple variables", "${TEST_VAR_ONE}/${TEST_VAR_TWO}", "value_one/value_two"},
		{"unset variable stays as-is", "${UNSET_VARIABLE}", "${UNSET_VARIABLE}"},
		{"no variables", "plain string", "plain string"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	assert.NotNil(t, GetLogger(ctx), "missing logger falls back to a discard logger")
	assert.Equal(t, Default(), GetConfig(ctx))

	cfg := &Config{Theme: "light.json"}
	ctx = context.WithValue(ctx, ConfigKey(), cfg)
	assert.Same(t, cfg, GetConfig(ctx))
}

func TestConfig_Request(t *testing.T) {
	cfg := &Config{Theme: "t.json", Base: "b.json", Output: "dist", Platform: "css", Prefix: "x", PackageName: "p"}
	req := cfg.Request()
	assert.Equal(t, "t.json", req.Theme)
	assert.Equal(t, "b.json", req.Base)
	assert.Equal(t, "dist", req.Output)
	assert.Equal(t, "css", req.Platform)
	opts := cfg.PlatformOptions()
	require.NotNil(t, opts.Prefix)
	assert.Equal(t, "x", *opts.Prefix)
	assert.Equal(t, "p", opts.PackageName)
	assert.Nil(t, cfg.FileOptions())
}
