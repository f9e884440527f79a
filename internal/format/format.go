// Package format renders transformed tokens into platform source files.
package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/1101hirokin/tzie-tokens/internal/token"
)

// Format names understood by Builtin.
const (
	JSONThemed         = "json/themed"
	JavaScriptThemed   = "javascript/themed"
	TypeScriptThemed   = "typescript/themed-declarations"
	CSSUnifiedThemes   = "css/unified-themes"
	ComposeThemed      = "compose/themed"
	SwiftThemed        = "ios-swift/themed"
	generatedByComment = "Do not edit directly, this file was generated by tzie-tokens."
)

var (
	// ErrUnknownFormat is returned for a format name with no formatter.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrNameCollision is returned when two tokens emit the same identifier
	// in one scope of a file.
	ErrNameCollision = errors.New("identifier collision")
)

// FileOptions are the per-file settings a formatter understands.
type FileOptions struct {
	// OutputReferences emits references to tokens in the same file as
	// references instead of resolved values.
	OutputReferences bool `mapstructure:"outputReferences"`
	// ThemeOnly omits base tokens from the output.
	ThemeOnly bool `mapstructure:"themeOnly"`
	// PackageName is the Kotlin package.
	PackageName string `mapstructure:"packageName"`
	// ClassName is the outer Kotlin object or Swift enum.
	ClassName string `mapstructure:"className"`
	// Selector is the CSS selector for base tokens. Default ":root".
	Selector string `mapstructure:"selector"`
}

// DecodeOptions converts loosely typed configuration into FileOptions.
// Unknown keys are an error.
func DecodeOptions(raw map[string]any) (FileOptions, error) {
	var opts FileOptions
	if len(raw) == 0 {
		return opts, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return opts, err
	}
	if err := dec.Decode(raw); err != nil {
		return opts, fmt.Errorf("decode file options: %w", err)
	}
	return opts, nil
}

// File is one output file of a platform.
type File struct {
	// Destination is the file name relative to the platform directory.
	Destination string
	// Tokens are the platform's transformed tokens grouped by source.
	Tokens  token.Grouped
	Options FileOptions
}

// Formatter renders a file.
type Formatter func(f *File) ([]byte, error)

// Set maps format names to formatters.
type Set map[string]Formatter

// Get returns the formatter registered under name.
func (s Set) Get(name string) (Formatter, error) {
	fn, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
	return fn, nil
}

// Names returns the registered format names, sorted.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns every bundled formatter.
func Builtin() Set {
	return Set{
		JSONThemed:       formatJSON,
		JavaScriptThemed: formatJavaScript,
		TypeScriptThemed: formatTypeScript,
		CSSUnifiedThemes: formatCSS,
		ComposeThemed:    formatCompose,
		SwiftThemed:      formatSwift,
	}
}

// scope is one block of emitted identifiers (the base block or a theme).
type scope struct {
	// name is the theme name, empty for the base scope.
	name   string
	tokens []*token.Token
	byName map[string]*token.Token
}

// newScope indexes tokens by emitted name and rejects collisions and
// unnamed tokens.
func newScope(label string, tokens []*token.Token, reserved ...string) (*scope, error) {
	s := &scope{tokens: tokens, byName: make(map[string]*token.Token, len(tokens))}
	for _, t := range tokens {
		if t.Name == "" {
			return nil, fmt.Errorf("%s: token %s has no name", label, t.Path)
		}
		for _, r := range reserved {
			if t.Name == r {
				return nil, fmt.Errorf("%s: %w: %q is reserved (token %s)", label, ErrNameCollision, t.Name, t.Path)
			}
		}
		if prev, ok := s.byName[t.Name]; ok {
			return nil, fmt.Errorf("%s: %w: %q is produced by %s and %s", label, ErrNameCollision, t.Name, prev.Path, t.Path)
		}
		s.byName[t.Name] = t
	}
	return s, nil
}

// scopes builds the base scope and one scope per theme in theme order.
func scopes(g token.Grouped, reserved ...string) (*scope, []*scope, error) {
	base, err := newScope("base", g.Base, reserved...)
	if err != nil {
		return nil, nil, err
	}
	themes := make([]*scope, 0, len(g.ThemeNames))
	for _, name := range g.ThemeNames {
		s, err := newScope("theme "+name, g.Themes[name], reserved...)
		if err != nil {
			return nil, nil, err
		}
		s.name = name
		themes = append(themes, s)
	}
	return base, themes, nil
}

func isLiteral(t *token.Token) bool {
	return t.Attribute(token.AttrLiteral) == "true"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// jsonValue renders v as compact JSON without HTML escaping.
func jsonValue(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// plainString renders a scalar for formats without quoting rules.
func plainString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case float64:
		return formatNumber(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case nil:
		return "", nil
	default:
		return jsonValue(val)
	}
}

func invalidIdentifier(t *token.Token) error {
	return fmt.Errorf("token %s: %q is not a valid identifier", t.Path, t.Name)
}
