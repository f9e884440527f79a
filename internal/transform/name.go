package transform

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/1101hirokin/tzie-tokens/internal/token"
)

// ErrEmptyName is returned when a path sanitizes to zero words.
var ErrEmptyName = errors.New("token path produces an empty name")

// Convention is an identifier casing rule.
type Convention int

const (
	// Kebab joins lowercase words with hyphens: "semantic-surface-primary".
	Kebab Convention = iota
	// Camel lowercases the first word and capitalizes the rest:
	// "semanticSurfacePrimary".
	Camel
)

func (c Convention) String() string {
	switch c {
	case Kebab:
		return "kebab"
	case Camel:
		return "camel"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// elevationAliases maps the layer index found two segments after
// "elevation" to its label.
var elevationAliases = map[string]string{
	"0": "core",
	"1": "core",
	"2": "cast",
}

// AliasLayer replaces the elevation layer index with its label. It looks
// only at the first "elevation" segment and the segment two positions
// after it; every other path is returned as is. The input is never
// modified.
func AliasLayer(path token.Path) token.Path {
	idx := -1
	for i, seg := range path {
		if seg == "elevation" {
			idx = i
			break
		}
	}
	if idx == -1 || len(path) <= idx+2 {
		return path
	}

	alias, ok := elevationAliases[path[idx+2]]
	if !ok {
		return path
	}

	out := path.Clone()
	out[idx+2] = alias
	return out
}

// SanitizeSegment splits a segment into lowercase alphanumeric words.
// Every run of characters outside [A-Za-z0-9] acts as one separator.
func SanitizeSegment(segment string) []string {
	var words []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}

	for i := 0; i < len(segment); i++ {
		c := segment[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		default:
			flush()
		}
	}
	flush()
	return words
}

// BuildName joins the sanitized words of every path segment using the
// given convention.
func BuildName(path token.Path, convention Convention) (string, error) {
	var words []string
	for _, seg := range path {
		words = append(words, SanitizeSegment(seg)...)
	}
	if len(words) == 0 {
		return "", fmt.Errorf("%q: %w", path.String(), ErrEmptyName)
	}

	switch convention {
	case Kebab:
		return strings.Join(words, "-"), nil
	case Camel:
		var b strings.Builder
		b.WriteString(words[0])
		for _, w := range words[1:] {
			b.WriteString(Capitalize(w))
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("unsupported naming convention %s", convention)
	}
}

// Capitalize uppercases the first character and leaves the rest alone.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// WithPrefix attaches a prefix to a built name. Kebab names get
// "prefix-name"; camel names get prefix followed by the capitalized
// name. The prefix itself is never re-cased.
func WithPrefix(name, prefix string, convention Convention) string {
	if prefix == "" {
		return name
	}
	if convention == Kebab {
		return prefix + "-" + name
	}
	return prefix + Capitalize(name)
}

// KebabElevationLayer is the name/kebab-elevation-layer transform.
func KebabElevationLayer(path token.Path, opts Options) (string, error) {
	return elevationLayerName(path, opts, Kebab)
}

// CamelElevationLayer is the name/camel-elevation-layer transform.
func CamelElevationLayer(path token.Path, opts Options) (string, error) {
	return elevationLayerName(path, opts, Camel)
}

func elevationLayerName(path token.Path, opts Options, convention Convention) (string, error) {
	name, err := BuildName(AliasLayer(path), convention)
	if err != nil {
		return "", err
	}
	return WithPrefix(name, opts.Prefix, convention), nil
}

// plainName builds a name without layer aliasing (name/kebab, name/camel).
func plainName(convention Convention) NameFunc {
	return func(path token.Path, opts Options) (string, error) {
		name, err := BuildName(path, convention)
		if err != nil {
			return "", err
		}
		return WithPrefix(name, opts.Prefix, convention), nil
	}
}
