package token

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the serialization of a token source.
type Format string

// Supported source formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension. Anything that
// is not .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ThemeName derives a theme name from a theme file path:
// "themes/dark.tokens.json" -> "dark".
func ThemeName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, ".tokens")
}

// ParseOptions describes where parsed tokens come from.
type ParseOptions struct {
	FilePath string
	Source   Source
	// Theme overrides the theme name derived from FilePath.
	Theme string
}

// Parse decodes a token document and returns its tokens in document order.
func Parse(data []byte, format Format, opts ParseOptions) ([]*Token, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.FilePath, err)
	}
	return parseDocument(doc, opts)
}

func decode(data []byte, format Format) (any, error) {
	if format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func parseDocument(doc any, opts ParseOptions) ([]*Token, error) {
	root, ok := doc.(*object)
	if !ok {
		return nil, fmt.Errorf("%s: token document must be an object", opts.FilePath)
	}

	theme := ""
	if opts.Source == SourceTheme {
		theme = opts.Theme
		if theme == "" {
			theme = ThemeName(opts.FilePath)
		}
	}

	p := &parser{opts: opts, theme: theme}
	rootType, _ := root.fields["$type"].(string)
	if err := p.walk(root, nil, Type(rootType)); err != nil {
		return nil, fmt.Errorf("%s: %w", opts.FilePath, err)
	}
	return p.tokens, nil
}

type parser struct {
	opts   ParseOptions
	theme  string
	tokens []*Token
}

func (p *parser) walk(group *object, path Path, inherited Type) error {
	for _, key := range group.keys {
		if strings.HasPrefix(key, "$") {
			continue
		}

		childPath := path.Child(key)
		child, ok := group.fields[key].(*object)
		if !ok {
			return fmt.Errorf("%s: expected a group or token object", childPath)
		}

		typ := inherited
		if t, ok := child.fields["$type"].(string); ok && t != "" {
			typ = Type(t)
		}

		if isTokenObject(child) {
			p.tokens = append(p.tokens, p.newToken(childPath, child, typ))
			continue
		}

		if err := p.walk(child, childPath, typ); err != nil {
			return err
		}
	}
	return nil
}

func isTokenObject(o *object) bool {
	return o.has("$value") || o.has("value")
}

func (p *parser) newToken(path Path, o *object, typ Type) *Token {
	raw, ok := o.fields["$value"]
	if !ok {
		raw = o.fields["value"]
		if legacy, ok := o.fields["type"].(string); ok && typ == "" {
			typ = Type(legacy)
		}
	}

	desc, _ := o.fields["$description"].(string)
	if desc == "" {
		desc, _ = o.fields["description"].(string)
	}

	value := plain(raw)
	return &Token{
		Path:        path,
		Type:        typ,
		Value:       value,
		Original:    CloneValue(value),
		Description: desc,
		FilePath:    p.opts.FilePath,
		Source:      p.opts.Source,
		Theme:       p.theme,
	}
}
