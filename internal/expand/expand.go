// Package expand splits composite tokens (typography, shadow) into one
// token per property for platforms that cannot hold object values.
package expand

import (
	"fmt"
	"strconv"

	"github.com/1101hirokin/tzie-tokens/internal/token"
)

// TypesMap maps a composite property key to the type of the token it
// expands into. Keys missing from the map use the key itself as type.
type TypesMap map[string]token.Type

// DefaultTypesMap is the property typing used by every bundled platform.
var DefaultTypesMap = TypesMap{
	"fontFamily":    token.TypeFontFamily,
	"fontWeight":    token.TypeFontWeight,
	"fontSize":      token.TypeDimension,
	"lineHeight":    token.TypeLineHeight,
	"letterSpacing": token.TypeDimension,
	"offsetX":       token.TypeDimension,
	"offsetY":       token.TypeDimension,
	"blur":          token.TypeDimension,
	"spread":        token.TypeDimension,
	"color":         token.TypeColor,
}

// Options selects which composites expand.
type Options struct {
	// Include lists the composite types to expand. Empty disables expansion.
	Include []token.Type
	// TypesMap overrides DefaultTypesMap when set.
	TypesMap TypesMap
}

func (o Options) includes(typ token.Type) bool {
	for _, t := range o.Include {
		if t == typ {
			return true
		}
	}
	return false
}

func (o Options) typeOf(key string) token.Type {
	m := o.TypesMap
	if m == nil {
		m = DefaultTypesMap
	}
	if t, ok := m[key]; ok {
		return t
	}
	return token.Type(key)
}

// Tokens returns tokens with every included composite replaced, in place,
// by its property tokens. Tokens that are not expanded are returned as is.
//
// An object value expands to path + key. An array value expands to
// path + index + key with a 1-based index; a single-element array omits
// the index.
func Tokens(tokens []*token.Token, opts Options) ([]*token.Token, error) {
	if len(opts.Include) == 0 {
		return tokens, nil
	}

	out := make([]*token.Token, 0, len(tokens))
	for _, t := range tokens {
		if !opts.includes(t.Type) {
			out = append(out, t)
			continue
		}

		expanded, err := expandToken(t, opts)
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", t.Path, err)
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func expandToken(t *token.Token, opts Options) ([]*token.Token, error) {
	switch val := t.Value.(type) {
	case map[string]any:
		return properties(t, t.Path, val, opts), nil
	case []any:
		if len(val) == 1 {
			m, ok := val[0].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("layer 1 is not an object")
			}
			return properties(t, t.Path, m, opts), nil
		}

		var out []*token.Token
		for i, item := range val {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("layer %d is not an object", i+1)
			}
			out = append(out, properties(t, t.Path.Child(strconv.Itoa(i+1)), m, opts)...)
		}
		return out, nil
	default:
		// Unresolvable or already flattened values pass through.
		return []*token.Token{t}, nil
	}
}

func properties(parent *token.Token, base token.Path, m map[string]any, opts Options) []*token.Token {
	out := make([]*token.Token, 0, len(m))
	for _, key := range token.PropertyKeys(m) {
		child := &token.Token{
			Path:        base.Child(key),
			Type:        opts.typeOf(key),
			Value:       token.CloneValue(m[key]),
			Description: parent.Description,
			FilePath:    parent.FilePath,
			Source:      parent.Source,
			Theme:       parent.Theme,
		}
		child.Original = token.CloneValue(child.Value)
		child.SetAttribute(token.AttrExpandedFrom, parent.Path.String())
		out = append(out, child)
	}
	return out
}
