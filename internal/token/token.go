// Package token provides the design token model and DTCG source loading.
//
// A token file is a tree of groups and tokens. A token is any object that
// carries a "$value" (or the legacy "value") key; every other object is a
// group. "$type" is inherited from the nearest enclosing group.
package token

import (
	"sort"
	"strconv"
	"strings"
)

// Type is the DTCG type of a token.
type Type string

// Token types used by the transforms and expanders.
const (
	TypeColor         Type = "color"
	TypeDimension     Type = "dimension"
	TypeFontFamily    Type = "fontFamily"
	TypeFontWeight    Type = "fontWeight"
	TypeFontSize      Type = "fontSize"
	TypeLineHeight    Type = "lineHeight"
	TypeLetterSpacing Type = "letterSpacing"
	TypeSpacing       Type = "spacing"
	TypeBorderRadius  Type = "borderRadius"
	TypeBorderWidth   Type = "borderWidth"
	TypeOpacity       Type = "opacity"
	TypeNumber        Type = "number"
	TypeTypography    Type = "typography"
	TypeShadow        Type = "shadow"
	TypeContent       Type = "content"
	TypeAsset         Type = "asset"
)

// Source identifies which input a token was loaded from.
type Source int

const (
	// SourceBase marks tokens from the base tokens file.
	SourceBase Source = iota
	// SourceTheme marks tokens from a theme file.
	SourceTheme
)

func (s Source) String() string {
	if s == SourceTheme {
		return "theme"
	}
	return "base"
}

// Path is the ordered list of namespace segments identifying a token,
// outermost first.
type Path []string

// PathOf builds a Path from arbitrary segments, stringifying non-string
// values (array indices, numeric keys).
func PathOf(segments ...any) Path {
	p := make(Path, len(segments))
	for i, s := range segments {
		switch v := s.(type) {
		case string:
			p[i] = v
		case int:
			p[i] = strconv.Itoa(v)
		case float64:
			p[i] = strconv.FormatFloat(v, 'f', -1, 64)
		case interface{ String() string }:
			p[i] = v.String()
		default:
			panic("token: unsupported path segment type")
		}
	}
	return p
}

// ParsePath splits a dotted reference path ("color.base.red").
func ParsePath(dotted string) Path {
	return Path(strings.Split(dotted, "."))
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Clone returns a copy of the path that shares no storage with p.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Child returns a new path with seg appended.
func (p Path) Child(seg string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Token is a single named design value.
type Token struct {
	// Path locates the token in the hierarchy.
	Path Path
	// Name is the platform identifier, set by a name transform.
	Name string
	Type Type
	// Value is the current value. After resolution it holds no references;
	// after transforms it holds the platform literal.
	Value any
	// Original is the value as written in the source file.
	Original    any
	Description string
	// Comment is set by ts/descriptionToComment.
	Comment  string
	FilePath string
	Source   Source
	// Theme is the theme name for SourceTheme tokens.
	Theme string
	// RefersTo is the target of a whole-value reference, if any.
	RefersTo Path
	// Attributes carries free-form metadata (e.g. "expanded-from").
	Attributes map[string]string
}

// Clone returns a deep copy of the token.
func (t *Token) Clone() *Token {
	c := *t
	c.Path = t.Path.Clone()
	c.Value = CloneValue(t.Value)
	c.Original = CloneValue(t.Original)
	if t.RefersTo != nil {
		c.RefersTo = t.RefersTo.Clone()
	}
	if t.Attributes != nil {
		c.Attributes = make(map[string]string, len(t.Attributes))
		for k, v := range t.Attributes {
			c.Attributes[k] = v
		}
	}
	return &c
}

// IsComposite reports whether the value is an object or array.
func (t *Token) IsComposite() bool {
	switch t.Value.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

// CloneValue deep-copies a decoded JSON value.
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = CloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Attribute keys set by the pipeline.
const (
	// AttrLiteral marks a value that is already platform source code.
	AttrLiteral = "literal"
	// AttrExpandedFrom holds the dotted path of the composite token an
	// expanded token came from.
	AttrExpandedFrom = "expanded-from"
)

// SetAttribute sets a metadata attribute, allocating the map on first use.
func (t *Token) SetAttribute(key, value string) {
	if t.Attributes == nil {
		t.Attributes = make(map[string]string)
	}
	t.Attributes[key] = value
}

// Attribute returns a metadata attribute or "".
func (t *Token) Attribute(key string) string {
	return t.Attributes[key]
}

// knownProperties orders the keys of typography and shadow values.
var knownProperties = []string{
	"fontFamily", "fontWeight", "fontSize", "lineHeight", "letterSpacing",
	"paragraphSpacing", "textCase", "textDecoration",
	"type", "color", "offsetX", "offsetY", "blur", "spread", "inset",
}

// PropertyKeys returns the keys of a composite value in a stable order:
// known keys first, then the rest alphabetically.
func PropertyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range knownProperties {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(m)-len(keys))
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
