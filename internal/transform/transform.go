// Package transform provides the naming and value transforms applied to
// tokens before they are formatted for a platform.
//
// Transforms are plain values held in a Registry that the builder
// receives at construction; nothing registers itself globally. Every
// transform is a pure function of the token (and Options) it is given,
// so a Registry can be shared by concurrent platform builds.
package transform

import (
	"fmt"

	"github.com/1101hirokin/tzie-tokens/internal/token"
)

// Options is the per-platform configuration passed to every transform.
type Options struct {
	// Prefix is prepended to generated names. Empty means no prefix.
	Prefix string
}

// Kind is the part of a token a transform changes.
type Kind int

const (
	// KindName transforms set Token.Name.
	KindName Kind = iota
	// KindValue transforms replace Token.Value.
	KindValue
	// KindAttribute transforms set metadata such as Token.Comment.
	KindAttribute
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindValue:
		return "value"
	case KindAttribute:
		return "attribute"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Transform is one named step of the transform pipeline.
type Transform interface {
	Name() string
	Kind() Kind
	// Match reports whether the transform applies to t.
	Match(t *token.Token) bool
	// Apply mutates t. It is only called when Match returned true.
	Apply(t *token.Token, opts Options) error
}

// NameFunc builds an identifier from a token path.
type NameFunc func(path token.Path, opts Options) (string, error)

// ValueFunc computes a new token value.
type ValueFunc func(t *token.Token, opts Options) (any, error)

// MatchFunc selects the tokens a transform applies to.
type MatchFunc func(t *token.Token) bool

type nameTransform struct {
	name string
	fn   NameFunc
}

// NewNameTransform wraps fn as a transform that sets Token.Name.
func NewNameTransform(name string, fn NameFunc) Transform {
	return &nameTransform{name: name, fn: fn}
}

func (n *nameTransform) Name() string {
	return n.name
}

func (n *nameTransform) Kind() Kind {
	return KindName
}

func (n *nameTransform) Match(*token.Token) bool {
	return true
}

func (n *nameTransform) Apply(t *token.Token, opts Options) error {
	name, err := n.fn(t.Path, opts)
	if err != nil {
		return err
	}
	t.Name = name
	return nil
}

type valueTransform struct {
	name    string
	match   MatchFunc
	fn      ValueFunc
	literal bool
}

// NewValueTransform wraps match and fn as a value transform. When literal
// is true the produced value is platform source code (e.g. "16.dp") and
// formatters emit it verbatim.
func NewValueTransform(name string, match MatchFunc, fn ValueFunc, literal bool) Transform {
	return &valueTransform{name: name, match: match, fn: fn, literal: literal}
}

func (v *valueTransform) Name() string {
	return v.name
}

func (v *valueTransform) Kind() Kind {
	return KindValue
}

func (v *valueTransform) Match(t *token.Token) bool {
	return v.match == nil || v.match(t)
}

func (v *valueTransform) Apply(t *token.Token, opts Options) error {
	value, err := v.fn(t, opts)
	if err != nil {
		return err
	}
	t.Value = value
	if v.literal {
		t.SetAttribute(token.AttrLiteral, "true")
	}
	return nil
}

type attributeTransform struct {
	name  string
	match MatchFunc
	fn    func(t *token.Token)
}

// NewAttributeTransform wraps fn as a metadata transform.
func NewAttributeTransform(name string, match MatchFunc, fn func(t *token.Token)) Transform {
	return &attributeTransform{name: name, match: match, fn: fn}
}

func (a *attributeTransform) Name() string {
	return a.name
}

func (a *attributeTransform) Kind() Kind {
	return KindAttribute
}

func (a *attributeTransform) Match(t *token.Token) bool {
	return a.match == nil || a.match(t)
}

func (a *attributeTransform) Apply(t *token.Token, _ Options) error {
	a.fn(t)
	return nil
}

// Run applies transforms to every token in order. Each token goes through
// the whole chain before the next one starts.
func Run(tokens []*token.Token, transforms []Transform, opts Options) error {
	for _, t := range tokens {
		for _, tr := range transforms {
			if !tr.Match(t) {
				continue
			}
			if err := tr.Apply(t, opts); err != nil {
				return fmt.Errorf("transform %s on %s: %w", tr.Name(), t.Path, err)
			}
		}
	}
	return nil
}
