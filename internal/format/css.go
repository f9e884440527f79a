package format

import (
	"fmt"
	"strings"

	"github.com/1101hirokin/tzie-tokens/internal/token"
)

const defaultCSSSelector = ":root"

// formatCSS writes base tokens under the base selector and each theme
// under [data-theme="<theme>"].
//
// With OutputReferences a whole-value reference becomes var(--name) when
// the referenced token is emitted in the same block or in the base block.
// Any other reference keeps its resolved value.
func formatCSS(f *File) ([]byte, error) {
	base, themes, err := scopes(f.Tokens)
	if err != nil {
		return nil, err
	}

	selector := f.Options.Selector
	if selector == "" {
		selector = defaultCSSSelector
	}

	var emittedBase *scope
	if !f.Options.ThemeOnly {
		emittedBase = base
	}

	var b strings.Builder
	b.WriteString("/**\n * " + generatedByComment + "\n */\n")

	if emittedBase != nil && len(base.tokens) > 0 {
		b.WriteString("\n" + selector + " {\n")
		if err := writeCSSBlock(&b, base, nil, f.Options); err != nil {
			return nil, err
		}
		b.WriteString("}\n")
	}

	for _, s := range themes {
		fmt.Fprintf(&b, "\n[data-theme=%q] {\n", s.name)
		if err := writeCSSBlock(&b, s, emittedBase, f.Options); err != nil {
			return nil, err
		}
		b.WriteString("}\n")
	}
	return []byte(b.String()), nil
}

func writeCSSBlock(b *strings.Builder, s, fallback *scope, opts FileOptions) error {
	byPath := pathIndex(s, fallback)

	for _, t := range s.tokens {
		val, err := cssValue(t, byPath, opts)
		if err != nil {
			return fmt.Errorf("token %s: %w", t.Path, err)
		}
		b.WriteString("  --" + t.Name + ": " + val + ";")
		if t.Comment != "" {
			b.WriteString(" /* " + t.Comment + " */")
		}
		b.WriteString("\n")
	}
	return nil
}

// pathIndex maps dotted paths to the tokens visible from scope s. Tokens
// in s shadow tokens in fallback.
func pathIndex(s, fallback *scope) map[string]*token.Token {
	idx := make(map[string]*token.Token)
	if fallback != nil {
		for _, t := range fallback.tokens {
			idx[t.Path.String()] = t
		}
	}
	for _, t := range s.tokens {
		idx[t.Path.String()] = t
	}
	return idx
}

func cssValue(t *token.Token, visible map[string]*token.Token, opts FileOptions) (string, error) {
	if opts.OutputReferences && len(t.RefersTo) > 0 {
		if target, ok := visible[t.RefersTo.String()]; ok && target != t {
			return "var(--" + target.Name + ")", nil
		}
	}
	return plainString(t.Value)
}
