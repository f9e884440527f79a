package format

import (
	"strings"

	"github.com/1101hirokin/tzie-tokens/internal/token"
)

// formatJSON writes {"base": {...}, "themes": {"<theme>": {...}}} keeping
// token order.
func formatJSON(f *File) ([]byte, error) {
	base, themes, err := scopes(f.Tokens)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("{\n")
	if !f.Options.ThemeOnly {
		b.WriteString(`  "base": `)
		if err := writeJSONObject(&b, base.tokens, "  "); err != nil {
			return nil, err
		}
		b.WriteString(",\n")
	}

	b.WriteString(`  "themes": {`)
	for i, s := range themes {
		if i > 0 {
			b.WriteString(",")
		}
		key, err := jsonValue(s.name)
		if err != nil {
			return nil, err
		}
		b.WriteString("\n    " + key + ": ")
		if err := writeJSONObject(&b, s.tokens, "    "); err != nil {
			return nil, err
		}
	}
	if len(themes) > 0 {
		b.WriteString("\n  ")
	}
	b.WriteString("}\n}\n")
	return []byte(b.String()), nil
}

func writeJSONObject(b *strings.Builder, tokens []*token.Token, indent string) error {
	if len(tokens) == 0 {
		b.WriteString("{}")
		return nil
	}

	b.WriteString("{")
	for i, t := range tokens {
		if i > 0 {
			b.WriteString(",")
		}
		key, err := jsonValue(t.Name)
		if err != nil {
			return err
		}
		val, err := jsonValue(t.Value)
		if err != nil {
			return err
		}
		b.WriteString("\n" + indent + "  " + key + ": " + val)
	}
	b.WriteString("\n" + indent + "}")
	return nil
}
