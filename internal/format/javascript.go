package format

import (
	"regexp"
	"strings"

	"github.com/1101hirokin/tzie-tokens/internal/token"
)

// jsThemesExport is the export that holds per-theme values.
const jsThemesExport = "themes"

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func jsKey(name string) (string, error) {
	if jsIdentifier.MatchString(name) {
		return name, nil
	}
	return jsonValue(name)
}

func jsValue(t *token.Token) (string, error) {
	if isLiteral(t) {
		return plainString(t.Value)
	}
	return jsonValue(t.Value)
}

func jsDoc(b *strings.Builder, indent, comment string) {
	if comment != "" {
		b.WriteString(indent + "/** " + comment + " */\n")
	}
}

func fileHeader(b *strings.Builder) {
	b.WriteString("/**\n * " + generatedByComment + "\n */\n\n")
}

// formatJavaScript writes an ES module: one const per base token and a
// themes object keyed by theme name.
func formatJavaScript(f *File) ([]byte, error) {
	base, themes, err := scopes(f.Tokens, jsThemesExport)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fileHeader(&b)

	if !f.Options.ThemeOnly {
		for _, t := range base.tokens {
			if !jsIdentifier.MatchString(t.Name) {
				return nil, invalidIdentifier(t)
			}
			v, err := jsValue(t)
			if err != nil {
				return nil, err
			}
			jsDoc(&b, "", t.Comment)
			b.WriteString("export const " + t.Name + " = " + v + ";\n")
		}
		if len(base.tokens) > 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("export const " + jsThemesExport + " = {\n")
	for _, s := range themes {
		key, err := jsKey(s.name)
		if err != nil {
			return nil, err
		}
		b.WriteString("  " + key + ": {\n")
		for _, t := range s.tokens {
			k, err := jsKey(t.Name)
			if err != nil {
				return nil, err
			}
			v, err := jsValue(t)
			if err != nil {
				return nil, err
			}
			jsDoc(&b, "    ", t.Comment)
			b.WriteString("    " + k + ": " + v + ",\n")
		}
		b.WriteString("  },\n")
	}
	b.WriteString("};\n")
	return []byte(b.String()), nil
}

// tsType is the declared type of a token value.
func tsType(t *token.Token) string {
	switch t.Value.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "unknown[]"
	case map[string]any:
		return "Record<string, unknown>"
	default:
		return "unknown"
	}
}

// formatTypeScript writes the declarations matching formatJavaScript.
func formatTypeScript(f *File) ([]byte, error) {
	base, themes, err := scopes(f.Tokens, jsThemesExport)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fileHeader(&b)

	if !f.Options.ThemeOnly {
		for _, t := range base.tokens {
			if !jsIdentifier.MatchString(t.Name) {
				return nil, invalidIdentifier(t)
			}
			jsDoc(&b, "", t.Comment)
			b.WriteString("export declare const " + t.Name + ": " + tsType(t) + ";\n")
		}
		if len(base.tokens) > 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("export declare const " + jsThemesExport + ": {\n")
	for _, s := range themes {
		key, err := jsKey(s.name)
		if err != nil {
			return nil, err
		}
		b.WriteString("  " + key + ": {\n")
		for _, t := range s.tokens {
			k, err := jsKey(t.Name)
			if err != nil {
				return nil, err
			}
			b.WriteString("    " + k + ": " + tsType(t) + ";\n")
		}
		b.WriteString("  };\n")
	}
	b.WriteString("};\n")
	return []byte(b.String()), nil
}
