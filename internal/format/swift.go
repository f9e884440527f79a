package format

import (
	"strconv"
	"strings"

	"github.com/1101hirokin/tzie-tokens/internal/token"
	"github.com/1101hirokin/tzie-tokens/internal/transform"
)

func swiftValue(t *token.Token) (string, error) {
	if isLiteral(t) {
		return plainString(t.Value)
	}
	switch v := t.Value.(type) {
	case float64:
		return formatNumber(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case string:
		return transform.SwiftQuote(v), nil
	default:
		s, err := jsonValue(v)
		if err != nil {
			return "", err
		}
		return transform.SwiftQuote(s), nil
	}
}

// formatSwift writes a public enum with a nested Base enum and one nested
// enum per theme.
func formatSwift(f *File) ([]byte, error) {
	base, themes, err := scopes(f.Tokens)
	if err != nil {
		return nil, err
	}
	outer := className(f, "DesignTokens")
	nested, err := themeTypeNames(themes)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("//\n// " + generatedByComment + "\n//\n\n")
	b.WriteString("import UIKit\n\n")
	b.WriteString("public enum " + outer + " {\n")

	var blocks []string
	if !f.Options.ThemeOnly {
		block, err := swiftEnum("Base", base)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	for i, s := range themes {
		block, err := swiftEnum(nested[i], s)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	b.WriteString(strings.Join(blocks, "\n"))
	b.WriteString("}\n")
	return []byte(b.String()), nil
}

func swiftEnum(name string, s *scope) (string, error) {
	var b strings.Builder
	b.WriteString("    public enum " + name + " {\n")
	for _, t := range s.tokens {
		if !jsIdentifier.MatchString(t.Name) || strings.Contains(t.Name, "$") {
			return "", invalidIdentifier(t)
		}
		v, err := swiftValue(t)
		if err != nil {
			return "", err
		}
		if t.Comment != "" {
			b.WriteString("        /// " + t.Comment + "\n")
		}
		b.WriteString("        public static let " + t.Name + " = " + v + "\n")
	}
	b.WriteString("    }\n")
	return b.String(), nil
}
