package format

import (
	"fmt"
	"strings"

	"github.com/1101hirokin/tzie-tokens/internal/token"
	"github.com/1101hirokin/tzie-tokens/internal/transform"
)

const defaultPackageName = "com.tzie.tokens"

var kotlinEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

func kotlinValue(t *token.Token) (string, error) {
	if isLiteral(t) {
		return plainString(t.Value)
	}
	switch v := t.Value.(type) {
	case float64:
		return formatNumber(v), nil
	case bool:
		return fmt.Sprint(v), nil
	case string:
		return `"` + kotlinEscaper.Replace(v) + `"`, nil
	default:
		s, err := jsonValue(v)
		if err != nil {
			return "", err
		}
		return `"` + kotlinEscaper.Replace(s) + `"`, nil
	}
}

// typeName turns a theme or file name into a PascalCase type name.
func typeName(name string) (string, error) {
	n, err := transform.BuildName(token.Path{name}, transform.Camel)
	if err != nil {
		return "", err
	}
	n = transform.Capitalize(n)
	if n[0] >= '0' && n[0] <= '9' {
		n = "T" + n
	}
	return n, nil
}

// className returns the ClassName option or fallback.
func className(f *File, fallback string) string {
	if f.Options.ClassName != "" {
		return f.Options.ClassName
	}
	return fallback
}

// themeTypeNames maps every theme scope to its nested type name,
// rejecting names that collide with each other or with Base.
func themeTypeNames(themes []*scope) ([]string, error) {
	used := map[string]string{"Base": ""}
	names := make([]string, len(themes))
	for i, s := range themes {
		n, err := typeName(s.name)
		if err != nil {
			return nil, fmt.Errorf("theme %q: %w", s.name, err)
		}
		if prev, ok := used[n]; ok {
			return nil, fmt.Errorf("%w: theme %q and %q both map to type %s", ErrNameCollision, prev, s.name, n)
		}
		used[n] = s.name
		names[i] = n
	}
	return names, nil
}

// formatCompose writes a Kotlin object with a nested Base object and one
// nested object per theme.
func formatCompose(f *File) ([]byte, error) {
	base, themes, err := scopes(f.Tokens)
	if err != nil {
		return nil, err
	}
	outer := className(f, "Tokens")
	nested, err := themeTypeNames(themes)
	if err != nil {
		return nil, err
	}

	pkg := f.Options.PackageName
	if pkg == "" {
		pkg = defaultPackageName
	}

	var b strings.Builder
	b.WriteString("//\n// " + generatedByComment + "\n//\n\n")
	b.WriteString("package " + pkg + "\n\n")
	b.WriteString("import androidx.compose.ui.graphics.Color\n")
	b.WriteString("import androidx.compose.ui.unit.dp\n\n")
	b.WriteString("object " + outer + " {\n")

	var blocks []string
	if !f.Options.ThemeOnly {
		block, err := kotlinObject("Base", base)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	for i, s := range themes {
		block, err := kotlinObject(nested[i], s)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	b.WriteString(strings.Join(blocks, "\n"))
	b.WriteString("}\n")
	return []byte(b.String()), nil
}

func kotlinObject(name string, s *scope) (string, error) {
	var b strings.Builder
	b.WriteString("    object " + name + " {\n")
	for _, t := range s.tokens {
		if !jsIdentifier.MatchString(t.Name) || strings.Contains(t.Name, "$") {
			return "", invalidIdentifier(t)
		}
		v, err := kotlinValue(t)
		if err != nil {
			return "", err
		}
		if t.Comment != "" {
			b.WriteString("        /** " + t.Comment + " */\n")
		}
		b.WriteString("        val " + t.Name + " = " + v + "\n")
	}
	b.WriteString("    }\n")
	return b.String(), nil
}
