package transform

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/1101hirokin/tzie-tokens/internal/token"
)

// numberPrefix mirrors a leading-number parse: "16px" -> 16, "1.5rem" -> 1.5.
var numberPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// leadingNumber parses the numeric prefix of s.
func leadingNumber(s string) (float64, bool) {
	m := numberPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// pixelValue reports the number held by a dimension value: a finite
// number, or a string ending in "px" whose numeric prefix is finite.
func pixelValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	case string:
		trimmed := strings.TrimSpace(val)
		if !strings.HasSuffix(trimmed, "px") {
			return 0, false
		}
		return leadingNumber(trimmed)
	}
	return 0, false
}

// MatchDimension selects dimension tokens with a pixel or bare number value.
func MatchDimension(t *token.Token) bool {
	if t.Type != token.TypeDimension {
		return false
	}
	_, ok := pixelValue(t.Value)
	return ok
}

// CGFloat is the size/swift/cgfloat value transform.
func CGFloat(t *token.Token, _ Options) (any, error) {
	n, ok := pixelValue(t.Value)
	if !ok {
		return t.Value, nil
	}
	return "CGFloat(" + formatNumber(n) + ")", nil
}

// ComposeDp is the size/compose/dp value transform.
func ComposeDp(t *token.Token, _ Options) (any, error) {
	n, ok := pixelValue(t.Value)
	if !ok {
		return t.Value, nil
	}
	return formatNumber(n) + ".dp", nil
}

func matchType(types ...token.Type) MatchFunc {
	return func(t *token.Token) bool {
		for _, typ := range types {
			if t.Type == typ {
				return true
			}
		}
		return false
	}
}

func matchStringType(typ token.Type) MatchFunc {
	return func(t *token.Token) bool {
		_, ok := t.Value.(string)
		return ok && t.Type == typ
	}
}

// ComposeColor renders a color as Color(0xAARRGGBB).
func ComposeColor(t *token.Token, _ Options) (any, error) {
	c, err := parseColor(t.Value.(string))
	if err != nil {
		return nil, err
	}
	return "Color(0x" + c.argbHex() + ")", nil
}

// UIColorSwift renders a color as a UIColor initializer.
func UIColorSwift(t *token.Token, _ Options) (any, error) {
	c, err := parseColor(t.Value.(string))
	if err != nil {
		return nil, err
	}
	cl := c.Clamped()
	return fmt.Sprintf("UIColor(red: %.3f, green: %.3f, blue: %.3f, alpha: %.3f)", cl.R, cl.G, cl.B, c.A), nil
}

// SwiftString quotes a string value as a Swift literal.
func SwiftString(t *token.Token, _ Options) (any, error) {
	return SwiftQuote(resolveString(t.Value)), nil
}

// SwiftQuote returns s as a double-quoted Swift string literal.
func SwiftQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}

func resolveString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return formatNumber(val)
	default:
		return fmt.Sprint(val)
	}
}

// DescriptionToComment copies the description into Token.Comment on a
// single line, with comment terminators escaped.
func DescriptionToComment(t *token.Token) {
	c := strings.ReplaceAll(t.Description, "*/", `*\/`)
	c = strings.Join(strings.Fields(c), " ")
	t.Comment = c
}

// pxTypes are the types whose bare numbers get a "px" unit.
var pxTypes = []token.Type{
	token.TypeDimension,
	token.TypeFontSize,
	token.TypeSpacing,
	token.TypeBorderRadius,
	token.TypeBorderWidth,
	token.TypeLetterSpacing,
}

// AddPx appends "px" to bare numeric values.
func AddPx(t *token.Token, _ Options) (any, error) {
	return withPx(t.Value), nil
}

func withPx(v any) any {
	switch val := v.(type) {
	case float64:
		return formatNumber(val) + "px"
	case string:
		trimmed := strings.TrimSpace(val)
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return formatNumber(f) + "px"
		}
	}
	return v
}

// Opacity turns a percentage into a fraction: "50%" -> 0.5.
func Opacity(t *token.Token, _ Options) (any, error) {
	s, ok := t.Value.(string)
	if !ok {
		return t.Value, nil
	}
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, nil
		}
		return t.Value, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return nil, fmt.Errorf("bad opacity %q", s)
	}
	return roundTo(f/100, 4), nil
}

var fontWeights = map[string]float64{
	"hairline":   100,
	"thin":       100,
	"extralight": 200,
	"ultralight": 200,
	"light":      300,
	"normal":     400,
	"regular":    400,
	"book":       400,
	"medium":     500,
	"semibold":   600,
	"demibold":   600,
	"bold":       700,
	"extrabold":  800,
	"ultrabold":  800,
	"black":      900,
	"heavy":      900,
	"extrablack": 950,
	"ultrablack": 950,
}

// fontWeightNumber maps a named or numeric font weight onto its number.
// Unknown names are returned unchanged.
func fontWeightNumber(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return f
	}
	key := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s))
	if w, ok := fontWeights[key]; ok {
		return w
	}
	return v
}

// FontWeight converts named weights on fontWeight tokens and inside
// typography values.
func FontWeight(t *token.Token, _ Options) (any, error) {
	if m, ok := t.Value.(map[string]any); ok {
		out := token.CloneValue(m).(map[string]any)
		if w, ok := out["fontWeight"]; ok {
			out["fontWeight"] = fontWeightNumber(w)
		}
		return out, nil
	}
	return fontWeightNumber(t.Value), nil
}

func matchFontWeight(t *token.Token) bool {
	if t.Type == token.TypeFontWeight {
		return true
	}
	_, ok := t.Value.(map[string]any)
	return ok && t.Type == token.TypeTypography
}

// HexRGBA rewrites "rgba(#hex, a)" into "rgba(r, g, b, a)".
func HexRGBA(t *token.Token, _ Options) (any, error) {
	return hexRGBA(t.Value.(string))
}

func hexRGBA(s string) (string, error) {
	var firstErr error
	out := hexRGBAPattern.ReplaceAllStringFunc(s, func(m string) string {
		c, err := parseColor(m)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return m
		}
		return c.cssRGBA()
	})
	return out, firstErr
}

// ShadowShorthand renders a shadow (or a list of shadows) as a CSS
// box-shadow value.
func ShadowShorthand(t *token.Token, _ Options) (any, error) {
	var layers []any
	switch val := t.Value.(type) {
	case map[string]any:
		layers = []any{val}
	case []any:
		layers = val
	default:
		return t.Value, nil
	}

	parts := make([]string, 0, len(layers))
	for i, l := range layers {
		m, ok := l.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("shadow layer %d is not an object", i)
		}
		s, err := shadowLayer(m)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}

func shadowLayer(m map[string]any) (string, error) {
	var fields []string
	if typ, _ := m["type"].(string); typ == "innerShadow" || m["inset"] == true {
		fields = append(fields, "inset")
	}
	for _, key := range []string{"offsetX", "offsetY", "blur", "spread"} {
		v, ok := m[key]
		if !ok {
			v = 0.0
		}
		fields = append(fields, resolveString(withPx(v)))
	}
	if c, ok := m["color"]; ok {
		color, err := hexRGBA(resolveString(c))
		if err != nil {
			return "", err
		}
		fields = append(fields, color)
	}
	return strings.Join(fields, " "), nil
}

func matchComposite(typ token.Type) MatchFunc {
	return func(t *token.Token) bool {
		return t.Type == typ && t.IsComposite()
	}
}

// TypographyShorthand renders a typography value as a CSS font shorthand:
// "weight size/lineHeight family".
func TypographyShorthand(t *token.Token, _ Options) (any, error) {
	m, ok := t.Value.(map[string]any)
	if !ok {
		return t.Value, nil
	}

	weight := "400"
	if w, ok := m["fontWeight"]; ok {
		weight = resolveString(fontWeightNumber(w))
	}
	size := "16px"
	if s, ok := m["fontSize"]; ok {
		size = resolveString(withPx(s))
	}
	line := "1"
	if lh, ok := m["lineHeight"]; ok {
		line = resolveString(lh)
	}
	family := "sans-serif"
	if f, ok := m["fontFamily"]; ok {
		family = cssFontFamily(f)
	}
	return fmt.Sprintf("%s %s/%s %s", weight, size, line, family), nil
}

// cssFontFamily quotes family names that contain whitespace.
func cssFontFamily(v any) string {
	var names []string
	switch val := v.(type) {
	case []any:
		for _, n := range val {
			names = append(names, resolveString(n))
		}
	default:
		names = strings.Split(resolveString(val), ",")
	}

	for i, n := range names {
		n = strings.TrimSpace(n)
		if strings.ContainsAny(n, " \t") && !strings.HasPrefix(n, `"`) && !strings.HasPrefix(n, "'") {
			n = `'` + n + `'`
		}
		names[i] = n
	}
	return strings.Join(names, ", ")
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
