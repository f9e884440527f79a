package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1101hirokin/tzie-tokens/internal/token"
)

func tok(typ token.Type, value any) *token.Token {
	return &token.Token{Path: token.Path{"t"}, Type: typ, Value: value}
}

func TestMatchDimension(t *testing.T) {
	tests := []struct {
		name string
		tok  *token.Token
		want bool
	}{
		{"px string", tok(token.TypeDimension, "16px"), true},
		{"padded px string", tok(token.TypeDimension, "  1.5px "), true},
		{"number", tok(token.TypeDimension, 8.0), true},
		{"rem string", tok(token.TypeDimension, "1rem"), false},
		{"no number", tok(token.TypeDimension, "px"), false},
		{"infinite", tok(token.TypeDimension, math.Inf(1)), false},
		{"wrong type", tok(token.TypeColor, "16px"), false},
		{"object", tok(token.TypeDimension, map[string]any{}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchDimension(tt.tok))
		})
	}
}

func TestDimensionTransforms(t *testing.T) {
	r := Builtin()

	cases := []struct {
		transform string
		value     any
		want      string
	}{
		{SizeSwiftCGFloat, "16px", "CGFloat(16)"},
		{SizeSwiftCGFloat, 1.5, "CGFloat(1.5)"},
		{SizeComposeDp, "16px", "16.dp"},
		{SizeComposeDp, "0.50px", "0.5.dp"},
	}

	for _, c := range cases {
		tr, err := r.Get(c.transform)
		require.NoError(t, err)

		tk := tok(token.TypeDimension, c.value)
		require.True(t, tr.Match(tk))
		require.NoError(t, tr.Apply(tk, Options{}))
		assert.Equal(t, c.want, tk.Value)
		assert.Equal(t, "true", tk.Attribute(token.AttrLiteral))
	}
}

func TestColorTransforms(t *testing.T) {
	tests := []struct {
		name  string
		fn    ValueFunc
		value string
		want  string
	}{
		{"compose hex", ComposeColor, "#3366ff", "Color(0xFF3366FF)"},
		{"compose short hex", ComposeColor, "#fff", "Color(0xFFFFFFFF)"},
		{"compose hex alpha", ComposeColor, "#00000080", "Color(0x80000000)"},
		{"compose rgba", ComposeColor, "rgba(0, 0, 0, 0.5)", "Color(0x80000000)"},
		{"compose hex rgba", ComposeColor, "rgba(#ff0000, 0.16)", "Color(0x29FF0000)"},
		{"compose transparent", ComposeColor, "transparent", "Color(0x00000000)"},
		{"uicolor hex", UIColorSwift, "#ff0000", "UIColor(red: 1.000, green: 0.000, blue: 0.000, alpha: 1.000)"},
		{"uicolor rgba", UIColorSwift, "rgba(0, 51, 102, 0.25)", "UIColor(red: 0.000, green: 0.200, blue: 0.400, alpha: 0.250)"},
		{"uicolor hsl", UIColorSwift, "hsl(0, 100%, 50%)", "UIColor(red: 1.000, green: 0.000, blue: 0.000, alpha: 1.000)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tok(token.TypeColor, tt.value), Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorTransforms_Invalid(t *testing.T) {
	for _, v := range []string{"not-a-color", "#12345", "rgb(1, 2)", "hsl(x, 1%, 1%)"} {
		_, err := ComposeColor(tok(token.TypeColor, v), Options{})
		assert.Error(t, err, v)
	}
}

func TestSwiftString(t *testing.T) {
	got, err := SwiftString(tok(token.TypeContent, `say "hi"\now`), Options{})
	require.NoError(t, err)
	assert.Equal(t, `"say \"hi\"\\now"`, got)
}

func TestTokensStudioValueTransforms(t *testing.T) {
	tests := []struct {
		name string
		fn   ValueFunc
		tok  *token.Token
		want any
	}{
		{"px on number", AddPx, tok(token.TypeFontSize, 14.0), "14px"},
		{"px on numeric string", AddPx, tok(token.TypeSpacing, "8"), "8px"},
		{"px keeps units", AddPx, tok(token.TypeDimension, "1rem"), "1rem"},
		{"opacity percent", Opacity, tok(token.TypeOpacity, "50%"), 0.5},
		{"opacity fraction", Opacity, tok(token.TypeOpacity, 0.3), 0.3},
		{"font weight name", FontWeight, tok(token.TypeFontWeight, "Semi Bold"), 600.0},
		{"font weight numeric string", FontWeight, tok(token.TypeFontWeight, "500"), 500.0},
		{"font weight unknown", FontWeight, tok(token.TypeFontWeight, "wide"), "wide"},
		{"hexrgba", HexRGBA, tok(token.TypeColor, "rgba(#000000, 0.16)"), "rgba(0, 0, 0, 0.16)"},
		{"hexrgba plain hex untouched", HexRGBA, tok(token.TypeColor, "#000000"), "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.tok, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShadowShorthand(t *testing.T) {
	value := []any{
		map[string]any{"offsetX": 0.0, "offsetY": 1.0, "blur": 2.0, "spread": 0.0, "color": "rgba(#000000, 0.16)"},
		map[string]any{"type": "innerShadow", "offsetX": "0px", "offsetY": "4px", "blur": "8px", "spread": "0px", "color": "#112233"},
	}

	got, err := ShadowShorthand(tok(token.TypeShadow, value), Options{})
	require.NoError(t, err)
	assert.Equal(t, "0px 1px 2px 0px rgba(0, 0, 0, 0.16), inset 0px 4px 8px 0px #112233", got)
}

func TestMatchComposite(t *testing.T) {
	match := matchComposite(token.TypeShadow)
	assert.True(t, match(tok(token.TypeShadow, []any{map[string]any{}})))
	assert.True(t, match(tok(token.TypeShadow, map[string]any{"blur": "2px"})))
	assert.False(t, match(tok(token.TypeShadow, "0px 1px 2px #000")))
	assert.False(t, match(tok(token.TypeTypography, map[string]any{})))
}

func TestShadowShorthand_BadLayer(t *testing.T) {
	_, err := ShadowShorthand(tok(token.TypeShadow, []any{"oops"}), Options{})
	assert.Error(t, err)
}

func TestTypographyShorthand(t *testing.T) {
	value := map[string]any{
		"fontFamily": "Noto Sans JP, sans-serif",
		"fontWeight": "Bold",
		"fontSize":   16.0,
		"lineHeight": 1.5,
	}

	got, err := TypographyShorthand(tok(token.TypeTypography, value), Options{})
	require.NoError(t, err)
	assert.Equal(t, "700 16px/1.5 'Noto Sans JP', sans-serif", got)
}

func TestDescriptionToComment(t *testing.T) {
	tk := &token.Token{Description: "Primary\n  surface */ color"}
	DescriptionToComment(tk)
	assert.Equal(t, `Primary surface *\/ color`, tk.Comment)
}

func TestRegistry(t *testing.T) {
	r := Builtin()

	members, err := r.Group(GroupTokensStudio)
	require.NoError(t, err)
	assert.Equal(t, NameCamel, members[len(members)-1])

	chain, err := r.Chain(GroupTokensStudio, NameKebabElevationLayer)
	require.NoError(t, err)
	assert.Len(t, chain, len(members)+1)
	assert.Equal(t, NameKebabElevationLayer, chain[len(chain)-1].Name())

	_, err = r.Get("does/not-exist")
	assert.ErrorIs(t, err, ErrUnknownTransform)

	_, err = r.Chain("nope")
	assert.ErrorIs(t, err, ErrUnknownGroup)

	assert.ErrorIs(t, r.RegisterGroup("bad", "does/not-exist"), ErrUnknownTransform)

	// Registries are independent.
	other := Builtin()
	other.Register(NewNameTransform(NameCamel, plainName(Kebab)))
	tr, err := r.Get(NameCamel)
	require.NoError(t, err)
	tk := &token.Token{Path: token.Path{"a", "b"}}
	require.NoError(t, tr.Apply(tk, Options{}))
	assert.Equal(t, "aB", tk.Name)
}

func TestRun(t *testing.T) {
	r := Builtin()
	chain, err := r.Chain(GroupTokensStudio, NameCamelElevationLayer, SizeComposeDp, ColorCompose)
	require.NoError(t, err)

	tokens := []*token.Token{
		{Path: token.Path{"elevation", "shadow", "2", "blur"}, Type: token.TypeDimension, Value: 8.0},
		{Path: token.Path{"color", "base", "shadow"}, Type: token.TypeColor, Value: "rgba(#000000, 0.16)", Description: "drop"},
		{Path: token.Path{"opacity", "disabled"}, Type: token.TypeOpacity, Value: "40%"},
	}
	require.NoError(t, Run(tokens, chain, Options{Prefix: "tz"}))

	assert.Equal(t, "tzElevationShadowCastBlur", tokens[0].Name)
	assert.Equal(t, "8.dp", tokens[0].Value)
	assert.Equal(t, "Color(0x29000000)", tokens[1].Value)
	assert.Equal(t, "drop", tokens[1].Comment)
	assert.Equal(t, 0.4, tokens[2].Value)
	assert.Empty(t, tokens[2].Attribute(token.AttrLiteral))
}

func TestRun_ErrorNamesToken(t *testing.T) {
	r := Builtin()
	chain, err := r.Chain("", NameKebab)
	require.NoError(t, err)

	err = Run([]*token.Token{{Path: token.Path{"%%"}}}, chain, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Contains(t, err.Error(), NameKebab)
}
