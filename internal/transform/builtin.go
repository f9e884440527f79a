package transform

import "github.com/1101hirokin/tzie-tokens/internal/token"

// Transform and group names understood by Builtin.
const (
	NameKebabElevationLayer = "name/kebab-elevation-layer"
	NameCamelElevationLayer = "name/camel-elevation-layer"
	NameKebab               = "name/kebab"
	NameCamel               = "name/camel"

	SizeSwiftCGFloat = "size/swift/cgfloat"
	SizeComposeDp    = "size/compose/dp"
	ColorCompose     = "color/composeColor"
	ColorUIColor     = "color/UIColorSwift"
	ContentSwift     = "content/swift/literal"
	AssetSwift       = "asset/swift/literal"

	TSDescriptionToComment = "ts/descriptionToComment"
	TSSizePx               = "ts/size/px"
	TSOpacity              = "ts/opacity"
	TSFontWeight           = "ts/typography/fontWeight"
	TSHexRGBA              = "ts/color/css/hexrgba"
	TSShadowShorthand      = "ts/shadow/css/shorthand"
	TSTypographyShorthand  = "ts/typography/css/shorthand"

	// GroupTokensStudio is the transform group every platform starts from.
	GroupTokensStudio = "tokens-studio"
)

// tokensStudio lists the members of GroupTokensStudio in application order.
var tokensStudio = []string{
	TSDescriptionToComment,
	TSSizePx,
	TSOpacity,
	TSFontWeight,
	TSHexRGBA,
	TSShadowShorthand,
	TSTypographyShorthand,
	NameCamel,
}

// Builtin returns a new registry holding every bundled transform and the
// tokens-studio group. Each call returns an independent registry.
func Builtin() *Registry {
	r := NewRegistry(
		NewNameTransform(NameKebabElevationLayer, KebabElevationLayer),
		NewNameTransform(NameCamelElevationLayer, CamelElevationLayer),
		NewNameTransform(NameKebab, plainName(Kebab)),
		NewNameTransform(NameCamel, plainName(Camel)),

		NewValueTransform(SizeSwiftCGFloat, MatchDimension, CGFloat, true),
		NewValueTransform(SizeComposeDp, MatchDimension, ComposeDp, true),
		NewValueTransform(ColorCompose, matchStringType(token.TypeColor), ComposeColor, true),
		NewValueTransform(ColorUIColor, matchStringType(token.TypeColor), UIColorSwift, true),
		NewValueTransform(ContentSwift, matchType(token.TypeContent), SwiftString, true),
		NewValueTransform(AssetSwift, matchType(token.TypeAsset), SwiftString, true),

		NewAttributeTransform(TSDescriptionToComment, func(t *token.Token) bool { return t.Description != "" }, DescriptionToComment),
		NewValueTransform(TSSizePx, matchType(pxTypes...), AddPx, false),
		NewValueTransform(TSOpacity, matchType(token.TypeOpacity), Opacity, false),
		NewValueTransform(TSFontWeight, matchFontWeight, FontWeight, false),
		NewValueTransform(TSHexRGBA, matchStringType(token.TypeColor), HexRGBA, false),
		NewValueTransform(TSShadowShorthand, matchComposite(token.TypeShadow), ShadowShorthand, false),
		NewValueTransform(TSTypographyShorthand, matchComposite(token.TypeTypography), TypographyShorthand, false),
	)

	if err := r.RegisterGroup(GroupTokensStudio, tokensStudio...); err != nil {
		panic(err)
	}
	return r
}
