package transform

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// rgba is a parsed color with straight alpha in [0,1].
type rgba struct {
	colorful.Color
	A float64
}

var (
	funcColorPattern = regexp.MustCompile(`^(rgba?|hsla?)\(\s*([^)]*)\)$`)
	hexRGBAPattern   = regexp.MustCompile(`rgba?\(\s*(#[0-9a-fA-F]{3,8})\s*,\s*([0-9.]+%?)\s*\)`)
)

// parseColor understands #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(), rgba(),
// hsl(), hsla(), the tokens-studio "rgba(#hex, alpha)" form and
// "transparent".
func parseColor(s string) (rgba, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "transparent" {
		return rgba{A: 0}, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	if m := hexRGBAPattern.FindStringSubmatch(s); m != nil && m[0] == s {
		c, err := parseHex(m[1])
		if err != nil {
			return rgba{}, err
		}
		a, err := parseAlpha(m[2])
		if err != nil {
			return rgba{}, err
		}
		c.A = a
		return c, nil
	}

	m := funcColorPattern.FindStringSubmatch(s)
	if m == nil {
		return rgba{}, fmt.Errorf("unsupported color %q", s)
	}

	args := splitColorArgs(m[2])
	if len(args) != 3 && len(args) != 4 {
		return rgba{}, fmt.Errorf("color %q: expected 3 or 4 components", s)
	}

	alpha := 1.0
	if len(args) == 4 {
		a, err := parseAlpha(args[3])
		if err != nil {
			return rgba{}, fmt.Errorf("color %q: %w", s, err)
		}
		alpha = a
	}

	if strings.HasPrefix(m[1], "rgb") {
		var ch [3]float64
		for i := 0; i < 3; i++ {
			v, err := parseChannel(args[i])
			if err != nil {
				return rgba{}, fmt.Errorf("color %q: %w", s, err)
			}
			ch[i] = v
		}
		return rgba{Color: colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, A: alpha}, nil
	}

	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return rgba{}, fmt.Errorf("color %q: bad hue", s)
	}
	sat, err := parsePercent(args[1])
	if err != nil {
		return rgba{}, fmt.Errorf("color %q: %w", s, err)
	}
	light, err := parsePercent(args[2])
	if err != nil {
		return rgba{}, fmt.Errorf("color %q: %w", s, err)
	}
	return rgba{Color: colorful.Hsl(math.Mod(h, 360), sat, light).Clamped(), A: alpha}, nil
}

func parseHex(s string) (rgba, error) {
	hex := strings.TrimPrefix(s, "#")
	alpha := 1.0
	switch len(hex) {
	case 3, 6:
	case 4:
		a, err := strconv.ParseUint(strings.Repeat(hex[3:], 2), 16, 8)
		if err != nil {
			return rgba{}, fmt.Errorf("bad hex color %q", s)
		}
		alpha = float64(a) / 255
		hex = hex[:3]
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return rgba{}, fmt.Errorf("bad hex color %q", s)
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	default:
		return rgba{}, fmt.Errorf("bad hex color %q", s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return rgba{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	return rgba{Color: c, A: alpha}, nil
}

func splitColorArgs(s string) []string {
	s = strings.ReplaceAll(s, "/", " ")
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	return fields
}

// parseChannel reads an rgb() channel: 0-255 or a percentage.
func parseChannel(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		return parsePercent(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad channel %q", s)
	}
	return clamp01(v / 255), nil
}

func parseAlpha(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		return parsePercent(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad alpha %q", s)
	}
	return clamp01(v), nil
}

func parsePercent(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("bad percentage %q", s)
	}
	return clamp01(v / 100), nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// argbHex renders the color as AARRGGBB for Compose.
func (c rgba) argbHex() string {
	r, g, b := c.Clamped().RGB255()
	a := uint8(math.Round(c.A * 255))
	return fmt.Sprintf("%02X%02X%02X%02X", a, r, g, b)
}

// cssRGBA renders rgba(r, g, b, a) with integer channels.
func (c rgba) cssRGBA() string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatNumber(roundTo(c.A, 3)))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
