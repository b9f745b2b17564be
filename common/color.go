package common

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Color is a straight-alpha RGBA color with channels in [0, 1].
type Color struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
	A float32 `yaml:"a"`
}

func RGBA(r, g, b, a float32) Color { return Color{R: r, G: g, B: b, A: a} }

var (
	White = Color{R: 1, G: 1, B: 1, A: 1}
	Black = Color{A: 1}
	Red   = Color{R: 1, A: 1}
)

// FromNRGBA converts an 8-bit color.
func FromNRGBA(c color.NRGBA) Color {
	return Color{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// NRGBA converts to an 8-bit color, clamping out of range channels.
func (c Color) NRGBA() color.NRGBA {
	to8 := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// Hex formats the color as #rrggbbaa.
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func (c Color) Lerp(to Color, t float32) Color {
	return Color{
		R: Lerp(c.R, to.R, t),
		G: Lerp(c.G, to.G, t),
		B: Lerp(c.B, to.B, t),
		A: Lerp(c.A, to.A, t),
	}
}

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func (c Color) MarshalYAML() (any, error) {
	type plain Color
	return flowNode(plain(c))
}

// UnmarshalYAML accepts the {r, g, b, a} mapping written by MarshalYAML, a
// hex string (#rrggbb or #rrggbbaa) or an SVG color name.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			switch key := value.Content[i]; key.Value {
			case "r", "g", "b", "a":
			default:
				return fmt.Errorf("line %d: field %s not found in type common.Color", key.Line, key.Value)
			}
		}
		type plain Color
		p := plain{A: 1}
		if err := value.Decode(&p); err != nil {
			return err
		}
		*c = Color(p)
		return nil
	case yaml.ScalarNode:
		parsed, err := ParseColor(value.Value)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	default:
		return fmt.Errorf("color must be a mapping or a string")
	}
}

// ParseColor parses a hex color or a color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if named, ok := colornames.Map[strings.ToLower(s)]; ok {
			return FromNRGBA(color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}), nil
		}
		return Color{}, fmt.Errorf("unknown color %q", s)
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color format: %s", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return Color{}, err
	}
	g, err := parse(2)
	if err != nil {
		return Color{}, err
	}
	b, err := parse(4)
	if err != nil {
		return Color{}, err
	}
	a := uint8(255)
	if len(hex) == 8 {
		a, err = parse(6)
		if err != nil {
			return Color{}, err
		}
	}
	return FromNRGBA(color.NRGBA{R: r, G: g, B: b, A: a}), nil
}
