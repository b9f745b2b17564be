package component

import (
	"github.com/milk9111/pulserun/common"
	"gopkg.in/yaml.v3"
)

// Gamemode is the player vehicle a level starts in or a portal switches to.
type Gamemode int

const (
	GamemodeCube Gamemode = iota
	GamemodeShip
	GamemodeBall
	GamemodeUFO
	GamemodeWave
	GamemodeRobot
	GamemodeSpider
)

var gamemodeNames = []string{"cube", "ship", "ball", "ufo", "wave", "robot", "spider"}

func (Gamemode) EnumNames() []string { return gamemodeNames }
func (g Gamemode) String() string    { return common.EnumString(g, gamemodeNames) }

func (g Gamemode) MarshalYAML() (any, error) { return common.MarshalEnum(g, gamemodeNames) }

func (g *Gamemode) UnmarshalYAML(value *yaml.Node) error {
	return common.UnmarshalEnum(value, gamemodeNames, g)
}

// Speed is the horizontal scroll speed preset.
type Speed int

const (
	SpeedHalf Speed = iota
	SpeedNormal
	SpeedDouble
	SpeedTriple
	SpeedQuadruple
)

var speedNames = []string{"half", "normal", "double", "triple", "quadruple"}

// speedUnits is the scroll rate of each preset in units per second.
var speedUnits = []float64{8.4, 10.4, 12.96, 15.6, 19.27}

func (Speed) EnumNames() []string { return speedNames }
func (s Speed) String() string    { return common.EnumString(s, speedNames) }

// UnitsPerSecond returns the scroll rate, using normal speed for unknown
// presets.
func (s Speed) UnitsPerSecond() float64 {
	if s >= 0 && int(s) < len(speedUnits) {
		return speedUnits[s]
	}
	return speedUnits[SpeedNormal]
}

func (s Speed) MarshalYAML() (any, error) { return common.MarshalEnum(s, speedNames) }

func (s *Speed) UnmarshalYAML(value *yaml.Node) error {
	return common.UnmarshalEnum(value, speedNames, s)
}

// Easing selects the interpolation curve of a timed trigger.
type Easing int

const (
	EaseLinear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
)

var easingNames = []string{"linear", "in", "out", "in_out"}

func (Easing) EnumNames() []string { return easingNames }
func (e Easing) String() string    { return common.EnumString(e, easingNames) }

// Apply maps linear progress t in [0, 1] through the curve.
func (e Easing) Apply(t float64) float64 {
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - 2*(1-t)*(1-t)
	default:
		return t
	}
}

func (e Easing) MarshalYAML() (any, error) { return common.MarshalEnum(e, easingNames) }

func (e *Easing) UnmarshalYAML(value *yaml.Node) error {
	return common.UnmarshalEnum(value, easingNames, e)
}

// ColorChannel names a level color a color trigger retargets.
type ColorChannel int

const (
	ChannelBackground ColorChannel = iota
	ChannelGround
	ChannelFog
)

var channelNames = []string{"background", "ground", "fog"}

func (ColorChannel) EnumNames() []string { return channelNames }
func (c ColorChannel) String() string    { return common.EnumString(c, channelNames) }

func (c ColorChannel) MarshalYAML() (any, error) { return common.MarshalEnum(c, channelNames) }

func (c *ColorChannel) UnmarshalYAML(value *yaml.Node) error {
	return common.UnmarshalEnum(value, channelNames, c)
}
