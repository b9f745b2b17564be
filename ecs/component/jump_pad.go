package component

import (
	"github.com/milk9111/pulserun/common"
	"gopkg.in/yaml.v3"
)

// PadKind selects the strength class of a jump pad.
type PadKind int

const (
	PadYellow PadKind = iota
	PadPink
	PadRed
)

var padKindNames = []string{"yellow", "pink", "red"}

func (PadKind) EnumNames() []string { return padKindNames }
func (k PadKind) String() string    { return common.EnumString(k, padKindNames) }

func (k PadKind) MarshalYAML() (any, error) { return common.MarshalEnum(k, padKindNames) }

func (k *PadKind) UnmarshalYAML(value *yaml.Node) error {
	return common.UnmarshalEnum(value, padKindNames, k)
}

// JumpForce is an optional launch impulse. When Set is false the pad uses
// the fallback table for its kind and the player's current gamemode.
//
// Level files store the force as a plain number where 0 means "unset", so
// an explicit force of exactly 0 cannot be persisted.
type JumpForce struct {
	Value float64
	Set   bool
}

func ExplicitForce(v float64) JumpForce {
	return JumpForce{Value: v, Set: true}
}

// StoredForce converts the number found in a level file.
func StoredForce(v float64) JumpForce {
	if v == 0 {
		return JumpForce{}
	}
	return ExplicitForce(v)
}

// Stored returns the number written to a level file.
func (f JumpForce) Stored() float64 {
	if !f.Set {
		return 0
	}
	return f.Value
}

func (f JumpForce) MarshalYAML() (any, error) { return f.Stored(), nil }

func (f *JumpForce) UnmarshalYAML(value *yaml.Node) error {
	var v float64
	if err := value.Decode(&v); err != nil {
		return err
	}
	*f = StoredForce(v)
	return nil
}

// JumpPad launches the player upward on contact.
type JumpPad struct {
	Kind  PadKind   `yaml:"kind"`
	Force JumpForce `yaml:"force"`
}

// padForces holds the launch impulse per pad kind and gamemode. Gamemodes
// missing from a row use that row's cube entry.
var padForces = map[PadKind]map[Gamemode]float64{
	PadYellow: {
		GamemodeCube:   18.6,
		GamemodeShip:   14.4,
		GamemodeBall:   11.2,
		GamemodeUFO:    13.5,
		GamemodeRobot:  18.6,
		GamemodeSpider: 16.8,
	},
	PadPink: {
		GamemodeCube: 12.4,
		GamemodeShip: 10.1,
		GamemodeBall: 7.8,
		GamemodeUFO:  9.6,
	},
	PadRed: {
		GamemodeCube: 25.2,
		GamemodeShip: 19.8,
		GamemodeBall: 15.0,
		GamemodeUFO:  18.2,
	},
}

// Resolve returns the impulse the pad applies to a player in mode.
func (p JumpPad) Resolve(mode Gamemode) float64 {
	if p.Force.Set {
		return p.Force.Value
	}
	row, ok := padForces[p.Kind]
	if !ok {
		row = padForces[PadYellow]
	}
	if v, ok := row[mode]; ok {
		return v
	}
	return row[GamemodeCube]
}

var JumpPadComponent = NewComponent[JumpPad]()
