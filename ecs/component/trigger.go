package component

import "github.com/milk9111/pulserun/common"

// Group tags an entity so triggers can address it.
type Group struct {
	ID int `yaml:"id"`
}

// MoveTrigger offsets every entity of Group over Duration seconds.
type MoveTrigger struct {
	Group    int         `yaml:"group"`
	Offset   common.Vec3 `yaml:"offset"`
	Duration float64     `yaml:"duration"`
	Easing   Easing      `yaml:"easing"`
}

// ColorTrigger fades a level color channel to Color.
type ColorTrigger struct {
	Channel  ColorChannel `yaml:"channel"`
	Color    common.Color `yaml:"color"`
	Duration float64      `yaml:"duration"`
}

// Rotator spins an entity continuously around Axis.
type Rotator struct {
	Axis             common.Vec3 `yaml:"axis"`
	DegreesPerSecond float64     `yaml:"degrees_per_second"`
}

// Label is floating text placed in a level.
type Label struct {
	Text string  `yaml:"text"`
	Size float64 `yaml:"size"`
}

var GroupComponent = NewComponent[Group]()
var MoveTriggerComponent = NewComponent[MoveTrigger]()
var ColorTriggerComponent = NewComponent[ColorTrigger]()
var RotatorComponent = NewComponent[Rotator]()
var LabelComponent = NewComponent[Label]()
