package component

import "github.com/milk9111/pulserun/common"

// AABB is a box centered on Center, relative to the owning Transform.
type AABB struct {
	Center common.Vec3 `yaml:"center"`
	Size   common.Vec3 `yaml:"size"`
}

// Hazard hurts the player on overlap.
type Hazard struct {
	Damage    int  `yaml:"damage"`
	Instakill bool `yaml:"instakill"`
	Hitbox    AABB `yaml:"hitbox"`
}

var HazardComponent = NewComponent[Hazard]()
