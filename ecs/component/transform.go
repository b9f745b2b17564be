package component

import "github.com/milk9111/pulserun/common"

// Transform is an entity's placement relative to its parent.
type Transform struct {
	Position common.Vec3 `yaml:"position"`
	Rotation common.Quat `yaml:"rotation"`
	Scale    common.Vec3 `yaml:"scale"`
}

// NewTransform returns an identity transform.
func NewTransform() *Transform {
	return &Transform{Rotation: common.Identity, Scale: common.One}
}

var TransformComponent = NewComponent[Transform]()
