package component

import "github.com/milk9111/pulserun/common"

// Tint is the base color of a block or decoration.
type Tint struct {
	Color common.Color `yaml:"color"`
	Glow  bool         `yaml:"glow"`
}

var TintComponent = NewComponent[Tint]()
