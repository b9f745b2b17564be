package level

import (
	"gopkg.in/yaml.v3"

	"github.com/milk9111/pulserun/common"
)

// Difficulty is only used to sort and filter the level list. Higher values
// are harder.
type Difficulty int

const (
	DifficultyNA Difficulty = iota
	DifficultyAuto
	DifficultyEasy
	DifficultyNormal
	DifficultyHard
	DifficultyHarder
	DifficultyInsane
	DifficultyExtreme
)

var difficultyNames = []string{"na", "auto", "easy", "normal", "hard", "harder", "insane", "extreme"}

func (Difficulty) EnumNames() []string { return difficultyNames }
func (d Difficulty) String() string    { return common.EnumString(d, difficultyNames) }

func ParseDifficulty(s string) (Difficulty, error) {
	return common.ParseEnum[Difficulty](s, difficultyNames)
}

func (d Difficulty) MarshalYAML() (any, error) { return common.MarshalEnum(d, difficultyNames) }

func (d *Difficulty) UnmarshalYAML(value *yaml.Node) error {
	return common.UnmarshalEnum(value, difficultyNames, d)
}
