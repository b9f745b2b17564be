package component

import "github.com/milk9111/pulserun/common"

// LevelSettings sits on the root entity of a built level and carries the
// document metadata gameplay systems read at start.
type LevelSettings struct {
	Name            string
	BackgroundColor common.Color
	GroundColor     common.Color
	FogColor        common.Color
	Gamemode        Gamemode
	Speed           Speed
	Song            string
}

var LevelSettingsComponent = NewComponent[LevelSettings]()
