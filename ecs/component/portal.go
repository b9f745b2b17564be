package component

// GamemodePortal switches the player's vehicle on contact.
type GamemodePortal struct {
	Mode Gamemode `yaml:"mode"`
}

// SpeedPortal changes scroll speed on contact.
type SpeedPortal struct {
	Speed Speed `yaml:"speed"`
}

var GamemodePortalComponent = NewComponent[GamemodePortal]()
var SpeedPortalComponent = NewComponent[SpeedPortal]()
