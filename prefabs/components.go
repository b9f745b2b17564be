package prefabs

import (
	"github.com/milk9111/pulserun/common"
	"github.com/milk9111/pulserun/ecs/component"
	"github.com/milk9111/pulserun/registry"
)

// Field IDs are part of the level file format. Never renumber a field;
// retire its ID and add a new one instead.
var componentTypes = map[string]registry.ComponentType{
	"tint": registry.NewComponentType("tint", component.TintComponent.Kind(),
		registry.Field(1, "color",
			func(c *component.Tint) common.Color { return c.Color },
			func(c *component.Tint, v common.Color) { c.Color = v }),
		registry.Field(2, "glow",
			func(c *component.Tint) bool { return c.Glow },
			func(c *component.Tint, v bool) { c.Glow = v }),
	),

	"hazard": registry.NewComponentType("hazard", component.HazardComponent.Kind(),
		registry.Field(1, "damage",
			func(c *component.Hazard) int { return c.Damage },
			func(c *component.Hazard, v int) { c.Damage = v }),
		registry.Field(2, "instakill",
			func(c *component.Hazard) bool { return c.Instakill },
			func(c *component.Hazard, v bool) { c.Instakill = v }),
		registry.Field(3, "hitbox",
			func(c *component.Hazard) component.AABB { return c.Hitbox },
			func(c *component.Hazard, v component.AABB) { c.Hitbox = v }),
	),

	// force is stored as a bare number with 0 meaning "use the table".
	"jump_pad": registry.NewComponentType("jump_pad", component.JumpPadComponent.Kind(),
		registry.Field(1, "kind",
			func(c *component.JumpPad) component.PadKind { return c.Kind },
			func(c *component.JumpPad, v component.PadKind) { c.Kind = v }),
		registry.Field(2, "force",
			func(c *component.JumpPad) float64 { return c.Force.Stored() },
			func(c *component.JumpPad, v float64) { c.Force = component.StoredForce(v) }),
	),

	"gamemode_portal": registry.NewComponentType("gamemode_portal", component.GamemodePortalComponent.Kind(),
		registry.Field(1, "mode",
			func(c *component.GamemodePortal) component.Gamemode { return c.Mode },
			func(c *component.GamemodePortal, v component.Gamemode) { c.Mode = v }),
	),

	"speed_portal": registry.NewComponentType("speed_portal", component.SpeedPortalComponent.Kind(),
		registry.Field(1, "speed",
			func(c *component.SpeedPortal) component.Speed { return c.Speed },
			func(c *component.SpeedPortal, v component.Speed) { c.Speed = v }),
	),

	"move_trigger": registry.NewComponentType("move_trigger", component.MoveTriggerComponent.Kind(),
		registry.Field(1, "group",
			func(c *component.MoveTrigger) int { return c.Group },
			func(c *component.MoveTrigger, v int) { c.Group = v }),
		registry.Field(2, "offset",
			func(c *component.MoveTrigger) common.Vec3 { return c.Offset },
			func(c *component.MoveTrigger, v common.Vec3) { c.Offset = v }),
		registry.Field(3, "duration",
			func(c *component.MoveTrigger) float64 { return c.Duration },
			func(c *component.MoveTrigger, v float64) { c.Duration = v }),
		registry.Field(4, "easing",
			func(c *component.MoveTrigger) component.Easing { return c.Easing },
			func(c *component.MoveTrigger, v component.Easing) { c.Easing = v }),
	),

	"rotator": registry.NewComponentType("rotator", component.RotatorComponent.Kind(),
		registry.Field(1, "axis",
			func(c *component.Rotator) common.Vec3 { return c.Axis },
			func(c *component.Rotator, v common.Vec3) { c.Axis = v }),
		registry.Field(2, "degrees_per_second",
			func(c *component.Rotator) float64 { return c.DegreesPerSecond },
			func(c *component.Rotator, v float64) { c.DegreesPerSecond = v }),
	),

	"label": registry.NewComponentType("label", component.LabelComponent.Kind(),
		registry.Field(1, "text",
			func(c *component.Label) string { return c.Text },
			func(c *component.Label, v string) { c.Text = v }),
		registry.Field(2, "size",
			func(c *component.Label) float64 { return c.Size },
			func(c *component.Label, v float64) { c.Size = v }),
	),

	"color_trigger": registry.NewComponentType("color_trigger", component.ColorTriggerComponent.Kind(),
		registry.Field(1, "channel",
			func(c *component.ColorTrigger) component.ColorChannel { return c.Channel },
			func(c *component.ColorTrigger, v component.ColorChannel) { c.Channel = v }),
		registry.Field(2, "color",
			func(c *component.ColorTrigger) common.Color { return c.Color },
			func(c *component.ColorTrigger, v common.Color) { c.Color = v }),
		registry.Field(3, "duration",
			func(c *component.ColorTrigger) float64 { return c.Duration },
			func(c *component.ColorTrigger, v float64) { c.Duration = v }),
	),

	"group": registry.NewComponentType("group", component.GroupComponent.Kind(),
		registry.Field(1, "id",
			func(c *component.Group) int { return c.ID },
			func(c *component.Group, v int) { c.ID = v }),
	),
}

// ComponentTypes returns the component types templates may reference, by
// the name used in template files. Transform is absent: placement owns it.
func ComponentTypes() map[string]registry.ComponentType {
	out := make(map[string]registry.ComponentType, len(componentTypes))
	for name, ct := range componentTypes {
		out[name] = ct
	}
	return out
}

func componentType(name string) (registry.ComponentType, bool) {
	ct, ok := componentTypes[name]
	return ct, ok
}
