package codec

import "github.com/milk9111/pulserun/common"

// Kind is the static type tag of a field.
type Kind int

const (
	KindStruct Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindVec3
	KindQuat
	KindColor
	KindEnum
)

var kindNames = []string{"struct", "bool", "int", "uint", "float", "string", "vec3", "quat", "color", "enum"}

func (k Kind) String() string { return common.EnumString(k, kindNames) }

// KindOf derives the tag for T. Named integer types are only recognised as
// enums when they implement common.Enum; any other named type is a struct.
func KindOf[T any]() Kind {
	var zero T
	switch any(zero).(type) {
	case common.Enum:
		return KindEnum
	case bool:
		return KindBool
	case int, int8, int16, int32, int64:
		return KindInt
	case uint, uint8, uint16, uint32, uint64:
		return KindUint
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case common.Vec3:
		return KindVec3
	case common.Quat:
		return KindQuat
	case common.Color:
		return KindColor
	default:
		return KindStruct
	}
}
