package codec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/pulserun/common"
)

// Value is a decoded field value for callers that only know the field's
// Kind at runtime, such as inspection tools. Exactly the member matching
// Kind is meaningful.
type Value struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Uint   uint64
	Float  float64
	Str    string
	Vec3   common.Vec3
	Quat   common.Quat
	Color  common.Color
	// Enum holds the stored name, or the number when the name is unknown.
	Enum   string
	Struct map[string]any
}

// DecodeValue decodes encoded as the given kind.
func DecodeValue(kind Kind, encoded EncodedValue) (Value, error) {
	v := Value{Kind: kind}
	var err error
	switch kind {
	case KindBool:
		v.Bool, err = Decode[bool](encoded)
	case KindInt:
		v.Int, err = Decode[int64](encoded)
	case KindUint:
		v.Uint, err = Decode[uint64](encoded)
	case KindFloat:
		v.Float, err = Decode[float64](encoded)
	case KindString:
		v.Str, err = Decode[string](encoded)
	case KindVec3:
		v.Vec3, err = Decode[common.Vec3](encoded)
	case KindQuat:
		v.Quat, err = Decode[common.Quat](encoded)
	case KindColor:
		v.Color, err = Decode[common.Color](encoded)
	case KindEnum:
		v.Enum, err = Decode[string](encoded)
	case KindStruct:
		v.Struct, err = Decode[map[string]any](encoded)
	default:
		return Value{}, &DecodeError{Kind: kind, Text: encoded, Err: fmt.Errorf("unsupported kind %d", int(kind))}
	}
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

// EncodeValue is the inverse of DecodeValue.
func EncodeValue(v Value) (EncodedValue, error) {
	switch v.Kind {
	case KindBool:
		return Encode(v.Bool)
	case KindInt:
		return Encode(v.Int)
	case KindUint:
		return Encode(v.Uint)
	case KindFloat:
		return Encode(v.Float)
	case KindString:
		return Encode(v.Str)
	case KindVec3:
		return Encode(v.Vec3)
	case KindQuat:
		return Encode(v.Quat)
	case KindColor:
		return Encode(v.Color)
	case KindEnum:
		if n, err := strconv.ParseInt(v.Enum, 10, 64); err == nil {
			return Encode(n)
		}
		return Encode(v.Enum)
	case KindStruct:
		return Encode(v.Struct)
	default:
		return "", fmt.Errorf("codec: encode: unsupported kind %d", int(v.Kind))
	}
}

// String renders the value for humans.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindUint:
		return strconv.FormatUint(v.Uint, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.Str)
	case KindVec3:
		return fmt.Sprintf("(%g, %g, %g)", v.Vec3.X, v.Vec3.Y, v.Vec3.Z)
	case KindQuat:
		return fmt.Sprintf("(%g, %g, %g, %g)", v.Quat.X, v.Quat.Y, v.Quat.Z, v.Quat.W)
	case KindColor:
		return v.Color.Hex()
	case KindEnum:
		return v.Enum
	case KindStruct:
		keys := make([]string, 0, len(v.Struct))
		for k := range v.Struct {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", k, v.Struct[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "?"
	}
}
