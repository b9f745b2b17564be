package common

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Enum is implemented by the small integer enums stored in level files.
// They serialize by name so reordering a Go const block never changes a
// saved level, and unknown integers survive a round trip untouched.
type Enum interface {
	EnumNames() []string
}

// EnumString returns the name of v, or its number when out of range.
func EnumString[T ~int](v T, names []string) string {
	if int(v) >= 0 && int(v) < len(names) {
		return names[v]
	}
	return strconv.Itoa(int(v))
}

// ParseEnum resolves a name (case-insensitive) or a decimal number.
func ParseEnum[T ~int](s string, names []string) (T, error) {
	for i, name := range names {
		if strings.EqualFold(s, name) {
			return T(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return T(n), nil
	}
	return 0, fmt.Errorf("unknown value %q (want one of %s)", s, strings.Join(names, ", "))
}

func MarshalEnum[T ~int](v T, names []string) (any, error) {
	if int(v) >= 0 && int(v) < len(names) {
		return names[v], nil
	}
	return int(v), nil
}

func UnmarshalEnum[T ~int](value *yaml.Node, names []string, out *T) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("enum must be a scalar")
	}
	v, err := ParseEnum[T](value.Value, names)
	if err != nil {
		return err
	}
	*out = v
	return nil
}
