package levels

import (
	"fmt"
	"strings"
)

// Namespace separates shipped levels from levels players make. Each has
// its own directory and file extension.
type Namespace int

const (
	Builtin Namespace = iota
	User
)

var Namespaces = []Namespace{Builtin, User}

func (ns Namespace) String() string {
	switch ns {
	case Builtin:
		return "builtin"
	case User:
		return "user"
	default:
		return fmt.Sprintf("namespace(%d)", int(ns))
	}
}

// Ext returns the file extension, including the dot.
func (ns Namespace) Ext() string {
	if ns == User {
		return ".ulevel"
	}
	return ".level"
}

func ParseNamespace(s string) (Namespace, error) {
	switch strings.ToLower(s) {
	case "builtin", "b":
		return Builtin, nil
	case "user", "u":
		return User, nil
	default:
		return 0, fmt.Errorf("levels: unknown namespace %q", s)
	}
}
