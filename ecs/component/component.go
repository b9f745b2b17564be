package component

import (
	"errors"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID identifies a component store inside one process. IDs are
// handed out at init time and differ between builds; level files use the
// registry's numeric IDs instead.
type ComponentID uint32

var (
	nextComponentID atomic.Uint32
	kindNames       sync.Map // ComponentID -> string
)

// ComponentKind is the typed key of a component store.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	kindNames.Store(id, reflect.TypeOf((*T)(nil)).Elem().String())
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }
func (k ComponentKind[T]) Valid() bool     { return k.id != 0 }

// String returns the Go type stored under k, e.g. "component.Tint".
func (k ComponentKind[T]) String() string {
	if name, ok := kindNames.Load(k.id); ok {
		return name.(string)
	}
	return "component#" + strconv.FormatUint(uint64(k.id), 10)
}

// ComponentHandle is what component files export; it keeps the kind
// unexported so nothing can forge one.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
