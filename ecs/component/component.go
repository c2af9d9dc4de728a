package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive = errors.New("ecs: entity not alive")
	ErrNilComponent   = errors.New("ecs: component is nil")
	ErrInvalidKind    = errors.New("ecs: invalid component kind")
)

// ComponentID identifies a component kind inside a World.
type ComponentID uint32

var nextComponentID atomic.Uint32

// Kind is the untyped view of a ComponentKind, used by queries that mix
// several component types.
type Kind interface {
	ID() ComponentID
}

// ComponentKind is a typed key into a World's component storage.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// Kind returns k itself so a registered component can be passed wherever
// a kind is expected.
func (k ComponentKind[T]) Kind() ComponentKind[T] {
	return k
}

// NewComponent registers a component type. The result is usually stored in
// a package-level variable named after the type.
func NewComponent[T any]() ComponentKind[T] {
	return NewComponentKind[T]()
}
