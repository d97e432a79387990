package ecs

import (
	"fmt"
	"reflect"
)

// Releaser is implemented by components that own something outside the
// pool (a physics body, a texture handle). Release runs when the component
// is removed, overwritten by a fresh Assign, or its entity is destroyed.
type Releaser interface {
	Release()
}

// pool is the type-erased view of a typedPool the World needs for
// destroy-time teardown.
type pool interface {
	release(index uint32)
}

// typedPool stores one component type for every entity slot. A slot is only
// meaningful while the owner's mask bit is set.
type typedPool[T any] struct {
	data []T
}

func (p *typedPool[T]) release(index uint32) {
	if r, ok := any(&p.data[index]).(Releaser); ok {
		r.Release()
	}
}

// registry hands out component type ids per World. Two worlds may give the
// same Go type different ids.
type registry struct {
	ids   map[reflect.Type]int
	pools []pool
}

func newRegistry() registry {
	return registry{
		ids:   make(map[reflect.Type]int, 16),
		pools: make([]pool, 0, 16),
	}
}

func (r *registry) lookup(t reflect.Type) (int, bool) {
	id, ok := r.ids[t]
	return id, ok
}

// register returns the id for T, creating its pool on first use.
func register[T any](r *registry) int {
	t := reflect.TypeFor[T]()
	if id, ok := r.ids[t]; ok {
		return id
	}
	if len(r.pools) >= MaxComponents {
		panic(fmt.Sprintf("ecs: too many component types (max %d), registering %s", MaxComponents, t))
	}
	id := len(r.pools)
	r.ids[t] = id
	r.pools = append(r.pools, &typedPool[T]{data: make([]T, MaxEntities)})
	return id
}

func poolOf[T any](r *registry, id int) *typedPool[T] {
	return r.pools[id].(*typedPool[T])
}
