package ecs

import "reflect"

// ComponentID returns the id T has in w, registering it if needed.
func ComponentID[T any](w *World) int {
	return register[T](&w.registry)
}

// Assign resets T for id to its zero value, marks id as owning it and
// returns a pointer into the pool. A stale handle yields nil.
func Assign[T any](w *World, id EntityID) *T {
	if !w.IsValid(id) {
		return nil
	}
	cid := register[T](&w.registry)
	p := poolOf[T](&w.registry, cid)
	idx := id.Index()
	rec := &w.records[idx]
	if rec.mask.Has(cid) {
		p.release(idx)
	}
	var zero T
	p.data[idx] = zero
	rec.mask.Set(cid)
	return &p.data[idx]
}

// Get returns id's T, or nil if the handle is stale or T is not owned.
// The pointer stays valid until the slot is reassigned or destroyed.
func Get[T any](w *World, id EntityID) *T {
	cid, ok := owned[T](w, id)
	if !ok {
		return nil
	}
	return &poolOf[T](&w.registry, cid).data[id.Index()]
}

// Has reports whether id is valid and owns T.
func Has[T any](w *World, id EntityID) bool {
	_, ok := owned[T](w, id)
	return ok
}

// Remove clears id's ownership of T. Stale handles and unowned types are
// ignored.
func Remove[T any](w *World, id EntityID) {
	cid, ok := owned[T](w, id)
	if !ok {
		return
	}
	idx := id.Index()
	poolOf[T](&w.registry, cid).release(idx)
	w.records[idx].mask.Unset(cid)
}

func owned[T any](w *World, id EntityID) (int, bool) {
	if !w.IsValid(id) {
		return 0, false
	}
	cid, ok := w.registry.lookup(reflect.TypeFor[T]())
	if !ok || !w.records[id.Index()].mask.Has(cid) {
		return 0, false
	}
	return cid, true
}
