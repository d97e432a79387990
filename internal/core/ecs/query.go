package ecs

// View walks the entities whose mask contains every requested component, in
// ascending slot order. The zero-component view matches all live entities.
//
//	v := ecs.NewView2[Transform, Sprite](w)
//	for v.Next() {
//		id := v.Entity()
//	}
//
// Creating or destroying entities during a walk is not supported; use
// Collect or World.MarkForDestruction.
type View struct {
	w    *World
	mask Mask
	cur  int
}

// NewView builds a view over raw component ids.
func NewView(w *World, ids ...int) *View {
	v := &View{w: w, cur: -1}
	for _, id := range ids {
		v.mask.Set(id)
	}
	return v
}

// All views every live entity.
func All(w *World) *View { return NewView(w) }

func NewView1[A any](w *World) *View {
	return NewView(w, ComponentID[A](w))
}

func NewView2[A, B any](w *World) *View {
	return NewView(w, ComponentID[A](w), ComponentID[B](w))
}

func NewView3[A, B, C any](w *World) *View {
	return NewView(w, ComponentID[A](w), ComponentID[B](w), ComponentID[C](w))
}

// Next advances to the next match and reports whether there is one.
func (v *View) Next() bool {
	for v.cur++; v.cur < len(v.w.records); v.cur++ {
		rec := &v.w.records[v.cur]
		if !rec.tombstoned() && rec.mask.Contains(v.mask) {
			return true
		}
	}
	return false
}

// Entity returns the current match. Only meaningful after Next returned true.
func (v *View) Entity() EntityID {
	return v.w.records[v.cur].id
}

// Reset rewinds the view so it can be walked again.
func (v *View) Reset() { v.cur = -1 }

// Collect drains the remaining matches into a slice.
func (v *View) Collect() []EntityID {
	var out []EntityID
	for v.Next() {
		out = append(out, v.Entity())
	}
	return out
}

// Count returns the number of matches without disturbing the cursor.
func (v *View) Count() int {
	n := 0
	for i := range v.w.records {
		rec := &v.w.records[i]
		if !rec.tombstoned() && rec.mask.Contains(v.mask) {
			n++
		}
	}
	return n
}

// Each1 calls fn for every entity owning A.
func Each1[A any](w *World, fn func(EntityID, *A)) {
	ca := ComponentID[A](w)
	pa := poolOf[A](&w.registry, ca)
	v := NewView(w, ca)
	for v.Next() {
		fn(v.Entity(), &pa.data[v.cur])
	}
}

// Each2 calls fn for every entity owning both A and B.
func Each2[A, B any](w *World, fn func(EntityID, *A, *B)) {
	ca, cb := ComponentID[A](w), ComponentID[B](w)
	pa, pb := poolOf[A](&w.registry, ca), poolOf[B](&w.registry, cb)
	v := NewView(w, ca, cb)
	for v.Next() {
		idx := v.cur
		fn(v.Entity(), &pa.data[idx], &pb.data[idx])
	}
}

// Each3 calls fn for every entity owning A, B and C.
func Each3[A, B, C any](w *World, fn func(EntityID, *A, *B, *C)) {
	ca, cb, cc := ComponentID[A](w), ComponentID[B](w), ComponentID[C](w)
	pa, pb, pc := poolOf[A](&w.registry, ca), poolOf[B](&w.registry, cb), poolOf[C](&w.registry, cc)
	v := NewView(w, ca, cb, cc)
	for v.Next() {
		idx := v.cur
		fn(v.Entity(), &pa.data[idx], &pb.data[idx], &pc.data[idx])
	}
}
