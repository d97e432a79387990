package ecs

// MaxEntities is the fixed entity budget of a World. Component pools are
// sized to it, so an entity index always addresses a pool slot directly.
const MaxEntities = 200

// InvalidIndex marks a tombstoned record: the slot is on the free list and
// no live handle refers to it.
const InvalidIndex uint32 = 0xFFFFFFFF

// NoEntity is returned when the entity budget is exhausted and doubles as
// the "nothing selected" value for editors.
const NoEntity EntityID = ^EntityID(0)

// EntityID encodes a 32-bit slot index in the upper bits and a 32-bit
// version in the lower bits. The version increments on destroy so handles
// held across a destroy stop resolving.
type EntityID uint64

func CreateEntityID(index uint32, version uint32) EntityID {
	return EntityID(uint64(index)<<32 | uint64(version))
}

func (id EntityID) Index() uint32   { return uint32(id >> 32) }
func (id EntityID) Version() uint32 { return uint32(id) }

// record is one row of the entity table. Records are never reordered, so
// table order is iteration order.
type record struct {
	id   EntityID
	mask Mask
}

func (r *record) tombstoned() bool { return r.id.Index() == InvalidIndex }
