package ecs

import "go.uber.org/zap"

// World is the top-level ECS container. It owns the entity table, the free
// list, the per-world component registry and a deferred destruction queue
// flushed by the cleanup system each tick.
type World struct {
	records      []record
	freeList     []uint32
	registry     registry
	destroyQueue []EntityID
	log          *zap.Logger
}

func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		records:      make([]record, 0, MaxEntities),
		freeList:     make([]uint32, 0, 32),
		registry:     newRegistry(),
		destroyQueue: make([]EntityID, 0, 16),
		log:          log,
	}
}

// NewEntity returns a fresh handle with no components. Freed slots are
// reused first, keeping the version they were bumped to on destroy.
// Returns NoEntity once all MaxEntities slots are live.
func (w *World) NewEntity() EntityID {
	if n := len(w.freeList); n > 0 {
		idx := w.freeList[n-1]
		w.freeList = w.freeList[:n-1]
		rec := &w.records[idx]
		rec.id = CreateEntityID(idx, rec.id.Version())
		return rec.id
	}
	if len(w.records) >= MaxEntities {
		w.log.Warn("entity budget exhausted", zap.Int("max", MaxEntities))
		return NoEntity
	}
	id := CreateEntityID(uint32(len(w.records)), 0)
	w.records = append(w.records, record{id: id})
	return id
}

// IsValid reports whether id refers to a live entity of the current version.
func (w *World) IsValid(id EntityID) bool {
	idx := id.Index()
	if int64(idx) >= int64(len(w.records)) {
		return false
	}
	rec := &w.records[idx]
	return !rec.tombstoned() && rec.id == id
}

// DestroyEntity releases id's components and tombstones its slot. Destroying
// an already destroyed or foreign handle is a no-op.
func (w *World) DestroyEntity(id EntityID) {
	if !w.IsValid(id) {
		return
	}
	idx := id.Index()
	rec := &w.records[idx]
	rec.mask.Each(func(cid int) {
		w.registry.pools[cid].release(idx)
	})
	rec.id = CreateEntityID(InvalidIndex, id.Version()+1)
	rec.mask.Clear()
	w.freeList = append(w.freeList, idx)
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Systems use
// it instead of DestroyEntity while a View is being walked.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.DestroyEntity(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.records) - len(w.freeList) }

// Available returns how many more entities NewEntity can hand out.
func (w *World) Available() int { return MaxEntities - w.Len() }

// Capacity returns the number of records, live or tombstoned.
func (w *World) Capacity() int { return len(w.records) }

// MaskOf returns the ownership mask of a live entity, or an empty mask.
func (w *World) MaskOf(id EntityID) Mask {
	if !w.IsValid(id) {
		return Mask{}
	}
	return w.records[id.Index()].mask
}
