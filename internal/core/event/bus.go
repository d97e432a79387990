package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during tick N are
// delivered during tick N+1, after Swap, so a handler never observes an
// event raised by a system later in the same tick.
type Bus struct {
	mu       sync.Mutex // guards handler registration only
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

// Emit queues ev for delivery on the next Dispatch.
func Emit[T any](b *Bus, ev T) {
	t := reflect.TypeFor[T]()
	b.back[t] = append(b.back[t], ev)
}

// Subscribe registers fn for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeFor[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// Swap moves the events emitted since the last Swap to the front buffer.
func (b *Bus) Swap() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// Dispatch delivers every front-buffer event to its handlers.
func (b *Bus) Dispatch() {
	for t, events := range b.front {
		hs := b.handlers[t]
		for _, ev := range events {
			for _, h := range hs {
				h(ev)
			}
		}
		b.front[t] = events[:0]
	}
}

// Pending reports how many events wait in the back buffer.
func (b *Bus) Pending() int {
	n := 0
	for _, evs := range b.back {
		n += len(evs)
	}
	return n
}
