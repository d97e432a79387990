package ecs

import "math/bits"

// MaxComponents is the number of distinct component types one World can hold.
const MaxComponents = 200

const maskWords = (MaxComponents + 63) / 64

// Mask is a fixed-width bit set over component type ids.
type Mask [maskWords]uint64

func (m *Mask) Set(bit int)   { m[bit>>6] |= 1 << (uint(bit) & 63) }
func (m *Mask) Unset(bit int) { m[bit>>6] &^= 1 << (uint(bit) & 63) }

func (m Mask) Has(bit int) bool {
	return m[bit>>6]&(1<<(uint(bit)&63)) != 0
}

// Contains reports whether every bit of other is also set in m.
func (m Mask) Contains(other Mask) bool {
	for i := range m {
		if m[i]&other[i] != other[i] {
			return false
		}
	}
	return true
}

func (m Mask) IsZero() bool {
	for _, w := range m {
		if w != 0 {
			return false
		}
	}
	return true
}

func (m *Mask) Clear() { *m = Mask{} }

// Each calls fn for every set bit in ascending order.
func (m Mask) Each(fn func(bit int)) {
	for i, w := range m {
		for w != 0 {
			low := w & -w
			bit := i*64 + bits.TrailingZeros64(low)
			fn(bit)
			w ^= low
		}
	}
}
