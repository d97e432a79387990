package rng

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if a.Bool() != b.Bool() || a.IntN(1000) != b.IntN(1000) {
			t.Fatalf("sequences diverged at step %d", i)
		}
	}
}

func TestBetweenRange(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		v := r.Between(-20, 20)
		if v < -20 || v > 20 {
			t.Fatalf("Between(-20,20) = %d", v)
		}
	}
	if r.IntN(0) != 0 {
		t.Fatal("IntN(0) must be 0")
	}
}

func TestZeroSeedPicksOne(t *testing.T) {
	if New(0).Seed() == 0 {
		t.Fatal("zero seed was not replaced")
	}
}
