package event

import "testing"

func TestBusDeliversNextTick(t *testing.T) {
	b := NewBus()
	var got []TriggerEntered
	Subscribe(b, func(ev TriggerEntered) { got = append(got, ev) })

	Emit(b, TriggerEntered{Trigger: 1, Other: 2})
	if b.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", b.Pending())
	}
	b.Dispatch()
	if len(got) != 0 {
		t.Fatal("event delivered before Swap")
	}

	b.Swap()
	b.Dispatch()
	if len(got) != 1 || got[0].Other != 2 {
		t.Fatalf("got %+v", got)
	}

	b.Swap()
	b.Dispatch()
	if len(got) != 1 {
		t.Fatal("event delivered twice")
	}
}

func TestBusRoutesByType(t *testing.T) {
	b := NewBus()
	quits := 0
	levels := 0
	Subscribe(b, func(QuitRequested) { quits++ })
	Subscribe(b, func(LevelImported) { levels++ })

	Emit(b, QuitRequested{})
	Emit(b, QuitRequested{})
	Emit(b, LevelImported{Path: "a.txt"})
	b.Swap()
	b.Dispatch()
	if quits != 2 || levels != 1 {
		t.Fatalf("quits=%d levels=%d", quits, levels)
	}
}
