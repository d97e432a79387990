package system

import (
	"testing"
	"time"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase           { return r.phase }
func (r recorder) Update(_ time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunnerOrdersByPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"cleanup", PhaseCleanup, &log})
	r.Register(recorder{"grid", PhaseSimulate, &log})
	r.Register(recorder{"sync", PhaseSync, &log})
	r.Register(recorder{"player", PhaseUpdate, &log})
	r.Register(recorder{"trigger", PhaseUpdate, &log})
	r.Register(recorder{"input", PhaseInput, &log})

	r.Tick(PhaseEvents, PhaseCleanup, time.Second/120)
	want := []string{"sync", "player", "trigger", "grid", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ran %v, want %v", log, want)
		}
	}

	log = log[:0]
	r.TickPhase(PhaseInput, 0)
	if len(log) != 1 || log[0] != "input" {
		t.Fatalf("TickPhase ran %v", log)
	}
}
