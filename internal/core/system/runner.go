package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order. Systems sharing a phase keep
// their registration order.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every system whose phase lies in [from, to].
func (r *Runner) Tick(from, to Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if p := s.Phase(); p >= from && p <= to {
			s.Update(dt)
		}
	}
}

// TickPhase runs only the systems of one phase. The loop uses it for
// PhaseInput, which runs once per rendered frame rather than per tick.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.Tick(phase, phase, dt)
}

// Len returns the number of registered systems.
func (r *Runner) Len() int { return len(r.systems) }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
