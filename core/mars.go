package core

import (
	"io"
	"log"
)

// MarsProperties holds the five named configuration options of spec.md §3.
// Their values also feed the assembler's expression evaluator as named
// constants (CORESIZE, MAXCYCLES, MAXPROCESSES, MAXLENGTH, MINDISTANCE).
type MarsProperties struct {
	CoreSize     int
	MaxCycles    int
	MaxProcesses int
	MaxLength    int
	MinDistance  int
}

// DefaultMarsProperties returns the ICWS'94 defaults of spec.md §3.
func DefaultMarsProperties() MarsProperties {
	return MarsProperties{
		CoreSize:     8000,
		MaxCycles:    80000,
		MaxProcesses: 8000,
		MaxLength:    100,
		MinDistance:  100,
	}
}

// AsMap exposes the properties as a symbol environment for the assembler's
// constant-expression evaluator.
func (p MarsProperties) AsMap() map[string]int {
	return map[string]int{
		"CORESIZE":     p.CoreSize,
		"MAXCYCLES":    p.MaxCycles,
		"MAXPROCESSES": p.MaxProcesses,
		"MAXLENGTH":    p.MaxLength,
		"MINDISTANCE":  p.MinDistance,
	}
}

// Mars is the scheduler: it exclusively owns the shared Memory and the
// ordered list of live warriors, and drives the round-robin simulation
// cycle of spec.md §4.6.
type Mars struct {
	Properties MarsProperties
	memory     *Memory
	warriors   []*Warrior
	debugger   *Debugger
	logger     *log.Logger
}

// NewMars boots a MARS instance with the given properties. Following the
// teacher's CPU constructor, a logger is always present; embedders that
// want silence pass nothing and get io.Discard.
func NewMars(props MarsProperties) *Mars {
	return &Mars{
		Properties: props,
		memory:     NewMemory(props.CoreSize),
		logger:     log.New(io.Discard, "mars: ", log.LstdFlags),
	}
}

// SetLogger installs a logger for round-by-round diagnostics (warrior
// loaded, warrior died). Pass nil to silence logging again.
func (m *Mars) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "mars: ", log.LstdFlags)
	}
	m.logger = l
}

// AttachDebugger installs a debugger that is notified before every
// instruction step and on every memory write, mirroring the teacher's
// CPU.AttachDebugger/DetachDebugger pair.
func (m *Mars) AttachDebugger(d *Debugger) {
	m.debugger = d
	if d != nil {
		m.memory.OnWrite(d.onDataStore)
	} else {
		m.memory.OnWrite(nil)
	}
}

// DetachDebugger removes any attached debugger.
func (m *Mars) DetachDebugger() {
	m.debugger = nil
	m.memory.OnWrite(nil)
}

// Memory exposes the shared core for inspection (disassembly, dumps).
func (m *Mars) Memory() *Memory { return m.memory }

// Warriors returns the currently live warriors, in scheduling order.
func (m *Mars) Warriors() []*Warrior {
	out := make([]*Warrior, len(m.warriors))
	copy(out, m.warriors)
	return out
}

// Load places w's program into memory at the next non-overlapping slot
// (spec.md §4.6: slot i occupies len(warriors)*(MaxLength+MinDistance))
// and registers it with the scheduler.
func (m *Mars) Load(w *Warrior) {
	base := len(m.warriors) * (m.Properties.MaxLength + m.Properties.MinDistance)
	m.memory.Load(base, w.Program)
	w.spawn(base)
	m.warriors = append(m.warriors, w)
	m.logger.Printf("loaded %s at base %d", w.Name, base)
}

// Cycle advances one round: every live warrior steps its oldest thread
// exactly once, in insertion order; warriors that die this round are
// removed from the scheduler and returned. It walks a snapshot of the
// warrior list and collects survivors into a new list in the same order,
// so each warrior steps exactly one thread per Cycle call no matter how
// many threads it gains by splitting.
func (m *Mars) Cycle() []*Warrior {
	var dead []*Warrior
	live := make([]*Warrior, 0, len(m.warriors))
	for _, w := range snapshotWarriors(m.warriors) {
		if m.debugger != nil {
			m.debugger.onUpdatePC(w)
		}
		if w.Step(m.memory, m.Properties.MaxProcesses) {
			live = append(live, w)
		} else {
			dead = append(dead, w)
			m.logger.Printf("warrior %s died", w.Name)
		}
	}
	m.warriors = live
	return dead
}

// snapshotWarriors takes a fixed snapshot of the warrior list so that a warrior
// loaded or removed mid-cycle (which Cycle itself never does, but a
// debugger callback conceivably could) does not perturb this round's
// iteration.
func snapshotWarriors(ws []*Warrior) []*Warrior {
	out := make([]*Warrior, len(ws))
	copy(out, ws)
	return out
}

// Run repeats Cycle until a single warrior remains or MaxCycles rounds
// have elapsed, per spec.md §4.6. It returns the number of rounds run.
func (m *Mars) Run() int {
	for round := 1; round <= m.Properties.MaxCycles; round++ {
		m.Cycle()
		if len(m.warriors) <= 1 {
			return round
		}
	}
	return m.Properties.MaxCycles
}
