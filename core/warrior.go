package core

// Warrior is a loaded Redcode program plus its ordered FIFO of program
// counters ("threads"). A warrior dies when its thread queue empties.
type Warrior struct {
	Name    string
	Author  string
	Program []Instruction
	Origin  int // offset of the entry thread, relative to the load base

	threads []int
}

// NewWarrior constructs a warrior from an assembled program and its start
// offset. Its single entry thread is created once the warrior is loaded
// into memory (see Mars.Load), since the thread's absolute PC depends on
// the load base.
func NewWarrior(name, author string, program []Instruction, origin int) *Warrior {
	return &Warrior{Name: name, Author: author, Program: program, Origin: origin}
}

// Alive reports whether the warrior still has at least one thread.
func (w *Warrior) Alive() bool { return len(w.threads) > 0 }

// Threads returns a shallow copy of the current thread queue, oldest
// first.
func (w *Warrior) Threads() []int {
	out := make([]int, len(w.threads))
	copy(out, w.threads)
	return out
}

// spawn seeds the warrior's single entry thread at base+Origin. Called
// exactly once, by Mars.Load.
func (w *Warrior) spawn(base int) {
	w.threads = []int{base + w.Origin}
}

// Step executes the oldest thread once, advancing the process table per
// spec.md §4.5:
//  1. dequeue the oldest PC
//  2. execute it, yielding 0, 1, or 2 successor PCs
//  3. enqueue the successors at the tail, preserving order
//
// It reports whether the warrior is still alive after the step.
func (w *Warrior) Step(mem *Memory, maxProcesses int) bool {
	if len(w.threads) == 0 {
		return false
	}
	pc := w.threads[0]
	w.threads = w.threads[1:]

	canSplit := len(w.threads)+1 < maxProcesses
	next := Execute(mem, pc, canSplit)
	w.threads = append(w.threads, next...)
	return len(w.threads) > 0
}
