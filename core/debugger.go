package core

// Debugger observes a running Mars instance: it is notified before a
// warrior's thread executes and on every memory write, mirroring the
// teacher's cpu.Debugger attach/detach hooks (AttachDebugger/DetachDebugger,
// onUpdatePC, onDataStore).
type Debugger struct {
	// Breakpoints is the set of program counters that trigger Break.
	Breakpoints map[int]bool

	// Break, if set, is called when the warrior about to step has its
	// oldest thread (the one about to execute) at a breakpoint PC.
	Break func(w *Warrior, pc int)

	// Trace, if set, is called for every step regardless of breakpoints.
	Trace func(w *Warrior, pc int)

	// Watch, if set, is called on every memory write.
	Watch func(ptr int, old, new Instruction)
}

// NewDebugger returns a Debugger with an empty breakpoint set.
func NewDebugger() *Debugger {
	return &Debugger{Breakpoints: make(map[int]bool)}
}

// SetBreakpoint arms a breakpoint at pc.
func (d *Debugger) SetBreakpoint(pc int) {
	d.Breakpoints[pc] = true
}

// ClearBreakpoint disarms a breakpoint at pc.
func (d *Debugger) ClearBreakpoint(pc int) {
	delete(d.Breakpoints, pc)
}

// onUpdatePC is called by Mars.Cycle before a warrior's oldest thread
// executes.
func (d *Debugger) onUpdatePC(w *Warrior) {
	threads := w.Threads()
	if len(threads) == 0 {
		return
	}
	pc := threads[0]
	if d.Trace != nil {
		d.Trace(w, pc)
	}
	if d.Breakpoints[pc] && d.Break != nil {
		d.Break(w, pc)
	}
}

// onDataStore is installed as the Memory write observer while this
// debugger is attached.
func (d *Debugger) onDataStore(ptr int, old, new Instruction) {
	if d.Watch != nil {
		d.Watch(ptr, old, new)
	}
}
