package core

import "sync"

// WriteObserver is notified whenever a memory cell changes value. old and
// new are full snapshots of the cell before and after the write.
type WriteObserver func(ptr int, old, new Instruction)

// Memory is the shared circular array of Instruction cells every warrior
// reads and writes. Index arithmetic is always modulo len(cells); pointers
// may be any integer, positive or negative.
//
// Memory is written only by the currently-stepping warrior's executor (see
// spec.md §5). The observer lock exists solely to give a single attached
// observer (e.g. a visualiser) a consistent snapshot of a cell across the
// notification callback, the way the teacher's CPU serializes debugger
// notifications around AttachDebugger/DetachDebugger.
type Memory struct {
	mu       sync.Mutex
	cells    []Instruction
	observer WriteObserver
}

// NewMemory allocates a circular memory of the given size, with every cell
// initialized to DAT.F $0, $0 per spec.md §3.
func NewMemory(size int) *Memory {
	if size <= 0 {
		panic("core: memory size must be positive")
	}
	cells := make([]Instruction, size)
	zero := Instruction{Op: DAT, A: Field{Mode: Direct}, B: Field{Mode: Direct}}
	for i := range cells {
		cells[i] = zero
	}
	return &Memory{cells: cells}
}

// Size returns the number of cells (the core size).
func (m *Memory) Size() int { return len(m.cells) }

// index canonicalizes an arbitrary integer pointer into [0, Size()).
func (m *Memory) index(ptr int) int {
	n := len(m.cells)
	idx := ptr % n
	if idx < 0 {
		idx += n
	}
	return idx
}

// Read returns the cell at ptr mod Size().
func (m *Memory) Read(ptr int) Instruction {
	return m.cells[m.index(ptr)]
}

// Write replaces the whole cell at ptr and notifies any attached observer.
func (m *Memory) Write(ptr int, inst Instruction) {
	idx := m.index(ptr)
	if m.observer == nil {
		m.cells[idx] = inst
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	old := m.cells[idx]
	m.cells[idx] = inst
	m.observer(idx, old, inst)
}

// FieldUpdate describes a partial cell update for WriteFields: any nil
// pointer leaves that sub-field untouched.
type FieldUpdate struct {
	Op       *Opcode
	Modifier *Modifier
	A        *Field
	B        *Field
}

// WriteFields performs a read-modify-write on the cell at ptr, replacing
// only the sub-fields present in u. This is the modifier-filtered write
// path used by the executor (spec.md §4.4).
func (m *Memory) WriteFields(ptr int, u FieldUpdate) {
	inst := m.Read(ptr)
	if u.Op != nil {
		inst.Op = *u.Op
	}
	if u.Modifier != nil {
		inst.Modifier = *u.Modifier
	}
	if u.A != nil {
		inst.A = *u.A
	}
	if u.B != nil {
		inst.B = *u.B
	}
	m.Write(ptr, inst)
}

// OnWrite attaches (or, with a nil callback, detaches) the single observer
// notified on every Write. Per spec.md §5, the observer must not itself
// call back into a mutating Memory operation.
func (m *Memory) OnWrite(cb WriteObserver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = cb
}

// Load writes prog starting at base, in order, without going through the
// observer lock per-cell semantics any differently than Write would.
func (m *Memory) Load(base int, prog []Instruction) {
	for i, inst := range prog {
		m.Write(base+i, inst)
	}
}
