package core

import "testing"

func execAt(t *testing.T, mem *Memory, pc int, canSplit bool) []int {
	t.Helper()
	return Execute(mem, pc, canSplit)
}

func TestExecuteDatKillsThread(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(0, Instruction{Op: DAT})
	next := execAt(t, mem, 0, true)
	if next != nil {
		t.Errorf("DAT successors = %v, want nil", next)
	}
}

func TestExecuteMovImmediateCopiesAIntoB(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(0, Instruction{Op: MOV, A: Field{Mode: Immediate, Value: 42}, B: Field{Mode: Direct, Value: 1}})
	mem.Write(1, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 9}, B: Field{Mode: Direct, Value: 9}})

	next := execAt(t, mem, 0, true)
	if len(next) != 1 || next[0] != 1 {
		t.Fatalf("MOV successors = %v, want [1]", next)
	}
	// Immediate A-operand defaults MOV to .AB: the A value lands in dest.B.
	got := mem.Read(1)
	if got.B.Value != 42 {
		t.Errorf("dest.B = %d, want 42", got.B.Value)
	}
	if got.A.Value != 9 {
		t.Errorf("dest.A = %d, want unchanged 9", got.A.Value)
	}
}

func TestExecuteMovICopiesWholeCell(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(0, Instruction{Op: MOV, A: Field{Mode: Direct, Value: 1}, B: Field{Mode: Direct, Value: 2}})
	src := Instruction{Op: ADD, Modifier: ModAB, A: Field{Mode: Direct, Value: 3}, B: Field{Mode: Immediate, Value: 4}}
	mem.Write(1, src)

	execAt(t, mem, 0, true)
	if got := mem.Read(2); !got.Equal(src) {
		t.Errorf("MOV.I dest = %v, want whole-cell copy %v", got, src)
	}
}

func TestExecuteAddFieldWise(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(0, Instruction{Op: ADD, A: Field{Mode: Direct, Value: 1}, B: Field{Mode: Direct, Value: 2}})
	mem.Write(1, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 3}, B: Field{Mode: Direct, Value: 4}})
	mem.Write(2, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 10}, B: Field{Mode: Direct, Value: 20}})

	execAt(t, mem, 0, true)
	got := mem.Read(2)
	if got.A.Value != 13 || got.B.Value != 24 {
		t.Errorf("ADD.F result = %v, want A=13 B=24", got)
	}
}

func TestExecuteDivByZeroKillsThreadWithoutWrite(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(0, Instruction{Op: DIV, Modifier: ModAB, A: Field{Mode: Direct, Value: 1}, B: Field{Mode: Direct, Value: 2}})
	mem.Write(1, Instruction{Op: DAT, B: Field{Mode: Direct, Value: 0}}) // divisor cell's A field left zero
	before := mem.Read(2)

	next := execAt(t, mem, 0, true)
	if next != nil {
		t.Errorf("DIV by zero successors = %v, want nil (thread dies)", next)
	}
	if after := mem.Read(2); !after.Equal(before) {
		t.Errorf("DIV by zero must not modify dest: before=%v after=%v", before, after)
	}
}

func TestExecuteJmzBranchesOnZero(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(0, Instruction{Op: JMZ, A: Field{Mode: Direct, Value: 5}, B: Field{Mode: Direct, Value: 1}})
	mem.Write(1, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 0}, B: Field{Mode: Direct, Value: 0}})

	next := execAt(t, mem, 0, true)
	if len(next) != 1 || next[0] != 5 {
		t.Fatalf("JMZ on zero successors = %v, want [5]", next)
	}
}

func TestExecuteJmzFallsThroughOnNonzero(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(0, Instruction{Op: JMZ, A: Field{Mode: Direct, Value: 5}, B: Field{Mode: Direct, Value: 1}})
	mem.Write(1, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 0}, B: Field{Mode: Direct, Value: 7}})

	next := execAt(t, mem, 0, true)
	if len(next) != 1 || next[0] != 1 {
		t.Fatalf("JMZ on nonzero successors = %v, want [pc+1]", next)
	}
}

func TestExecuteDjnDecrementsThenBranches(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(0, Instruction{Op: DJN, A: Field{Mode: Direct, Value: 5}, B: Field{Mode: Direct, Value: 1}})
	mem.Write(1, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 0}, B: Field{Mode: Direct, Value: 2}})

	next := execAt(t, mem, 0, true)
	if len(next) != 1 || next[0] != 5 {
		t.Fatalf("DJN first decrement successors = %v, want [5] (2->1, nonzero)", next)
	}
	if got := mem.Read(1).B.Value; got != 1 {
		t.Errorf("decremented field = %d, want 1", got)
	}

	mem.Write(1, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 0}, B: Field{Mode: Direct, Value: 1}})
	next = execAt(t, mem, 0, true)
	if len(next) != 1 || next[0] != 1 {
		t.Fatalf("DJN hits zero successors = %v, want [pc+1] (1->0)", next)
	}
}

func TestExecuteSeqAndSneAreComplementary(t *testing.T) {
	mem := NewMemory(100)
	mkSeq := func() {
		mem.Write(0, Instruction{Op: SEQ, Modifier: ModAB, A: Field{Mode: Direct, Value: 1}, B: Field{Mode: Direct, Value: 2}})
		mem.Write(1, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 9}})
		mem.Write(2, Instruction{Op: DAT, B: Field{Mode: Direct, Value: 9}})
	}
	mkSeq()
	if next := execAt(t, mem, 0, true); len(next) != 1 || next[0] != 2 {
		t.Fatalf("SEQ on equal fields successors = %v, want [pc+2]=[2]", next)
	}

	mem.Write(0, Instruction{Op: SNE, Modifier: ModAB, A: Field{Mode: Direct, Value: 1}, B: Field{Mode: Direct, Value: 2}})
	if next := execAt(t, mem, 0, true); len(next) != 1 || next[0] != 1 {
		t.Fatalf("SNE on equal fields successors = %v, want [pc+1]=[1]", next)
	}
}

func TestExecuteSltComparesIntegersNotStrings(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(0, Instruction{Op: SLT, Modifier: ModAB, A: Field{Mode: Direct, Value: 1}, B: Field{Mode: Direct, Value: 2}})
	mem.Write(1, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 9}})
	mem.Write(2, Instruction{Op: DAT, B: Field{Mode: Direct, Value: 10}})

	next := execAt(t, mem, 0, true)
	if len(next) != 1 || next[0] != 2 {
		t.Fatalf("SLT(9,10) successors = %v, want [pc+2] (9 < 10 numerically)", next)
	}
}

func TestExecuteSplHonorsProcessCap(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(0, Instruction{Op: SPL, A: Field{Mode: Direct, Value: 5}})

	next := execAt(t, mem, 0, true)
	if len(next) != 2 || next[0] != 1 || next[1] != 5 {
		t.Fatalf("SPL with capacity successors = %v, want [1, 5]", next)
	}

	next = execAt(t, mem, 0, false)
	if len(next) != 1 || next[0] != 1 {
		t.Fatalf("SPL at cap successors = %v, want [pc+1] (behaves as NOP)", next)
	}
}
