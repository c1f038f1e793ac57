package core

import "testing"

func TestEffectiveAddressImmediateIsBase(t *testing.T) {
	mem := NewMemory(100)
	eff := effectiveAddress(mem, 10, Field{Mode: Immediate, Value: 5})
	if eff != 10 {
		t.Errorf("Immediate effective address = %d, want 10 (base)", eff)
	}
}

func TestEffectiveAddressDirect(t *testing.T) {
	mem := NewMemory(100)
	eff := effectiveAddress(mem, 10, Field{Mode: Direct, Value: 5})
	if eff != 15 {
		t.Errorf("Direct effective address = %d, want 15", eff)
	}
}

func TestEffectiveAddressIndirectA(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(15, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 3}})
	eff := effectiveAddress(mem, 10, Field{Mode: IndirectA, Value: 5})
	if eff != 18 {
		t.Errorf("IndirectA effective address = %d, want 18 (15+3)", eff)
	}
}

func TestPostincrementAIncrementsPointedCellAfterResolving(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(15, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 3}})
	eff := effectiveAddress(mem, 10, Field{Mode: PostincrementA, Value: 5})
	if eff != 13 {
		t.Errorf("PostincrementA effective address = %d, want 13 (10+3)", eff)
	}
	if got := mem.Read(15).A.Value; got != 4 {
		t.Errorf("pointed cell A after postincrement = %d, want 4", got)
	}
}

func TestPredecrementDecrementsBeforeResolving(t *testing.T) {
	mem := NewMemory(100)
	mem.Write(15, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 3}})
	f := Field{Mode: PredecrementA, Value: 5}
	predecrement(mem, 10, f)
	if got := mem.Read(15).A.Value; got != 2 {
		t.Errorf("pointed cell A after predecrement = %d, want 2", got)
	}
	eff := effectiveAddress(mem, 10, f)
	if eff != 12 {
		t.Errorf("PredecrementA effective address = %d, want 12 (10+2)", eff)
	}
}

func TestResolveOperandsOrderingAAndBShareAPointer(t *testing.T) {
	// Both operands point at the very same cell: A's predecrement lowers
	// its A-field and B's predecrement lowers its B-field, each once, and
	// both happen before either address is resolved (spec.md §4.3 order:
	// predecrement A, predecrement B, resolve A, resolve B).
	mem := NewMemory(100)
	mem.Write(20, Instruction{Op: DAT, A: Field{Mode: Direct, Value: 5}, B: Field{Mode: Direct, Value: 5}})
	inst := Instruction{
		Op: MOV,
		A:  Field{Mode: PredecrementA, Value: 10},
		B:  Field{Mode: PredecrementB, Value: 10},
	}
	res := resolveOperands(mem, 10, inst)

	cell := mem.Read(20)
	if cell.A.Value != 4 {
		t.Errorf("cell.A after double predecrement = %d, want 4", cell.A.Value)
	}
	if cell.B.Value != 4 {
		t.Errorf("cell.B after double predecrement = %d, want 4", cell.B.Value)
	}
	if res.aEff != 14 {
		t.Errorf("aEff = %d, want 14 (10+4)", res.aEff)
	}
	if res.bEff != 14 {
		t.Errorf("bEff = %d, want 14 (10+4)", res.bEff)
	}
}
