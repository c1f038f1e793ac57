package core

// resolved captures where an operand ultimately points, computed with the
// side-effect ordering of spec.md §4.3 (ICWS §5.3.5):
//
//  1. predecrement any '{' or '<' operand (A before B)
//  2. resolve A's effective address (may postincrement '}'/'>')
//  3. resolve B's effective address (may postincrement '}'/'>')
//  4. only then read through the effective addresses
type resolved struct {
	aEff int
	bEff int
}

// predecrement applies the pre-decrement side effect of mode '{'/'<' on
// the cell pointed to by base+field.Value, before any address resolution
// happens for that operand.
func predecrement(mem *Memory, base int, f Field) {
	switch f.Mode {
	case PredecrementA:
		ptr := base + f.Value
		inst := mem.Read(ptr)
		inst.A.Value--
		mem.Write(ptr, inst)
	case PredecrementB:
		ptr := base + f.Value
		inst := mem.Read(ptr)
		inst.B.Value--
		mem.Write(ptr, inst)
	}
}

// effectiveAddress resolves one operand to its effective address,
// applying the postincrement side effect of '}'/'>' when applicable.
func effectiveAddress(mem *Memory, base int, f Field) int {
	ptr := base + f.Value
	switch f.Mode {
	case Immediate:
		return base
	case Direct:
		return ptr
	case IndirectA:
		return ptr + mem.Read(ptr).A.Value
	case IndirectB:
		return ptr + mem.Read(ptr).B.Value
	case PredecrementA:
		return base + mem.Read(ptr).A.Value
	case PostincrementA:
		cell := mem.Read(ptr)
		eff := base + cell.A.Value
		cell.A.Value++
		mem.Write(ptr, cell)
		return eff
	case PredecrementB:
		return base + mem.Read(ptr).B.Value
	case PostincrementB:
		cell := mem.Read(ptr)
		eff := base + cell.B.Value
		cell.B.Value++
		mem.Write(ptr, cell)
		return eff
	default:
		return ptr
	}
}

// resolveOperands runs the full four-step addressing sequence of
// spec.md §4.3 for one instruction's A and B operands.
func resolveOperands(mem *Memory, base int, inst Instruction) resolved {
	predecrement(mem, base, inst.A)
	predecrement(mem, base, inst.B)
	aEff := effectiveAddress(mem, base, inst.A)
	bEff := effectiveAddress(mem, base, inst.B)
	return resolved{aEff: aEff, bEff: bEff}
}
