package disasm

import (
	"strings"
	"testing"

	"riddick.net/corewar/core"
)

func TestRangeRendersInstructionText(t *testing.T) {
	mem := core.NewMemory(20)
	mem.Write(5, core.Instruction{Op: core.MOV, A: core.Field{Mode: core.Direct, Value: 0}, B: core.Field{Mode: core.Direct, Value: 1}})

	lines := Range(mem, 5, 1)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Address != 5 {
		t.Errorf("address = %d, want 5", lines[0].Address)
	}
	if lines[0].Text != "MOV.I $0, $1" {
		t.Errorf("text = %q, want %q", lines[0].Text, "MOV.I $0, $1")
	}
}

func TestRangeWrapsCircularly(t *testing.T) {
	mem := core.NewMemory(10)
	mem.Write(0, core.Instruction{Op: core.NOP})
	lines := Range(mem, 8, 4)
	if lines[2].Address != 10 {
		t.Errorf("third line address = %d, want 10 (unwrapped, caller's responsibility to mod)", lines[2].Address)
	}
	if lines[2].Text != mem.Read(0).String() {
		t.Errorf("cell at address 10 should read back as cell 0's contents")
	}
}

func TestListingFormatsEachLine(t *testing.T) {
	mem := core.NewMemory(4)
	lines := Range(mem, 0, 2)
	out := Listing(lines)
	if !strings.Contains(out, "DAT.F $0, $0") {
		t.Errorf("listing missing expected DAT line: %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 lines, got: %q", out)
	}
}
