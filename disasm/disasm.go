// Package disasm renders a range of core.Memory back into Redcode text,
// the inverse of asm.Assemble for a single already-assembled region (no
// label reconstruction -- addresses are emitted as the signed relative
// offsets the executor itself works in).
package disasm

import (
	"fmt"
	"strings"

	"riddick.net/corewar/core"
)

// Line is one disassembled memory cell: its address and rendered text.
type Line struct {
	Address int
	Text    string
}

// Range disassembles count cells starting at base, wrapping through the
// circular core exactly as core.Memory.Read does.
func Range(mem *core.Memory, base, count int) []Line {
	lines := make([]Line, count)
	for i := 0; i < count; i++ {
		addr := base + i
		lines[i] = Line{Address: addr, Text: mem.Read(addr).String()}
	}
	return lines
}

// Listing joins a Range's output into an address-prefixed text block
// suitable for a terminal dump or a debugger's `list` command.
func Listing(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%6d  %s\n", l.Address, l.Text)
	}
	return b.String()
}

// Warrior disassembles exactly the cells a warrior's own program
// occupies, starting at base.
func Warrior(mem *core.Memory, base int, w *core.Warrior) []Line {
	return Range(mem, base, len(w.Program))
}
