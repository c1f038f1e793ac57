package asm

import "riddick.net/corewar/core"

// ParseLoadFile parses the plain ".rc" load-file grammar of spec.md §6.1.
// That grammar is a strict subset of the ".red" assembly grammar Assemble
// already handles (no labels, no EQU, case-insensitive opcodes, mode-
// prefixed decimal operands), so this is a thin, named entry point
// rather than a second parser.
func ParseLoadFile(text string) (*Result, error) {
	return Assemble(text, core.DefaultMarsProperties())
}
