// Package asm lowers Redcode source text into a start offset and a list of
// executable core.Instruction values, via the two-pass assembler of
// spec.md §4.7: a first pass discovers labels and EQU constants while
// queueing each instruction's unevaluated operand strings, and a second
// pass evaluates every operand against the accumulated symbol
// environment.
package asm

import "fmt"

// ParseError is the structured error of spec.md §7 kind 1: user source is
// malformed. Line is 1-based.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func errf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
}
