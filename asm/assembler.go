package asm

import (
	"strings"

	"riddick.net/corewar/core"
)

// queuedInstruction is one Pass A output entry: opcode/modifier resolved,
// operand text still unevaluated (it may reference labels defined later
// in the source).
type queuedInstruction struct {
	line     int
	opcode   core.Opcode
	modifier core.Modifier
	hasMod   bool
	a, b     string
}

// Result is everything Assemble produces from one source unit: the start
// offset and the instruction list ready for Memory.Load, plus whatever
// `;name`/`;author` header metadata was present.
type Result struct {
	Origin      int
	Program     []core.Instruction
	WarriorName string
	Author      string
}

// Assemble lowers Redcode source text into a Result, implementing the
// two-pass process of spec.md §4.7: Pass A discovers labels, EQU
// constants and queues instructions with their operand text still
// unevaluated; Pass B evaluates every operand against the accumulated
// symbol environment (MarsProperties constants, EQU constants, and
// labels translated to offsets relative to the referencing instruction).
func Assemble(source string, props core.MarsProperties) (*Result, error) {
	res := &Result{}
	labels := map[string]int{}
	constants := map[string]int{}
	var queue []queuedInstruction

	origin := 0
	i := 0 // output index, i.e. count of queued instructions so far
	lastLabel := ""

	lines := strings.Split(source, "\n")
	for lineNo, raw := range lines {
		lineNo++ // 1-based

		if key, value, ok := headerComment(raw); ok {
			switch key {
			case "name":
				res.WarriorName = value
			case "author":
				res.Author = value
			}
			continue
		}
		if isBlankOrComment(raw) {
			continue
		}

		stmt, err := parseStatement(lineNo, raw)
		if err != nil {
			return nil, err
		}

		switch stmt.opcode {
		case "ORG":
			lastLabel = ""
			v, err := evalOriginExpr(stmt.line, stmt.a, props, constants, labels)
			if err != nil {
				return nil, err
			}
			origin = v
			continue
		case "END":
			lastLabel = ""
			if stmt.a != "" {
				v, err := evalOriginExpr(stmt.line, stmt.a, props, constants, labels)
				if err != nil {
					return nil, err
				}
				origin = v
			}
			goto passB
		case "EQU":
			if len(stmt.labels) == 0 {
				if lastLabel == "" {
					return nil, errf(stmt.line, "EQU used without a preceding label")
				}
				v, err := evalOperandExpr(stmt.line, joinOperands(stmt), i, props, constants, labels)
				if err != nil {
					return nil, err
				}
				constants[lastLabel] = v
				continue
			}
			label := stmt.labels[len(stmt.labels)-1]
			v, err := evalOperandExpr(stmt.line, joinOperands(stmt), i, props, constants, labels)
			if err != nil {
				return nil, err
			}
			constants[label] = v
			lastLabel = label
			continue
		}

		lastLabel = ""
		for _, l := range stmt.labels {
			labels[l] = i
		}
		mod, hasMod := core.ModNone, false
		if stmt.modifier != "" {
			mod, hasMod = core.LookupModifier(stmt.modifier)
			if !hasMod {
				return nil, errf(stmt.line, "`%s` is not a valid modifier", stmt.modifier)
			}
		}
		op, ok := core.LookupOpcode(stmt.opcode)
		if !ok {
			return nil, errf(stmt.line, "`%s` is not a valid opcode", stmt.opcode)
		}

		a, b := stmt.a, stmt.b
		if op == core.DAT && b == "" && a != "" {
			// ICWS deep-instruction convention (spec.md §4.1): a lone
			// DAT operand is the B-field; A defaults to $0.
			a, b = "", a
		}
		queue = append(queue, queuedInstruction{line: stmt.line, opcode: op, modifier: mod, hasMod: hasMod, a: a, b: b})
		i++
	}

passB:
	prog := make([]core.Instruction, len(queue))
	for idx, q := range queue {
		inst := core.Instruction{Op: q.opcode}
		if q.hasMod {
			inst.Modifier = q.modifier
		}
		var err error
		inst.A, err = evalOperandField(q.line, q.a, idx, props, constants, labels)
		if err != nil {
			return nil, err
		}
		inst.B, err = evalOperandField(q.line, q.b, idx, props, constants, labels)
		if err != nil {
			return nil, err
		}
		prog[idx] = inst
	}

	res.Origin = origin
	res.Program = prog
	return res, nil
}

func joinOperands(stmt *statement) string {
	if stmt.b == "" {
		return stmt.a
	}
	return stmt.a + "," + stmt.b
}

// symbolEnv composes the evaluator's symbol table, per spec.md §4.7:
// MarsProperties values, EQU constants, and labels translated to offsets
// relative to the referencing instruction at output index i.
func symbolEnv(i int, props core.MarsProperties, constants map[string]int, labels map[string]int) map[string]int {
	env := props.AsMap()
	for k, v := range constants {
		env[k] = v
	}
	for k, v := range labels {
		env[k] = v - i
	}
	return env
}

// evalOriginExpr evaluates an ORG/END expression. Unlike an instruction
// operand, the origin is an absolute output index: labels here resolve to
// their own absolute position rather than an offset relative to the
// referencing instruction.
func evalOriginExpr(line int, text string, props core.MarsProperties, constants, labels map[string]int) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errf(line, "expected an expression")
	}
	env := props.AsMap()
	for k, v := range constants {
		env[k] = v
	}
	for k, v := range labels {
		env[k] = v
	}
	return evalExpr(line, text, env)
}

func evalOperandExpr(line int, text string, i int, props core.MarsProperties, constants, labels map[string]int) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errf(line, "expected an expression")
	}
	if len(text) > 0 && strings.ContainsRune(addressingModes, rune(text[0])) {
		text = text[1:]
	}
	return evalExpr(line, text, symbolEnv(i, props, constants, labels))
}

const addressingModes = "#$*@{}<>"

// evalOperandField evaluates one operand into a core.Field: an optional
// leading addressing-mode character (default `$`) plus the evaluated
// integer value.
func evalOperandField(line int, text string, i int, props core.MarsProperties, constants, labels map[string]int) (core.Field, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return core.Field{Mode: core.Direct, Value: 0}, nil
	}
	mode := core.Direct
	body := text
	if strings.ContainsRune(addressingModes, rune(text[0])) {
		mode = core.Mode(text[0])
		body = text[1:]
	}
	v, err := evalExpr(line, body, symbolEnv(i, props, constants, labels))
	if err != nil {
		return core.Field{}, err
	}
	return core.Field{Mode: mode, Value: v}, nil
}
