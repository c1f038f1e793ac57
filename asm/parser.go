package asm

import "strings"

var pseudoOps = map[string]bool{"ORG": true, "EQU": true, "END": true}

// statement is one non-blank, non-comment source line split into its
// grammatical parts, per the line regex of the original assembler's
// SYNTAX.line: an optional label list, an opcode[.modifier], and up to
// two operands.
type statement struct {
	line     int
	labels   []string
	opcode   string
	modifier string
	a, b     string // unevaluated operand text, including any mode prefix
}

// stripComment removes a trailing `;...` comment, respecting none of the
// operand characters the grammar allows a `;` to appear inside (it never
// does).
func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i]
	}
	return line
}

// isBlankOrComment reports whether line has no executable content.
func isBlankOrComment(line string) bool {
	return strings.TrimSpace(stripComment(line)) == ""
}

// headerComment recognizes a `;name <text>` or `;author <text>` warrior
// metadata line (spec.md §6.2). It must be called on the original,
// un-stripped line.
func headerComment(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ";") {
		return "", "", false
	}
	body := strings.TrimSpace(trimmed[1:])
	lower := strings.ToLower(body)
	for _, key := range []string{"name", "author"} {
		if strings.HasPrefix(lower, key) {
			rest := strings.TrimSpace(body[len(key):])
			return key, rest, true
		}
	}
	return "", "", false
}

// isIdentStart reports whether b can begin a label or opcode token.
func isIdentStart(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_'
}

// parseStatement tokenizes one executable source line into a statement.
func parseStatement(lineNo int, raw string) (*statement, error) {
	code := stripComment(raw)
	fields := strings.Fields(code)
	if len(fields) == 0 {
		return nil, errf(lineNo, "empty statement")
	}

	var labels []string
	for len(fields) > 0 && !looksLikeOpcode(fields[0]) {
		label := strings.TrimSuffix(fields[0], ":")
		if label == "" || !isIdentStart(label[0]) {
			return nil, errf(lineNo, "`%s` is not a valid label or opcode", fields[0])
		}
		labels = append(labels, label)
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return nil, errf(lineNo, "statement has labels but no opcode")
	}

	opAndMod := strings.SplitN(fields[0], ".", 2)
	opcode := strings.ToUpper(opAndMod[0])
	if !isKnownOpcode(opcode) {
		return nil, errf(lineNo, "`%s` is not a valid opcode", opAndMod[0])
	}
	modifier := ""
	if len(opAndMod) == 2 {
		modifier = strings.ToUpper(opAndMod[1])
		if !isKnownModifier(modifier) {
			return nil, errf(lineNo, "`%s` is not a valid modifier", opAndMod[1])
		}
	}
	fields = fields[1:]

	rest := strings.TrimSpace(strings.Join(fields, " "))
	var a, b string
	if rest != "" {
		parts := strings.SplitN(rest, ",", 2)
		a = strings.TrimSpace(parts[0])
		if len(parts) == 2 {
			b = strings.TrimSpace(parts[1])
		}
	}

	return &statement{line: lineNo, labels: labels, opcode: opcode, modifier: modifier, a: a, b: b}, nil
}

// looksLikeOpcode reports whether tok's dot-prefix names a known opcode,
// distinguishing a leading label from the instruction mnemonic.
func looksLikeOpcode(tok string) bool {
	head := strings.SplitN(tok, ".", 2)[0]
	return isKnownOpcode(strings.ToUpper(head)) || pseudoOps[strings.ToUpper(head)]
}

var knownOpcodes = map[string]bool{
	"DAT": true, "MOV": true, "ADD": true, "SUB": true, "MUL": true,
	"DIV": true, "MOD": true, "JMP": true, "JMZ": true, "JMN": true,
	"DJN": true, "SPL": true, "CMP": true, "SEQ": true, "SNE": true,
	"SLT": true, "LDP": true, "STP": true, "NOP": true,
	"ORG": true, "EQU": true, "END": true,
}

func isKnownOpcode(name string) bool { return knownOpcodes[name] }

var knownModifiers = map[string]bool{
	"A": true, "B": true, "AB": true, "BA": true, "F": true, "I": true, "X": true,
}

func isKnownModifier(name string) bool { return knownModifiers[name] }
