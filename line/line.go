// Package line implements the stateless line-analyzer helpers shared by the
// first and second pass: label extraction, directive/command recognition,
// and operand classification and counting (SPEC_FULL.md §4.2).
package line

import (
	"strconv"
	"strings"

	"github.com/dcernic/asm10/reserved"
)

// IsCommentOrEmpty reports whether the line, once leading whitespace is
// stripped, is blank or begins with a comment marker.
func IsCommentOrEmpty(l string) bool {
	t := strings.TrimSpace(l)
	return t == "" || strings.HasPrefix(t, ";")
}

// ExtractLabel returns the label prefix of l (text before the first colon,
// with no intervening whitespace) and true, or "" and false if l carries no
// label.
func ExtractLabel(l string) (string, bool) {
	t := strings.TrimLeft(l, " \t")
	colon := strings.IndexByte(t, ':')
	if colon <= 0 {
		return "", false
	}
	candidate := t[:colon]
	if strings.ContainsAny(candidate, " \t") {
		return "", false
	}
	return candidate, true
}

// Rest returns l with its label prefix (if any) removed and the remainder
// trimmed of leading whitespace.
func Rest(l string) string {
	t := strings.TrimLeft(l, " \t")
	if _, ok := ExtractLabel(l); ok {
		colon := strings.IndexByte(t, ':')
		return strings.TrimLeft(t[colon+1:], " \t")
	}
	return t
}

// IsDataOrStringDirective reports whether word is .data, .string or .mat.
func IsDataOrStringDirective(word string) bool {
	return word == ".data" || word == ".string" || word == ".mat"
}

// IsCommand reports whether word names one of the sixteen instructions.
func IsCommand(word string) bool {
	return reserved.IsMnemonic(word)
}

// OperandKind classifies a single operand.
type OperandKind int

const (
	Invalid OperandKind = iota
	Immediate
	Register
	Matrix
	Direct
)

func (k OperandKind) String() string {
	switch k {
	case Immediate:
		return "IMMEDIATE"
	case Register:
		return "REGISTER"
	case Matrix:
		return "MATRIX"
	case Direct:
		return "DIRECT"
	default:
		return "INVALID"
	}
}

// ClassifyOperand classifies a single trimmed operand string per
// SPEC_FULL.md §4.2.
func ClassifyOperand(op string) OperandKind {
	op = strings.TrimSpace(op)
	if op == "" {
		return Invalid
	}
	if strings.HasPrefix(op, "#") {
		if _, ok := parseImmediateValue(op[1:]); ok {
			return Immediate
		}
		return Invalid
	}
	if isRegisterName(op) {
		return Register
	}
	if isMatrixOperand(op) {
		return Matrix
	}
	if reserved.ValidLabelName(op) {
		return Direct
	}
	return Invalid
}

func isRegisterName(s string) bool {
	if len(s) != 2 || s[0] != 'r' {
		return false
	}
	return s[1] >= '0' && s[1] <= '7'
}

func isMatrixOperand(s string) bool {
	open1 := strings.IndexByte(s, '[')
	if open1 <= 0 {
		return false
	}
	if !strings.HasSuffix(s, "]") {
		return false
	}
	name := s[:open1]
	if !reserved.ValidLabelName(name) {
		return false
	}
	inner := s[open1+1 : len(s)-1]
	parts := strings.SplitN(inner, "][", 2)
	if len(parts) != 2 {
		return false
	}
	return isRegisterName(parts[0]) && isRegisterName(parts[1])
}

func parseImmediateValue(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if v < -512 || v > 511 {
		return 0, false
	}
	return v, true
}

// ImmediateValue parses the signed value out of an IMMEDIATE operand
// string (leading '#' included). Callers must have already classified the
// operand as Immediate.
func ImmediateValue(op string) (int, bool) {
	op = strings.TrimSpace(op)
	if !strings.HasPrefix(op, "#") {
		return 0, false
	}
	return parseImmediateValue(op[1:])
}

// RegisterNumber parses the register index out of a Register operand.
func RegisterNumber(op string) (int, bool) {
	op = strings.TrimSpace(op)
	if !isRegisterName(op) {
		return 0, false
	}
	return int(op[1] - '0'), true
}

// MatrixParts splits a Matrix operand into its label name and two register
// indices.
func MatrixParts(op string) (name string, regI, regJ int, ok bool) {
	op = strings.TrimSpace(op)
	if !isMatrixOperand(op) {
		return "", 0, 0, false
	}
	open1 := strings.IndexByte(op, '[')
	name = op[:open1]
	inner := op[open1+1 : len(op)-1]
	parts := strings.SplitN(inner, "][", 2)
	regI, _ = RegisterNumber(parts[0])
	regJ, _ = RegisterNumber(parts[1])
	return name, regI, regJ, true
}

// ParseOperands splits a command's operand field on commas, trimming
// whitespace around each one. An empty field yields an empty slice.
func ParseOperands(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// CountDataItems returns the number of comma-separated integers in a .data
// directive's operand field.
func CountDataItems(s string) int {
	return len(ParseOperands(s))
}

// CountStringLength returns the number of machine words a .string
// directive's quoted content requires, including the terminating zero.
func CountStringLength(s string) int {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return 0
	}
	return len(s) - 2 + 1
}

// CountMatrixItems returns the number of machine words a .mat directive's
// dimensions imply (rows * cols), plus any explicit initializer overflow is
// the caller's concern.
func CountMatrixItems(rows, cols int) int {
	return rows * cols
}

// CountCommandWords returns the number of machine words an instruction with
// the given classified operands occupies, per the word-count rule in
// SPEC_FULL.md §4.2. The opcode word itself (always 1) is not included.
func CountCommandWords(operands []OperandKind) int {
	switch len(operands) {
	case 0:
		return 0
	case 1:
		if operands[0] == Matrix {
			return 2
		}
		return 1
	case 2:
		if operands[0] == Register && operands[1] == Register {
			return 1
		}
		total := 0
		for _, k := range operands {
			if k == Matrix {
				total += 2
			} else {
				total++
			}
		}
		return total
	default:
		return 0
	}
}
