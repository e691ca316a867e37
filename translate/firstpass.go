package translate

import (
	"strconv"
	"strings"

	"github.com/dcernic/asm10/diag"
	"github.com/dcernic/asm10/encode"
	"github.com/dcernic/asm10/line"
	"github.com/dcernic/asm10/reserved"
	"github.com/dcernic/asm10/symtab"
)

// FirstPass walks the expanded source once, building the symbol table and
// determining the final instruction and data counters (SPEC_FULL.md §4.4).
// .entry directives are not resolved here: the reference implementation
// resolves them entirely in the second pass, so FirstPass simply skips
// them (see SPEC_FULL.md §9).
func (c *Context) FirstPass(lines []string) {
	ic := Base
	dc := 0

	for i, raw := range lines {
		lineNo := i + 1

		if line.IsCommentOrEmpty(raw) {
			continue
		}

		rest := raw
		hasLabel := false
		var label string
		if l, ok := line.ExtractLabel(raw); ok {
			label = l
			hasLabel = true
			rest = line.Rest(raw)
			if !reserved.ValidLabelName(label) {
				c.Diags.Add(lineNo, diag.InvalidLabelName, "%q is not a valid label name", label)
			}
		}

		tok, operandText := firstToken(rest)

		switch {
		case tok == ".entry":
			// Resolved in the second pass.

		case tok == ".extern":
			name, _ := firstToken(operandText)
			if !reserved.ValidLabelName(name) {
				c.Diags.Add(lineNo, diag.InvalidLabelName, "%q is not a valid label name", name)
				continue
			}
			if err := c.Symbols.Insert(name, 0, symtab.Extern); err != nil {
				c.Diags.Add(lineNo, diag.DuplicateLabel, "%s", err)
			}

		case line.IsDataOrStringDirective(tok):
			if hasLabel {
				if err := c.Symbols.Insert(label, dc, symtab.Data); err != nil {
					c.Diags.Add(lineNo, diag.DuplicateLabel, "%s", err)
				}
			}
			n := directiveWordCount(tok, operandText, lineNo, &c.Diags)
			dc += n

		case line.IsCommand(tok):
			if hasLabel {
				if err := c.Symbols.Insert(label, ic, symtab.Code); err != nil {
					c.Diags.Add(lineNo, diag.DuplicateLabel, "%s", err)
				}
			}
			n := c.validateInstruction(tok, operandText, lineNo)
			ic += n

		default:
			c.Diags.Add(lineNo, diag.SyntaxError, "unrecognized instruction or directive %q", tok)
		}

		if ic+dc > MemSize {
			c.Diags.Add(lineNo, diag.MemoryOverflow, "memory image exceeds %d words", MemSize)
		}
	}

	c.ICFinal = ic
	c.DCFinal = dc
	c.Symbols.AdjustDataAddresses(c.ICFinal)
}

// directiveWordCount returns the number of data words a .data/.string/.mat
// directive occupies, recording diagnostics for malformed operand text.
func directiveWordCount(directive, operandText string, lineNo int, diags *diag.List) int {
	switch directive {
	case ".data":
		for _, it := range line.ParseOperands(operandText) {
			v, err := strconv.Atoi(it)
			if err != nil {
				diags.Add(lineNo, diag.SyntaxError, "invalid integer %q in .data", it)
			} else if v < -512 || v > 511 {
				diags.Add(lineNo, diag.SyntaxError, "value %d in .data is out of range", v)
			}
		}
		return line.CountDataItems(operandText)

	case ".string":
		n := line.CountStringLength(operandText)
		if n == 0 {
			diags.Add(lineNo, diag.SyntaxError, "malformed .string operand %q", operandText)
		}
		return n

	case ".mat":
		rows, cols, values, ok := parseMatDirective(operandText)
		if !ok {
			diags.Add(lineNo, diag.SyntaxError, "malformed .mat operand %q", operandText)
			return 0
		}
		for _, it := range values {
			v, err := strconv.Atoi(it)
			if err != nil {
				diags.Add(lineNo, diag.SyntaxError, "invalid integer %q in .mat", it)
			} else if v < -512 || v > 511 {
				diags.Add(lineNo, diag.SyntaxError, "value %d in .mat is out of range", v)
			}
		}
		n := line.CountMatrixItems(rows, cols)
		if len(values) > n {
			diags.Add(lineNo, diag.SyntaxError, ".mat has more initializers than cells")
		}
		return n
	}
	return 0
}

// parseMatDirective parses "[R][C] v1, v2, ..." into its dimensions and
// initializer list.
func parseMatDirective(s string) (rows, cols int, values []string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") {
		return 0, 0, nil, false
	}
	close1 := strings.IndexByte(s, ']')
	if close1 < 0 {
		return 0, 0, nil, false
	}
	rows, err := strconv.Atoi(s[1:close1])
	if err != nil {
		return 0, 0, nil, false
	}
	rem := s[close1+1:]
	if !strings.HasPrefix(rem, "[") {
		return 0, 0, nil, false
	}
	close2 := strings.IndexByte(rem, ']')
	if close2 < 0 {
		return 0, 0, nil, false
	}
	cols, err = strconv.Atoi(rem[1:close2])
	if err != nil {
		return 0, 0, nil, false
	}
	values = line.ParseOperands(rem[close2+1:])
	return rows, cols, values, true
}

// validateInstruction checks mnemonic and operand arity/addressing modes
// against the instruction table, recording diagnostics as needed, and
// returns the instruction's total word count (opcode word included).
func (c *Context) validateInstruction(mnemonic, operandText string, lineNo int) int {
	ins, ok := encode.Lookup(mnemonic)
	if !ok {
		c.Diags.Add(lineNo, diag.UnknownInstruction, "%q is not a known instruction", mnemonic)
		return 1
	}

	operands := line.ParseOperands(operandText)
	if len(operands) != ins.NumOperands {
		c.Diags.Add(lineNo, diag.OperandCountMismatch, "%s expects %d operand(s), got %d", mnemonic, ins.NumOperands, len(operands))
	}

	kinds := make([]line.OperandKind, 0, len(operands))
	for _, op := range operands {
		kinds = append(kinds, line.ClassifyOperand(op))
	}

	switch len(kinds) {
	case 1:
		if !ins.ValidDestination(kinds[0]) {
			c.Diags.Add(lineNo, diag.InvalidOperandType, "%s does not allow operand of type %v", mnemonic, kinds[0])
		}
	case 2:
		if !ins.ValidSource(kinds[0]) {
			c.Diags.Add(lineNo, diag.InvalidOperandType, "%s does not allow source operand of type %v", mnemonic, kinds[0])
		}
		if !ins.ValidDestination(kinds[1]) {
			c.Diags.Add(lineNo, diag.InvalidOperandType, "%s does not allow destination operand of type %v", mnemonic, kinds[1])
		}
	}

	return 1 + line.CountCommandWords(kinds)
}
