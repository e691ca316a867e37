package translate

import (
	"github.com/dcernic/asm10/diag"
	"github.com/dcernic/asm10/encode"
	"github.com/dcernic/asm10/line"
	"github.com/dcernic/asm10/symtab"
	"github.com/dcernic/asm10/word"
)

// SecondPass walks the expanded source with its own running IC, patching
// DIRECT/MATRIX operand placeholders left by BuildMemory and resolving
// .entry directives (SPEC_FULL.md §4.6). It must run after FirstPass and
// BuildMemory have populated c.Symbols and c.Memory.
func (c *Context) SecondPass(lines []string) {
	ic := Base

	for i, raw := range lines {
		lineNo := i + 1

		if line.IsCommentOrEmpty(raw) {
			continue
		}
		rest := raw
		if _, ok := line.ExtractLabel(raw); ok {
			rest = line.Rest(raw)
		}
		tok, operandText := firstToken(rest)

		switch {
		case tok == ".entry":
			name, _ := firstToken(operandText)
			sym, err := c.Symbols.MarkEntry(name)
			if err != nil {
				c.Diags.Add(lineNo, diag.EntryOnExtern, "%s", err)
				continue
			}
			if sym == nil {
				c.Diags.Add(lineNo, diag.UndefinedSymbol, "entry symbol %q is undefined", name)
				continue
			}
			c.Entries = append(c.Entries, EntryRef{Name: sym.Name, Address: sym.Address})

		case tok == ".extern", line.IsDataOrStringDirective(tok):
			// No addresses to patch.

		default:
			ins, ok := encode.Lookup(tok)
			if !ok {
				continue
			}
			ic += c.patchInstruction(ic, ins, operandText, lineNo)
		}
	}
}

// patchInstruction recomputes the operand word addresses for one
// instruction (independently of BuildMemory, per SPEC_FULL.md §4.6) and
// patches any DIRECT/MATRIX placeholders, returning the instruction's
// total word count.
func (c *Context) patchInstruction(addr int, ins encode.Instruction, operandText string, lineNo int) int {
	operands := line.ParseOperands(operandText)
	kinds := make([]line.OperandKind, len(operands))
	for i, op := range operands {
		kinds[i] = line.ClassifyOperand(op)
	}

	n := 1

	if len(kinds) == 2 && kinds[0] == line.Register && kinds[1] == line.Register {
		return n + 1
	}

	if len(kinds) >= 1 {
		n += c.patchOperand(addr+n, operands[0], kinds[0], lineNo)
	}
	if len(kinds) >= 2 {
		n += c.patchOperand(addr+n, operands[1], kinds[1], lineNo)
	}
	return n
}

// patchOperand patches the placeholder word(s) for one operand starting at
// addr, returning the number of words it occupies.
func (c *Context) patchOperand(addr int, op string, kind line.OperandKind, lineNo int) int {
	switch kind {
	case line.Immediate, line.Register:
		return 1
	case line.Matrix:
		name, _, _, _ := line.MatrixParts(op)
		c.resolveSymbolWord(addr, name, lineNo)
		return 2
	default: // Direct
		c.resolveSymbolWord(addr, op, lineNo)
		return 1
	}
}

// resolveSymbolWord looks up name and patches the word at addr to either
// an external reference or a relocatable address, per SPEC_FULL.md §4.6.
func (c *Context) resolveSymbolWord(addr int, name string, lineNo int) {
	sym := c.Symbols.Lookup(name)
	if sym == nil {
		c.Diags.Add(lineNo, diag.UndefinedSymbol, "undefined symbol %q", name)
		return
	}
	if sym.Kind == symtab.Extern {
		c.set(addr, word.External())
		c.Externs = append(c.Externs, ExternRef{Name: name, Address: addr})
		return
	}
	c.set(addr, word.Relocatable(sym.Address))
}
