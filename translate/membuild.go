package translate

import (
	"strconv"
	"strings"

	"github.com/dcernic/asm10/encode"
	"github.com/dcernic/asm10/line"
	"github.com/dcernic/asm10/word"
)

var addrModeOf = map[line.OperandKind]word.Word{
	line.Immediate: word.AddrImmediate,
	line.Direct:    word.AddrDirect,
	line.Matrix:    word.AddrMatrix,
	line.Register:  word.AddrRegister,
}

// BuildMemory walks the expanded source a second time, independently of
// symbol resolution, emitting the partially-populated machine image:
// instruction words first (addresses Base..ICFinal-1), then data words
// (ICFinal..ICFinal+DCFinal-1), per SPEC_FULL.md §4.5. Malformed lines are
// skipped silently: they were already reported by FirstPass.
func (c *Context) BuildMemory(lines []string) {
	c.Memory = make([]word.Word, c.ICFinal+c.DCFinal-Base)

	ic := Base
	for _, raw := range lines {
		if line.IsCommentOrEmpty(raw) {
			continue
		}
		rest := raw
		if _, ok := line.ExtractLabel(raw); ok {
			rest = line.Rest(raw)
		}
		tok, operandText := firstToken(rest)
		if tok == ".entry" || tok == ".extern" || line.IsDataOrStringDirective(tok) {
			continue
		}
		ins, ok := encode.Lookup(tok)
		if !ok {
			continue
		}
		ic += c.emitInstruction(ic, ins, operandText)
	}

	dc := c.ICFinal
	for _, raw := range lines {
		if line.IsCommentOrEmpty(raw) {
			continue
		}
		rest := raw
		if _, ok := line.ExtractLabel(raw); ok {
			rest = line.Rest(raw)
		}
		tok, operandText := firstToken(rest)
		if !line.IsDataOrStringDirective(tok) {
			continue
		}
		dc += c.emitData(dc, tok, operandText)
	}
}

// emitInstruction writes one instruction's words starting at address addr
// and returns the number of words written.
func (c *Context) emitInstruction(addr int, ins encode.Instruction, operandText string) int {
	operands := line.ParseOperands(operandText)
	kinds := make([]line.OperandKind, len(operands))
	for i, op := range operands {
		kinds[i] = line.ClassifyOperand(op)
	}

	var srcMode, dstMode word.Word
	if len(kinds) >= 1 {
		if len(kinds) == 1 {
			dstMode = addrModeOf[kinds[0]]
		} else {
			srcMode = addrModeOf[kinds[0]]
			dstMode = addrModeOf[kinds[1]]
		}
	}

	n := 1
	c.set(addr, word.FirstWord(word.Word(ins.Opcode), srcMode, dstMode))

	if len(kinds) == 2 && kinds[0] == line.Register && kinds[1] == line.Register {
		srcReg, _ := line.RegisterNumber(operands[0])
		dstReg, _ := line.RegisterNumber(operands[1])
		c.set(addr+n, word.RegisterWord(word.Word(srcReg), word.Word(dstReg)))
		return n + 1
	}

	if len(kinds) == 1 {
		// A single operand is always the destination (SPEC_FULL.md §9).
		for _, v := range operandWords(operands[0], kinds[0], false) {
			c.set(addr+n, v)
			n++
		}
		return n
	}
	if len(kinds) >= 1 {
		for _, v := range operandWords(operands[0], kinds[0], true) {
			c.set(addr+n, v)
			n++
		}
	}
	if len(kinds) >= 2 {
		for _, v := range operandWords(operands[1], kinds[1], false) {
			c.set(addr+n, v)
			n++
		}
	}
	return n
}

// operandWords returns the machine words a single operand contributes to
// the instruction image. isSource selects which register field a bare
// register operand occupies.
func operandWords(op string, kind line.OperandKind, isSource bool) []word.Word {
	switch kind {
	case line.Immediate:
		v, _ := line.ImmediateValue(op)
		return []word.Word{word.ImmediateWord(v)}
	case line.Register:
		reg, _ := line.RegisterNumber(op)
		if isSource {
			return []word.Word{word.RegisterWord(word.Word(reg), 0)}
		}
		return []word.Word{word.RegisterWord(0, word.Word(reg))}
	case line.Matrix:
		_, ri, rj, _ := line.MatrixParts(op)
		return []word.Word{0, word.RegisterWord(word.Word(ri), word.Word(rj))}
	default: // Direct
		return []word.Word{0}
	}
}

// emitData writes one .data/.string/.mat directive's words starting at
// address addr and returns the number of words written.
func (c *Context) emitData(addr int, directive, operandText string) int {
	switch directive {
	case ".data":
		items := line.ParseOperands(operandText)
		for i, it := range items {
			v, _ := strconv.Atoi(it)
			c.set(addr+i, word.FromInt(v))
		}
		return len(items)

	case ".string":
		n := line.CountStringLength(operandText)
		if n == 0 {
			return 0
		}
		trimmed := strings.TrimSpace(operandText)
		content := trimmed[1 : len(trimmed)-1]
		for i, ch := range []byte(content) {
			c.set(addr+i, word.New(uint16(ch)))
		}
		c.set(addr+n-1, 0)
		return n

	case ".mat":
		rows, cols, values, ok := parseMatDirective(operandText)
		if !ok {
			return 0
		}
		total := rows * cols
		for i := 0; i < total; i++ {
			if i < len(values) {
				v, _ := strconv.Atoi(values[i])
				c.set(addr+i, word.FromInt(v))
			} else {
				c.set(addr+i, 0)
			}
		}
		return total
	}
	return 0
}

// set writes v at the given absolute address, growing the memory slice if
// the caller's IC′/DC′ bookkeeping under-counted (defensive; should not
// trigger on a well-formed Context).
func (c *Context) set(addr int, v word.Word) {
	idx := addr - Base
	if idx < 0 {
		return
	}
	if idx >= len(c.Memory) {
		grown := make([]word.Word, idx+1)
		copy(grown, c.Memory)
		c.Memory = grown
	}
	c.Memory[idx] = v
}
