// Package encode holds the static instruction table: opcode numbers and
// the addressing modes each mnemonic permits for its source and destination
// operands (SPEC_FULL.md §4.6). It is consulted by the first pass (operand
// validation), the memory builder (opcode word layout) and the second pass
// (word-count recomputation).
package encode

import "github.com/dcernic/asm10/line"

// Opcode numbers, 0 through 15.
const (
	Mov Opcode = iota
	Cmp
	Add
	Sub
	Not
	Clr
	Lea
	Inc
	Dec
	Jmp
	Bne
	Red
	Prn
	Jsr
	Rts
	Stop
)

// Opcode is an instruction's numeric opcode, 0-15.
type Opcode int

// modeSet is a bitmask over the four line.OperandKind values, used to
// describe which addressing modes a mnemonic permits.
type modeSet int

const (
	modeImmediate modeSet = 1 << line.Immediate
	modeRegister  modeSet = 1 << line.Register
	modeMatrix    modeSet = 1 << line.Matrix
	modeDirect    modeSet = 1 << line.Direct
	modeAny       modeSet = modeImmediate | modeRegister | modeMatrix | modeDirect
	modeNone      modeSet = 0
)

func (m modeSet) allows(k line.OperandKind) bool {
	return m&(1<<k) != 0
}

// Instruction describes one mnemonic: its opcode, operand arity, and the
// modes it allows for each operand role.
type Instruction struct {
	Opcode      Opcode
	NumOperands int // 0, 1, or 2
	SrcModes    modeSet
	DstModes    modeSet
}

var table = map[string]Instruction{
	"mov": {Opcode: Mov, NumOperands: 2, SrcModes: modeAny, DstModes: modeDirect | modeMatrix | modeRegister},
	"cmp": {Opcode: Cmp, NumOperands: 2, SrcModes: modeAny, DstModes: modeAny},
	"add": {Opcode: Add, NumOperands: 2, SrcModes: modeAny, DstModes: modeDirect | modeMatrix | modeRegister},
	"sub": {Opcode: Sub, NumOperands: 2, SrcModes: modeAny, DstModes: modeDirect | modeMatrix | modeRegister},
	"lea": {Opcode: Lea, NumOperands: 2, SrcModes: modeDirect | modeMatrix, DstModes: modeDirect | modeRegister},
	"clr": {Opcode: Clr, NumOperands: 1, SrcModes: modeNone, DstModes: modeDirect | modeMatrix | modeRegister},
	"not": {Opcode: Not, NumOperands: 1, SrcModes: modeNone, DstModes: modeDirect | modeMatrix | modeRegister},
	"inc": {Opcode: Inc, NumOperands: 1, SrcModes: modeNone, DstModes: modeDirect | modeMatrix | modeRegister},
	"dec": {Opcode: Dec, NumOperands: 1, SrcModes: modeNone, DstModes: modeDirect | modeMatrix | modeRegister},
	"red": {Opcode: Red, NumOperands: 1, SrcModes: modeNone, DstModes: modeDirect | modeMatrix | modeRegister},
	"prn": {Opcode: Prn, NumOperands: 1, SrcModes: modeNone, DstModes: modeAny},
	"jmp": {Opcode: Jmp, NumOperands: 1, SrcModes: modeNone, DstModes: modeDirect | modeMatrix},
	"bne": {Opcode: Bne, NumOperands: 1, SrcModes: modeNone, DstModes: modeDirect | modeMatrix},
	"jsr": {Opcode: Jsr, NumOperands: 1, SrcModes: modeNone, DstModes: modeDirect | modeMatrix},
	"rts": {Opcode: Rts, NumOperands: 0, SrcModes: modeNone, DstModes: modeNone},
	"stop": {Opcode: Stop, NumOperands: 0, SrcModes: modeNone, DstModes: modeNone},
}

// Lookup returns the Instruction for mnemonic and true, or the zero value
// and false if mnemonic is not one of the sixteen opcodes.
func Lookup(mnemonic string) (Instruction, bool) {
	ins, ok := table[mnemonic]
	return ins, ok
}

// ValidSource reports whether mode is an allowed source addressing mode
// for ins.
func (ins Instruction) ValidSource(mode line.OperandKind) bool {
	return ins.SrcModes.allows(mode)
}

// ValidDestination reports whether mode is an allowed destination
// addressing mode for ins.
func (ins Instruction) ValidDestination(mode line.OperandKind) bool {
	return ins.DstModes.allows(mode)
}
