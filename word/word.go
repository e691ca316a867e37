// Package word defines the 10-bit machine word used throughout the
// assembler's memory image, and the handful of bit-field helpers needed to
// pack ARE flags, addressing modes, opcodes and register numbers.
package word

// Word is a single 10-bit machine word. The type is backed by uint16 so
// arithmetic and formatting stay cheap, but every constructor and mutator
// masks its result to the low 10 bits: a Word can never silently carry bits
// above bit 9.
type Word uint16

// Mask keeps only the 10 bits that exist in hardware.
const Mask Word = 0x3FF

// New masks v down to a valid machine word.
func New(v uint16) Word {
	return Word(v) & Mask
}

// FromInt converts a signed Go int to its 10-bit two's-complement
// representation. Callers are expected to have already validated the value
// is within [-512, 511]; FromInt itself just performs the bit-level
// conversion so the rule lives in exactly one place.
func FromInt(v int) Word {
	return New(uint16(int16(v)))
}

// ARE flag values occupying bits 0-1 of every word.
const (
	AREAbsolute    Word = 0
	AREExternal    Word = 1
	ARERelocatable Word = 2
)

// Addressing mode values occupying the source/destination mode fields.
const (
	AddrImmediate Word = 0
	AddrDirect    Word = 1
	AddrMatrix    Word = 2
	AddrRegister  Word = 3
)

// FirstWord packs the opcode/source-mode/destination-mode/ARE fields that
// make up the first word of every instruction. ARE is always Absolute for
// this word: the opcode itself is never relocated or imported.
func FirstWord(opcode, srcMode, dstMode Word) Word {
	var w Word
	w |= (opcode & 0xF) << 6
	w |= (srcMode & 0x3) << 4
	w |= (dstMode & 0x3) << 2
	w |= AREAbsolute
	return w
}

// RegisterWord packs a shared two-register word, or a single register word
// when the unused slot is left at 0. srcReg occupies bits 6-9, dstReg bits
// 2-5; ARE is always Absolute.
func RegisterWord(srcReg, dstReg Word) Word {
	var w Word
	w |= (srcReg & 0xF) << 6
	w |= (dstReg & 0xF) << 2
	w |= AREAbsolute
	return w
}

// ImmediateWord packs a signed value into the 8 data bits (2-9) of an
// immediate operand word, with ARE Absolute.
func ImmediateWord(v int) Word {
	data := Word(uint16(int16(v))) & 0xFF
	return (data << 2) | AREAbsolute
}

// Relocatable packs a resolved CODE/DATA address into an operand word.
func Relocatable(addr int) Word {
	return (Word(addr&0xFF) << 2) | ARERelocatable
}

// External packs the placeholder word for an operand that resolved to an
// EXTERN symbol: no address information is carried, only the ARE flag.
func External() Word {
	return AREExternal
}
