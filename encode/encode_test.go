package encode_test

import (
	"testing"

	"github.com/dcernic/asm10/encode"
	"github.com/dcernic/asm10/line"
)

func TestLookup(t *testing.T) {
	ins, ok := encode.Lookup("mov")
	if !ok {
		t.Fatal("mov should be a known mnemonic")
	}
	if ins.Opcode != encode.Mov || ins.NumOperands != 2 {
		t.Errorf("got %+v", ins)
	}

	if _, ok := encode.Lookup("bogus"); ok {
		t.Error("bogus should not be a known mnemonic")
	}
}

func TestOpcodeNumbers(t *testing.T) {
	cases := map[string]encode.Opcode{
		"mov": 0, "cmp": 1, "add": 2, "sub": 3, "not": 4, "clr": 5,
		"lea": 6, "inc": 7, "dec": 8, "jmp": 9, "bne": 10, "red": 11,
		"prn": 12, "jsr": 13, "rts": 14, "stop": 15,
	}
	for mnemonic, want := range cases {
		ins, ok := encode.Lookup(mnemonic)
		if !ok {
			t.Fatalf("%s not found", mnemonic)
		}
		if ins.Opcode != want {
			t.Errorf("%s: got opcode %d, want %d", mnemonic, ins.Opcode, want)
		}
	}
}

func TestMovDestinationModes(t *testing.T) {
	ins, _ := encode.Lookup("mov")
	if ins.ValidDestination(line.Immediate) {
		t.Error("mov destination should not allow IMMEDIATE")
	}
	if !ins.ValidDestination(line.Register) {
		t.Error("mov destination should allow REGISTER")
	}
	if !ins.ValidSource(line.Immediate) {
		t.Error("mov source should allow IMMEDIATE")
	}
}

func TestLeaModes(t *testing.T) {
	ins, _ := encode.Lookup("lea")
	if ins.ValidSource(line.Immediate) {
		t.Error("lea source should not allow IMMEDIATE")
	}
	if ins.ValidSource(line.Register) {
		t.Error("lea source should not allow REGISTER")
	}
	if !ins.ValidSource(line.Direct) {
		t.Error("lea source should allow DIRECT")
	}
	if ins.ValidDestination(line.Matrix) {
		t.Error("lea destination should not allow MATRIX")
	}
}

func TestRtsStopHaveNoOperands(t *testing.T) {
	for _, m := range []string{"rts", "stop"} {
		ins, _ := encode.Lookup(m)
		if ins.NumOperands != 0 {
			t.Errorf("%s should take no operands, got %d", m, ins.NumOperands)
		}
	}
}

func TestPrnAllowsAnyDestination(t *testing.T) {
	ins, _ := encode.Lookup("prn")
	for _, k := range []line.OperandKind{line.Immediate, line.Register, line.Matrix, line.Direct} {
		if !ins.ValidDestination(k) {
			t.Errorf("prn destination should allow %v", k)
		}
	}
}
