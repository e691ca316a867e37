package macro_test

import (
	"strings"
	"testing"

	"github.com/dcernic/asm10/diag"
	"github.com/dcernic/asm10/macro"
)

func expand(t *testing.T, src string) ([]string, *macro.Table, diag.List) {
	t.Helper()
	lines := strings.Split(src, "\n")
	return macro.Expand(lines)
}

func TestExpandSimpleCall(t *testing.T) {
	src := "mcro m1\nadd r1, r2\nmcroend\nm1\nstop"
	out, tab, diags := expand(t, src)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if tab.Lookup("m1") == nil {
		t.Fatal("expected m1 to be defined")
	}
	want := []string{"add r1, r2", "stop"}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, out[i], want[i])
		}
	}
}

func TestExpandPassthrough(t *testing.T) {
	src := "MAIN: mov r1, r2\nstop"
	out, _, diags := expand(t, src)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if len(out) != 2 || out[0] != "MAIN: mov r1, r2" {
		t.Errorf("got %v", out)
	}
}

func TestDuplicateMacroName(t *testing.T) {
	src := "mcro m1\nadd r1, r2\nmcroend\nmcro m1\nsub r1, r2\nmcroend"
	_, _, diags := expand(t, src)
	if !diags.HasErrors() {
		t.Fatal("expected a duplicate macro diagnostic")
	}
	if diags[0].Kind != diag.DuplicateMacroName {
		t.Errorf("got %v, want DuplicateMacroName", diags[0].Kind)
	}
}

func TestInvalidMacroName(t *testing.T) {
	src := "mcro mov\nadd r1, r2\nmcroend"
	_, _, diags := expand(t, src)
	if !diags.HasErrors() {
		t.Fatal("expected an invalid macro name diagnostic")
	}
	if diags[0].Kind != diag.InvalidMacroName {
		t.Errorf("got %v, want InvalidMacroName", diags[0].Kind)
	}
}

func TestMacroNotClosed(t *testing.T) {
	src := "mcro m1\nadd r1, r2"
	_, _, diags := expand(t, src)
	if !diags.HasErrors() {
		t.Fatal("expected a macro-not-closed diagnostic")
	}
	found := false
	for _, e := range diags {
		if e.Kind == diag.MacroNotClosed {
			found = true
		}
	}
	if !found {
		t.Errorf("got %v, want MacroNotClosed among diagnostics", diags)
	}
}

func TestLabelOnMacroCallRejected(t *testing.T) {
	src := "mcro m1\nadd r1, r2\nmcroend\nLBL: m1"
	_, _, diags := expand(t, src)
	if !diags.HasErrors() {
		t.Fatal("expected a label-on-macro-line diagnostic")
	}
	if diags[0].Kind != diag.LabelOnMacroLine {
		t.Errorf("got %v, want LabelOnMacroLine", diags[0].Kind)
	}
}

func TestExtraneousTextAfterCall(t *testing.T) {
	src := "mcro m1\nadd r1, r2\nmcroend\nm1 extra"
	_, _, diags := expand(t, src)
	if !diags.HasErrors() {
		t.Fatal("expected an extraneous-text diagnostic")
	}
	if diags[0].Kind != diag.ExtraneousText {
		t.Errorf("got %v, want ExtraneousText", diags[0].Kind)
	}
}

func TestLineTooLong(t *testing.T) {
	long := strings.Repeat("a", macro.MaxLineLength+1)
	_, _, diags := expand(t, long)
	if !diags.HasErrors() {
		t.Fatal("expected a line-too-long diagnostic")
	}
	if diags[0].Kind != diag.LineTooLong {
		t.Errorf("got %v, want LineTooLong", diags[0].Kind)
	}
}

func TestCommentsAndBlanksPreservedOutsideMacro(t *testing.T) {
	src := "; a comment\n\nstop"
	out, _, diags := expand(t, src)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if len(out) != 3 {
		t.Fatalf("got %v", out)
	}
}
