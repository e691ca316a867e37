// Package diag collects the recoverable, per-line diagnostics produced while
// translating a source file. The pre-processor, first pass and second pass
// record problems in a List instead of returning on the first error, and
// the pipeline gathers them into one list, so that a single invocation surfaces as
// many problems as possible, mirroring asm.ErrAsm in the ngaro assembler.
package diag

import (
	"fmt"
	"strings"
)

// Kind enumerates the taxonomy of errors a translation run can record.
type Kind int

const (
	LineTooLong Kind = iota
	InvalidMacroName
	LabelOnMacroLine
	ExtraneousText
	MacroNotClosed
	DuplicateMacroName
	MacroError
	InvalidLabelName
	ReservedWord
	DuplicateLabel
	SyntaxError
	UnknownInstruction
	OperandCountMismatch
	InvalidOperandType
	UndefinedSymbol
	EntryOnExtern
	MemoryOverflow
)

var kindNames = [...]string{
	"line too long",
	"invalid macro name",
	"label on macro line",
	"extraneous text",
	"macro not closed",
	"duplicate macro name",
	"macro error",
	"invalid label name",
	"reserved word",
	"duplicate label",
	"syntax error",
	"unknown instruction",
	"operand count mismatch",
	"invalid operand type",
	"undefined symbol",
	"entry on extern",
	"memory overflow",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "error"
	}
	return kindNames[k]
}

// Entry is a single recorded diagnostic, bound to a one-based source line.
type Entry struct {
	Line int
	Kind Kind
	Msg  string
}

func (e *Entry) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Msg)
}

// List accumulates diagnostics for one file's translation run. A nil List
// behaves like an empty list. List implements error directly so a pipeline
// stage can return its List as the error value once the run is over.
type List []*Entry

// Add appends a new diagnostic with the given one-based line, kind and
// formatted message.
func (l *List) Add(line int, kind Kind, format string, args ...interface{}) {
	*l = append(*l, &Entry{Line: line, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any diagnostic has been recorded.
func (l List) HasErrors() bool {
	return len(l) > 0
}

// Error renders every entry, one per line, so a List can be returned
// wherever an error is expected.
func (l List) Error() string {
	lines := make([]string, 0, len(l))
	for _, e := range l {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}
