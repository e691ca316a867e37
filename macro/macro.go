// Package macro implements the pre-processor stage: it expands a source
// line stream into one where every mcro/mcroend block has been stripped out
// and every call to the macro it defined has been replaced by its stored
// body. Diagnostics accumulate in a diag.List rather than aborting on the
// first problem, mirroring asm.ErrAsm in the ngaro assembler.
package macro

import (
	"strings"

	"github.com/dcernic/asm10/diag"
	"github.com/dcernic/asm10/reserved"
)

// MaxLineLength is the longest a source line's content may be, excluding
// the terminator.
const MaxLineLength = 80

// Macro is a stored definition: a name and its ordered body lines.
type Macro struct {
	Name string
	Body []string
}

// Table is the set of macros defined so far in a file, in definition order.
type Table struct {
	order []*Macro
	index map[string]int
}

func (t *Table) ensure() {
	if t.index == nil {
		t.index = make(map[string]int)
	}
}

// Lookup returns the macro named name, or nil if undefined.
func (t *Table) Lookup(name string) *Macro {
	t.ensure()
	if i, ok := t.index[name]; ok {
		return t.order[i]
	}
	return nil
}

// define commits a completed macro to the table. It fails if name is
// already defined.
func (t *Table) define(name string, body []string) error {
	t.ensure()
	if _, ok := t.index[name]; ok {
		return &ErrDuplicateMacro{Name: name}
	}
	t.index[name] = len(t.order)
	t.order = append(t.order, &Macro{Name: name, Body: body})
	return nil
}

// ErrDuplicateMacro is returned when a macro name is defined twice in the
// same file.
type ErrDuplicateMacro struct{ Name string }

func (e *ErrDuplicateMacro) Error() string { return "duplicate macro: " + e.Name }

type state int

const (
	stateOutside state = iota
	stateInside
	stateSkipping
)

// Expand runs the pre-processor over lines (already split, no terminators),
// returning the expanded line stream, the table of macros collected along
// the way, and any diagnostics. When diagnostics are non-empty the expanded
// stream must not be used: the caller should not proceed to the first pass.
func Expand(lines []string) ([]string, *Table, diag.List) {
	var diags diag.List
	tab := &Table{}
	out := make([]string, 0, len(lines))

	st := stateOutside
	var curName string
	var curBody []string
	macroStartLine := 0

	for i, raw := range lines {
		lineNo := i + 1

		if len(raw) > MaxLineLength {
			diags.Add(lineNo, diag.LineTooLong, "line exceeds %d characters", MaxLineLength)
			continue
		}

		trimmed := strings.TrimSpace(raw)

		if st == stateSkipping {
			if firstWord(trimmed) == "mcroend" {
				st = stateOutside
			}
			continue
		}

		if st == stateInside {
			if firstWord(trimmed) == "mcroend" {
				if err := tab.define(curName, curBody); err != nil {
					diags.Add(lineNo, diag.DuplicateMacroName, "%s", err)
				}
				st = stateOutside
				curBody = nil
				continue
			}
			curBody = append(curBody, raw)
			continue
		}

		// st == stateOutside
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			out = append(out, raw)
			continue
		}

		if hasLabelPrefix(trimmed) {
			rest := trimmed[strings.IndexByte(trimmed, ':')+1:]
			restTrimmed := strings.TrimSpace(rest)
			word := firstWord(restTrimmed)
			if word == "mcro" || tab.Lookup(word) != nil {
				diags.Add(lineNo, diag.LabelOnMacroLine, "label not allowed on macro definition or call")
				continue
			}
		}

		word := firstWord(trimmed)

		if word == "mcro" {
			name := secondWord(trimmed)
			rest := afterSecondWord(trimmed)
			macroStartLine = lineNo
			if name == "" {
				diags.Add(lineNo, diag.InvalidMacroName, "missing macro name")
				st = stateSkipping
				continue
			}
			if strings.TrimSpace(rest) != "" {
				diags.Add(lineNo, diag.ExtraneousText, "extraneous text after macro name %q", name)
				st = stateSkipping
				continue
			}
			if !reserved.ValidMacroName(name) {
				diags.Add(lineNo, diag.InvalidMacroName, "%q is not a valid macro name", name)
				st = stateSkipping
				continue
			}
			curName = name
			curBody = nil
			st = stateInside
			continue
		}

		if m := tab.Lookup(word); m != nil {
			restTrimmed := strings.TrimSpace(trimmed[len(word):])
			if restTrimmed != "" {
				diags.Add(lineNo, diag.ExtraneousText, "extraneous text after macro call %q", word)
				continue
			}
			out = append(out, m.Body...)
			continue
		}

		out = append(out, raw)
	}

	if st == stateInside {
		diags.Add(macroStartLine, diag.MacroNotClosed, "macro %q has no matching mcroend", curName)
	}

	if diags.HasErrors() {
		return nil, tab, diags
	}
	return out, tab, diags
}

func firstWord(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

func secondWord(s string) string {
	f := strings.Fields(s)
	if len(f) < 2 {
		return ""
	}
	return f[1]
}

func afterSecondWord(s string) string {
	f := strings.Fields(s)
	if len(f) < 3 {
		return ""
	}
	idx := strings.Index(s, f[1])
	if idx < 0 {
		return ""
	}
	return s[idx+len(f[1]):]
}

func hasLabelPrefix(trimmed string) bool {
	colon := strings.IndexByte(trimmed, ':')
	if colon <= 0 {
		return false
	}
	label := trimmed[:colon]
	return !strings.ContainsAny(label, " \t")
}
