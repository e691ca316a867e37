// Package symtab implements the assembler's per-file symbol table: an
// insertion-ordered collection of labels with their kind (code, data or
// external) and entry-point status. The layout mirrors the C reference's
// singly-linked Symbol list but replaces it with a grow-on-append slice plus
// a name index, as described in SPEC_FULL.md's design notes.
package symtab

import "fmt"

// Kind classifies a symbol's origin.
type Kind int

const (
	Code Kind = iota
	Data
	Extern
)

func (k Kind) String() string {
	switch k {
	case Code:
		return "CODE"
	case Data:
		return "DATA"
	case Extern:
		return "EXTERN"
	default:
		return "UNKNOWN"
	}
}

// MaxNameLength is the longest a symbol or macro name may be.
const MaxNameLength = 30

// Symbol is one entry in the table.
type Symbol struct {
	Name    string
	Address int
	Kind    Kind
	IsEntry bool
}

// Table is an insertion-ordered symbol table. The zero value is ready to
// use.
type Table struct {
	order []*Symbol
	index map[string]int
}

// ErrDuplicateLabel is returned by Insert when name is already defined with
// a kind that conflicts with the new insertion.
type ErrDuplicateLabel struct {
	Name string
}

func (e *ErrDuplicateLabel) Error() string {
	return fmt.Sprintf("duplicate label: %s", e.Name)
}

// ErrEntryOnExtern is returned when an EXTERN symbol is marked as an entry
// point: the two roles are mutually exclusive (SPEC_FULL.md §3).
type ErrEntryOnExtern struct {
	Name string
}

func (e *ErrEntryOnExtern) Error() string {
	return fmt.Sprintf("extern symbol cannot be marked entry: %s", e.Name)
}

func (t *Table) ensure() {
	if t.index == nil {
		t.index = make(map[string]int)
	}
}

// Insert records name at the given address and kind (SPEC_FULL.md §4.3):
//
//   - fresh name: append a new symbol.
//   - re-asserting EXTERN on an existing EXTERN symbol: no-op success.
//   - any other re-definition: ErrDuplicateLabel.
//
// Entry-point status is not set here; see MarkEntry, which the second pass
// uses once every CODE/DATA/EXTERN symbol is already known.
func (t *Table) Insert(name string, address int, kind Kind) error {
	t.ensure()
	if i, ok := t.index[name]; ok {
		existing := t.order[i]
		if kind == Extern && existing.Kind == Extern {
			return nil
		}
		return &ErrDuplicateLabel{Name: name}
	}
	t.index[name] = len(t.order)
	t.order = append(t.order, &Symbol{Name: name, Address: address, Kind: kind})
	return nil
}

// Lookup returns the symbol named name, or nil if undefined.
func (t *Table) Lookup(name string) *Symbol {
	t.ensure()
	if i, ok := t.index[name]; ok {
		return t.order[i]
	}
	return nil
}

// AdjustDataAddresses adds icFinal to the address of every DATA symbol, the
// first-pass finalization step from SPEC_FULL.md §4.4.
func (t *Table) AdjustDataAddresses(icFinal int) {
	for _, s := range t.order {
		if s.Kind == Data {
			s.Address += icFinal
		}
	}
}

// MarkEntry marks an existing symbol as an entry point. It is used by the
// second pass when resolving .entry directives (SPEC_FULL.md §4.6): the
// symbol must already exist by then (every CODE/DATA/EXTERN definition was
// recorded in the first pass) and must not be EXTERN.
func (t *Table) MarkEntry(name string) (*Symbol, error) {
	s := t.Lookup(name)
	if s == nil {
		return nil, nil
	}
	if s.Kind == Extern {
		return nil, &ErrEntryOnExtern{Name: name}
	}
	s.IsEntry = true
	return s, nil
}

// All returns every symbol in insertion order. Callers must not mutate the
// returned slice.
func (t *Table) All() []*Symbol {
	return t.order
}
