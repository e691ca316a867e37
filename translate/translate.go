// Package translate implements the assembler's core pipeline stages: the
// first pass (symbol table construction), the memory builder (instruction
// image scaffolding) and the second pass (symbol resolution and ARE
// patching). Context threads the state all three stages share through one
// file's run, replacing the reference implementation's file-scope global
// symbol table (SPEC_FULL.md §9, Context).
package translate

import (
	"strings"

	"github.com/dcernic/asm10/diag"
	"github.com/dcernic/asm10/symtab"
	"github.com/dcernic/asm10/word"
)

// Base is the starting absolute address of the instruction image.
const Base = 100

// MemSize is the number of addressable 10-bit words in the machine.
const MemSize = 256

// ExternRef records one use-site of an external symbol: the absolute
// address of the operand word that referenced it.
type ExternRef struct {
	Name    string
	Address int
}

// EntryRef records one resolved entry point: the symbol's final address.
type EntryRef struct {
	Name    string
	Address int
}

// Context carries everything a single file's translation run accumulates:
// the symbol table, the memory image (indexed from Base), diagnostics, and
// the collected entry/extern lists. The zero value is not ready to use;
// construct one with NewContext.
type Context struct {
	Symbols *symtab.Table
	Memory  []word.Word // Memory[i] holds the word at address Base+i
	ICFinal int
	DCFinal int
	Diags   diag.List
	Externs []ExternRef
	Entries []EntryRef
}

// NewContext returns an empty, ready-to-use Context.
func NewContext() *Context {
	return &Context{Symbols: &symtab.Table{}}
}

// OK reports whether the run has accumulated no diagnostics so far.
func (c *Context) OK() bool {
	return !c.Diags.HasErrors()
}

func firstToken(s string) (tok, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i+1:], " \t")
}
