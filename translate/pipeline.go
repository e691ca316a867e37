package translate

import (
	"github.com/dcernic/asm10/macro"
)

// Translate runs the full pipeline over one file's raw source lines:
// macro expansion, the first pass, the memory builder, and the second
// pass. It returns the expanded (.am) lines (nil if macro expansion
// failed) and the populated Context. Callers should check ctx.OK() before
// using ctx.Memory/ctx.Entries/ctx.Externs or writing output artifacts.
func Translate(rawLines []string) ([]string, *Context) {
	ctx := NewContext()

	expanded, _, macroDiags := macro.Expand(rawLines)
	ctx.Diags = append(ctx.Diags, macroDiags...)
	if macroDiags.HasErrors() {
		return nil, ctx
	}

	ctx.FirstPass(expanded)
	if !ctx.OK() {
		return expanded, ctx
	}

	ctx.BuildMemory(expanded)
	ctx.SecondPass(expanded)

	return expanded, ctx
}
