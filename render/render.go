package render

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/dcernic/asm10/internal/errio"
	"github.com/dcernic/asm10/translate"
)

func printf(w *errio.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}

// save opens fileName, runs fn against a buffered errio.Writer, flushes and
// closes, and deletes the partial file if fn or the flush failed. This is
// the same open/write/flush/remove-on-error shape as vm.Save.
func save(fileName string, fn func(w *errio.Writer)) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	bw := bufio.NewWriter(f)
	ew := errio.New(bw)
	fn(ew)
	err = ew.Err
	if err == nil {
		err = bw.Flush()
	}
	f.Close()
	if err != nil {
		os.Remove(fileName)
	}
	return err
}

// WriteObject writes name+".ob": the header line of base-4 instruction and
// data word counts, then one "<address> <word>" line per memory word in
// address order (SPEC_FULL.md §4.7).
func WriteObject(name string, ctx *translate.Context) error {
	icWords := ctx.ICFinal - translate.Base
	dcWords := ctx.DCFinal

	return save(name+".ob", func(w *errio.Writer) {
		printf(w, "%s %s\n", Base4Trimmed(icWords), Base4Trimmed(dcWords))
		for i, word := range ctx.Memory {
			addr := translate.Base + i
			printf(w, "%s %s\n", Base4(addr, 4), Base4(int(word), 5))
		}
	})
}

// WriteEntries writes name+".ent" if ctx has any entry points, one
// "<name> <address>" line per entry.
func WriteEntries(name string, ctx *translate.Context) error {
	if len(ctx.Entries) == 0 {
		return nil
	}
	return save(name+".ent", func(w *errio.Writer) {
		for _, e := range ctx.Entries {
			printf(w, "%s %s\n", e.Name, Base4(e.Address, 4))
		}
	})
}

// WriteExterns writes name+".ext" if ctx has any external references, one
// "<name> <address>" line per use-site.
func WriteExterns(name string, ctx *translate.Context) error {
	if len(ctx.Externs) == 0 {
		return nil
	}
	return save(name+".ext", func(w *errio.Writer) {
		for _, e := range ctx.Externs {
			printf(w, "%s %s\n", e.Name, Base4(e.Address, 4))
		}
	})
}

// WriteIntermediate writes name+".am": the macro-expanded source, one line
// per entry in lines.
func WriteIntermediate(name string, lines []string) error {
	return save(name+".am", func(w *errio.Writer) {
		for _, l := range lines {
			printf(w, "%s\n", l)
		}
	})
}

// RemoveIntermediate deletes a stray name+".am" file, ignoring a missing
// file. Used when a later stage fails after the intermediate was written.
func RemoveIntermediate(name string) error {
	err := os.Remove(name + ".am")
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove failed")
	}
	return nil
}
