// Command asm10 translates .as source files for the 10-bit-word, 256-word
// machine into .ob object files, plus optional .ent/.ext files.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/dcernic/asm10/render"
	"github.com/dcernic/asm10/translate"
)

var debug bool

func logf(format string, args ...interface{}) {
	if debug {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// readLines reads name+".as" and splits it into raw source lines.
func readLines(name string) ([]string, error) {
	f, err := os.Open(name + ".as")
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return lines, nil
}

// process runs the full pipeline for one base filename, writing artifacts
// on success and reporting diagnostics on failure. It returns false if the
// file failed.
func process(name string) bool {
	logf("%s: reading source", name)
	rawLines, err := readLines(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return false
	}

	expanded, ctx := translate.Translate(rawLines)

	if expanded != nil {
		logf("%s: writing intermediate file", name)
		if err := render.WriteIntermediate(name, expanded); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			return false
		}
	}

	if !ctx.OK() {
		for _, d := range ctx.Diags {
			fmt.Fprintf(os.Stderr, "%s:%d: %s\n", name, d.Line, d.Msg)
		}
		render.RemoveIntermediate(name)
		return false
	}

	logf("%s: writing object file", name)
	if err := render.WriteObject(name, ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return false
	}
	if err := render.WriteEntries(name, ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return false
	}
	if err := render.WriteExterns(name, ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return false
	}

	logf("%s: done (%d instruction words, %d data words)", name, ctx.ICFinal-translate.Base, ctx.DCFinal)
	return true
}

func main() {
	flag.BoolVar(&debug, "d", false, "enable verbose per-stage progress messages")
	flag.BoolVar(&debug, "debug", false, "enable verbose per-stage progress messages")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: asm10 [-d] file ...")
		os.Exit(1)
	}

	ok := true
	for _, a := range args {
		base := strings.TrimSuffix(a, ".as")
		if !process(base) {
			ok = false
		}
	}
	if !ok {
		os.Exit(1)
	}
}
