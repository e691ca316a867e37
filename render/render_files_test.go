package render_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dcernic/asm10/render"
	"github.com/dcernic/asm10/translate"
)

func mustTranslate(t *testing.T, src string) (*translate.Context, []string) {
	t.Helper()
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	expanded, ctx := translate.Translate(lines)
	if !ctx.OK() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diags)
	}
	return ctx, expanded
}

func TestWriteObjectFormat(t *testing.T) {
	src := `MAIN: mov #5, r1
      .entry MAIN
      .extern EXT1
      prn EXT1
      stop
`
	ctx, _ := mustTranslate(t, src)

	dir := t.TempDir()
	base := filepath.Join(dir, "prog")

	if err := render.WriteObject(base, ctx); err != nil {
		t.Fatalf("WriteObject: %v", err)
	}
	if err := render.WriteEntries(base, ctx); err != nil {
		t.Fatalf("WriteEntries: %v", err)
	}
	if err := render.WriteExterns(base, ctx); err != nil {
		t.Fatalf("WriteExterns: %v", err)
	}

	ob, err := os.ReadFile(base + ".ob")
	if err != nil {
		t.Fatalf("reading .ob: %v", err)
	}
	obLines := strings.Split(strings.TrimRight(string(ob), "\n"), "\n")
	wantWords := ctx.ICFinal - translate.Base + ctx.DCFinal
	if len(obLines) != wantWords+1 {
		t.Errorf(".ob has %d lines, want %d", len(obLines), wantWords+1)
	}
	header := strings.Fields(obLines[0])
	if len(header) != 2 {
		t.Fatalf("malformed header: %q", obLines[0])
	}

	ent, err := os.ReadFile(base + ".ent")
	if err != nil {
		t.Fatalf("reading .ent: %v", err)
	}
	if !strings.Contains(string(ent), "MAIN ") {
		t.Errorf(".ent missing MAIN entry: %q", ent)
	}

	ext, err := os.ReadFile(base + ".ext")
	if err != nil {
		t.Fatalf("reading .ext: %v", err)
	}
	if !strings.Contains(string(ext), "EXT1 ") {
		t.Errorf(".ext missing EXT1 use-site: %q", ext)
	}
}

func TestWriteEntriesOmittedWhenEmpty(t *testing.T) {
	ctx, _ := mustTranslate(t, "stop")
	dir := t.TempDir()
	base := filepath.Join(dir, "prog")

	if err := render.WriteEntries(base, ctx); err != nil {
		t.Fatalf("WriteEntries: %v", err)
	}
	if _, err := os.Stat(base + ".ent"); !os.IsNotExist(err) {
		t.Errorf(".ent should not exist, stat err = %v", err)
	}
}

func TestWriteExternsOmittedWhenEmpty(t *testing.T) {
	ctx, _ := mustTranslate(t, "stop")
	dir := t.TempDir()
	base := filepath.Join(dir, "prog")

	if err := render.WriteExterns(base, ctx); err != nil {
		t.Fatalf("WriteExterns: %v", err)
	}
	if _, err := os.Stat(base + ".ext"); !os.IsNotExist(err) {
		t.Errorf(".ext should not exist, stat err = %v", err)
	}
}
