package driver

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/you-not-fish/chi/internal/build"
)

func writeChiFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseFilesOrderAndErrors(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 12; i++ {
		src := fmt.Sprintf("int v%d = %d;\n", i, i)
		paths = append(paths, writeChiFile(t, dir, fmt.Sprintf("ok%02d.chi", i), src))
	}
	paths = append(paths,
		writeChiFile(t, dir, "arity.chi", "int x = 1, 2;\n"),
		writeChiFile(t, dir, "syntax.chi", "int x = ;\n"),
		filepath.Join(dir, "missing.chi"),
	)

	d := New(Options{Jobs: 4})
	results := d.ParseFiles(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, r := range results {
		if r.File != paths[i] {
			t.Errorf("result %d is for %s, want %s", i, r.File, paths[i])
		}
	}
	for i := 0; i < 12; i++ {
		r := results[i]
		if r.Err != nil {
			t.Errorf("%s: %v", r.File, r.Err)
			continue
		}
		if name := r.Program.Globals[0].Names[0]; name != fmt.Sprintf("v%d", i) {
			t.Errorf("%s: global %s", r.File, name)
		}
		// Program, Declaration, IntLit
		if r.Nodes != 3 {
			t.Errorf("%s: %d nodes, want 3", r.File, r.Nodes)
		}
	}

	if got := Failed(results); got != 3 {
		t.Errorf("Failed = %d, want 3", got)
	}
	if k := build.KindOf(results[12].Err); k != build.ArityMismatch {
		t.Errorf("arity.chi: kind %s", k)
	}
	wantKinds := []string{"arity mismatch", "syntax", "io"}
	for i, want := range wantKinds {
		r := results[12+i]
		if got := Kind(r.Err); got != want {
			t.Errorf("%s: Kind = %q, want %q (%v)", filepath.Base(r.File), got, want, r.Err)
		}
		if r.Program != nil {
			t.Errorf("%s: program returned alongside error", r.File)
		}
	}
	if !strings.Contains(results[14].Err.Error(), "read "+paths[14]) {
		t.Errorf("missing file error = %v", results[14].Err)
	}
}

func TestParseFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeChiFile(t, dir, "a.chi", "use a;"),
		writeChiFile(t, dir, "b.chi", "use b;"),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := New(Options{}).ParseFiles(ctx, paths)
	for _, r := range results {
		if r.Err != context.Canceled {
			t.Errorf("%s: err = %v, want context.Canceled", r.File, r.Err)
		}
	}
}

func TestParseSourceLogging(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d := New(Options{Logger: log, Build: &build.Config{MaxDepth: 8}})

	if _, err := uuid.Parse(d.RunID()); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", d.RunID(), err)
	}

	r := d.ParseSource("ok.chi", strings.NewReader("void main() { return; }"))
	if r.Err != nil {
		t.Fatalf("ParseSource: %v", r.Err)
	}
	r = d.ParseSource("deep.chi", strings.NewReader("int x = ((((((((((1))))))))));"))
	if r.Err == nil {
		t.Fatal("expected depth error")
	}

	out := buf.String()
	for _, want := range []string{
		"run_id=" + d.RunID(),
		"msg=parsed",
		"file=ok.chi globals=0 funcs=1 uses=0",
		`msg="parse failed"`,
		"file=deep.chi kind=syntax",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output lacks %q:\n%s", want, out)
		}
	}
}
