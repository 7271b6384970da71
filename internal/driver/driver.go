// Package driver runs the Chi front end over a set of files.
//
// Each file is parsed by an independent build.Parse call, so files are
// processed in parallel. Results keep the input order.
package driver

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/you-not-fish/chi/internal/ast"
	"github.com/you-not-fish/chi/internal/build"
	"github.com/you-not-fish/chi/internal/syntax"
)

// Options configures a Driver.
type Options struct {
	Jobs   int           // files parsed in parallel; <= 0 means one
	Build  *build.Config // nil means defaults
	Logger *slog.Logger  // nil discards log output
}

// Result is the outcome of parsing one file.
type Result struct {
	File     string
	Program  *ast.Program // nil if Err != nil
	Nodes    int          // AST node count
	Duration time.Duration
	Err      error
}

// Driver parses files and logs each run under a fresh run id.
type Driver struct {
	opts  Options
	runID string
	log   *slog.Logger
}

// New returns a driver with a new run id.
func New(opts Options) *Driver {
	if opts.Jobs <= 0 {
		opts.Jobs = 1
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	id := uuid.NewString()
	return &Driver{
		opts:  opts,
		runID: id,
		log:   log.With("run_id", id),
	}
}

// RunID identifies this driver's log records.
func (d *Driver) RunID() string { return d.runID }

// ParseFiles parses every path and returns one result per path, in order.
// Failures are reported per file and never stop the other files. Files
// not yet started when ctx is cancelled fail with the context error.
func (d *Driver) ParseFiles(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))

	var g errgroup.Group
	g.SetLimit(d.opts.Jobs)

	d.log.Info("parse run started", "files", len(paths), "jobs", d.opts.Jobs)
	start := time.Now()

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{File: path, Err: err}
				return nil
			}
			results[i] = d.ParseFile(path)
			return nil
		})
	}
	_ = g.Wait()

	d.log.Info("parse run finished",
		"files", len(paths),
		"failed", Failed(results),
		"duration", time.Since(start))
	return results
}

// ParseFile reads and parses one file.
func (d *Driver) ParseFile(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "read %s", path)
		d.log.Error("open failed", "file", path, "error", err)
		return Result{File: path, Err: err}
	}
	defer f.Close()
	return d.ParseSource(path, f)
}

// ParseSource parses src, naming it filename in positions and logs.
func (d *Driver) ParseSource(filename string, src io.Reader) Result {
	d.log.Debug("parsing", "file", filename)
	start := time.Now()

	prog, err := build.Parse(filename, src, d.opts.Build)
	res := Result{File: filename, Program: prog, Duration: time.Since(start), Err: err}

	if err != nil {
		d.log.Info("parse failed",
			"file", filename,
			"kind", Kind(err),
			"error", err)
		return res
	}

	ast.Inspect(prog, func(ast.Node) bool {
		res.Nodes++
		return true
	})
	d.log.Debug("parsed",
		"file", filename,
		"globals", len(prog.Globals),
		"funcs", len(prog.Funcs),
		"uses", len(prog.Uses),
		"nodes", res.Nodes,
		"duration", res.Duration)
	return res
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Kind names the failure class of a result error: "syntax" for lexical
// and grammar errors, the build.ErrorKind for tree building errors, and
// "io" for anything else.
func Kind(err error) string {
	if k := build.KindOf(err); k != build.NoKind {
		return k.String()
	}
	var serr *syntax.SyntaxError
	if errors.As(err, &serr) {
		return "syntax"
	}
	return "io"
}
