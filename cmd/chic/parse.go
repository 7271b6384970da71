package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/chi/internal/ast"
	"github.com/you-not-fish/chi/internal/build"
	"github.com/you-not-fish/chi/internal/config"
	"github.com/you-not-fish/chi/internal/driver"
)

type parseOptions struct {
	format   string
	jobs     int
	maxDepth int
}

func newParseCmd(root *rootOptions) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <file.chi>...",
		Short: "Parse files and print their programs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *root.cfg
			flags := cmd.Flags()
			if flags.Changed("format") {
				cfg.Output.Format = opts.format
			}
			if flags.Changed("jobs") {
				cfg.Run.Jobs = opts.jobs
			}
			if flags.Changed("max-depth") {
				cfg.Parse.MaxDepth = opts.maxDepth
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runParse(cmd, root, &cfg, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", config.FormatText, "output format (text, json or yaml)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "files parsed in parallel (default from config)")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", build.DefaultMaxDepth, "nesting limit for blocks and expressions")
	return cmd
}

func runParse(cmd *cobra.Command, root *rootOptions, cfg *config.Config, paths []string) error {
	d := driver.New(driver.Options{
		Jobs:   cfg.Run.Jobs,
		Build:  &build.Config{MaxDepth: cfg.Parse.MaxDepth},
		Logger: root.log,
	})
	results := d.ParseFiles(cmd.Context(), paths)

	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Err != nil {
			printError(cmd.ErrOrStderr(), r.Err.Error())
			continue
		}
		if err := printProgram(out, cfg.Output.Format, r, len(results) > 1); err != nil {
			return err
		}
	}

	if driver.Failed(results) > 0 {
		return errFailed
	}
	return nil
}

func printProgram(w io.Writer, format string, r driver.Result, header bool) error {
	switch format {
	case config.FormatJSON:
		if !header {
			return ast.FprintJSON(w, r.Program)
		}
		return printFileJSON(w, r)
	case config.FormatYAML:
		if header {
			fmt.Fprintf(w, "--- # %s\n", r.File)
		}
		return ast.FprintYAML(w, r.Program)
	}
	if header {
		fmt.Fprintf(w, "# %s\n", r.File)
	}
	ast.Fprint(w, r.Program)
	return nil
}

// printFileJSON writes one {"file", "program"} document for r.
func printFileJSON(w io.Writer, r driver.Result) error {
	var prog bytes.Buffer
	if err := ast.FprintJSON(&prog, r.Program); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		File    string          `json:"file"`
		Program json.RawMessage `json:"program"`
	}{r.File, prog.Bytes()})
}
