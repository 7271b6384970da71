package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/chi/internal/syntax"
)

func newCSTCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cst <file.chi>",
		Short: "Print the concrete parse tree of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			f, err := os.Open(filename)
			if err != nil {
				return errors.Wrapf(err, "read %s", filename)
			}
			defer f.Close()

			p := syntax.NewParser(filename, f, nil)
			p.SetMaxDepth(root.cfg.Parse.MaxDepth)
			tree := p.Parse()
			if err := p.FirstError(); err != nil {
				return err
			}
			return syntax.Fprint(cmd.OutOrStdout(), tree)
		},
	}
}
