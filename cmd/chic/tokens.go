package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/chi/internal/syntax"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file.chi>",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0])
		},
	}
}

func runTokens(cmd *cobra.Command, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "read %s", filename)
	}
	defer f.Close()

	var errs []string
	errh := func(line, col uint32, msg string) {
		errs = append(errs, fmt.Sprintf("%s:%d:%d: %s", filename, line, col, msg))
	}
	s := syntax.NewScanner(filename, f, errh)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Fprintf(out, "%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		s.Next()
		tok := s.Token()
		fmt.Fprintf(out, "%-20s %-12s %s\n", s.Pos().String(), tok.String(), formatLiteral(s.Literal()))
		if tok.IsEOF() {
			break
		}
	}

	if len(errs) > 0 {
		for _, e := range errs {
			printError(cmd.ErrOrStderr(), e)
		}
		return errFailed
	}
	return nil
}

// formatLiteral quotes lit with control characters escaped.
func formatLiteral(lit string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
