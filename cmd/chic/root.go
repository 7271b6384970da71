package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/chi/internal/config"
)

// errFailed reports that a command already printed its diagnostics.
var errFailed = errors.New("chic: failed")

var errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

func printError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", errorStyle.Render("error:"), msg)
}

// rootOptions holds the persistent flags shared by all commands.
type rootOptions struct {
	cfgFile   string
	verbose   bool
	logFormat string

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "chic",
		Short: "Chi front end",
		Long: `chic parses Chi source files into abstract syntax trees.

Commands:
  parse   - parse files and print their programs
  tokens  - print the token stream of a file
  cst     - print the concrete parse tree of a file
  version - print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (text or json)")

	root.AddCommand(
		newParseCmd(opts),
		newTokensCmd(),
		newCSTCmd(opts),
		newVersionCmd(),
	)
	return root
}

// load reads the config file, applies persistent flag overrides and
// builds the logger.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.cfgFile != "" {
		var err error
		if cfg, err = config.Load(o.cfgFile); err != nil {
			return err
		}
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	o.log = cfg.Log.NewLogger(cmd.ErrOrStderr())
	return nil
}
