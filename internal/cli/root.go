// Package cli implements the docstruct command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tsawler/docstruct/internal/config"
	"github.com/tsawler/docstruct/internal/version"
)

// ErrConversionFailed is returned when at least one file produced no output
var ErrConversionFailed = errors.New("some files could not be converted")

type rootOptions struct {
	configPath string
	verbose    bool
	quiet      bool
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "docstruct",
		Short: "Infer document structure and convert documents to Markdown",
		Long: `docstruct reads the text lines of a document, infers its structure
(headings, list items, tables and prose) and writes Markdown with a YAML
metadata preamble derived from the file name.

Plain text, Markdown and HTML are read directly. PDF, DOC and DOCX files are
read through external extractors (pdftotext, antiword, pandoc by default);
see --config to change them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts.verbose, opts.quiet)
		},
	}
	cmd.Version = version.Version
	cmd.SetVersionTemplate(fmt.Sprintf("docstruct %s\n", version.String()))

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML or JSON configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only log warnings and errors")

	cmd.AddCommand(
		newConvertCommand(opts),
		newClassifyCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context) int {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		return 1
	}
	return 0
}

func setupLogging(w io.Writer, verbose, quiet bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})

	switch {
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// settings returns the defaults overlaid with the configuration file
func (o *rootOptions) settings() (config.Settings, error) {
	s := config.Default()
	if o.configPath == "" {
		return s, nil
	}
	f, err := config.Load(o.configPath)
	if err != nil {
		return s, fmt.Errorf("loading config: %w", err)
	}
	if err := s.Apply(f); err != nil {
		return s, err
	}
	log.Debug().Str("path", o.configPath).Strs("decoders", s.DecoderSummary()).Msg("loaded config")
	return s, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "docstruct %s\n", version.String())
		},
	}
}
