package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tsawler/docstruct"
	"github.com/tsawler/docstruct/batch"
	"github.com/tsawler/docstruct/internal/config"
)

type convertOptions struct {
	output       string
	recursive    bool
	workers      int
	noPageBreaks bool
	extensions   []string
	stdout       bool
}

func newConvertCommand(root *rootOptions) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <file|dir>",
		Short: "Convert a file or every supported file in a directory",
		Long: `Convert a file or every supported file in a directory to Markdown.

Each source is written to <output>/<stem>.md, mirroring subdirectories of the
input directory. Sources in one directory that share a stem keep their
extension (<stem>.<ext>.md). A source that cannot be read still produces a
document describing the failure. The command exits with status 1 when any
file produced no output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutputDir, "Output directory")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "Process subdirectories")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Documents converted at once (0 = number of CPUs)")
	cmd.Flags().BoolVar(&opts.noPageBreaks, "no-page-breaks", false, "Do not separate pages with ---")
	cmd.Flags().StringSliceVar(&opts.extensions, "ext", nil, "Extensions to convert in a directory (default: all supported)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Write a single file's Markdown to standard output")

	return cmd
}

func runConvert(cmd *cobra.Command, root *rootOptions, opts *convertOptions, input string) error {
	s, err := root.settings()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		s.Output = opts.output
	}
	if flags.Changed("recursive") {
		s.Recursive = opts.recursive
	}
	if flags.Changed("workers") {
		s.Workers = opts.workers
	}
	if flags.Changed("no-page-breaks") {
		s.PageBreaks = !opts.noPageBreaks
	}
	if flags.Changed("ext") {
		s.Extensions = opts.extensions
	}

	configure := s.Configure()

	info, err := os.Stat(input)
	if err != nil {
		return err
	}

	if opts.stdout {
		if info.IsDir() {
			return fmt.Errorf("--stdout needs a single file, %s is a directory", input)
		}
		md, warnings, err := configure(docstruct.Open(input)).Markdown(cmd.Context())
		if err != nil {
			return err
		}
		if len(warnings) > 0 {
			log.Warn().Str("source", input).Msg(docstruct.FormatWarnings(warnings))
		}
		_, err = io.WriteString(cmd.OutOrStdout(), md)
		return err
	}

	var jobs []batch.Job
	if info.IsDir() {
		sources, err := batch.Discover(input, s.Recursive, s.Extensions)
		if err != nil {
			return fmt.Errorf("discovering sources: %w", err)
		}
		sources = batch.Exclude(sources, s.Output)
		log.Info().Str("dir", input).Int("files", len(sources)).Msg("found files to convert")
		jobs = batch.Plan(input, sources, s.Output)
	} else {
		jobs = batch.Plan(filepath.Dir(input), []string{input}, s.Output)
	}

	runner := batch.NewRunnerWithConfig(batch.Config{
		Workers:   s.Workers,
		Configure: configure,
	})
	report := runner.Run(cmd.Context(), jobs)

	renderSummary(cmd.OutOrStdout(), report)
	if !report.OK() {
		return ErrConversionFailed
	}
	return nil
}
