package cli

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/docstruct"
)

func newClassifyCommand(root *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "Show how each line of a file is classified",
		Long: `Print one row per line with its position, the block kind it was
classified as and the rule that decided it. Useful when tuning the
classifier thresholds in the configuration file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.settings()
			if err != nil {
				return err
			}
			traces, _, err := s.Configure()(docstruct.Open(args[0])).Trace(cmd.Context())
			if err != nil {
				return err
			}
			renderTrace(cmd.OutOrStdout(), traces, all)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include blank lines")
	return cmd
}
