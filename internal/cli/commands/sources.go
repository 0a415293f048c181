package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataloom-io/dataloom/pkg/source"
)

// NewSourcesCommand creates the sources command.
func NewSourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the source backends compiled into this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range source.List() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
