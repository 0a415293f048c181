package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataloom-io/dataloom/internal/cli/config"
	"github.com/dataloom-io/dataloom/pkg/dataset"
	"github.com/dataloom-io/dataloom/pkg/query"
)

// NewSQLCommand creates the sql command.
func NewSQLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sql <dataset>",
		Short: "Print the query a source fetch would execute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())

			schema, err := dataset.Load(cfg.DatasetsDir, args[0])
			if err != nil {
				return err
			}
			if err := schema.Validate(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), query.Build(schema))
			return nil
		},
	}
}
