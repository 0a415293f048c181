package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataloom-io/dataloom/internal/cli/config"
	"github.com/dataloom-io/dataloom/pkg/dataset"
	"github.com/dataloom-io/dataloom/pkg/source"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dataset>",
		Short: "Check a dataset schema without loading any data",
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
			if err := source.Validate(schema.Source.Type); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (source=%s, format=%s)\n",
				args[0], schema.Source.Type, schema.Destination.Format)
			return nil
		},
	}
}
